package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Committed workflow transitions, by action
	VerificationTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_transitions_total",
		Help: "Committed vendor verification transitions by action",
	}, []string{"action"})

	// Vendors promoted because their last pending document was approved
	VerificationAutoPromotions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "verification_auto_promotions_total",
		Help: "Vendors auto-promoted after all documents were approved",
	})

	// Stores created lazily by the admin listing, by result
	StoreMaterializations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_store_materializations_total",
		Help: "Stores materialized while listing vendors, by result",
	}, []string{"result"})
)

func Init() {
	prometheus.MustRegister(
		VerificationTransitions,
		VerificationAutoPromotions,
		StoreMaterializations,
	)
}
