package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of the admin unverified-vendor listing handler
	VendorListingLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "verification_listing_latency_seconds",
		Help:    "Latency of the admin unverified vendor listing handler",
		Buckets: prometheus.DefBuckets,
	})

	// Requests handled by the admin verification endpoints, by route and status code
	VerificationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_http_requests_total",
		Help: "Admin verification requests by route and status code",
	}, []string{"route", "code"})
)

func Init() {
	prometheus.MustRegister(
		VendorListingLatency,
		VerificationRequests,
	)
}

// CountRequests counts admin verification requests by their registered route and response code.
func CountRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			code := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			VerificationRequests.WithLabelValues(c.Path(), strconv.Itoa(code)).Inc()

			return err
		}
	}
}

// ObserveListingLatency times the wrapped handler into VendorListingLatency.
func ObserveListingLatency() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			VendorListingLatency.Observe(time.Since(start).Seconds())
			return err
		}
	}
}
