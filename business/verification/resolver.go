package verification

import (
	"strings"
	"vendorHub/domain"
)

// ResolveStatus combines the user's stored status with the store's verification flags into the
// status shown to admins and vendors. First match wins:
//
//	user REJECTED or store rejected    -> REJECTED
//	user PENDING and store unverified  -> PENDING
//	user APPROVED and store unverified -> FORM_APPROVED
//	user APPROVED and store verified   -> APPROVED
//	anything else                      -> the user status as stored
//
// A nil store counts as neither verified nor rejected.
func ResolveStatus(user domain.User, store *domain.Store) domain.VerificationStatus {
	userStatus := strings.ToUpper(string(user.Status))
	if userStatus == "" {
		userStatus = string(domain.AccountPending)
	}

	var isVerified, isRejected bool
	if store != nil {
		isVerified = store.IsVerified
		isRejected = store.IsRejected
	}

	switch {
	case userStatus == string(domain.AccountRejected) || isRejected:
		return domain.VerificationRejected
	case userStatus == string(domain.AccountPending) && !isVerified:
		return domain.VerificationPending
	case userStatus == string(domain.AccountApproved) && !isVerified:
		return domain.VerificationFormApproved
	case userStatus == string(domain.AccountApproved) && isVerified:
		return domain.VerificationApproved
	}

	return domain.VerificationStatus(userStatus)
}
