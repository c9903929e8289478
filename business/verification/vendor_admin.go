package verification

import (
	"context"
	"fmt"
	"vendorHub/domain"
	"vendorHub/pkg/logger"
)

// ToggleVendorActive flips the active flag of an approved vendor account. Inactive vendors cannot
// log in. Accounts that are not VENDOR are reported as not found.
func (s *VerificationService) ToggleVendorActive(ctx context.Context, vendorID uint) (domain.VendorSummary, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when toggle vendor active")
		return domain.VendorSummary{}, fmt.Errorf("context error: %w", err)
	}

	var summary domain.VendorSummary
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}
		if user.Role != domain.RoleVendor {
			return fmt.Errorf("vendor %w", domain.ErrNotFound)
		}

		user.IsActive = !user.IsActive
		if err := s.userRepo.UpdateActive(ctx, vendorID, user.IsActive); err != nil {
			return err
		}

		store, err := s.findStore(ctx, vendorID)
		if err != nil {
			return err
		}

		summary = domain.VendorSummary{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Mobile:    user.Mobile,
			Role:      user.Role,
			Status:    ResolveStatus(user, store),
			IsActive:  user.IsActive,
		}

		return s.recordEvent(ctx, vendorID, domain.ActionToggleActive, map[string]interface{}{
			"is_active": user.IsActive,
		})
	})
	if err != nil {
		logger.Error("Failed to toggle vendor active", "vendor_id", vendorID, "error", err)
		return domain.VendorSummary{}, err
	}

	s.observe(domain.ActionToggleActive, false)
	logger.Info("vendor active flag toggled", "vendor_id", vendorID, "is_active", summary.IsActive)

	return summary, nil
}

// DemoteVendor turns a vendor back into a customer. Their store and documents are deleted; the
// account status and the verification history are kept.
func (s *VerificationService) DemoteVendor(ctx context.Context, vendorID uint) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when demote vendor")
		return fmt.Errorf("context error: %w", err)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}

		switch user.Role {
		case domain.RoleVendor, domain.RoleVendorPending, domain.RoleVendorStaff:
		default:
			return fmt.Errorf("%w: user is not a vendor", domain.ErrInvalidArgument)
		}

		store, err := s.findStore(ctx, vendorID)
		if err != nil {
			return err
		}
		documents, err := s.documentRepo.FindByOwner(ctx, vendorID)
		if err != nil {
			return err
		}

		if err := s.documentRepo.DeleteByOwner(ctx, vendorID); err != nil {
			return err
		}
		if store != nil {
			if err := s.storeRepo.DeleteByVendorID(ctx, vendorID); err != nil {
				return err
			}
		}

		if err := s.userRepo.UpdateRoleAndStatus(ctx, vendorID, domain.RoleCustomer, user.Status); err != nil {
			return err
		}

		return s.recordEvent(ctx, vendorID, domain.ActionDemote, map[string]interface{}{
			"previous_role":     string(user.Role),
			"store_deleted":     store != nil,
			"documents_deleted": len(documents),
		})
	})
	if err != nil {
		logger.Error("Failed to demote vendor", "vendor_id", vendorID, "error", err)
		return err
	}

	s.observe(domain.ActionDemote, false)
	logger.Info("vendor demoted to customer", "vendor_id", vendorID)

	return nil
}
