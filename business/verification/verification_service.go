package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"vendorHub/domain"
	"vendorHub/pkg/logger"
	"vendorHub/pkg/metrics"

	"gorm.io/datatypes"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.User, error)
	FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.User, error)
	UpdateStatus(ctx context.Context, id uint, status domain.AccountStatus) error
	UpdateRoleAndStatus(ctx context.Context, id uint, role domain.Role, status domain.AccountStatus) error
	UpdateActive(ctx context.Context, id uint, active bool) error
}

// StoreRepository contract interface
type StoreRepository interface {
	FindByVendorID(ctx context.Context, vendorID uint) (domain.Store, error)
	FindByVendorIDs(ctx context.Context, vendorIDs []uint) ([]domain.Store, error)
	EnsureForVendor(ctx context.Context, store domain.Store) (domain.Store, error)
	MarkVerified(ctx context.Context, id uint, reason *string) error
	MarkRejected(ctx context.Context, id uint, reason *string) error
	ClearRejection(ctx context.Context, id uint) error
	DeleteByVendorID(ctx context.Context, vendorID uint) error
}

// DocumentRepository contract interface
type DocumentRepository interface {
	FindByOwner(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error)
	FindByOwners(ctx context.Context, vendorIDs []uint) ([]domain.StoreDocument, error)
	UpdateStatus(ctx context.Context, vendorID, documentID uint, status domain.DocumentStatus, reason *string) (int64, error)
	UpdateStatusByOwner(ctx context.Context, vendorID uint, status domain.DocumentStatus) error
	DeleteByOwner(ctx context.Context, vendorID uint) error
}

// EventRepository contract interface
type EventRepository interface {
	SaveEvent(ctx context.Context, event *domain.VerificationEvent) error
	FindByVendor(ctx context.Context, vendorID uint) ([]domain.VerificationEvent, error)
}

// Transactor runs fn in a single database transaction. Repository calls made with the ctx passed
// to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Options struct {
	IncludePendingVendors bool
	MaxPageSize           int
}

type VerificationService struct {
	userRepo     UserRepository
	storeRepo    StoreRepository
	documentRepo DocumentRepository
	eventRepo    EventRepository
	tx           Transactor
	opts         Options
}

func NewVerificationService(
	userRepo UserRepository,
	storeRepo StoreRepository,
	documentRepo DocumentRepository,
	eventRepo EventRepository,
	tx Transactor,
	opts Options,
) *VerificationService {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}

	return &VerificationService{
		userRepo:     userRepo,
		storeRepo:    storeRepo,
		documentRepo: documentRepo,
		eventRepo:    eventRepo,
		tx:           tx,
		opts:         opts,
	}
}

// GetUserDocuments returns every document owned by the vendor, newest first.
func (s *VerificationService) GetUserDocuments(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get user documents")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, vendorID); err != nil {
		logger.Error("Failed to find user", "vendor_id", vendorID, "error", err)
		return nil, err
	}

	documents, err := s.documentRepo.FindByOwner(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to find user documents", "vendor_id", vendorID, "error", err)
		return nil, err
	}

	return documents, nil
}

// UpdateUserDocumentStatus sets the status of one document owned by the vendor and returns the
// vendor's documents after the change. Approving the last outstanding document promotes the vendor.
func (s *VerificationService) UpdateUserDocumentStatus(ctx context.Context, vendorID, documentID uint, rawStatus string, reason *string) ([]domain.StoreDocument, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update document status")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if documentID == 0 {
		logger.Error("Invalid document id")
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidArgument)
	}

	status, err := domain.ParseDocumentStatus(rawStatus)
	if err != nil {
		logger.Error("Invalid document status", "status", rawStatus)
		return nil, err
	}

	var (
		documents []domain.StoreDocument
		promoted  bool
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}

		affected, err := s.documentRepo.UpdateStatus(ctx, vendorID, documentID, status, reason)
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("document %w or not owned by vendor", domain.ErrNotFound)
		}

		details := map[string]interface{}{
			"document_id": documentID,
			"status":      string(status),
		}
		if reason != nil {
			details["reason"] = *reason
		}
		if err := s.recordEvent(ctx, vendorID, domain.ActionDocumentStatus, details); err != nil {
			return err
		}

		if status == domain.DocumentApproved {
			if promoted, err = s.promoteIfComplete(ctx, user); err != nil {
				return err
			}
		}

		documents, err = s.documentRepo.FindByOwner(ctx, vendorID)
		return err
	})
	if err != nil {
		logger.Error("Failed to update document status", "vendor_id", vendorID, "document_id", documentID, "error", err)
		return nil, err
	}

	s.observe(domain.ActionDocumentStatus, promoted)
	logger.Info("document status updated", "vendor_id", vendorID, "document_id", documentID, "status", status)

	return documents, nil
}

// UpdateUserDocumentsStatus applies a batch of status changes for one vendor. The whole batch is
// validated before anything is written; ids the vendor does not own are skipped.
func (s *VerificationService) UpdateUserDocumentsStatus(ctx context.Context, vendorID uint, updates []domain.DocumentStatusUpdate) ([]domain.StoreDocument, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when update documents status")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(updates) == 0 {
		logger.Error("Invalid bulk update: updates array is required")
		return nil, fmt.Errorf("%w: updates array is required", domain.ErrInvalidArgument)
	}

	statuses := make([]domain.DocumentStatus, len(updates))
	anyApproved := false
	for i, update := range updates {
		if update.ID == 0 || strings.TrimSpace(update.Status) == "" {
			logger.Error("Invalid bulk update entry", "index", i)
			return nil, fmt.Errorf("%w: each update must include id and status", domain.ErrInvalidArgument)
		}

		status, err := domain.ParseDocumentStatus(update.Status)
		if err != nil {
			logger.Error("Invalid document status in bulk update", "index", i, "status", update.Status)
			return nil, err
		}

		statuses[i] = status
		if status == domain.DocumentApproved {
			anyApproved = true
		}
	}

	var (
		documents []domain.StoreDocument
		promoted  bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}

		var applied int64
		for i, update := range updates {
			affected, err := s.documentRepo.UpdateStatus(ctx, vendorID, update.ID, statuses[i], nil)
			if err != nil {
				return err
			}
			applied += affected
		}

		details := map[string]interface{}{
			"requested": len(updates),
			"applied":   applied,
		}
		if err := s.recordEvent(ctx, vendorID, domain.ActionDocumentsStatus, details); err != nil {
			return err
		}

		if anyApproved {
			if promoted, err = s.promoteIfComplete(ctx, user); err != nil {
				return err
			}
		}

		documents, err = s.documentRepo.FindByOwner(ctx, vendorID)
		return err
	})
	if err != nil {
		logger.Error("Failed to update documents status", "vendor_id", vendorID, "error", err)
		return nil, err
	}

	s.observe(domain.ActionDocumentsStatus, promoted)
	logger.Info("documents status updated", "vendor_id", vendorID, "count", len(updates))

	return documents, nil
}

// RejectVendorRequest rejects the vendor, their store and every document they own.
func (s *VerificationService) RejectVendorRequest(ctx context.Context, vendorID uint, reason *string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when reject vendor request")
		return fmt.Errorf("context error: %w", err)
	}

	reason = normalizeReason(reason)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByIDForUpdate(ctx, vendorID); err != nil {
			return err
		}

		if err := s.userRepo.UpdateStatus(ctx, vendorID, domain.AccountRejected); err != nil {
			return err
		}

		store, err := s.findStore(ctx, vendorID)
		if err != nil {
			return err
		}
		if store != nil {
			if err := s.storeRepo.MarkRejected(ctx, store.ID, reason); err != nil {
				return err
			}
			if err := s.documentRepo.UpdateStatusByOwner(ctx, vendorID, domain.DocumentRejected); err != nil {
				return err
			}
		}

		details := map[string]interface{}{"store_updated": store != nil}
		if reason != nil {
			details["reason"] = *reason
		}

		return s.recordEvent(ctx, vendorID, domain.ActionReject, details)
	})
	if err != nil {
		logger.Error("Failed to reject vendor request", "vendor_id", vendorID, "error", err)
		return err
	}

	s.observe(domain.ActionReject, false)
	logger.Info("vendor request rejected", "vendor_id", vendorID)

	return nil
}

// ApproveVendorForm approves the vendor's application form. Store verification is left as it is.
func (s *VerificationService) ApproveVendorForm(ctx context.Context, vendorID uint) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when approve vendor form")
		return fmt.Errorf("context error: %w", err)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByIDForUpdate(ctx, vendorID); err != nil {
			return err
		}

		if err := s.userRepo.UpdateStatus(ctx, vendorID, domain.AccountApproved); err != nil {
			return err
		}

		store, err := s.findStore(ctx, vendorID)
		if err != nil {
			return err
		}
		if store != nil {
			if err := s.storeRepo.ClearRejection(ctx, store.ID); err != nil {
				return err
			}
		}

		return s.recordEvent(ctx, vendorID, domain.ActionApproveForm, map[string]interface{}{
			"store_updated": store != nil,
		})
	})
	if err != nil {
		logger.Error("Failed to approve vendor form", "vendor_id", vendorID, "error", err)
		return err
	}

	s.observe(domain.ActionApproveForm, false)
	logger.Info("vendor form approved", "vendor_id", vendorID)

	return nil
}

// ApproveVendorFinal fully verifies the vendor and their store. A VENDOR_PENDING account becomes
// VENDOR; other roles are kept.
func (s *VerificationService) ApproveVendorFinal(ctx context.Context, vendorID uint, reason *string) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when approve vendor final")
		return fmt.Errorf("context error: %w", err)
	}

	reason = normalizeReason(reason)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, vendorID)
		if err != nil {
			return err
		}

		if user.Role == domain.RoleVendorPending {
			err = s.userRepo.UpdateRoleAndStatus(ctx, vendorID, domain.RoleVendor, domain.AccountApproved)
		} else {
			err = s.userRepo.UpdateStatus(ctx, vendorID, domain.AccountApproved)
		}
		if err != nil {
			return err
		}

		store, err := s.findStore(ctx, vendorID)
		if err != nil {
			return err
		}
		if store != nil {
			if err := s.storeRepo.MarkVerified(ctx, store.ID, reason); err != nil {
				return err
			}
		}

		details := map[string]interface{}{"store_updated": store != nil}
		if reason != nil {
			details["reason"] = *reason
		}

		return s.recordEvent(ctx, vendorID, domain.ActionApproveFinal, details)
	})
	if err != nil {
		logger.Error("Failed to approve vendor final", "vendor_id", vendorID, "error", err)
		return err
	}

	s.observe(domain.ActionApproveFinal, false)
	logger.Info("vendor final approval done", "vendor_id", vendorID)

	return nil
}

// GetUserDetailWithStoreAndDocuments returns the vendor's profile with the resolved status, their
// store (nil when absent) and documents.
func (s *VerificationService) GetUserDetailWithStoreAndDocuments(ctx context.Context, vendorID uint) (domain.VendorDetail, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get user detail")
		return domain.VendorDetail{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to find user", "vendor_id", vendorID, "error", err)
		return domain.VendorDetail{}, err
	}

	store, err := s.findStore(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to find store", "vendor_id", vendorID, "error", err)
		return domain.VendorDetail{}, err
	}

	documents, err := s.documentRepo.FindByOwner(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to find user documents", "vendor_id", vendorID, "error", err)
		return domain.VendorDetail{}, err
	}

	return domain.VendorDetail{
		User: domain.VendorProfile{
			ID:           user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Email:        user.Email,
			Mobile:       user.Mobile,
			Role:         user.Role,
			Status:       ResolveStatus(user, store),
			IsActive:     user.IsActive,
			BusinessType: user.BusinessType,
			FacebookURL:  user.FacebookURL,
			InstagramURL: user.InstagramURL,
			YoutubeURL:   user.YoutubeURL,
			City:         user.City,
			State:        user.State,
			Country:      user.Country,
		},
		Store:     store,
		Documents: documents,
	}, nil
}

// GetVerificationHistory lists the audit trail for a vendor, newest first.
func (s *VerificationService) GetVerificationHistory(ctx context.Context, vendorID uint) ([]domain.VerificationEvent, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get verification history")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, vendorID); err != nil {
		logger.Error("Failed to find user", "vendor_id", vendorID, "error", err)
		return nil, err
	}

	events, err := s.eventRepo.FindByVendor(ctx, vendorID)
	if err != nil {
		logger.Error("Failed to find verification history", "vendor_id", vendorID, "error", err)
		return nil, err
	}

	return events, nil
}

// promoteIfComplete promotes the vendor once every document they own is APPROVED. It must run
// inside the caller's transaction. It reports whether the vendor's state actually changed.
func (s *VerificationService) promoteIfComplete(ctx context.Context, user domain.User) (bool, error) {
	documents, err := s.documentRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		return false, err
	}
	if len(documents) == 0 {
		return false, nil
	}
	for _, doc := range documents {
		if doc.Status != domain.DocumentApproved {
			return false, nil
		}
	}

	store, err := s.findStore(ctx, user.ID)
	if err != nil {
		return false, err
	}

	changed := user.Role != domain.RoleVendor || user.Status != domain.AccountApproved ||
		(store != nil && (!store.IsVerified || store.IsRejected || store.Reason != nil))

	if err := s.userRepo.UpdateRoleAndStatus(ctx, user.ID, domain.RoleVendor, domain.AccountApproved); err != nil {
		return false, err
	}
	if store != nil {
		if err := s.storeRepo.MarkVerified(ctx, store.ID, nil); err != nil {
			return false, err
		}
	}

	if !changed {
		return false, nil
	}

	err = s.recordEvent(ctx, user.ID, domain.ActionAutoPromote, map[string]interface{}{
		"document_count": len(documents),
		"store_verified": store != nil,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// findStore returns nil without error when the vendor has no store.
func (s *VerificationService) findStore(ctx context.Context, vendorID uint) (*domain.Store, error) {
	store, err := s.storeRepo.FindByVendorID(ctx, vendorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &store, nil
}

func (s *VerificationService) recordEvent(ctx context.Context, vendorID uint, action domain.VerificationAction, details map[string]interface{}) error {
	return s.eventRepo.SaveEvent(ctx, &domain.VerificationEvent{
		VendorID: vendorID,
		ActorID:  actorFromContext(ctx),
		Action:   action,
		Details:  datatypes.JSONMap(details),
	})
}

// observe runs after commit so rolled back triggers are not counted.
func (s *VerificationService) observe(action domain.VerificationAction, promoted bool) {
	metrics.VerificationTransitions.WithLabelValues(string(action)).Inc()
	if promoted {
		metrics.VerificationTransitions.WithLabelValues(string(domain.ActionAutoPromote)).Inc()
		metrics.VerificationAutoPromotions.Inc()
	}
}

// normalizeReason treats a blank reason as no reason.
func normalizeReason(reason *string) *string {
	if reason == nil || strings.TrimSpace(*reason) == "" {
		return nil
	}

	return reason
}
