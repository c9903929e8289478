package vendorrequest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"vendorHub/business/verification"
	"vendorHub/domain"
	"vendorHub/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByIDForUpdate(ctx context.Context, id uint) (domain.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateRoleAndStatus(ctx context.Context, id uint, role domain.Role, status domain.AccountStatus) error
}

// StoreRepository contract interface
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByVendorID(ctx context.Context, vendorID uint) (domain.Store, error)
	ExistsByName(ctx context.Context, storeName string) (bool, error)
	DeleteByVendorID(ctx context.Context, vendorID uint) error
}

// DocumentRepository contract interface
type DocumentRepository interface {
	CreateMany(ctx context.Context, documents []domain.StoreDocument) error
	FindByOwner(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error)
	Delete(ctx context.Context, vendorID, documentID uint) (int64, error)
	DeleteByOwner(ctx context.Context, vendorID uint) error
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// document types that carry a social profile link instead of a file, named after the user column
var socialLinkTypes = map[string]bool{
	"facebook_url":  true,
	"instagram_url": true,
	"youtube_url":   true,
}

type VendorRequestService struct {
	userRepo     UserRepository
	storeRepo    StoreRepository
	documentRepo DocumentRepository
	tx           Transactor
	validate     *validator.Validate
}

func NewVendorRequestService(
	userRepo UserRepository,
	storeRepo StoreRepository,
	documentRepo DocumentRepository,
	tx Transactor,
	validate *validator.Validate,
) *VendorRequestService {
	return &VendorRequestService{
		userRepo:     userRepo,
		storeRepo:    storeRepo,
		documentRepo: documentRepo,
		tx:           tx,
		validate:     validate,
	}
}

// CreateVendorRequest turns an existing account into a pending vendor and opens their store.
func (s *VendorRequestService) CreateVendorRequest(ctx context.Context, userID uint, app domain.VendorApplication) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create vendor request")
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	app.StoreName = strings.TrimSpace(app.StoreName)
	if err := s.validate.Struct(app); err != nil {
		logger.Error("Invalid vendor application", "user_id", userID, "error", err)
		return domain.Store{}, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, err.Error())
	}

	var store domain.Store
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if user.Role == domain.RoleVendor {
			return fmt.Errorf("vendor %w", domain.ErrConflict)
		}

		if _, err := s.storeRepo.FindByVendorID(ctx, userID); err == nil {
			return fmt.Errorf("vendor request %w", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		taken, err := s.storeRepo.ExistsByName(ctx, app.StoreName)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("store name %w", domain.ErrConflict)
		}

		fields := profileFields(app)
		fields["role"] = domain.RoleVendorPending
		fields["status"] = domain.AccountPending
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return err
		}

		firstName := user.FirstName
		if firstName == "" {
			firstName = "user"
		}

		store = domain.Store{
			VendorID:  userID,
			StoreName: app.StoreName,
			UserName:  strings.ToLower(strings.Join(strings.Fields(firstName+user.LastName), "")),
			Street:    app.StoreStreet,
			City:      app.StoreCity,
			State:     app.StoreState,
			Country:   app.StoreCountry,
			PinCode:   app.StorePinCode,
		}

		return s.storeRepo.Create(ctx, &store)
	})
	if err != nil {
		logger.Error("Failed to create vendor request", "user_id", userID, "error", err)
		return domain.Store{}, err
	}

	logger.Info("vendor request created", "user_id", userID, "store_id", store.ID)

	return store, nil
}

// profileFields collects the non-empty optional profile values from the application.
func profileFields(app domain.VendorApplication) map[string]interface{} {
	fields := map[string]interface{}{}
	set := func(column, value string) {
		if v := strings.TrimSpace(value); v != "" {
			fields[column] = v
		}
	}

	set("first_name", app.FirstName)
	set("last_name", app.LastName)
	set("business_type", app.BusinessType)
	set("pin_code", app.PinCode)
	set("city", app.City)
	set("state", app.State)
	set("country", app.Country)
	set("facebook_url", app.FacebookURL)
	set("instagram_url", app.InstagramURL)
	set("youtube_url", app.YoutubeURL)

	return fields
}

// UploadDocuments attaches verification documents to the vendor's store. Social profile links
// submitted as documents are saved on the user instead.
func (s *VendorRequestService) UploadDocuments(ctx context.Context, userID uint, uploads []domain.DocumentUpload) (domain.DocumentUploadResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when upload documents")
		return domain.DocumentUploadResult{}, fmt.Errorf("context error: %w", err)
	}

	if len(uploads) == 0 {
		logger.Error("Invalid document upload: no documents")
		return domain.DocumentUploadResult{}, fmt.Errorf("%w: documents array is required", domain.ErrInvalidArgument)
	}

	socialLinks := map[string]interface{}{}
	documents := make([]domain.StoreDocument, 0, len(uploads))
	for _, upload := range uploads {
		docType := strings.TrimSpace(upload.DocumentType)
		fileURL := strings.TrimSpace(upload.FileURL)
		if docType == "" || fileURL == "" {
			continue
		}

		if column := strings.ToLower(docType); socialLinkTypes[column] {
			socialLinks[column] = fileURL
			continue
		}

		documents = append(documents, domain.StoreDocument{
			OwnerVendorID: userID,
			DocumentType:  docType,
			FileURL:       fileURL,
			Status:        domain.DocumentPending,
		})
	}

	var result domain.DocumentUploadResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByIDForUpdate(ctx, userID); err != nil {
			return err
		}

		store, err := s.storeRepo.FindByVendorID(ctx, userID)
		if err != nil {
			return err
		}

		if len(socialLinks) > 0 {
			if err := s.userRepo.UpdateFields(ctx, userID, socialLinks); err != nil {
				return err
			}
		}

		if err := s.documentRepo.CreateMany(ctx, documents); err != nil {
			return err
		}

		owned, err := s.documentRepo.FindByOwner(ctx, userID)
		if err != nil {
			return err
		}

		result = domain.DocumentUploadResult{StoreID: store.ID, Documents: owned}
		return nil
	})
	if err != nil {
		logger.Error("Failed to upload documents", "user_id", userID, "error", err)
		return domain.DocumentUploadResult{}, err
	}

	logger.Info("documents uploaded", "user_id", userID, "count", len(documents), "social_links", len(socialLinks))

	return result, nil
}

// GetRequestStatus reports where the user's vendor request stands.
func (s *VendorRequestService) GetRequestStatus(ctx context.Context, userID uint) (domain.VendorRequestStatus, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get vendor request status")
		return domain.VendorRequestStatus{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user", "user_id", userID, "error", err)
		return domain.VendorRequestStatus{}, err
	}

	var store *domain.Store
	found, err := s.storeRepo.FindByVendorID(ctx, userID)
	switch {
	case err == nil:
		store = &found
	case !errors.Is(err, domain.ErrNotFound):
		logger.Error("Failed to find store", "user_id", userID, "error", err)
		return domain.VendorRequestStatus{}, err
	}

	documents, err := s.documentRepo.FindByOwner(ctx, userID)
	if err != nil {
		logger.Error("Failed to find documents", "user_id", userID, "error", err)
		return domain.VendorRequestStatus{}, err
	}

	return domain.VendorRequestStatus{
		UserID:    user.ID,
		Role:      user.Role,
		Status:    verification.ResolveStatus(user, store),
		Store:     store,
		Documents: documents,
	}, nil
}

// DeleteVendorRequest withdraws the request: store and documents are removed and the account goes
// back to a plain customer.
func (s *VendorRequestService) DeleteVendorRequest(ctx context.Context, userID uint) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete vendor request")
		return fmt.Errorf("context error: %w", err)
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if user.Role != domain.RoleVendorPending && user.Role != domain.RoleVendor {
			return fmt.Errorf("%w: user has no vendor request", domain.ErrInvalidArgument)
		}

		if err := s.documentRepo.DeleteByOwner(ctx, userID); err != nil {
			return err
		}
		if err := s.storeRepo.DeleteByVendorID(ctx, userID); err != nil {
			return err
		}

		return s.userRepo.UpdateRoleAndStatus(ctx, userID, domain.RoleCustomer, domain.AccountPending)
	})
	if err != nil {
		logger.Error("Failed to delete vendor request", "user_id", userID, "error", err)
		return err
	}

	logger.Info("vendor request deleted", "user_id", userID)

	return nil
}

// DeleteDocument removes one of the vendor's own documents.
func (s *VendorRequestService) DeleteDocument(ctx context.Context, userID, documentID uint) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when delete document")
		return fmt.Errorf("context error: %w", err)
	}

	if documentID == 0 {
		logger.Error("Invalid document id")
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidArgument)
	}

	affected, err := s.documentRepo.Delete(ctx, userID, documentID)
	if err != nil {
		logger.Error("Failed to delete document", "user_id", userID, "document_id", documentID, "error", err)
		return err
	}

	if affected == 0 {
		logger.Error("Document not found", "user_id", userID, "document_id", documentID)
		return fmt.Errorf("document %w", domain.ErrNotFound)
	}

	logger.Info("document deleted", "user_id", userID, "document_id", documentID)

	return nil
}
