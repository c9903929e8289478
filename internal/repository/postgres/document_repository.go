package postgres

import (
	"context"
	"fmt"
	"vendorHub/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{
		DB: db,
	}
}

func (r *DocumentRepository) CreateMany(ctx context.Context, documents []domain.StoreDocument) error {
	if len(documents) == 0 {
		return nil
	}

	if err := conn(ctx, r.DB).Create(&documents).Error; err != nil {
		return fmt.Errorf("failed to create store documents: %w", err)
	}

	return nil
}

// FindByOwner returns the vendor's documents, newest first.
func (r *DocumentRepository) FindByOwner(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error) {
	documents := []domain.StoreDocument{}

	err := conn(ctx, r.DB).Where("owner_vendor_id = ?", vendorID).
		Order("created_at DESC").Order("id DESC").
		Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store documents: %w", err)
	}

	return documents, nil
}

func (r *DocumentRepository) FindByOwners(ctx context.Context, vendorIDs []uint) ([]domain.StoreDocument, error) {
	documents := []domain.StoreDocument{}
	if len(vendorIDs) == 0 {
		return documents, nil
	}

	err := conn(ctx, r.DB).Where("owner_vendor_id IN ?", vendorIDs).
		Order("created_at DESC").Order("id DESC").
		Find(&documents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find store documents: %w", err)
	}

	return documents, nil
}

// UpdateStatus changes one document owned by vendorID and reports how many rows matched.
// A nil reason leaves the stored reason unchanged.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, vendorID, documentID uint, status domain.DocumentStatus, reason *string) (int64, error) {
	fields := map[string]interface{}{
		"status": status,
	}
	if reason != nil {
		fields["reason"] = *reason
	}

	result := conn(ctx, r.DB).Model(&domain.StoreDocument{}).
		Where("id = ? AND owner_vendor_id = ?", documentID, vendorID).
		Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update document status: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *DocumentRepository) UpdateStatusByOwner(ctx context.Context, vendorID uint, status domain.DocumentStatus) error {
	err := conn(ctx, r.DB).Model(&domain.StoreDocument{}).
		Where("owner_vendor_id = ?", vendorID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update vendor documents: %w", err)
	}

	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, vendorID, documentID uint) (int64, error) {
	result := conn(ctx, r.DB).Where("id = ? AND owner_vendor_id = ?", documentID, vendorID).Delete(&domain.StoreDocument{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete document: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *DocumentRepository) DeleteByOwner(ctx context.Context, vendorID uint) error {
	if err := conn(ctx, r.DB).Where("owner_vendor_id = ?", vendorID).Delete(&domain.StoreDocument{}).Error; err != nil {
		return fmt.Errorf("failed to delete vendor documents: %w", err)
	}

	return nil
}
