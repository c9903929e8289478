package postgres

import (
	"context"
	"errors"
	"fmt"
	"vendorHub/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreRepository struct {
	DB *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{
		DB: db,
	}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	if err := conn(ctx, r.DB).Create(store).Error; err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	return nil
}

func (r *StoreRepository) FindByVendorID(ctx context.Context, vendorID uint) (domain.Store, error) {
	var store domain.Store

	err := conn(ctx, r.DB).Where("vendor_id = ?", vendorID).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, fmt.Errorf("store %w", domain.ErrNotFound)
		}
		return domain.Store{}, fmt.Errorf("failed to find store: %w", err)
	}

	return store, nil
}

func (r *StoreRepository) FindByVendorIDs(ctx context.Context, vendorIDs []uint) ([]domain.Store, error) {
	if len(vendorIDs) == 0 {
		return nil, nil
	}

	var stores []domain.Store
	if err := conn(ctx, r.DB).Where("vendor_id IN ?", vendorIDs).Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to find stores: %w", err)
	}

	return stores, nil
}

func (r *StoreRepository) ExistsByName(ctx context.Context, storeName string) (bool, error) {
	var count int64

	err := conn(ctx, r.DB).Model(&domain.Store{}).Where("LOWER(store_name) = LOWER(?)", storeName).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check store name: %w", err)
	}

	return count > 0, nil
}

// EnsureForVendor inserts store unless the vendor already owns one, then returns the stored row.
// Concurrent callers converge on the same row through the unique vendor_id index.
func (r *StoreRepository) EnsureForVendor(ctx context.Context, store domain.Store) (domain.Store, error) {
	err := conn(ctx, r.DB).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vendor_id"}},
		DoNothing: true,
	}).Create(&store).Error
	if err != nil {
		return domain.Store{}, fmt.Errorf("failed to ensure store: %w", err)
	}

	return r.FindByVendorID(ctx, store.VendorID)
}

func (r *StoreRepository) MarkVerified(ctx context.Context, id uint, reason *string) error {
	return r.updateVerification(ctx, id, map[string]interface{}{
		"is_verified": true,
		"is_rejected": false,
		"reason":      nullableString(reason),
	})
}

func (r *StoreRepository) MarkRejected(ctx context.Context, id uint, reason *string) error {
	return r.updateVerification(ctx, id, map[string]interface{}{
		"is_verified": false,
		"is_rejected": true,
		"reason":      nullableString(reason),
	})
}

// ClearRejection leaves is_verified untouched.
func (r *StoreRepository) ClearRejection(ctx context.Context, id uint) error {
	return r.updateVerification(ctx, id, map[string]interface{}{
		"is_rejected": false,
		"reason":      nil,
	})
}

func (r *StoreRepository) updateVerification(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := conn(ctx, r.DB).Model(&domain.Store{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update store verification: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("store %w", domain.ErrNotFound)
	}

	return nil
}

func (r *StoreRepository) DeleteByVendorID(ctx context.Context, vendorID uint) error {
	if err := conn(ctx, r.DB).Where("vendor_id = ?", vendorID).Delete(&domain.Store{}).Error; err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	return nil
}
