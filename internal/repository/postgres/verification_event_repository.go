package postgres

import (
	"context"
	"fmt"
	"vendorHub/domain"

	"gorm.io/gorm"
)

type VerificationEventRepository struct {
	DB *gorm.DB
}

func NewVerificationEventRepository(db *gorm.DB) *VerificationEventRepository {
	return &VerificationEventRepository{DB: db}
}

func (r *VerificationEventRepository) SaveEvent(ctx context.Context, event *domain.VerificationEvent) error {
	if err := conn(ctx, r.DB).Create(event).Error; err != nil {
		return fmt.Errorf("failed to save verification event: %w", err)
	}

	return nil
}

func (r *VerificationEventRepository) FindByVendor(ctx context.Context, vendorID uint) ([]domain.VerificationEvent, error) {
	events := []domain.VerificationEvent{}

	err := conn(ctx, r.DB).Where("vendor_id = ?", vendorID).
		Order("created_at DESC").Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find verification events: %w", err)
	}

	return events, nil
}
