package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"vendorHub/domain"

	"gorm.io/gorm"
)

type DocumentTypeRepository struct {
	DB *gorm.DB
}

func NewDocumentTypeRepository(db *gorm.DB) *DocumentTypeRepository {
	return &DocumentTypeRepository{
		DB: db,
	}
}

func (r *DocumentTypeRepository) Create(ctx context.Context, documentType *domain.DocumentType) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := conn(ctx, r.DB).Create(documentType).Error; err != nil {
		return fmt.Errorf("failed to create document type: %w", err)
	}

	return nil
}

func (r *DocumentTypeRepository) FindByID(ctx context.Context, id uint64) (domain.DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentType{}, fmt.Errorf("context error: %w", err)
	}

	var documentType domain.DocumentType

	err := conn(ctx, r.DB).Where("id = ?", id).First(&documentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DocumentType{}, fmt.Errorf("document type %w", domain.ErrNotFound)
		}
		return domain.DocumentType{}, fmt.Errorf("failed to find document type: %w", err)
	}

	return documentType, nil
}

// FindByName matches case-insensitively.
func (r *DocumentTypeRepository) FindByName(ctx context.Context, name string) (domain.DocumentType, error) {
	if err := ctx.Err(); err != nil {
		return domain.DocumentType{}, fmt.Errorf("context error: %w", err)
	}

	var documentType domain.DocumentType

	err := conn(ctx, r.DB).Where("LOWER(name) = ?", strings.ToLower(name)).First(&documentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DocumentType{}, fmt.Errorf("document type %w", domain.ErrNotFound)
		}
		return domain.DocumentType{}, fmt.Errorf("failed to find document type: %w", err)
	}

	return documentType, nil
}

func (r *DocumentTypeRepository) FindPage(ctx context.Context, search string, offset, limit int) ([]domain.DocumentType, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("context error: %w", err)
	}

	byName := func(db *gorm.DB) *gorm.DB {
		if search == "" {
			return db
		}
		return db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := conn(ctx, r.DB).Model(&domain.DocumentType{}).Scopes(byName).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count document types: %w", err)
	}

	documentTypes := []domain.DocumentType{}
	err := conn(ctx, r.DB).Scopes(byName).Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).Find(&documentTypes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find document types: %w", err)
	}

	return documentTypes, total, nil
}

func (r *DocumentTypeRepository) Update(ctx context.Context, documentType *domain.DocumentType) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name": documentType.Name,
	}

	result := conn(ctx, r.DB).Model(&domain.DocumentType{}).Where("id = ?", documentType.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update document type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document type %w", domain.ErrNotFound)
	}

	return nil
}

func (r *DocumentTypeRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := conn(ctx, r.DB).Where("id = ?", id).Delete(&domain.DocumentType{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("document type %w", domain.ErrNotFound)
	}

	return nil
}
