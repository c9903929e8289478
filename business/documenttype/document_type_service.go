package documenttype

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"vendorHub/domain"
	"vendorHub/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// DocumentTypeRepository contract interface
type DocumentTypeRepository interface {
	Create(ctx context.Context, documentType *domain.DocumentType) error
	FindByID(ctx context.Context, id uint64) (domain.DocumentType, error)
	FindByName(ctx context.Context, name string) (domain.DocumentType, error)
	FindPage(ctx context.Context, search string, offset, limit int) ([]domain.DocumentType, int64, error)
	Update(ctx context.Context, documentType *domain.DocumentType) error
	Delete(ctx context.Context, id uint64) error
}

type DocumentTypePage struct {
	Data       []domain.DocumentType `json:"data"`
	Pagination domain.Pagination     `json:"pagination"`
}

type documentTypeService struct {
	documentTypeRepo DocumentTypeRepository
}

func NewDocumentTypeService(documentTypeRepo DocumentTypeRepository) *documentTypeService {
	return &documentTypeService{
		documentTypeRepo: documentTypeRepo,
	}
}

func (s *documentTypeService) ListDocumentTypes(ctx context.Context, page, limit int, search string) (DocumentTypePage, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list document types")
		return DocumentTypePage{}, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	// bound page so (page-1)*limit cannot wrap negative
	if page-1 > math.MaxInt32/limit {
		page = math.MaxInt32/limit + 1
	}

	documentTypes, total, err := s.documentTypeRepo.FindPage(ctx, strings.TrimSpace(search), (page-1)*limit, limit)
	if err != nil {
		logger.Error("Failed to find document types", "error", err)
		return DocumentTypePage{}, err
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return DocumentTypePage{
		Data: documentTypes,
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   int(total),
			ItemsPerPage: limit,
		},
	}, nil
}

func (s *documentTypeService) GetDocumentTypeByID(ctx context.Context, id uint64) (domain.DocumentType, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get document type by id")
		return domain.DocumentType{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid document type id")
		return domain.DocumentType{}, fmt.Errorf("%w: invalid document type id", domain.ErrInvalidArgument)
	}

	documentType, err := s.documentTypeRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find document type", "id", id, "error", err)
		return domain.DocumentType{}, err
	}

	return documentType, nil
}

func (s *documentTypeService) CreateDocumentType(ctx context.Context, documentType *domain.DocumentType) (*domain.DocumentType, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create document type")
		return nil, fmt.Errorf("context error: %w", err)
	}

	documentType.Name = strings.TrimSpace(documentType.Name)
	if documentType.Name == "" {
		logger.Error("Invalid document type data: name is required")
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}

	if err := s.ensureNameFree(ctx, documentType.Name, 0); err != nil {
		return nil, err
	}

	if err := s.documentTypeRepo.Create(ctx, documentType); err != nil {
		logger.Error("failed to create new document type", "error", err)
		return nil, fmt.Errorf("failed to create document type: %w", err)
	}

	logger.Info("document type created successfully", "id", documentType.ID)

	return documentType, nil
}

func (s *documentTypeService) UpdateDocumentType(ctx context.Context, documentType *domain.DocumentType) (*domain.DocumentType, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating document type")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if documentType.ID == 0 {
		logger.Error("Invalid document type data: ID is required")
		return nil, fmt.Errorf("%w: document type ID is required", domain.ErrInvalidArgument)
	}

	documentType.Name = strings.TrimSpace(documentType.Name)
	if documentType.Name == "" {
		logger.Error("Invalid document type data: name is required")
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidArgument)
	}

	// Verify document type exists
	if _, err := s.documentTypeRepo.FindByID(ctx, documentType.ID); err != nil {
		logger.Error("document type not found", "id", documentType.ID, "error", err)
		return nil, err
	}

	if err := s.ensureNameFree(ctx, documentType.Name, documentType.ID); err != nil {
		return nil, err
	}

	if err := s.documentTypeRepo.Update(ctx, documentType); err != nil {
		logger.Error("failed to update document type", "error", err)
		return nil, fmt.Errorf("failed to update document type: %w", err)
	}

	updated, err := s.documentTypeRepo.FindByID(ctx, documentType.ID)
	if err != nil {
		logger.Error("failed to fetch updated document type", "error", err)
		return nil, fmt.Errorf("failed to fetch updated document type: %w", err)
	}

	logger.Info("document type updated successfully", "id", updated.ID)

	return &updated, nil
}

func (s *documentTypeService) DeleteDocumentType(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid document type id when deleting document type")
		return fmt.Errorf("%w: invalid document type id", domain.ErrInvalidArgument)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting document type")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.documentTypeRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete document type", "id", id, "error", err)
		return err
	}

	logger.Info("document type deleted successfully", "id", id)

	return nil
}

// ensureNameFree fails with a conflict when another document type already uses name.
func (s *documentTypeService) ensureNameFree(ctx context.Context, name string, selfID uint64) error {
	existing, err := s.documentTypeRepo.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		logger.Error("failed to check document type name", "error", err)
		return err
	case existing.ID != selfID:
		logger.Error("document type name already exists", "name", name)
		return fmt.Errorf("document type %w", domain.ErrConflict)
	}

	return nil
}
