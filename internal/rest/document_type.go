package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"vendorHub/business/documenttype"
	"vendorHub/domain"
	"vendorHub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type DocumentTypeService interface {
	ListDocumentTypes(ctx context.Context, page, limit int, search string) (documenttype.DocumentTypePage, error)
	GetDocumentTypeByID(ctx context.Context, id uint64) (domain.DocumentType, error)
	CreateDocumentType(ctx context.Context, documentType *domain.DocumentType) (*domain.DocumentType, error)
	UpdateDocumentType(ctx context.Context, documentType *domain.DocumentType) (*domain.DocumentType, error)
	DeleteDocumentType(ctx context.Context, id uint64) error
}

type DocumentTypeHandler struct {
	documentTypeService DocumentTypeService
	validator           *validator.Validate
	timeout             time.Duration
}

func NewDocumentTypeHandler(documentTypeService DocumentTypeService) *DocumentTypeHandler {
	return &DocumentTypeHandler{
		documentTypeService: documentTypeService,
		validator:           validator.New(),
		timeout:             10 * time.Second,
	}
}

type DocumentTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (h *DocumentTypeHandler) ListDocumentTypes(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.documentTypeService.ListDocumentTypes(ctx, page, limit, c.QueryParam("search"))
	if err != nil {
		logger.Error("Failed to list document types", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "successfully get document types",
		"document_types": result.Data,
		"pagination":     result.Pagination,
	})
}

func (h *DocumentTypeHandler) GetDocumentTypeByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid document type id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid document type id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	documentType, err := h.documentTypeService.GetDocumentTypeByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find document type", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "successfully get document type",
		"document_type": documentType,
	})
}

func (h *DocumentTypeHandler) CreateDocumentType(c echo.Context) error {
	var req DocumentTypeRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate document type request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.documentTypeService.CreateDocumentType(ctx, &domain.DocumentType{Name: req.Name})
	if err != nil {
		logger.Error("Failed to create document type", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "document type successfully created",
		"document_type": created,
	})
}

func (h *DocumentTypeHandler) UpdateDocumentType(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid document type id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid document type id"})
	}

	var req DocumentTypeRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate document type request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.documentTypeService.UpdateDocumentType(ctx, &domain.DocumentType{ID: id, Name: req.Name})
	if err != nil {
		logger.Error("Failed to update document type", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "document type successfully updated",
		"document_type": updated,
	})
}

func (h *DocumentTypeHandler) DeleteDocumentType(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid document type id", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid document type id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.documentTypeService.DeleteDocumentType(ctx, id); err != nil {
		logger.Error("Failed to delete document type", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "document type successfully deleted",
	})
}
