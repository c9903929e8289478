package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"vendorHub/business/verification"
	"vendorHub/domain"
	"vendorHub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type VerificationService interface {
	ListUnverifiedVendors(ctx context.Context, query domain.VendorListQuery) (domain.VendorListResult, error)
	GetUserDocuments(ctx context.Context, vendorID uint) ([]domain.StoreDocument, error)
	UpdateUserDocumentStatus(ctx context.Context, vendorID, documentID uint, status string, reason *string) ([]domain.StoreDocument, error)
	UpdateUserDocumentsStatus(ctx context.Context, vendorID uint, updates []domain.DocumentStatusUpdate) ([]domain.StoreDocument, error)
	RejectVendorRequest(ctx context.Context, vendorID uint, reason *string) error
	ApproveVendorForm(ctx context.Context, vendorID uint) error
	ApproveVendorFinal(ctx context.Context, vendorID uint, reason *string) error
	GetUserDetailWithStoreAndDocuments(ctx context.Context, vendorID uint) (domain.VendorDetail, error)
	GetVerificationHistory(ctx context.Context, vendorID uint) ([]domain.VerificationEvent, error)
	ToggleVendorActive(ctx context.Context, vendorID uint) (domain.VendorSummary, error)
	DemoteVendor(ctx context.Context, vendorID uint) error
}

type VerificationHandler struct {
	verificationService VerificationService
	validator           *validator.Validate
	timeout             time.Duration
}

func NewVerificationHandler(verificationService VerificationService) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		validator:           validator.New(),
		timeout:             10 * time.Second,
	}
}

type DocumentStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Reason *string `json:"reason"`
}

type DocumentsStatusRequest struct {
	Updates []DocumentStatusUpdateRequest `json:"updates" validate:"required,min=1,dive"`
}

type DocumentStatusUpdateRequest struct {
	ID     uint   `json:"id" validate:"required"`
	Status string `json:"status" validate:"required"`
}

type ReasonRequest struct {
	Reason *string `json:"reason"`
}

// requestContext bounds the call by the handler timeout and records the acting admin.
func (h *VerificationHandler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	if adminID, ok := currentUserID(c); ok {
		ctx = verification.ContextWithActor(ctx, adminID)
	}

	return ctx, cancel
}

// ListUnverifiedVendors serves the admin review queue. An unrecognized status or documentStatus
// filter is answered with 400 rather than being ignored.
func (h *VerificationHandler) ListUnverifiedVendors(c echo.Context) error {
	query := domain.VendorListQuery{
		Search:         c.QueryParam("search"),
		Status:         c.QueryParam("status"),
		DocumentStatus: c.QueryParam("documentStatus"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid page"})
		}
		query.Page = page
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		query.Limit = limit
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.verificationService.ListUnverifiedVendors(ctx, query)
	if err != nil {
		logger.Error("Failed to list unverified vendors", "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "successfully get unverified vendors",
		"data":       result.Data,
		"pagination": result.Pagination,
		"stats":      result.Stats,
	})
}

func (h *VerificationHandler) GetUserDocuments(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	documents, err := h.verificationService.GetUserDocuments(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user documents", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get user documents",
		"documents": documents,
	})
}

func (h *VerificationHandler) UpdateUserDocumentStatus(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	documentID, err := parseIDParam(c, "documentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req DocumentStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate document status request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	documents, err := h.verificationService.UpdateUserDocumentStatus(ctx, userID, documentID, req.Status, req.Reason)
	if err != nil {
		logger.Error("Failed to update document status", "user_id", userID, "document_id", documentID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "document status updated",
		"documents": documents,
	})
}

func (h *VerificationHandler) UpdateUserDocumentsStatus(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req DocumentsStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate documents status request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	updates := make([]domain.DocumentStatusUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, domain.DocumentStatusUpdate{ID: u.ID, Status: u.Status})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	documents, err := h.verificationService.UpdateUserDocumentsStatus(ctx, userID, updates)
	if err != nil {
		logger.Error("Failed to update documents status", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "documents status updated",
		"documents": documents,
	})
}

func (h *VerificationHandler) RejectVendorRequest(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.verificationService.RejectVendorRequest(ctx, userID, req.Reason); err != nil {
		logger.Error("Failed to reject vendor request", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "vendor request rejected",
	})
}

func (h *VerificationHandler) ApproveVendorForm(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.verificationService.ApproveVendorForm(ctx, userID); err != nil {
		logger.Error("Failed to approve vendor form", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "vendor form approved",
	})
}

func (h *VerificationHandler) ApproveVendorFinal(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.verificationService.ApproveVendorFinal(ctx, userID, req.Reason); err != nil {
		logger.Error("Failed to approve vendor", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "vendor approved",
	})
}

func (h *VerificationHandler) GetUserDetail(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	detail, err := h.verificationService.GetUserDetailWithStoreAndDocuments(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user detail", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "successfully get user detail",
		"user":      detail.User,
		"store":     detail.Store,
		"documents": detail.Documents,
	})
}

func (h *VerificationHandler) GetVerificationHistory(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	events, err := h.verificationService.GetVerificationHistory(ctx, userID)
	if err != nil {
		logger.Error("Failed to get verification history", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get verification history",
		"events":  events,
	})
}

func (h *VerificationHandler) ToggleVendorActive(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	vendor, err := h.verificationService.ToggleVendorActive(ctx, userID)
	if err != nil {
		logger.Error("Failed to toggle vendor active", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "vendor active status updated",
		"vendor":  vendor,
	})
}

func (h *VerificationHandler) DemoteVendor(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.verificationService.DemoteVendor(ctx, userID); err != nil {
		logger.Error("Failed to demote vendor", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "vendor demoted to customer",
	})
}
