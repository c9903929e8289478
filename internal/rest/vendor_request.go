package rest

import (
	"context"
	"net/http"
	"time"
	"vendorHub/domain"
	"vendorHub/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type VendorRequestService interface {
	CreateVendorRequest(ctx context.Context, userID uint, app domain.VendorApplication) (domain.Store, error)
	UploadDocuments(ctx context.Context, userID uint, uploads []domain.DocumentUpload) (domain.DocumentUploadResult, error)
	GetRequestStatus(ctx context.Context, userID uint) (domain.VendorRequestStatus, error)
	DeleteVendorRequest(ctx context.Context, userID uint) error
	DeleteDocument(ctx context.Context, userID, documentID uint) error
}

type VendorRequestHandler struct {
	vendorRequestService VendorRequestService
	timeout              time.Duration
}

func NewVendorRequestHandler(vendorRequestService VendorRequestService) *VendorRequestHandler {
	return &VendorRequestHandler{
		vendorRequestService: vendorRequestService,
		timeout:              10 * time.Second,
	}
}

type UploadDocumentsRequest struct {
	Documents []domain.DocumentUpload `json:"documents"`
}

func (h *VendorRequestHandler) CreateVendorRequest(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req domain.VendorApplication
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	store, err := h.vendorRequestService.CreateVendorRequest(ctx, userID, req)
	if err != nil {
		logger.Error("Failed to create vendor request", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(store))
}

func (h *VendorRequestHandler) GetRequestStatus(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status, err := h.vendorRequestService.GetRequestStatus(ctx, userID)
	if err != nil {
		logger.Error("Failed to get vendor request status", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(status))
}

func (h *VendorRequestHandler) DeleteVendorRequest(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.vendorRequestService.DeleteVendorRequest(ctx, userID); err != nil {
		logger.Error("Failed to delete vendor request", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Vendor request deleted successfully"))
}

func (h *VendorRequestHandler) UploadDocuments(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req UploadDocumentsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.vendorRequestService.UploadDocuments(ctx, userID, req.Documents)
	if err != nil {
		logger.Error("Failed to upload documents", "user_id", userID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(result))
}

func (h *VendorRequestHandler) DeleteDocument(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	documentID, err := parseIDParam(c, "documentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.vendorRequestService.DeleteDocument(ctx, userID, documentID); err != nil {
		logger.Error("Failed to delete document", "user_id", userID, "document_id", documentID, "error", err)
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Document deleted successfully"))
}
