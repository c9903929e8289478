//go:build !integration

package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"vendorHub/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVendorRequestService struct {
	app       domain.VendorApplication
	uploads   []domain.DocumentUpload
	deletedID uint
	err       error
}

func (f *fakeVendorRequestService) CreateVendorRequest(ctx context.Context, userID uint, app domain.VendorApplication) (domain.Store, error) {
	f.app = app
	return domain.Store{ID: 10, VendorID: userID, StoreName: app.StoreName}, f.err
}

func (f *fakeVendorRequestService) UploadDocuments(ctx context.Context, userID uint, uploads []domain.DocumentUpload) (domain.DocumentUploadResult, error) {
	f.uploads = uploads
	return domain.DocumentUploadResult{StoreID: 10}, f.err
}

func (f *fakeVendorRequestService) GetRequestStatus(ctx context.Context, userID uint) (domain.VendorRequestStatus, error) {
	return domain.VendorRequestStatus{UserID: userID, Status: domain.VerificationPending}, f.err
}

func (f *fakeVendorRequestService) DeleteVendorRequest(ctx context.Context, userID uint) error {
	return f.err
}

func (f *fakeVendorRequestService) DeleteDocument(ctx context.Context, userID, documentID uint) error {
	f.deletedID = documentID
	return f.err
}

func newVendorServer(svc VendorRequestService, authenticated bool) *echo.Echo {
	e := echo.New()
	h := NewVendorRequestHandler(svc)
	auth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if authenticated {
				c.Set("user_id", uint(3))
			}
			return next(c)
		}
	}

	g := e.Group("/vendor", auth)
	g.POST("/request", h.CreateVendorRequest)
	g.GET("/request", h.GetRequestStatus)
	g.DELETE("/request", h.DeleteVendorRequest)
	g.POST("/documents", h.UploadDocuments)
	g.DELETE("/documents/:documentId", h.DeleteDocument)
	return e
}

func TestVendorRequestHandlers(t *testing.T) {
	svc := &fakeVendorRequestService{}
	e := newVendorServer(svc, true)

	rec := serve(e, http.MethodPost, "/vendor/request", `{"store_name":"Green Grocer","business_type":"retail"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Green Grocer", svc.app.StoreName)
	assert.Equal(t, "retail", svc.app.BusinessType)

	rec = serve(e, http.MethodGet, "/vendor/request", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPost, "/vendor/documents", `{"documents":[{"document_type":"ID","file_url":"https://files/id.png"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []domain.DocumentUpload{{DocumentType: "ID", FileURL: "https://files/id.png"}}, svc.uploads)

	rec = serve(e, http.MethodDelete, "/vendor/documents/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), svc.deletedID)

	rec = serve(e, http.MethodDelete, "/vendor/documents/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, http.MethodDelete, "/vendor/request", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVendorRequestHandlers_Errors(t *testing.T) {
	rec := serve(newVendorServer(&fakeVendorRequestService{}, false), http.MethodGet, "/vendor/request", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	e := newVendorServer(&fakeVendorRequestService{err: fmt.Errorf("vendor request %w", domain.ErrConflict)}, true)
	rec = serve(e, http.MethodPost, "/vendor/request", `{"store_name":"Green Grocer"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	e = newVendorServer(&fakeVendorRequestService{err: fmt.Errorf("document %w", domain.ErrNotFound)}, true)
	rec = serve(e, http.MethodDelete, "/vendor/documents/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
