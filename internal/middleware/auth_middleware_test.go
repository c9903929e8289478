//go:build !integration

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vendorHub/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID string
	err    error
}

func (s stubValidator) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.userID, s.err
}

func newProtectedServer(v TokenValidator, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	mws := append([]echo.MiddlewareFunc{AuthMiddlewareWithRedis(v)}, extra...)
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"user_id": c.Get("user_id"),
			"role":    c.Get("role"),
		})
	}, mws...)
	return e
}

func doGet(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareWithRedis(t *testing.T) {
	utils.InitJWT("middleware-test", time.Hour)
	token, err := utils.GenerateJWT("12", "ADMIN")
	require.NoError(t, err)

	tests := []struct {
		name      string
		header    string
		validator TokenValidator
		code      int
	}{
		{"missing header", "", stubValidator{userID: "12"}, http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, stubValidator{userID: "12"}, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", stubValidator{userID: "12"}, http.StatusUnauthorized},
		{"revoked session", "Bearer " + token, stubValidator{err: errors.New("session not found")}, http.StatusUnauthorized},
		{"user mismatch", "Bearer " + token, stubValidator{userID: "13"}, http.StatusUnauthorized},
		{"valid", "Bearer " + token, stubValidator{userID: "12"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(newProtectedServer(tt.validator), tt.header)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	utils.InitJWT("middleware-test", time.Hour)
	adminToken, err := utils.GenerateJWT("1", "ADMIN")
	require.NoError(t, err)
	vendorToken, err := utils.GenerateJWT("2", "VENDOR")
	require.NoError(t, err)

	rec := doGet(newProtectedServer(stubValidator{userID: "1"}, AdminOnly()), "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(newProtectedServer(stubValidator{userID: "2"}, AdminOnly()), "Bearer "+vendorToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin access required")
}

func TestRequireRoles(t *testing.T) {
	utils.InitJWT("middleware-test", time.Hour)
	pendingToken, err := utils.GenerateJWT("3", "VENDOR_PENDING")
	require.NoError(t, err)
	customerToken, err := utils.GenerateJWT("4", "CUSTOMER")
	require.NoError(t, err)

	guard := RequireRoles("vendor_pending", "VENDOR")

	rec := doGet(newProtectedServer(stubValidator{userID: "3"}, guard), "Bearer "+pendingToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(newProtectedServer(stubValidator{userID: "4"}, guard), "Bearer "+customerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestErrorHandler_NotFoundRoute(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Not Found"}}`, rec.Body.String())
}
