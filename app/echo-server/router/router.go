package router

import (
	"vendorHub/app/echo-server/metrics"
	"vendorHub/domain"
	"vendorHub/internal/middleware"
	"vendorHub/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Me, authRequired)
}

func SetupVendorRoutes(api *echo.Group, handler *rest.VendorRequestHandler, authRequired echo.MiddlewareFunc) {
	// token roles are issued at login, so a customer may still carry CUSTOMER after applying
	applicants := middleware.RequireRoles(
		string(domain.RoleCustomer),
		string(domain.RoleVendorPending),
		string(domain.RoleVendor),
	)
	vendor := api.Group("/vendor", authRequired, applicants)

	vendor.POST("/request", handler.CreateVendorRequest)
	vendor.GET("/request", handler.GetRequestStatus)
	vendor.DELETE("/request", handler.DeleteVendorRequest)

	vendor.POST("/documents", handler.UploadDocuments)
	vendor.DELETE("/documents/:documentId", handler.DeleteDocument)
}

func SetupAdminVerificationRoutes(api *echo.Group, handler *rest.VerificationHandler, authRequired echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, middleware.AdminOnly(), metrics.CountRequests())

	verification := admin.Group("/verification")
	verification.GET("/unverified-vendors", handler.ListUnverifiedVendors, metrics.ObserveListingLatency())
	verification.POST("/:userId/reject", handler.RejectVendorRequest)
	verification.POST("/:userId/approve-form", handler.ApproveVendorForm)
	verification.POST("/:userId/approve-final", handler.ApproveVendorFinal)
	verification.GET("/:userId/history", handler.GetVerificationHistory)

	users := admin.Group("/users")
	users.GET("/:userId/documents", handler.GetUserDocuments)
	users.PATCH("/:userId/documents/status", handler.UpdateUserDocumentsStatus)
	users.PATCH("/:userId/documents/:documentId/status", handler.UpdateUserDocumentStatus)
	users.GET("/:userId/detail", handler.GetUserDetail)
	users.PATCH("/:userId/demote-vendor", handler.DemoteVendor)

	admin.PATCH("/vendors/:userId/toggle-active", handler.ToggleVendorActive)
}

func SetupDocumentTypeRoutes(api *echo.Group, handler *rest.DocumentTypeHandler, authRequired echo.MiddlewareFunc) {
	documentTypes := api.Group("/admin/document-types", authRequired, middleware.AdminOnly())

	documentTypes.GET("", handler.ListDocumentTypes)
	documentTypes.GET("/:id", handler.GetDocumentTypeByID)
	documentTypes.POST("", handler.CreateDocumentType)
	documentTypes.PUT("/:id", handler.UpdateDocumentType)
	documentTypes.DELETE("/:id", handler.DeleteDocumentType)
}
