package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoshop-erp/internal/auth"
	"autoshop-erp/internal/config"
	"autoshop-erp/internal/handlers"
	"autoshop-erp/internal/middleware"
	"autoshop-erp/internal/rbac"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authHandlers := handlers.NewAuth(issuer)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandlers.Register)
	authGroup.POST("/login", authHandlers.Login)
	authGroup.POST("/refresh", authHandlers.Refresh)
	authGroup.GET("/me", middleware.RequireAuth(issuer), authHandlers.Me)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(issuer))

	customers := protected.Group("/customers")
	customers.GET("", middleware.RequirePermission(rbac.PermCustomersList), handlers.ListCustomers)
	customers.GET("/:id", middleware.RequirePermission(rbac.PermCustomersView), handlers.GetCustomer)
	customers.POST("", middleware.RequirePermission(rbac.PermCustomersCreate), handlers.CreateCustomer)
	customers.PUT("/:id", middleware.RequirePermission(rbac.PermCustomersUpdate), handlers.UpdateCustomer)
	customers.DELETE("/:id", middleware.RequirePermission(rbac.PermCustomersDelete), handlers.DeleteCustomer)

	vehicles := protected.Group("/vehicles")
	vehicles.GET("", middleware.RequirePermission(rbac.PermVehiclesList), handlers.ListVehicles)
	vehicles.GET("/:id", middleware.RequirePermission(rbac.PermVehiclesView), handlers.GetVehicle)
	vehicles.POST("", middleware.RequirePermission(rbac.PermVehiclesCreate), handlers.CreateVehicle)
	vehicles.PUT("/:id", middleware.RequirePermission(rbac.PermVehiclesUpdate), handlers.UpdateVehicle)
	vehicles.DELETE("/:id", middleware.RequirePermission(rbac.PermVehiclesDelete), handlers.DeleteVehicle)

	insurance := protected.Group("/insurance-companies")
	insurance.GET("", middleware.RequirePermission(rbac.PermInsuranceList), handlers.ListInsuranceCompanies)
	insurance.GET("/:id", middleware.RequirePermission(rbac.PermInsuranceView), handlers.GetInsuranceCompany)
	insurance.POST("", middleware.RequirePermission(rbac.PermInsuranceCreate), handlers.CreateInsuranceCompany)
	insurance.PUT("/:id", middleware.RequirePermission(rbac.PermInsuranceUpdate), handlers.UpdateInsuranceCompany)
	insurance.DELETE("/:id", middleware.RequirePermission(rbac.PermInsuranceDelete), handlers.DeleteInsuranceCompany)

	estimates := protected.Group("/estimates")
	estimates.GET("", middleware.RequirePermission(rbac.PermEstimatesList), handlers.ListEstimates)
	estimates.GET("/:id", middleware.RequirePermission(rbac.PermEstimatesView), handlers.GetEstimate)
	estimates.POST("", middleware.RequirePermission(rbac.PermEstimatesCreate), handlers.CreateEstimate)
	estimates.PUT("/:id", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.UpdateEstimate)
	estimates.DELETE("/:id", middleware.RequirePermission(rbac.PermEstimatesDelete), handlers.DeleteEstimate)
	estimates.PUT("/:id/approve", middleware.RequirePermission(rbac.PermEstimatesApprove), handlers.ApproveEstimate)
	estimates.PUT("/:id/reject", middleware.RequirePermission(rbac.PermEstimatesApprove), handlers.RejectEstimate)

	estimates.POST("/:id/parts", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.AddEstimatePart)
	estimates.PUT("/:id/parts/:part_id", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.UpdateEstimatePart)
	estimates.DELETE("/:id/parts/:part_id", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.DeleteEstimatePart)
	estimates.POST("/:id/labour", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.AddEstimateLabour)
	estimates.PUT("/:id/labour/:labour_id", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.UpdateEstimateLabour)
	estimates.DELETE("/:id/labour/:labour_id", middleware.RequirePermission(rbac.PermEstimatesUpdate), handlers.DeleteEstimateLabour)

	protected.GET("/audit", middleware.RequirePermission(rbac.PermAuditList), handlers.ListAuditLogs)

	return r
}
