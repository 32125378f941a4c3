package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Donelpee/travelcover-insurance/internal/usecase"
)

// Permission keys guarding the write and reporting surfaces. Read
// access only needs a valid token.
const (
	PermCatalogWrite  = "catalog:write"
	PermManifestWrite = "manifests:write"
	PermJobManage     = "jobs:manage"
	PermReportView    = "reports:view"
)

// NewRouter wires the HTTP surface: health and metrics unauthenticated,
// everything under /api/v1 behind JWT auth.
func NewRouter(
	auth *usecase.AuthService,
	authHandler *AuthHandler,
	catalog *CatalogHandler,
	manifests *ManifestHandler,
	jobs *JobHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.POST("/auth/login", authHandler.Login)

	secured := v1.Group("")
	secured.Use(AuthRequired(auth))

	secured.GET("/auth/me", authHandler.Me)

	secured.GET("/companies", catalog.ListCompanies)
	secured.POST("/companies", RequirePermission(PermCatalogWrite), catalog.CreateCompany)
	secured.PUT("/companies/:id", RequirePermission(PermCatalogWrite), catalog.UpdateCompany)
	secured.DELETE("/companies/:id", RequirePermission(PermCatalogWrite), catalog.DeleteCompany)

	secured.GET("/routes", catalog.ListRoutes)
	secured.POST("/routes", RequirePermission(PermCatalogWrite), catalog.CreateRoute)
	secured.DELETE("/routes/:id", RequirePermission(PermCatalogWrite), catalog.DeleteRoute)

	secured.GET("/rules", catalog.ListRules)
	secured.POST("/rules", RequirePermission(PermCatalogWrite), catalog.CreateRule)
	secured.PUT("/rules/:id", RequirePermission(PermCatalogWrite), catalog.UpdateRule)
	secured.DELETE("/rules/:id", RequirePermission(PermCatalogWrite), catalog.DeleteRule)

	secured.GET("/templates/sms", catalog.ListSMSTemplates)
	secured.POST("/templates/sms", RequirePermission(PermCatalogWrite), catalog.CreateSMSTemplate)
	secured.GET("/templates/email", catalog.ListEmailTemplates)
	secured.POST("/templates/email", RequirePermission(PermCatalogWrite), catalog.CreateEmailTemplate)

	secured.GET("/manifests", manifests.List)
	secured.GET("/manifests/:id", manifests.Get)
	secured.POST("/manifests", RequirePermission(PermManifestWrite), manifests.Capture)
	secured.POST("/manifests/:id/replan", RequirePermission(PermManifestWrite), manifests.Replan)
	secured.POST("/manifests/:id/send", RequirePermission(PermManifestWrite), manifests.SendNow)
	secured.DELETE("/manifests/:id", RequirePermission(PermManifestWrite), manifests.Delete)

	secured.GET("/jobs", jobs.List)
	secured.GET("/jobs/:id", jobs.Get)
	secured.POST("/jobs/:id/cancel", RequirePermission(PermJobManage), jobs.Cancel)

	secured.GET("/reports/deliveries", RequirePermission(PermReportView), jobs.DeliveryReport)

	return r
}
