package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "kycportal/docs" // registers the OpenAPI document
	"kycportal/internal/config"
	"kycportal/internal/domain"
	"kycportal/internal/handler"
	"kycportal/internal/metrics"
	"kycportal/internal/middleware"
	"kycportal/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	recorder *metrics.Recorder,
	authSvc service.AuthService,
	kycH *handler.KYCHandler,
	adminH *handler.AdminHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(recorder))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	if cfg.Metrics.Enabled && recorder != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(recorder.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	kyc := protected.Group("/kyc")
	kyc.GET("/requirements", kycH.Requirements)
	kyc.GET("/summary", kycH.Summary)
	kyc.GET("/documents", kycH.ListDocuments)
	kyc.GET("/documents/:id", kycH.GetDocument)
	kyc.POST("/documents", kycH.Upload)
	kyc.DELETE("/documents/:id", kycH.Delete)
	kyc.POST("/submit", kycH.Submit)

	// Admin routes - reviewer console
	admin := v1.Group("/admin/kyc")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/review-queue", adminH.ReviewQueue)
	admin.GET("/review-queue/export", adminH.ExportReviewQueue)
	admin.POST("/users/:user_id/documents/:id/review", adminH.Review)

	return r
}
