// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"valora/internal/core/apperror"
	"valora/internal/domain/auth"
	"valora/internal/domain/reports"
	"valora/internal/infrastructure/http/v1/dto"
	"valora/internal/infrastructure/http/v1/handlers"
	"valora/internal/infrastructure/http/v1/middleware"
	"valora/internal/infrastructure/storage/postgres"
	"valora/internal/infrastructure/storage/postgres/auth_repo"
	"valora/internal/infrastructure/storage/postgres/report_repo"
	"valora/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// TokenService issues and validates session tokens
	TokenService *auth.TokenService

	// SecureCookie marks the session cookie Secure (off only for local HTTP)
	SecureCookie bool

	// Development switches Gin into debug mode
	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Unknown routes get the standard JSON error shape
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Code:    apperror.CodeNotFound,
			Message: "route not found",
		})
	})

	// Wire repositories and services
	authService := auth.NewService(auth_repo.NewUserRepo(cfg.Pool), cfg.TokenService)
	reportService := reports.NewService(report_repo.NewReportRepo(cfg.Pool))

	base := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(base, authService, cfg.SecureCookie)
	reportsHandler := handlers.NewReportsHandler(base, reportService)

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		authPublic := v1.Group("/auth")
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.Auth(cfg.TokenService))
		authHandler.RegisterRoutes(authPublic, authProtected)

		reportsGroup := v1.Group("/reports")
		reportsGroup.Use(middleware.Auth(cfg.TokenService))
		reportsHandler.RegisterRoutes(reportsGroup)
	}

	return router
}
