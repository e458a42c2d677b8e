package routes

import (
	"time"

	"github.com/endurancy/fiscal-api/internal/config"
	domainRepo "github.com/endurancy/fiscal-api/internal/domain/repository"
	"github.com/endurancy/fiscal-api/internal/presentation/http/handler"
	"github.com/endurancy/fiscal-api/internal/presentation/http/middleware"
	"github.com/endurancy/fiscal-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Config   *handler.FiscalConfigHandler
	Document *handler.FiscalDocumentHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Log             *logger.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewOrganizationRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: requestsPerSecond(&deps.Cfg.RateLimit),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	fiscal := router.Group("/fiscal")
	fiscal.Use(middleware.Auth(deps.Cfg.Auth.JWTSecret))
	fiscal.Use(rateLimiter.Middleware())
	{
		configGroup := fiscal.Group("/config")
		{
			configGroup.POST("", h.Config.Create)
			configGroup.GET("/:organizationId", h.Config.Get)
			configGroup.PUT("/:organizationId", h.Config.Update)
		}

		documents := fiscal.Group("/documents")
		{
			documents.POST("", middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}), h.Document.Create)
			documents.GET("/byId/:id", h.Document.GetByID)
			// :id is the organization here; gin requires one param name per position
			documents.GET("/:id", h.Document.List)
			documents.POST("/:id/cancel", h.Document.Cancel)
		}

		printer := fiscal.Group("/printer")
		{
			printer.POST("/test", h.Printer.Test)
			printer.POST("/:organizationId/cash-drawer", h.Printer.OpenCashDrawer)
			printer.GET("/:organizationId/status", h.Printer.Status)
			printer.POST("/:organizationId/x-report", h.Printer.XReport)
			printer.POST("/:organizationId/z-report", h.Printer.ZReport)
			printer.GET("/:organizationId/daily-report", h.Printer.DailyReport)
		}
	}

	return router
}

func requestsPerSecond(cfg *config.RateLimitConfig) float64 {
	if cfg.Requests <= 0 || cfg.Duration <= 0 {
		return 10
	}
	return float64(cfg.Requests) / float64(cfg.Duration)
}
