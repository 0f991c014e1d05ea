package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// RouteOptions carries the optional collaborators of the router.
type RouteOptions struct {
	// Limiter throttles /api/v1 per client IP. Nil disables rate limiting.
	Limiter *limiter.Limiter
	// HealthChecks are run by /health.
	HealthChecks map[string]HealthCheck
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	RegisterValidators()

	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.SecureHeaders(cfg.IsProduction))

	r.GET("/health", getHealth(opts.HealthChecks))

	setupAPIV1Routes(r, cfg, services, opts)

	setupSwaggerRoutes(r, cfg)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	c.MaxAge = 12 * time.Hour
	return c
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	v1 := r.Group("/api/v1")
	if opts.Limiter != nil {
		v1.Use(middleware.RateLimit(opts.Limiter))
	}
	v1.Use(middleware.AuthMiddleware(middleware.AuthConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}))

	RegisterAccountRoutes(v1, service.Account)
	RegisterJournalRoutes(v1, service.Journal)
	RegisterReportingRoutes(v1, service.Reporting, service.Ledger, service.Integrity)
	RegisterExpenseRoutes(v1, service.Expense)
	RegisterSupplierRoutes(v1, service.Supplier)
	RegisterBudgetRoutes(v1, service.Budget)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
