package handlers

import (
	"time"

	"github.com/SscSPs/mini_bank_api/cmd/docs"
	portssvc "github.com/SscSPs/mini_bank_api/internal/core/ports/services"
	"github.com/SscSPs/mini_bank_api/internal/middleware"
	"github.com/SscSPs/mini_bank_api/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// The engine is expected to already use the logging, error and recovery middleware.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	loginLimiter, err := middleware.NewIPLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	r.GET("/health", getHealth(time.Now()))
	r.NoRoute(routeNotFound)

	api := r.Group("/api/v1")

	// Public authentication routes
	registerAuthRoutes(api, services.Auth, loginLimiter)

	// Everything else requires a bearer token
	protected := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterAccountRoutes(protected, services.Account)

	setupSwaggerRoutes(r, cfg)
	return nil
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
