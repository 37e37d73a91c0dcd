package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/skywalker/milestone_backend/cmd/docs"
	portssvc "github.com/skywalker/milestone_backend/internal/core/ports/services"
	"github.com/skywalker/milestone_backend/internal/middleware"
	"github.com/skywalker/milestone_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public authentication routes
	registerAuthRoutes(r, services)
	registerOAuthRoutes(r, services)

	// Protected API routes
	setupAPIRoutes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the authenticated /api group.
func setupAPIRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	api := r.Group("/api", middleware.AuthMiddleware(services.Token))

	registerMilestoneRoutes(api, services.Milestone)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
