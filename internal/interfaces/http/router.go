package http

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/infrastructure/config"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/interfaces/http/routes"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/utils"

	_ "github.com/labpool/labpool/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	utils.RegisterBindingValidations()

	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.Metrics(r.metrics))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedPathsRegexs([]string{`/files/[^/]+/download$`}),
	))

	r.engine.GET("/health", r.hdlrs.health.HealthCheck)
	r.engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group(r.apiPrefix())
	api.Use(r.authMiddleware.Authenticate())

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.auth,
		AuthMiddleware: r.authMiddleware,
		LoginLimit:     r.limit("auth"),
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          r.hdlrs.user,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupRoleRoutes(api, &routes.RoleRouteConfig{
		RoleHandler:          r.hdlrs.role,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupPermissionRoutes(api, &routes.PermissionRouteConfig{
		PermissionHandler:    r.hdlrs.permission,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupFileRoutes(api, &routes.FileRouteConfig{
		FileHandler:          r.hdlrs.file,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupSampleProductRoutes(api, &routes.SampleProductRouteConfig{
		SampleProductHandler: r.hdlrs.sampleProduct,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupPoolRoutes(api, &routes.PoolRouteConfig{
		PoolHandler:          r.hdlrs.pool,
		PermissionMiddleware: r.permissionMiddleware,
	})
	routes.SetupDonationRoutes(api, &routes.DonationRouteConfig{
		DonationHandler:      r.hdlrs.donation,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		OrderLimit:           r.limit("donation"),
	})
}

func (r *Router) apiPrefix() string {
	if r.cfg.Server.APIPrefix == "" {
		return "/api/v1"
	}
	return r.cfg.Server.APIPrefix
}

// limit returns a pass-through handler when rate limiting is disabled.
func (r *Router) limit(scope string) gin.HandlerFunc {
	if r.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(r.rateLimiter, scope, r.log)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
