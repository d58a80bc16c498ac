package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	LoginLimit     gin.HandlerFunc
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.LoginLimit, cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.LoginLimit, cfg.AuthHandler.Refresh)
		auth.GET("/profile", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Profile)
	}
}
