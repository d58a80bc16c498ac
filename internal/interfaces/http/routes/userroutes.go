package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user management routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user management routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	users := api.Group("/users")
	{
		users.POST("", require(access.OpUsersCreate), cfg.UserHandler.CreateUser)
		users.GET("", require(access.OpUsersList), cfg.UserHandler.ListUsers)

		users.GET("/:id", require(access.OpUsersGet), cfg.UserHandler.GetUser)
		users.PATCH("/:id", require(access.OpUsersUpdate), cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", require(access.OpUsersDelete), cfg.UserHandler.DeleteUser)
		users.POST("/:id/roles", require(access.OpUsersAssignRoles), cfg.UserHandler.AssignRoles)
	}
}
