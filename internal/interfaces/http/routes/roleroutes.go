package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// RoleRouteConfig holds dependencies for role routes.
type RoleRouteConfig struct {
	RoleHandler          *handlers.RoleHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupRoleRoutes configures role routes.
func SetupRoleRoutes(api *gin.RouterGroup, cfg *RoleRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	roles := api.Group("/roles")
	{
		roles.POST("", require(access.OpRolesCreate), cfg.RoleHandler.CreateRole)
		roles.GET("", require(access.OpRolesList), cfg.RoleHandler.ListRoles)

		roles.GET("/:id", require(access.OpRolesGet), cfg.RoleHandler.GetRole)
		roles.PATCH("/:id", require(access.OpRolesUpdate), cfg.RoleHandler.UpdateRole)
		roles.DELETE("/:id", require(access.OpRolesDelete), cfg.RoleHandler.DeleteRole)
		roles.PUT("/:id/restore", require(access.OpRolesRestore), cfg.RoleHandler.RestoreRole)
		roles.POST("/:id/permissions", require(access.OpRolesAssignPermissions), cfg.RoleHandler.AssignPermissions)
		roles.DELETE("/:id/permissions", require(access.OpRolesRemovePermissions), cfg.RoleHandler.RemovePermissions)
	}
}
