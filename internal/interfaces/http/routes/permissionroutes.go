package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// PermissionRouteConfig holds dependencies for permission catalog routes.
type PermissionRouteConfig struct {
	PermissionHandler    *handlers.PermissionHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPermissionRoutes configures permission catalog routes.
func SetupPermissionRoutes(api *gin.RouterGroup, cfg *PermissionRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	h := cfg.PermissionHandler
	permissions := api.Group("/permissions")
	{
		permissions.POST("", require(access.OpPermissionsCreate), h.CreatePermission)
		permissions.POST("/bulk", require(access.OpPermissionsBulkCreate), h.BulkCreatePermissions)
		permissions.GET("", require(access.OpPermissionsList), h.ListPermissions)

		permissions.GET("/:id", require(access.OpPermissionsGet), h.GetPermission)
		permissions.PATCH("/:id", require(access.OpPermissionsUpdate), h.UpdatePermission)
		permissions.DELETE("/:id", require(access.OpPermissionsDelete), h.DeletePermission)
		permissions.PUT("/:id/restore", require(access.OpPermissionsRestore), h.RestorePermission)
	}
}
