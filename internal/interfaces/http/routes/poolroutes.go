package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// PoolRouteConfig holds dependencies for pool routes.
type PoolRouteConfig struct {
	PoolHandler          *handlers.PoolHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPoolRoutes configures pool routes.
func SetupPoolRoutes(api *gin.RouterGroup, cfg *PoolRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	h := cfg.PoolHandler
	pools := api.Group("/pools")
	{
		pools.POST("", require(access.OpPoolsCreate), h.CreatePool)
		pools.GET("", require(access.OpPoolsList), h.ListPools)

		// Must come before /:id
		pools.GET("/my-pools", require(access.OpPoolsMine), h.ListMyPools)

		pools.GET("/:id", require(access.OpPoolsGet), h.GetPool)
		pools.PUT("/:id", require(access.OpPoolsUpdate), h.UpdatePool)
		pools.PATCH("/:id", require(access.OpPoolsUpdate), h.UpdatePool)
		pools.DELETE("/:id", require(access.OpPoolsDelete), h.DeletePool)
		pools.DELETE("/:id/hard", require(access.OpPoolsHardDelete), h.HardDeletePool)

		// Moderation
		pools.PUT("/:id/restore", require(access.OpPoolsRestore), h.RestorePool)
		pools.PUT("/:id/approve", require(access.OpPoolsApprove), h.ApprovePool)
		pools.PUT("/:id/reject", require(access.OpPoolsReject), h.RejectPool)
	}
}
