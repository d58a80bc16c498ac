package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// SampleProductRouteConfig holds dependencies for sample product routes.
type SampleProductRouteConfig struct {
	SampleProductHandler *handlers.SampleProductHandler
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSampleProductRoutes configures sample product routes.
func SetupSampleProductRoutes(api *gin.RouterGroup, cfg *SampleProductRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	h := cfg.SampleProductHandler
	products := api.Group("/sample-products")
	{
		products.POST("", require(access.OpSampleProductsCreate), h.Create)
		products.GET("", require(access.OpSampleProductsList), h.List)
		products.GET("/:id", require(access.OpSampleProductsGet), h.Get)
		products.PATCH("/:id", require(access.OpSampleProductsUpdate), h.Update)
		products.DELETE("/:id", require(access.OpSampleProductsDelete), h.Delete)
		products.PUT("/:id/restore", require(access.OpSampleProductsRestore), h.Restore)
	}
}
