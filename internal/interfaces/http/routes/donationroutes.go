package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
)

// DonationRouteConfig holds dependencies for donation routes.
type DonationRouteConfig struct {
	DonationHandler      *handlers.DonationHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	OrderLimit           gin.HandlerFunc
}

// SetupDonationRoutes configures donation routes. Checkout and the public
// pool views work without a token; a signed-in donor is linked when one is
// presented.
func SetupDonationRoutes(api *gin.RouterGroup, cfg *DonationRouteConfig) {
	require := cfg.PermissionMiddleware.Require
	h := cfg.DonationHandler
	donations := api.Group("/donations")
	{
		donations.POST("/create-order", cfg.OrderLimit, require(access.OpDonationsCreateOrder), h.CreateOrder)
		donations.POST("/verify-payment", cfg.OrderLimit, require(access.OpDonationsVerifyPayment), h.VerifyPayment)
		donations.GET("", require(access.OpDonationsList), h.ListDonations)

		// Static paths before /:id
		donations.GET("/user/my-donations", cfg.AuthMiddleware.RequireAuth(), h.ListMyDonations)
		donations.GET("/pool/:poolId", require(access.OpDonationsByPool), h.ListPoolDonations)
		donations.GET("/pool/:poolId/stats", require(access.OpDonationsPoolStats), h.PoolStats)

		donations.GET("/:id", require(access.OpDonationsGet), h.GetDonation)
	}
}
