package http

import (
	"github.com/labpool/labpool/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	health        *handlers.HealthHandler
	auth          *handlers.AuthHandler
	user          *handlers.UserHandler
	role          *handlers.RoleHandler
	permission    *handlers.PermissionHandler
	file          *handlers.FileHandler
	sampleProduct *handlers.SampleProductHandler
	pool          *handlers.PoolHandler
	donation      *handlers.DonationHandler
}

func (c *Container) initHandlers() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}

	log := c.log
	svcs := c.svcs
	c.hdlrs = &allHandlers{
		health:        handlers.NewHealthHandler(sqlDB, log),
		auth:          handlers.NewAuthHandler(svcs.auth, c.shaper, log),
		user:          handlers.NewUserHandler(svcs.user, c.shaper, log),
		role:          handlers.NewRoleHandler(svcs.role, c.shaper, log),
		permission:    handlers.NewPermissionHandler(svcs.permission, c.shaper, log),
		file:          handlers.NewFileHandler(svcs.file, c.shaper, log),
		sampleProduct: handlers.NewSampleProductHandler(svcs.sampleProduct, c.shaper, log),
		pool:          handlers.NewPoolHandler(svcs.pool, c.shaper, log),
		donation: handlers.NewDonationHandler(
			c.ucs.createOrder, c.ucs.verifyPayment, c.ucs.queries, c.shaper, log,
		),
	}
	return nil
}
