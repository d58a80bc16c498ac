package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/labpool/labpool/internal/application/donation/paymentgateway"
	"github.com/labpool/labpool/internal/application/donation/receipt"
	"github.com/labpool/labpool/internal/application/shaping"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/infrastructure/config"
	"github.com/labpool/labpool/internal/infrastructure/metrics"
	"github.com/labpool/labpool/internal/infrastructure/ratelimit"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/logger"
)

// Container holds the infrastructure components, repositories, services,
// use cases and handlers, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	svcs  *services
	ucs   *donationUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          ratelimit.RateLimiter

	// Cross-cutting services
	jwtSvc    *auth.JWTService
	hasher    *auth.BcryptPasswordHasher
	txManager *db.TransactionManager
	metrics   *metrics.Metrics
	shaper    *shaping.Shaper
	gateway   paymentgateway.PaymentGateway
	receipts  receipt.Sender
}

// NewContainer wires every dependency. The order matters: use cases need
// the services' collaborators and handlers need both.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initServices(); err != nil {
		return nil, err
	}
	c.initUseCases()
	if err := c.initHandlers(); err != nil {
		return nil, err
	}

	return c, nil
}

// Shutdown releases connections the container opened itself.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close Redis client", "error", err)
		}
	}
}
