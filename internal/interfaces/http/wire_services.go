package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/labpool/labpool/internal/application/access"
	"github.com/labpool/labpool/internal/application/donation/receipt"
	fileApp "github.com/labpool/labpool/internal/application/file"
	permissionApp "github.com/labpool/labpool/internal/application/permission"
	poolApp "github.com/labpool/labpool/internal/application/pool"
	roleApp "github.com/labpool/labpool/internal/application/role"
	sampleProductApp "github.com/labpool/labpool/internal/application/sampleproduct"
	"github.com/labpool/labpool/internal/application/shaping"
	userApp "github.com/labpool/labpool/internal/application/user"
	"github.com/labpool/labpool/internal/infrastructure/auth"
	"github.com/labpool/labpool/internal/infrastructure/config"
	"github.com/labpool/labpool/internal/infrastructure/email"
	"github.com/labpool/labpool/internal/infrastructure/metrics"
	"github.com/labpool/labpool/internal/infrastructure/payment"
	permissionInfra "github.com/labpool/labpool/internal/infrastructure/permission"
	"github.com/labpool/labpool/internal/infrastructure/ratelimit"
	"github.com/labpool/labpool/internal/infrastructure/storage"
	"github.com/labpool/labpool/internal/interfaces/http/middleware"
	"github.com/labpool/labpool/internal/shared/db"
	"github.com/labpool/labpool/internal/shared/logger"
	"github.com/labpool/labpool/internal/shared/services/markdown"
)

// services holds the application services behind the CRUD handlers.
type services struct {
	auth          *userApp.AuthService
	user          *userApp.Service
	role          *roleApp.Service
	permission    *permissionApp.Service
	file          *fileApp.Service
	sampleProduct *sampleProductApp.Service
	pool          *poolApp.Service
}

// initInfrastructure sets up Redis, repositories, auth, metrics and the
// early middlewares.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Host != "" {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.repos = newRepositories(c.db, log)
	c.txManager = db.NewTransactionManager(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	c.metrics = metrics.New()
	c.shaper = shaping.NewShaper(log.Named("shaping"))

	abilities := permissionInfra.NewAbilityFactory(log.Named("ability"))
	resolver := access.NewResolver(c.repos.userRepo, abilities, log.Named("access"))
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, resolver, log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(log.Named("permission"))
	c.rateLimiter = newRateLimiter(cfg, c.redis, log)

	return nil
}

func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// newRateLimiter shares counters through Redis when it is configured and
// falls back to per-process token buckets otherwise.
func newRateLimiter(cfg *config.Config, client *redis.Client, log logger.Interface) ratelimit.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	rlCfg := ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
	}
	if client != nil {
		log.Infow("using Redis rate limiter", "requests_per_minute", rlCfg.RequestsPerMinute)
		return ratelimit.NewRedisRateLimiter(client, rlCfg)
	}
	log.Infow("using in-memory rate limiter", "requests_per_minute", rlCfg.RequestsPerMinute, "burst", rlCfg.Burst)
	return ratelimit.NewMemoryRateLimiter(rlCfg)
}

// initServices builds the application services and their adapters.
func (c *Container) initServices() error {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	store, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.MaxUploadMB, log.Named("storage"))
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}

	gateway, err := payment.NewGateway(cfg.Payment, log)
	if err != nil {
		return fmt.Errorf("failed to initialize payment gateway: %w", err)
	}
	c.gateway = gateway

	if cfg.Email.Enabled() {
		c.receipts = email.NewSMTPEmailService(cfg.Email)
	} else {
		log.Infow("SMTP not configured, donation receipts are disabled")
		c.receipts = receipt.NopSender{}
	}

	renderer := markdown.NewRenderer()

	c.svcs = &services{
		auth:          userApp.NewAuthService(repos.userRepo, c.hasher, c.jwtSvc, log.Named("auth")),
		user:          userApp.NewService(repos.userRepo, repos.roleRepo, c.hasher, log.Named("user")),
		role:          roleApp.NewService(repos.roleRepo, repos.permissionRepo, log.Named("role")),
		permission:    permissionApp.NewService(repos.permissionRepo, c.txManager, log.Named("permission")),
		file:          fileApp.NewService(repos.fileRepo, store, log.Named("file")),
		sampleProduct: sampleProductApp.NewService(repos.sampleProductRepo, renderer, log.Named("sample_product")),
		pool:          poolApp.NewService(repos.poolRepo, repos.sampleProductRepo, repos.fileRepo, repos.userRepo, renderer, log.Named("pool")),
	}

	return nil
}
