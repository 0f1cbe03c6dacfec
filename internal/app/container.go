package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/deadloked8999/e-bar/domain"
	"github.com/deadloked8999/e-bar/internal/config"
	"github.com/deadloked8999/e-bar/internal/infrastructure/auth"
	"github.com/deadloked8999/e-bar/internal/infrastructure/database"
	"github.com/deadloked8999/e-bar/internal/infrastructure/notifications"
	"github.com/deadloked8999/e-bar/internal/infrastructure/repositories"
	"github.com/deadloked8999/e-bar/internal/infrastructure/storage"
	"github.com/deadloked8999/e-bar/internal/ratelimit"
	"github.com/deadloked8999/e-bar/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	EstRepo   domain.EstablishmentRepository
	DocRepo   domain.DocumentRepository
	TokenRepo domain.ResetTokenRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Limiter         domain.LoginRateLimiter
	Store           domain.FileStore

	AuthSvc  domain.AuthService
	ResetSvc domain.PasswordResetService
	Guard    domain.AuthorizationGuard
	DocSvc   *services.DocumentService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

// initRedis connects only when the redis rate limit backend is
// configured; the memory backend runs without it.
func (c *Container) initRedis() error {
	if c.Config.RateLimitBackend != "redis" {
		return nil
	}
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("redis unavailable: %w", err)
	}
	c.RedisClient = rdb
	return nil
}

func (c *Container) initRepositories() {
	c.EstRepo = repositories.NewEstablishmentRepository(c.DB)
	c.DocRepo = repositories.NewDocumentRepository(c.DB)
	c.TokenRepo = repositories.NewResetTokenRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	if c.RedisClient != nil {
		c.Limiter = ratelimit.NewRedisLimiter(c.RedisClient, c.Config.MaxLoginAttempts, c.Config.LoginWindow)
	} else {
		c.Limiter = ratelimit.NewMemoryLimiter(c.Config.MaxLoginAttempts, c.Config.LoginWindow)
	}

	store, err := storage.NewLocalStore(c.Config.UploadDir)
	if err != nil {
		return fmt.Errorf("upload dir unavailable: %w", err)
	}
	c.Store = store

	c.AuthSvc = services.NewAuthService(c.EstRepo, c.PasswordSvc, c.TokenSvc, c.Limiter)
	c.ResetSvc = services.NewPasswordResetService(c.EstRepo, c.TokenRepo, c.PasswordSvc, c.NotificationSvc, c.Config.ResetTokenTTL)
	c.Guard = services.NewAuthzGuard(c.TokenSvc)
	c.DocSvc = services.NewDocumentService(c.DocRepo, c.EstRepo, c.Store, c.Config.AllowedExts)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
