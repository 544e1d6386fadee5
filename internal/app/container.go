package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Filichkin/SA-RAG/domain"
	"github.com/Filichkin/SA-RAG/internal/config"
	"github.com/Filichkin/SA-RAG/internal/infrastructure/auth"
	"github.com/Filichkin/SA-RAG/internal/infrastructure/database"
	"github.com/Filichkin/SA-RAG/internal/infrastructure/notifications"
	"github.com/Filichkin/SA-RAG/internal/infrastructure/repositories"
	"github.com/Filichkin/SA-RAG/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo domain.UserRepository
	CodeRepo domain.TwoFactorCodeRepository
	Throttle domain.LoginThrottle

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthSvc         domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(
		c.Config.RedisAddr,
		c.Config.RedisPassword,
		c.Config.RedisDB,
	).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CodeRepo = repositories.NewTwoFactorCodeRepository(c.DB)
	c.Throttle = repositories.NewLoginThrottle(c.RedisClient, c.Config.ResendWindow)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.SessionTTL,
		c.Config.PendingTTL,
	)
	c.NotificationSvc = notifications.NewService(
		notifications.NewSMTPSender(
			c.Config.SMTPHost,
			c.Config.SMTPPort,
			c.Config.SMTPUsername,
			c.Config.SMTPPassword,
			c.Config.SMTPFrom,
		),
		notifications.NewTwilioSender(
			c.Config.TwilioSID,
			c.Config.TwilioToken,
			c.Config.TwilioFrom,
		),
	)

	authConfig := services.AuthConfig{
		CodeLength:     c.Config.CodeLength,
		CodeTTL:        c.Config.CodeTTL,
		PasswordMinLen: c.Config.PasswordMinLen,
		Channel:        c.Config.TwoFactorChannel,
	}
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.CodeRepo,
		c.PasswordSvc,
		c.TokenSvc,
		services.NewCodeGenerator(c.Config.CodeLength),
		c.NotificationSvc,
		c.Throttle,
		services.NewSystemClock(),
		authConfig,
	)
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
