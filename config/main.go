package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/akeren/teamup-site/config/router"
	"github.com/akeren/teamup-site/internal/auth"
	"github.com/akeren/teamup-site/internal/log"
	"github.com/akeren/teamup-site/internal/models"
	"github.com/akeren/teamup-site/internal/session"
	"github.com/akeren/teamup-site/pkg/constants"
	"github.com/akeren/teamup-site/pkg/factory"
	"github.com/akeren/teamup-site/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Sessions        *session.Manager
	AdminAuth       *auth.PasswordVerifier
	RateLimiters    factory.RateLimiterFactory
	TracingShutdown func(context.Context) error

	sessionStore Cache
}

type AppConfig struct {
	Port                string
	RateLimitRequests   int
	RateLimitWindow     time.Duration
	RequestTimeout      time.Duration
	SubmissionRateLimit int
	LoginRateLimit      int
	MigrateOnStart      bool
}

func NewAppConfig() *AppConfig {
	config := &AppConfig{
		Port:                router.DefaultPort,
		RateLimitRequests:   constants.DefaultRateLimitRequests,
		RateLimitWindow:     constants.DefaultRateLimitWindow(),
		RequestTimeout:      30 * time.Second, // Default request timeout
		SubmissionRateLimit: constants.DefaultSubmissionRateLimit,
		LoginRateLimit:      constants.DefaultLoginRateLimit,
		MigrateOnStart:      true,
	}

	// APP_PORT is the project convention; PORT is what most hosts inject.
	if port := utils.GetEnvTrimmed("APP_PORT"); port != "" {
		config.Port = port
	} else if port := utils.GetEnvTrimmed("PORT"); port != "" {
		config.Port = port
	}

	// Override from environment variables
	if reqStr := os.Getenv("RATE_LIMIT_REQUESTS"); reqStr != "" {
		if parsed, err := strconv.Atoi(reqStr); err == nil && parsed > 0 {
			config.RateLimitRequests = parsed
		}
	}

	if winStr := os.Getenv("RATE_LIMIT_WINDOW"); winStr != "" {
		if parsed, err := time.ParseDuration(winStr); err == nil && parsed > 0 {
			config.RateLimitWindow = parsed
		}
	}

	if timeoutStr := os.Getenv("REQUEST_TIMEOUT"); timeoutStr != "" {
		if parsed, err := time.ParseDuration(timeoutStr); err == nil && parsed > 0 {
			config.RequestTimeout = parsed
		}
	}

	if raw := utils.GetEnvTrimmed("SUBMISSION_RATE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			config.SubmissionRateLimit = parsed
		}
	}

	if raw := utils.GetEnvTrimmed("LOGIN_RATE_LIMIT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			config.LoginRateLimit = parsed
		}
	}

	config.MigrateOnStart = utils.GetEnvBool("MIGRATE_ON_START", config.MigrateOnStart)

	return config
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	} else if ac.sessionStore != nil {
		CloseCache(ac.sessionStore, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	appEnv := GetAppEnv()
	if autoMigrate {
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	authConfig := NewAuthConfig()
	secret, err := authConfig.ResolveSecret(logger, appEnv)
	if err != nil {
		return nil, err
	}
	verifier, err := authConfig.PasswordVerifier()
	if err != nil {
		return nil, err
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	appConfig := NewAppConfig()
	dbCfg := NewDBConfig()

	if appConfig.MigrateOnStart && !autoMigrate {
		if err := RunMigrations(context.Background(), logger, dbCfg); err != nil {
			logger.Error("SQL migrations failed", "error", err)
			return nil, err
		}
	}

	db, err := NewDatabase(logger, dbCfg)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	cache := NewCacheConfig().NewCacheOrNil(logger)
	sessionStore := NewSessionStore(cache, logger)

	sessions, err := session.NewManager(sessionStore, session.Config{
		Secret: secret,
		TTL:    authConfig.SessionTTL,
		Secure: authConfig.CookieSecure,
	})
	if err != nil {
		return nil, err
	}

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
		Port:              appConfig.Port,
	})

	logger.Info("Application configuration loaded successfully", "env", appEnv, "port", appConfig.Port)

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		Sessions:        sessions,
		AdminAuth:       verifier,
		RateLimiters:    factory.NewDefaultRateLimiterFactory(cache, logger),
		TracingShutdown: tracingShutdown,
		sessionStore:    sessionStore,
	}, nil
}
