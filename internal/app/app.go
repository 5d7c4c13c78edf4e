package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cradoe/profilegate/internal/backend"
	"github.com/cradoe/profilegate/internal/cache"
	"github.com/cradoe/profilegate/internal/config"
	"github.com/cradoe/profilegate/internal/credentials"
	"github.com/cradoe/profilegate/internal/env"
	"github.com/cradoe/profilegate/internal/errHandler"
	"github.com/cradoe/profilegate/internal/helper"
	"github.com/cradoe/profilegate/internal/repository"
	"github.com/cradoe/profilegate/internal/smtp"
	"github.com/cradoe/profilegate/internal/stream"
	"github.com/joho/godotenv"
)

// Essential services and resources are exposed to the application
// this makes it possible for methods to have access to these items and when they need them
type Application struct {
	Config       config.Config
	DB           repository.Database
	Cache        *cache.Cache
	Logger       *slog.Logger
	Mailer       *smtp.Mailer
	WG           sync.WaitGroup
	Backend      *backend.Client
	Profiles     repository.ProfileRepository
	Sessions     credentials.Store
	Kafka        *stream.KafkaStream
	errorHandler *errHandler.ErrorRepository
	helper       *helper.HelperRepository
}

func LoadConfig(logger *slog.Logger) config.Config {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	var cfg config.Config

	// Default values are for development mode only
	// make sure no production-level value is exposed as default value here
	cfg.BaseURL = env.GetString("BASE_URL", "http://localhost:4444")
	cfg.HttpPort = env.GetInt("HTTP_PORT", 4444)

	cfg.Db.Dsn = env.GetString("DB_DSN", "user:pass@localhost:5432/profilegate?sslmode=disable")
	cfg.Db.Automigrate = env.GetBool("DB_AUTOMIGRATE", true)

	cfg.Redis.Addr = env.GetString("REDIS_ADDR", "localhost:6379")
	cfg.Redis.DB = env.GetInt("REDIS_DB", 0)
	cfg.Redis.Prefix = env.GetString("REDIS_PREFIX", "profilegate:")

	cfg.Backend.BaseURL = env.GetString("BACKEND_BASE_URL", "http://localhost:8080/api/v1")
	cfg.Backend.Timeout = env.GetDuration("BACKEND_TIMEOUT", backend.DefaultTimeout)
	cfg.Backend.UploadTimeout = env.GetDuration("BACKEND_UPLOAD_TIMEOUT", backend.DefaultUploadTimeout)

	cfg.Session.SecureCookie = env.GetBool("SESSION_SECURE_COOKIE", false)
	cfg.Profile.SnapshotTTL = env.GetDuration("PROFILE_SNAPSHOT_TTL", repository.DefaultSnapshotTTL)
	cfg.Loans.CollateralThreshold = env.GetFloat("LOAN_COLLATERAL_THRESHOLD", 1_000_000)

	// server errors won't be sent via email if the NOTIFICATIONS_EMAIL wasn't set in the .env file
	cfg.Notifications.Email = env.GetString("NOTIFICATIONS_EMAIL", "")

	cfg.Smtp.Host = env.GetString("SMTP_HOST", "example.smtp.host")
	cfg.Smtp.Port = env.GetInt("SMTP_PORT", 25)
	cfg.Smtp.Username = env.GetString("SMTP_USERNAME", "")
	cfg.Smtp.Password = env.GetString("SMTP_PASSWORD", "")
	cfg.Smtp.From = env.GetString("SMTP_FROM", "Profile Gateway <no_reply@example.org>")

	cfg.KafkaServers = env.GetString("KAFKA_SERVERS", "localhost:9092")

	return cfg
}

func NewApplication(logger *slog.Logger) (*Application, error) {
	cfg := LoadConfig(logger)

	db, err := repository.New(cfg.Db.Dsn, cfg.Db.Automigrate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	mailer, err := smtp.NewMailer(cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Username, cfg.Smtp.Password, cfg.Smtp.From)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mailer: %w", err)
	}

	snapshotCache := cache.New(cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix)

	backendClient := backend.New(backend.Options{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       cfg.Backend.Timeout,
		UploadTimeout: cfg.Backend.UploadTimeout,
		Logger:        logger,
	})

	kafkaStream := stream.New(cfg.KafkaServers)

	app := &Application{
		Config:  cfg,
		DB:      db,
		Cache:   snapshotCache,
		Logger:  logger,
		Mailer:  mailer,
		Backend: backendClient,
		Kafka:   kafkaStream,
	}

	app.helper = helper.New(cfg.BaseURL, &app.WG, logger)
	app.errorHandler = errHandler.New(cfg.Notifications.Email, mailer, logger, app.helper)
	app.Sessions = credentials.NewRedisStore(snapshotCache)
	app.Profiles = repository.NewProfileRepository(repository.ProfileRepositoryOptions{
		API:         backendClient,
		Cache:       snapshotCache,
		Publisher:   kafkaStream,
		Activity:    db.Activity(),
		Logger:      logger,
		SnapshotTTL: cfg.Profile.SnapshotTTL,
	})

	return app, nil
}

func (app *Application) Close() {
	if err := app.Cache.Close(); err != nil {
		app.Logger.Warn("closing cache", "error", err)
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Warn("closing database", "error", err)
	}
}
