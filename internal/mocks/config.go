package mocks

import (
	"time"

	"github.com/cradoe/profilegate/internal/config"
)

func MockConfig() *config.Config {
	var cfg config.Config

	cfg.BaseURL = "http://localhost"
	cfg.HttpPort = 8080
	cfg.Db.Dsn = "mock_dsn"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "test:"
	cfg.Backend.BaseURL = "http://backend.local"
	cfg.Backend.Timeout = 30 * time.Second
	cfg.Backend.UploadTimeout = 60 * time.Second
	cfg.Profile.SnapshotTTL = 5 * time.Minute
	cfg.Loans.CollateralThreshold = 1_000_000
	cfg.Notifications.Email = ""
	cfg.Smtp.Host = "smtp.example.com"
	cfg.Smtp.Port = 587
	cfg.Smtp.From = "no-reply@example.com"
	cfg.KafkaServers = "localhost:9092"

	return &cfg
}
