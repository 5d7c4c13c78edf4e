package config

import "time"

type Config struct {
	BaseURL  string
	HttpPort int
	Db       struct {
		Dsn         string
		Automigrate bool
	}
	Redis struct {
		Addr   string
		DB     int
		Prefix string
	}
	Backend struct {
		BaseURL       string
		Timeout       time.Duration
		UploadTimeout time.Duration
	}
	Session struct {
		SecureCookie bool
	}
	Profile struct {
		SnapshotTTL time.Duration
	}
	Loans struct {
		CollateralThreshold float64
	}
	Notifications struct {
		Email string
	}
	Smtp struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	KafkaServers string
}
