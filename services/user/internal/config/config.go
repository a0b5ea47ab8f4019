package config

import (
	"os"
	"time"

	pkgconfig "github.com/musicclouds/platform/pkg/config"
)

type Config struct {
	ServerAddr  string
	LogLevel    string
	DatabaseURL string

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	FraudURL string

	KafkaBrokers       []string
	NotificationsTopic string
}

func Load() *Config {
	pkgconfig.LoadDotenv()

	return &Config{
		ServerAddr:  pkgconfig.EnvDefault("USER_ADDR", ":8080"),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		DatabaseURL: pkgconfig.MustEnv("DATABASE_URL"),

		AccessSecret:  []byte(pkgconfig.MustEnv("JWT_ACCESS_SECRET")),
		RefreshSecret: []byte(pkgconfig.MustEnv("JWT_REFRESH_SECRET")),
		AccessTTL:     pkgconfig.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:    pkgconfig.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		FraudURL: pkgconfig.MustEnv("FRAUD_URL"),

		KafkaBrokers:       pkgconfig.CSV(os.Getenv("KAFKA_BROKERS")),
		NotificationsTopic: pkgconfig.EnvDefault("NOTIFICATIONS_TOPIC", "notifications"),
	}
}
