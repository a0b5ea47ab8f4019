package config

import (
	pkgconfig "github.com/musicclouds/platform/pkg/config"
)

type Config struct {
	ServerAddr  string
	LogLevel    string
	DatabaseURL string

	KafkaBrokers       []string
	NotificationsTopic string
	ConsumerGroup      string
}

func Load() *Config {
	pkgconfig.LoadDotenv()

	return &Config{
		ServerAddr:  pkgconfig.EnvDefault("NOTIFICATION_ADDR", ":8082"),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		DatabaseURL: pkgconfig.MustEnv("DATABASE_URL"),

		KafkaBrokers:       pkgconfig.CSV(pkgconfig.MustEnv("KAFKA_BROKERS")),
		NotificationsTopic: pkgconfig.EnvDefault("NOTIFICATIONS_TOPIC", "notifications"),
		ConsumerGroup:      pkgconfig.EnvDefault("NOTIFICATION_GROUP", "notification-service"),
	}
}
