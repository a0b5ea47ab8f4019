package config

import (
	pkgconfig "github.com/musicclouds/platform/pkg/config"
)

type Config struct {
	ServerAddr  string
	LogLevel    string
	DatabaseURL string
}

func Load() *Config {
	pkgconfig.LoadDotenv()

	return &Config{
		ServerAddr:  pkgconfig.EnvDefault("FRAUD_ADDR", ":8081"),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),
		DatabaseURL: pkgconfig.MustEnv("DATABASE_URL"),
	}
}
