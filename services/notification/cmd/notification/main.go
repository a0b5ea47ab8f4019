package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/musicclouds/platform/pkg/db"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/pkg/middleware/loggingmw"
	"github.com/musicclouds/platform/services/notification/internal/config"
	"github.com/musicclouds/platform/services/notification/internal/consumer"
	"github.com/musicclouds/platform/services/notification/internal/models"
	"github.com/musicclouds/platform/services/notification/internal/repo"
	"github.com/musicclouds/platform/services/notification/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Notification{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	svc := &service.NotificationService{Repo: repo.GormRepo{DB: gdb}}
	cons := consumer.New(cfg.KafkaBrokers, cfg.NotificationsTopic, cfg.ConsumerGroup, svc)
	defer cons.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(loggingmw.RequestLogger(logger))
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	consumeCtx := logging.IntoContext(ctx, logger)
	if err := cons.Run(consumeCtx); err != nil {
		log.Printf("consumer stopped: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
