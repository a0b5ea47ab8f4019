package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/musicclouds/platform/pkg/clients/fraudclient"
	"github.com/musicclouds/platform/pkg/db"
	"github.com/musicclouds/platform/pkg/events"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/pkg/middleware/loggingmw"
	"github.com/musicclouds/platform/pkg/tokens"
	"github.com/musicclouds/platform/services/user/internal/config"
	"github.com/musicclouds/platform/services/user/internal/httpserver"
	"github.com/musicclouds/platform/services/user/internal/middleware"
	"github.com/musicclouds/platform/services/user/internal/models"
	"github.com/musicclouds/platform/services/user/internal/repo"
	"github.com/musicclouds/platform/services/user/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Token{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	codec := &tokens.Codec{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	gormRepo := repo.GormRepo{DB: gdb}

	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.NotificationsTopic)
		defer producer.Close()
		publisher = producer
	} else {
		logger.Warn("KAFKA_BROKERS not set, welcome notifications disabled")
	}

	authSvc := &service.AuthService{
		Repo:   gormRepo,
		Codec:  codec,
		Fraud:  fraudclient.NewClient(cfg.FraudURL),
		Events: publisher,
	}
	userSvc := &service.UserService{Repo: gormRepo}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: authSvc},
		UserHandler: &httpserver.UserHTTP{Svc: userSvc},
		Authorizer:  &middleware.Authorizer{Repo: gormRepo, Codec: codec},
	})

	go func() {
		if err := e.Start(cfg.ServerAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
}
