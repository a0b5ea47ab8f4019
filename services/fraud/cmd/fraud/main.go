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

	"github.com/musicclouds/platform/pkg/db"
	"github.com/musicclouds/platform/pkg/logging"
	"github.com/musicclouds/platform/pkg/middleware/loggingmw"
	"github.com/musicclouds/platform/services/fraud/internal/config"
	"github.com/musicclouds/platform/services/fraud/internal/httpserver"
	"github.com/musicclouds/platform/services/fraud/internal/models"
	"github.com/musicclouds/platform/services/fraud/internal/repo"
	"github.com/musicclouds/platform/services/fraud/internal/service"
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
	if err := gdb.AutoMigrate(&models.FraudCheckHistory{}); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	httpserver.Register(e, &httpserver.FraudHTTP{
		Svc: &service.FraudService{Repo: repo.GormRepo{DB: gdb}},
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
