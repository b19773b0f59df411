package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/satancra/bookstore/pkg/bookclient"
	"github.com/satancra/bookstore/pkg/db"
	"github.com/satancra/bookstore/pkg/events"
	"github.com/satancra/bookstore/pkg/logging"
	"github.com/satancra/bookstore/pkg/metrics"
	loggingmw "github.com/satancra/bookstore/pkg/middleware/logging"
	"github.com/satancra/bookstore/pkg/userclient"
	"github.com/satancra/bookstore/services/cart/internal/config"
	"github.com/satancra/bookstore/services/cart/internal/httpserver"
	"github.com/satancra/bookstore/services/cart/internal/repo"
	"github.com/satancra/bookstore/services/cart/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment")
	}

	cfg := config.Load()
	logger := logging.New(cfg.ServiceName, cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	if err := repo.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	cartService := service.NewCartService(
		&repo.GormRepo{DB: gormDB},
		bookclient.NewClient(cfg.BookURL),
		producer,
	)

	httpserver.Register(e, &httpserver.Deps{
		CartHandler: &httpserver.CartHTTP{
			Svc:   cartService,
			Users: userclient.NewClient(cfg.UserURL),
		},
		Metrics: metrics.NewServerMetrics(cfg.ServiceName),
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("starting cart service", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		sqlDB.Close()
	}
}
