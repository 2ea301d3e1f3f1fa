package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/parusoft/shop-backend/internal/config"
	"github.com/parusoft/shop-backend/internal/es"
	"github.com/parusoft/shop-backend/internal/events"
	"github.com/parusoft/shop-backend/internal/httpserver"
	"github.com/parusoft/shop-backend/internal/logging"
	authmw "github.com/parusoft/shop-backend/internal/middleware/auth"
	loggingmw "github.com/parusoft/shop-backend/internal/middleware/logging"
	"github.com/parusoft/shop-backend/internal/repo"
	"github.com/parusoft/shop-backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: db}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		defer producer.Close()
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Printf("elasticsearch unavailable: %v", err)
			esClient = nil
		}
	}

	authService := &service.AuthService{
		Repo:          gormRepo,
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}
	cartService := &service.CartService{Repo: gormRepo}
	catalogService := &service.CatalogService{Repo: gormRepo}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authService, Events: producer},
		CartHandler:    &httpserver.CartHTTP{Svc: cartService, Events: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogService, ES: esClient, ESIndex: cfg.ESIndex, Events: producer},
		Gate:           authmw.NewGate(cfg.AccessSecret, gormRepo),
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.ServerPort)
		logger.Info("starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
