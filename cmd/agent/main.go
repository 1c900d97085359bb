package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogapp "github.com/erp/sync-agent/internal/application/catalog"
	syncapp "github.com/erp/sync-agent/internal/application/sync"
	tradeapp "github.com/erp/sync-agent/internal/application/trade"
	"github.com/erp/sync-agent/internal/infrastructure/config"
	"github.com/erp/sync-agent/internal/infrastructure/logger"
	"github.com/erp/sync-agent/internal/infrastructure/persistence"
	"github.com/erp/sync-agent/internal/infrastructure/scheduler"
	syncinfra "github.com/erp/sync-agent/internal/infrastructure/sync"
	"github.com/erp/sync-agent/internal/interfaces/http/handler"
	"github.com/erp/sync-agent/internal/interfaces/http/middleware"
	"github.com/erp/sync-agent/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Configured logging is not available yet; fall back to the
		// environment default so the failure is still structured.
		bootLog := logger.NewForEnvironment(os.Getenv("BRIDGE_APP_ENV"))
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting sync agent",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// The agent keeps serving without a store connection: /health answers with
	// storeConnected=false and store-backed routes answer 503.
	db, err := persistence.Connect(&cfg.Database, log)
	if err != nil {
		log.Error("Store unreachable after all attempts, entering degraded mode", zap.Error(err))
	} else {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing store connection", zap.Error(err))
			}
		}()
		log.Info("Store connected")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var storePinger handler.StorePinger
	if db != nil {
		storePinger = db
	}
	healthHandler := handler.NewHealthHandler(storePinger, version)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAPIMiddleware(
			middleware.StoreGate(func() bool { return db != nil }),
			middleware.BearerAuth(cfg.Auth.Token),
		),
	)
	r.RegisterRoot(healthHandler)

	// Store-backed routes are registered even in offline mode: StoreGate
	// answers 503 before any handler touches a repository, so a nil gorm
	// handle is never dereferenced.
	var gormDB *gorm.DB
	if db != nil {
		gormDB = db.DB
	}
	productRepo := persistence.NewGormProductRepository(gormDB)
	orderRepo := persistence.NewGormOrderRepository(gormDB)

	stockService := catalogapp.NewStockService(productRepo)
	ingestService := tradeapp.NewOrderIngestService(orderRepo, log)

	r.Register(handler.NewStockHandler(stockService))
	r.Register(handler.NewOrderHandler(ingestService))

	var syncScheduler *scheduler.ChangeSyncScheduler
	if db != nil {
		if cfg.Sync.Enabled {
			cursorStore := syncinfra.NewFileCursorStore(cfg.Sync.CursorFile, log)
			publisher := syncinfra.NewHTTPPublisher(cfg.Sync.EndpointURL, cfg.Sync.Token, cfg.Sync.PublishTimeout, log)
			syncService := syncapp.NewChangeSyncService(productRepo, publisher, cursorStore, log)

			syncScheduler = scheduler.NewChangeSyncScheduler(syncService, cfg.Sync.Interval, log)
			syncScheduler.Start(context.Background())
		} else {
			log.Info("Change sync disabled by configuration")
		}
	}
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	if syncScheduler != nil {
		syncScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
