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

	"milk-ledger/config"
	"milk-ledger/internal/api"
	"milk-ledger/internal/persist"
	"milk-ledger/internal/service"
	"milk-ledger/internal/store"
	"milk-ledger/internal/util"

	"github.com/gin-gonic/gin"
)

func newPersister(cfg *config.Config) (persist.Persister, error) {
	switch cfg.Storage.Backend {
	case "redis":
		return persist.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "file":
		return persist.NewFileStore(cfg.Storage.FilePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting milk-ledger service")

	tp, err := util.InitTracer("milk-ledger", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	persister, err := newPersister(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	recordStore, err := store.NewStore(context.Background(), persister)
	if err != nil {
		log.Fatalf("Failed to load record store: %v", err)
	}
	defer recordStore.Close()
	log.Printf("Record store ready (backend=%s)", cfg.Storage.Backend)

	maintainer := service.NewBalanceMaintainer(recordStore)
	catalogService := service.NewCatalogService(recordStore)
	customerService := service.NewCustomerService(recordStore)
	orderService := service.NewOrderService(recordStore, maintainer)
	paymentService := service.NewPaymentService(recordStore, maintainer)
	statsService := service.NewStatsService(recordStore)
	statementService := service.NewStatementService(recordStore)
	authService := service.NewAuthService(recordStore)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(
		catalogService,
		customerService,
		orderService,
		paymentService,
		statsService,
		statementService,
		authService,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
