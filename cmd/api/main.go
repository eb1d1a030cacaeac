package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ebook-checkout/internal/client"
	"ebook-checkout/internal/config"
	"ebook-checkout/internal/logger"
	"ebook-checkout/internal/repository"
	"ebook-checkout/internal/server"
	"ebook-checkout/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log)
	slog.SetDefault(log)

	if v := cfg.ValidateGateway(); !v.Valid {
		log.Warn("cashfree not configured, checkout will be refused", "issues", v.Issues)
	}

	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}

	catalogService := service.NewCatalogService(
		cfg.Product,
		repository.NewProductRepository(db),
		repository.NewPaymentMethodRepository(db),
	)
	if err := catalogService.Seed(context.Background()); err != nil {
		log.Error("seed catalog", "error", err)
		os.Exit(1)
	}

	cashfreeClient := client.NewCashfreeClient(&cfg.Cashfree)
	popupService := service.NewPopupService(cfg, log)
	checkoutService := service.NewCheckoutService(cfg, cashfreeClient, catalogService, popupService, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg.URLs, catalogService, checkoutService, popupService, log)

	log.Info("starting HTTP server", "addr", serverAddr, "cashfree_env", cashfreeClient.Environment())
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
