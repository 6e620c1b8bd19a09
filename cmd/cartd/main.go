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

	"github.com/nikolayk812/gomarketplace-cart/internal/cart"
	"github.com/nikolayk812/gomarketplace-cart/internal/config"
	"github.com/nikolayk812/gomarketplace-cart/internal/httpapi"
	"github.com/nikolayk812/gomarketplace-cart/internal/logger"
)

func main() {
	if err := run(); err != nil {
		slog.Error("cartd stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log := logger.New(logger.Options{
		Service: "cartd",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openKV(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("openKV[%s]: %w", cfg.Storage, err)
	}
	defer closeKV()

	store := cart.NewStore(kv,
		cart.WithKey(cfg.CartKey),
		cart.WithAddMode(cfg.AddMode),
		cart.WithCurrency(cfg.Currency),
		cart.WithLogger(log),
	)

	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("store.Load: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      httpapi.NewRouter(store, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("cartd listening", "addr", srv.Addr, "storage", cfg.Storage, "add_mode", cfg.AddMode.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
		log.Error("server error", "err", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown", "err", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Warn("cart store close", "err", err)
	}

	return serveErr
}
