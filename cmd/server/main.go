package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"splitledger/internal/auth"
	"splitledger/internal/config"
	"splitledger/internal/notify"
	"splitledger/internal/server"
	"splitledger/internal/service"
	"splitledger/internal/storage/sqlite"
	"splitledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)
	notifier := notify.NewStoreNotifier(store)

	handlers := server.NewHandlers(
		service.NewAuthService(authenticator, jwtManager),
		service.NewGroupService(store),
		service.NewExpenseService(store, notifier),
		service.NewSettlementService(store, notifier),
		service.NewBalanceService(store),
		service.NewNotificationService(store),
	)

	router := server.NewRouter(server.RouterDependencies{
		Handlers:       handlers,
		JWTManager:     jwtManager,
		Probe:          store.Ping,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := server.New(cfg.Addr(), router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
