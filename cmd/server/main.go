// Package main initializes and starts the vault HTTP server, setting up
// configuration, logging, the database connection, repositories, services,
// handlers, and graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/anikeev/vaultkeep/internal/config"
	"github.com/anikeev/vaultkeep/internal/db"
	"github.com/anikeev/vaultkeep/internal/logger"
	"github.com/anikeev/vaultkeep/internal/repository"
	"github.com/anikeev/vaultkeep/internal/server/handler/http"
	"github.com/anikeev/vaultkeep/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns v, or fallback if v is empty. It mirrors cmp.Or for
// strings; cmp.Or itself needs Go 1.22+, which the build toolchain lacks.
func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.AuthTokenSecret == "" {
		zapLogger.Fatal("auth token secret is not configured")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer func() { _ = postgresDB.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Report storage availability while the server runs.
	db.StartHealthMonitor(ctx, postgresDB, 30*time.Second, zapLogger)

	// Initialize repositories for vault records and account lookups.
	vaultRepo := repository.NewPostgresVaultRepository(postgresDB)
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)

	// Initialize business-logic services.
	vaultService := service.NewVaultService(vaultRepo)
	masterKeyGate := service.NewMasterKeyGate(accountRepo)

	// Create HTTP handlers for vault and master key endpoints.
	vaultHandler := &http.VaultHandler{VaultService: vaultService}
	masterKeyHandler := &http.MasterKeyHandler{Gate: masterKeyGate}

	// Build the router with middleware and routes.
	router := http.NewRouter(vaultHandler, masterKeyHandler, []byte(options.AuthTokenSecret), zapLogger)

	server := &nethttp.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown", zap.Error(err))
		}
	}()

	// Serve HTTPS when a certificate is configured, plain HTTP otherwise
	// (TLS terminated upstream).
	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", addr))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server failed", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
