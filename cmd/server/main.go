package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/gophsocial/internal/crypto"
	"github.com/iudanet/gophsocial/internal/server"
	"github.com/iudanet/gophsocial/internal/server/config"
	"github.com/iudanet/gophsocial/internal/server/jwt"
	"github.com/iudanet/gophsocial/internal/server/middleware"
	"github.com/iudanet/gophsocial/internal/server/service"
	"github.com/iudanet/gophsocial/internal/server/storage/sqldb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("GophSocial Server starting",
		slog.String("version", Version),
		slog.String("addr", cfg.Addr),
		slog.String("db_driver", cfg.DatabaseDriver),
	)

	store, err := sqldb.New(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close storage", slog.Any("error", err))
		}
	}()

	tokens, err := jwt.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	svc, err := service.New(store, crypto.NewBcryptHasher(cfg.BcryptCost), tokens, logger)
	if err != nil {
		return fmt.Errorf("services: %w", err)
	}

	proxies, err := cfg.TrustedProxyNets()
	if err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger,
		middleware.WithTrustedProxies(proxies))
	defer authLimiter.Stop()

	router := server.NewRouter(server.RouterDeps{
		Logger:      logger,
		Services:    svc,
		Tokens:      tokens,
		Users:       store,
		DB:          store,
		AuthLimiter: authLimiter,
		Metrics:     middleware.NewMetrics(),
		Version:     Version,
	})

	return server.New(cfg.Addr, router, logger, cfg.ShutdownTimeout).Run(ctx)
}

func printVersion() {
	fmt.Printf("GophSocial Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
