package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staking-eligibility-service/config"
	httpHandler "staking-eligibility-service/internal/adapter/http/handler"
	"staking-eligibility-service/internal/adapter/spreadsheet"
	pgStorage "staking-eligibility-service/internal/adapter/storage/postgres"
	redisStorage "staking-eligibility-service/internal/adapter/storage/redis"
	"staking-eligibility-service/internal/core/domain"
	"staking-eligibility-service/internal/core/ports"
	"staking-eligibility-service/internal/service"
	"staking-eligibility-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Staking Eligibility Service")

	ctx := context.Background()

	// Classification thresholds
	sellCutoff, windowEnd, lateEntry, err := cfg.Thresholds.Parse()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid classification thresholds")
	}
	thresholds := domain.Thresholds{
		SellCutoff: sellCutoff,
		WindowEnd:  windowEnd,
		LateEntry:  lateEntry,
	}
	if err := thresholds.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid classification thresholds")
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	balanceRepo := pgStorage.NewBalanceRepo(pool)
	categoryCache := redisStorage.NewCategoryCache(rdb)

	// Initialize row source and business services
	rowSource := spreadsheet.NewXLSXSource(cfg.Ingest.SheetPath, log)
	calculator := service.NewRewardCalculator()
	ingestionSvc := service.NewIngestionService(
		rowSource,
		thresholds,
		walletRepo,
		categoryCache,
		cfg.Ingest.KeepUnclassified,
		log,
	)
	querySvc := service.NewRewardQueryService(walletRepo, balanceRepo, categoryCache, calculator, log)

	// Operator auth is active only when a key hash is configured.
	var authSvc ports.AuthService
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	requireAuth := cfg.Auth.OperatorKeyHash != ""
	if requireAuth {
		if cfg.JWT.Secret == "" {
			log.Fatal().Msg("jwt.secret is required when auth.operator_key_hash is set")
		}
		authSvc = service.NewOperatorAuthService(cfg.Auth.OperatorKeyHash, service.NewArgon2HashService(), tokenSvc, log)
	} else {
		log.Warn().Msg("No operator key configured, ingestion endpoint is unauthenticated")
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		IngestionSvc:   ingestionSvc,
		QuerySvc:       querySvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		RequireAuth:    requireAuth,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
