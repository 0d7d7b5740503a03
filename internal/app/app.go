package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ayo6706/vendor-payouts/internal/api"
	"github.com/ayo6706/vendor-payouts/internal/config"
	"github.com/ayo6706/vendor-payouts/internal/db"
	"github.com/ayo6706/vendor-payouts/internal/idempotency"
	"github.com/ayo6706/vendor-payouts/internal/observability"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/ayo6706/vendor-payouts/internal/service"
	"github.com/ayo6706/vendor-payouts/internal/worker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Run bootstraps the HTTP server and background workers, blocking until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	observability.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if cfg.DBAutoMigrate {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("database schema ensured")
	}

	// A nil *redis.Client stored in the interface would not compare equal to nil.
	var cache redis.Cmdable
	if cfg.RedisURL != "" {
		redisClient, err := newRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		cache = redisClient
	} else {
		logger.Info("redis disabled; idempotency replays are served from postgres")
	}

	tokens, err := service.NewAuthenticator(service.TokenConfig{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		return fmt.Errorf("init authenticator: %w", err)
	}

	repo := repository.NewRepository(pool)
	store := repository.NewStore(pool)
	idemStore := idempotency.NewStore(cache, repository.New(pool), cfg.IdempotencyTTL)

	authSvc := service.NewAuthService(repo, tokens)
	vendorSvc := service.NewVendorService(repo)
	payoutSvc := service.NewPayoutService(store, service.WithActiveVendorRequired(cfg.RequireActiveVendor))
	verifier := service.NewAuditVerificationService(store, payoutSvc.Ledger())

	stopVerifier := worker.NewPeriodicWorker("audit_verification", verifier).
		WithInterval(cfg.AuditVerifyInterval).
		Run(ctx)
	stopPurge := worker.NewPeriodicWorker("idempotency_purge", worker.JobFunc(func(ctx context.Context) error {
		n, err := idemStore.Purge(ctx, time.Now().Add(-idemStore.TTL()))
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("expired idempotency keys purged", zap.Int64("count", n))
		}
		return nil
	})).WithInterval(cfg.IdempotencyTTL).Run(ctx)

	router := api.NewRouter(api.Dependencies{
		Config:        cfg,
		Logger:        logger,
		DB:            pool,
		Redis:         cache,
		Tokens:        tokens,
		Idempotency:   idemStore,
		AuthService:   authSvc,
		VendorService: vendorSvc,
		PayoutService: payoutSvc,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("port", cfg.HTTPPort))
		serverErr <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	logger.Info("stopping workers")
	stopVerifier()
	stopPurge()

	logger.Info("shutdown complete")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info", "":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func newRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
