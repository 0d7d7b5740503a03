package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ayo6706/vendor-payouts/internal/config"
	"github.com/ayo6706/vendor-payouts/internal/db"
	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/ayo6706/vendor-payouts/internal/service"
	"go.uber.org/zap"
)

type seedUser struct {
	email    string
	password string
	role     domain.Role
}

var demoUsers = []seedUser{
	{email: "ops@demo.com", password: "ops123", role: domain.RoleOps},
	{email: "finance@demo.com", password: "fin123", role: domain.RoleFinance},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	auth := service.NewAuthService(repository.NewRepository(pool), nil)
	for _, u := range demoUsers {
		created, err := auth.EnsureUser(ctx, u.email, u.password, u.role)
		if err != nil {
			return fmt.Errorf("seed %s: %w", u.email, err)
		}
		if created {
			logger.Info("user created", zap.String("email", u.email), zap.String("role", string(u.role)))
		} else {
			logger.Info("user already exists", zap.String("email", u.email))
		}
	}
	return nil
}
