package service

import (
	"context"
	"os"
	"testing"

	"github.com/ayo6706/vendor-payouts/internal/db"
	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to DATABASE_URL, applies the schema and empties every table.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	t.Cleanup(pool.Close)

	require.NoError(t, db.EnsureSchema(context.Background(), pool))

	// Row-level triggers do not fire on TRUNCATE, so the audit table can be reset here.
	if _, err := pool.Exec(context.Background(),
		"TRUNCATE TABLE payout_audit, payouts, vendors, users, idempotency_keys RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return pool
}

func seedActor(t *testing.T, pool *pgxpool.Pool, role domain.Role) domain.Actor {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
	}
	created, err := repository.NewRepository(pool).CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.True(t, created)
	return domain.Actor{ID: user.ID, Role: role}
}

func seedVendor(t *testing.T, pool *pgxpool.Pool, name string, active bool) *models.Vendor {
	t.Helper()

	upi := "vendor@upi"
	vendor := &models.Vendor{ID: uuid.New(), Name: name, UPIID: &upi, IsActive: active}
	require.NoError(t, repository.NewRepository(pool).CreateVendor(context.Background(), vendor))
	return vendor
}

func auditActions(t *testing.T, ledger *AuditLedger, payoutID uuid.UUID) []domain.AuditAction {
	t.Helper()

	entries, err := ledger.Collect(context.Background(), payoutID)
	require.NoError(t, err)
	actions := make([]domain.AuditAction, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}
