package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ayo6706/vendor-payouts/internal/db"
	"github.com/ayo6706/vendor-payouts/internal/domain"
	"github.com/ayo6706/vendor-payouts/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = godotenv.Load("../../.env") // Load from root
}

func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("Skipping integration test: DATABASE_URL not set")
	}

	pool, err := db.Connect(context.Background(), os.Getenv("DATABASE_URL"), db.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	t.Cleanup(pool.Close)
	require.NoError(t, db.EnsureSchema(context.Background(), pool))
	return pool
}

func TestCreateUserAndVendor(t *testing.T) {
	pool := connect(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New(),
		Email:        "repo_" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleOps,
	}
	created, err := repo.CreateUser(ctx, user)
	require.NoError(t, err)
	require.True(t, created)

	dup := *user
	dup.ID = uuid.New()
	created, err = repo.CreateUser(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, created, "email is unique")

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, domain.RoleOps, byEmail.Role)

	upi := "shop@upi"
	vendor := &models.Vendor{ID: uuid.New(), Name: "Repo Vendor", UPIID: &upi, IsActive: true}
	require.NoError(t, repo.CreateVendor(ctx, vendor))

	got, err := repo.GetVendor(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Repo Vendor", got.Name)
	require.NotNil(t, got.UPIID)
	assert.Equal(t, upi, *got.UPIID)

	got.Name = "Renamed"
	got.IsActive = false
	require.NoError(t, repo.UpdateVendor(ctx, got))
	again, err := repo.GetVendor(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", again.Name)
	assert.False(t, again.IsActive)

	n, err := repo.DeleteVendor(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.GetVendor(ctx, vendor.ID)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func seedPayout(t *testing.T, pool *pgxpool.Pool) (Payout, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	repo := NewRepository(pool)

	user := &models.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", PasswordHash: "hash", Role: domain.RoleOps}
	_, err := repo.CreateUser(ctx, user)
	require.NoError(t, err)
	vendor := &models.Vendor{ID: uuid.New(), Name: "Stream Vendor", IsActive: true}
	require.NoError(t, repo.CreateVendor(ctx, vendor))

	payout, err := New(pool).InsertPayout(ctx, InsertPayoutParams{
		ID:           ToPgUUID(uuid.New()),
		VendorID:     ToPgUUID(vendor.ID),
		AmountMicros: 2_500_000,
		Mode:         string(domain.PayoutModeUPI),
		Status:       string(domain.PayoutStatusDraft),
	})
	require.NoError(t, err)
	return payout, user.ID
}

func TestTransitionPayoutStatusIsCompareAndSwap(t *testing.T) {
	pool := connect(t)
	store := NewStore(pool)
	ctx := context.Background()
	payout, _ := seedPayout(t, pool)

	err := store.RunInTx(ctx, func(q *Queries) error {
		_, err := q.TransitionPayoutStatus(ctx, TransitionPayoutStatusParams{
			NextStatus:     string(domain.PayoutStatusApproved),
			ID:             payout.ID,
			ExpectedStatus: string(domain.PayoutStatusSubmitted),
		})
		return err
	})
	require.ErrorIs(t, err, pgx.ErrNoRows)

	err = store.RunInTx(ctx, func(q *Queries) error {
		locked, err := q.GetPayoutForUpdate(ctx, payout.ID)
		if err != nil {
			return err
		}
		_, err = q.TransitionPayoutStatus(ctx, TransitionPayoutStatusParams{
			NextStatus:     string(domain.PayoutStatusSubmitted),
			ID:             locked.ID,
			ExpectedStatus: locked.Status,
		})
		return err
	})
	require.NoError(t, err)

	current, err := store.Queries().GetPayout(ctx, payout.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PayoutStatusSubmitted), current.Status)
}

func TestStreamPayoutAuditStopsEarly(t *testing.T) {
	pool := connect(t)
	q := New(pool)
	ctx := context.Background()
	payout, userID := seedPayout(t, pool)

	for _, action := range []domain.AuditAction{domain.AuditActionCreated, domain.AuditActionSubmitted} {
		_, err := q.InsertPayoutAudit(ctx, InsertPayoutAuditParams{
			PayoutID:    payout.ID,
			Action:      string(action),
			PerformedBy: ToPgUUID(userID),
		})
		require.NoError(t, err)
	}

	var all []string
	require.NoError(t, q.StreamPayoutAudit(ctx, payout.ID, func(row ListPayoutAuditRow) error {
		all = append(all, row.Action)
		return nil
	}))
	assert.Equal(t, []string{"CREATED", "SUBMITTED"}, all)

	var first []string
	require.NoError(t, q.StreamPayoutAudit(ctx, payout.ID, func(row ListPayoutAuditRow) error {
		first = append(first, row.Action)
		return ErrStopStream
	}))
	assert.Equal(t, []string{"CREATED"}, first)

	boom := errors.New("boom")
	err := q.StreamPayoutAudit(ctx, payout.ID, func(ListPayoutAuditRow) error { return boom })
	assert.ErrorIs(t, err, boom)

	count, err := q.CountPayoutAudit(ctx, payout.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
