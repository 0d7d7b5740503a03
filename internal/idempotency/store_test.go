package idempotency

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/ayo6706/vendor-payouts/internal/db"
	"github.com/ayo6706/vendor-payouts/internal/repository"
	"github.com/ayo6706/vendor-payouts/internal/testutil/dblock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	release := dblock.Acquire()
	code := m.Run()
	release()
	os.Exit(code)
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), connString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, db.EnsureSchema(context.Background(), pool))
	return NewStore(nil, repository.New(pool), time.Hour)
}

func TestScopedKey(t *testing.T) {
	assert.Equal(t, "actor-1:abc", ScopedKey("actor-1", "abc"))
	assert.NotEqual(t, ScopedKey("actor-1", "abc"), ScopedKey("actor-2", "abc"))
	assert.Equal(t, "payouts:idempotency:actor-1:abc", redisKey(ScopedKey("actor-1", "abc")))
}

func TestReserveFinalizeLookup(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	key := ScopedKey(uuid.NewString(), "create-1")

	_, err := store.Lookup(ctx, key, "hash-a")
	require.ErrorIs(t, err, ErrNotFound)

	ok, err := store.Reserve(ctx, key, "hash-a", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Reserve(ctx, key, "hash-a", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must lose")

	_, err = store.Lookup(ctx, key, "hash-a")
	require.ErrorIs(t, err, ErrInProgress)

	rec, err := store.Finalize(ctx, key, "hash-a", http.StatusCreated, []byte(`{"payout":{}}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Status)

	replay, err := store.Lookup(ctx, key, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, `{"payout":{}}`, string(replay.Body))
	assert.Equal(t, "postgres", replay.ServedBy)

	_, err = store.Lookup(ctx, key, "hash-b")
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestReleaseAllowsRetry(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	key := ScopedKey(uuid.NewString(), "create-2")

	ok, err := store.Reserve(ctx, key, "hash", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Release(ctx, key))

	ok, err = store.Reserve(ctx, key, "hash", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWaitForCompletionHonoursContext(t *testing.T) {
	store := setupStore(t)
	key := ScopedKey(uuid.NewString(), "slow")

	ok, err := store.Reserve(context.Background(), key, "hash", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_, err = store.WaitForCompletion(ctx, key, "hash")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPurgeRemovesOldRecords(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	key := ScopedKey(uuid.NewString(), "old")

	ok, err := store.Reserve(ctx, key, "hash", http.MethodPost, "/v1/payouts")
	require.NoError(t, err)
	require.True(t, ok)

	n, err := store.Purge(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = store.Lookup(ctx, key, "hash")
	assert.ErrorIs(t, err, ErrNotFound)
}
