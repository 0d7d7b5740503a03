package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodicWorkerRunsImmediatelyAndOnTick(t *testing.T) {
	var runs atomic.Int32
	w := NewPeriodicWorker("test", JobFunc(func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})).WithInterval(10 * time.Millisecond)

	stop := w.Run(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, after, runs.Load())
}

func TestPeriodicWorkerSurvivesFailures(t *testing.T) {
	var runs atomic.Int32
	w := NewPeriodicWorker("failing", JobFunc(func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})).WithInterval(10 * time.Millisecond)

	stop := w.Run(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	stop()
}

func TestPeriodicWorkerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewPeriodicWorker("ctx", JobFunc(func(ctx context.Context) error { return nil }))

	stop := w.Run(ctx)
	cancel()
	stop()
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	w := NewPeriodicWorker("interval", JobFunc(func(ctx context.Context) error { return nil })).WithInterval(0)
	require.Equal(t, time.Hour, w.interval)
}
