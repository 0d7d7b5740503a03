package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ayo6706/vendor-payouts/internal/observability"
	"go.uber.org/zap"
)

// Job is one unit of background work run on a fixed interval.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// PeriodicWorker runs a job immediately and then on every tick until stopped.
type PeriodicWorker struct {
	name     string
	job      Job
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewPeriodicWorker constructs a worker with a default hourly interval.
func NewPeriodicWorker(name string, job Job) *PeriodicWorker {
	return &PeriodicWorker{
		name:     name,
		job:      job,
		interval: time.Hour,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// WithInterval updates the run interval. Non-positive values are ignored.
func (w *PeriodicWorker) WithInterval(interval time.Duration) *PeriodicWorker {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// Start blocks and runs the job at the configured interval.
func (w *PeriodicWorker) Start(ctx context.Context) {
	defer close(w.done)
	zap.L().Info("worker starting", zap.String("worker", w.name), zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("worker context canceled", zap.String("worker", w.name))
			return
		case <-w.stopCh:
			zap.L().Info("worker stop signal received", zap.String("worker", w.name))
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight run to finish.
func (w *PeriodicWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
	})
	<-w.done
}

// Run starts the worker in a goroutine and returns a stop function.
func (w *PeriodicWorker) Run(ctx context.Context) func() {
	go w.Start(ctx)
	return w.Stop
}

func (w *PeriodicWorker) runOnce(ctx context.Context) {
	if err := w.job.Run(ctx); err != nil {
		observability.IncrementWorkerRun(w.name, "failed")
		zap.L().Error("worker run failed", zap.String("worker", w.name), zap.Error(err))
		return
	}
	observability.IncrementWorkerRun(w.name, "success")
}
