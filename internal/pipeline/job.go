// Package pipeline provides the shared batch-job scaffolding. Each analytics
// job is an independently scheduled, single-threaded loop; jobs coordinate
// only through the store, never in process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feederwatch/fw-pipeline/internal/adapter"
	"github.com/feederwatch/fw-pipeline/internal/logger"
)

// Job defines the interface for batch job implementations
//
//go:generate mockgen -source=job.go -destination=../mocks/job.go -package=mocks -mock_names=Job=MockJob
type Job interface {
	// Start begins the job's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the job
	// This should wait for any in-progress cycle to complete
	Stop(ctx context.Context) error

	// Name returns the job's name for logging and identification
	Name() string
}

// CycleFunc runs one batch cycle. Errors are logged and the loop continues;
// retry behavior is emergent from the fixed cadence.
type CycleFunc func(ctx context.Context) error

// Runner drives a cycle function on a fixed cadence. It implements Job.
type Runner struct {
	name      string
	interval  time.Duration
	cycle     CycleFunc
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewRunner creates a runner that invokes cycle every interval
func NewRunner(name string, interval time.Duration, clock adapter.Clock, cycle CycleFunc) *Runner {
	return &Runner{
		name:      name,
		interval:  interval,
		cycle:     cycle,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the job's name
func (r *Runner) Name() string {
	return r.name
}

// Start begins the job's main loop. Blocks until the context is canceled or
// Stop is called.
func (r *Runner) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("job %s already running", r.name)
	}
	defer func() {
		r.running.Store(false)
		close(r.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting job",
		zap.String("job", r.name),
		zap.Duration("interval", r.interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Job stopping due to context cancellation",
				zap.String("job", r.name), zap.Error(ctx.Err()))
			return nil
		case <-r.stopChan:
			logger.InfoCtx(ctx, "Job stop requested", zap.String("job", r.name))
			return nil
		default:
			start := r.clock.Now()
			if err := r.cycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err, zap.String("job", r.name))
				}
			}
			logger.DebugCtx(ctx, "Cycle completed",
				zap.String("job", r.name),
				zap.Duration("duration", r.clock.Since(start)),
			)

			if !r.sleep(ctx, r.interval) {
				// Interrupted; top of the loop reports the reason
				continue
			}
		}
	}
}

// Stop gracefully stops the job with timeout support
func (r *Runner) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping job", zap.String("job", r.name))
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Job stopped gracefully", zap.String("job", r.name))
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Job stop interrupted by context timeout", zap.String("job", r.name))
		return ctx.Err()
	}
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if the sleep completed.
func (r *Runner) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-r.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}
