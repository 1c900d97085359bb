package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CycleRunner executes one change-sync cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context)
}

// ChangeSyncScheduler fires the sync cycle on a fixed interval. A mutex
// acquired with TryLock enforces single-flight: when a cycle outlives the
// interval, the overlapping ticks are dropped rather than queued.
type ChangeSyncScheduler struct {
	runner   CycleRunner
	interval time.Duration
	logger   *zap.Logger

	inFlight sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewChangeSyncScheduler creates a new ChangeSyncScheduler
func NewChangeSyncScheduler(runner CycleRunner, interval time.Duration, logger *zap.Logger) *ChangeSyncScheduler {
	return &ChangeSyncScheduler{
		runner:   runner,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the tick loop in a background goroutine.
func (s *ChangeSyncScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.loop(ctx)
	s.logger.Info("Change sync scheduler started",
		zap.Duration("interval", s.interval),
	)
}

// Stop cancels the loop and blocks until the in-flight cycle, if any, returns.
func (s *ChangeSyncScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("Change sync scheduler stopped")
}

func (s *ChangeSyncScheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *ChangeSyncScheduler) tick(ctx context.Context) {
	if !s.inFlight.TryLock() {
		s.logger.Debug("Previous sync cycle still in flight, tick skipped")
		return
	}
	defer s.inFlight.Unlock()

	cycleID := uuid.New().String()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Sync cycle panicked",
				zap.String("cycle_id", cycleID),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
		}
	}()

	s.logger.Debug("Sync cycle starting", zap.String("cycle_id", cycleID))
	s.runner.RunCycle(ctx)
}
