// Package scheduler runs the periodic maintenance jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BatchPruner removes import batches created before a cutoff.
type BatchPruner interface {
	PruneBatches(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler prunes the import audit trail on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	pruner    BatchPruner
	retention time.Duration
	timeout   time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New registers the prune job for spec. A retentionDays of 0 keeps batches
// forever and registers nothing.
func New(spec string, retentionDays int, pruner BatchPruner, logger *zap.Logger) (*Scheduler, error) {
	jobLogger := cronLogger{logger.Sugar().Named("cron")}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(jobLogger),
			cron.WithChain(cron.Recover(jobLogger), cron.SkipIfStillRunning(jobLogger)),
		),
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		timeout:   time.Minute,
		logger:    logger,
		now:       time.Now,
	}

	if retentionDays == 0 {
		logger.Info("import batch pruning disabled")
		return s, nil
	}

	if _, err := s.cron.AddFunc(spec, s.runPrune); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stopped before running job finished")
	}
}

// Prune deletes batches older than the retention window once.
func (s *Scheduler) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.retention)

	deleted, err := s.pruner.PruneBatches(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.Info("pruned import batches",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff),
	)
	return deleted, nil
}

func (s *Scheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.Prune(ctx); err != nil {
		s.logger.Error("failed to prune import batches", zap.Error(err))
	}
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
