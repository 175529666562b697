// Package scheduler runs the cron job that fails uploads stuck in pending or processing.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// StaleUploadFailer is the part of the upload ledger the sweeper needs.
type StaleUploadFailer interface {
	FailStale(ctx context.Context, cutoff time.Time, details string) (int64, error)
}

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression with a seconds field (e.g., "0 */5 * * * *" for every 5 minutes)
	Schedule string
	// StaleAfter is how long an upload may stay unfinished before it is failed
	StaleAfter time.Duration
	// Timeout is the maximum duration of one sweep
	Timeout time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule:   "0 */5 * * * *",
		StaleAfter: 30 * time.Minute,
		Timeout:    time.Minute,
		Enabled:    true,
	}
}

// Scheduler periodically sweeps the upload ledger for abandoned imports.
type Scheduler struct {
	cron    *cron.Cron
	uploads StaleUploadFailer
	config  Config
	logger  *slog.Logger
	entryID cron.EntryID
	now     func() time.Time
}

// New creates a new Scheduler instance
func New(cfg Config, uploads StaleUploadFailer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		uploads: uploads,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Start registers the sweep and starts the cron loop
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Sweeper is disabled, skipping start")
		return nil
	}
	if s.config.StaleAfter <= 0 {
		return fmt.Errorf("stale upload threshold must be positive, got %s", s.config.StaleAfter)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, s.runSweepJob)
	if err != nil {
		return fmt.Errorf("schedule sweeper %q: %w", s.config.Schedule, err)
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Sweeper started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("stale_after", s.config.StaleAfter),
	)

	return nil
}

// Stop gracefully stops the scheduler. The returned context is done once a
// running sweep has finished.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping sweeper...")
	return s.cron.Stop()
}

// RunNow triggers an immediate sweep
func (s *Scheduler) RunNow() {
	go s.runSweepJob()
}

// Sweep fails every upload accepted more than StaleAfter ago that has not
// reached a terminal status, and returns how many were failed.
func (s *Scheduler) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.config.StaleAfter)
	details := fmt.Sprintf("import abandoned: not finished within %s", s.config.StaleAfter)
	return s.uploads.FailStale(ctx, cutoff, details)
}

func (s *Scheduler) runSweepJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	count, err := s.Sweep(ctx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Stale upload sweep failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return
	}

	if count > 0 {
		s.logger.Warn("Failed stale uploads",
			slog.Int64("uploads", count),
			slog.Duration("duration", duration),
		)
		return
	}
	s.logger.Debug("Stale upload sweep found nothing", slog.Duration("duration", duration))
}

// NextRun returns the next scheduled sweep, or the zero time when not started
func (s *Scheduler) NextRun() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}
