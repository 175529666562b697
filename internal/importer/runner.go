package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fdonboard/backend/internal/logger"
	"github.com/fdonboard/backend/internal/model"
)

// ErrRunnerClosed is returned by Submit after Shutdown has started.
var ErrRunnerClosed = errors.New("import runner is shut down")

// Processor runs a single upload.
type Processor interface {
	Process(ctx context.Context, upload *model.ExcelUpload, data []byte) (model.UploadCounters, error)
}

// Job is one queued upload with its file contents.
type Job struct {
	Upload *model.ExcelUpload
	Data   []byte
}

// Runner processes uploads on a fixed number of workers fed by a bounded queue.
// Jobs run detached from the submitting request and are drained on shutdown.
type Runner struct {
	proc    Processor
	workers int
	jobs    chan Job

	mu      sync.RWMutex
	closed  bool
	started bool
	group   *errgroup.Group

	// stop is closed by Shutdown to release blocked submitters. jobs is closed
	// only once every submitter that passed the closed check has returned.
	stop    chan struct{}
	senders sync.WaitGroup
}

func NewRunner(proc Processor, workers, queueSize int) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Runner{
		proc:    proc,
		workers: workers,
		jobs:    make(chan Job, queueSize),
		stop:    make(chan struct{}),
	}
}

// Start launches the workers. ctx supplies values for logging only; cancelling it
// does not interrupt running imports.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.closed {
		return
	}
	r.started = true

	base := context.WithoutCancel(ctx)
	r.group = &errgroup.Group{}
	for i := 0; i < r.workers; i++ {
		r.group.Go(func() error {
			for job := range r.jobs {
				r.run(base, job)
			}
			return nil
		})
	}
	logger.Info("import runner started", "workers", r.workers, "queue_size", cap(r.jobs))
}

// Submit queues a job, blocking while the queue is full until ctx is done or
// the runner shuts down.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return ErrRunnerClosed
	}
	r.senders.Add(1)
	r.mu.RUnlock()
	defer r.senders.Done()

	select {
	case r.jobs <- job:
		return nil
	case <-r.stop:
		return ErrRunnerClosed
	case <-ctx.Done():
		return fmt.Errorf("queue import: %w", ctx.Err())
	}
}

// Shutdown stops accepting jobs and waits for queued and running jobs to finish
// or for ctx to expire.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.stop)
	group := r.group
	r.mu.Unlock()

	if group == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		r.senders.Wait()
		close(r.jobs)
		done <- group.Wait()
	}()

	select {
	case err := <-done:
		logger.Info("import runner stopped")
		return err
	case <-ctx.Done():
		return fmt.Errorf("drain import queue: %w", ctx.Err())
	}
}

func (r *Runner) run(ctx context.Context, job Job) {
	log := logger.FromContext(logger.WithUploadID(ctx, job.Upload.ID.String()))
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("import panicked", "panic", rec)
		}
	}()

	if _, err := r.proc.Process(ctx, job.Upload, job.Data); err != nil {
		log.Error("import failed", "error", err)
	}
}
