package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tally-app/tally/internal/enrich"
)

// ErrClosed is returned when enqueueing on a stopped queue.
var ErrClosed = errors.New("queue is closed")

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one enrichment pass.
type Job struct {
	ID         string
	Reason     string
	Status     Status
	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    enrich.Summary
	Error      string
}

// Runner performs an enrichment pass.
type Runner interface {
	EnrichUncategorized(ctx context.Context) (enrich.Summary, error)
}

const historySize = 50

// Queue runs enrichment passes on a single background worker, so passes
// never overlap. Triggers that arrive while a pass is still waiting to start
// are folded into it.
type Queue struct {
	runner  Runner
	log     zerolog.Logger
	onDone  func(Job)
	jobs    chan *Job
	wg      sync.WaitGroup
	mu      sync.Mutex
	pending *Job
	history []Job
	closed  bool
	now     func() time.Time
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithQueueLogger sets the logger.
func WithQueueLogger(l zerolog.Logger) QueueOption {
	return func(q *Queue) { q.log = l }
}

// WithOnDone registers a callback run after every job finishes.
func WithOnDone(fn func(Job)) QueueOption {
	return func(q *Queue) { q.onDone = fn }
}

// NewQueue creates a queue for runner. Call Start to begin processing.
func NewQueue(runner Runner, opts ...QueueOption) *Queue {
	q := &Queue{
		runner: runner,
		log:    zerolog.Nop(),
		jobs:   make(chan *Job, 1),
		now:    time.Now,
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Start launches the worker. Jobs run with ctx.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Add(1)
	go q.worker(ctx)
}

// Trigger enqueues a pass after an import.
func (q *Queue) Trigger(ctx context.Context) error {
	_, err := q.Enqueue(ctx, "import")
	return err
}

// Enqueue schedules a pass and returns its job ID. If a pass is already
// waiting to start, its ID is returned instead.
func (q *Queue) Enqueue(_ context.Context, reason string) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", ErrClosed
	}
	if q.pending != nil {
		return q.pending.ID, nil
	}

	job := &Job{
		ID:        uuid.New().String(),
		Reason:    reason,
		Status:    StatusPending,
		CreatedAt: q.now(),
	}
	// The buffer holds exactly the pending job, so this never blocks.
	q.jobs <- job
	q.pending = job
	q.log.Debug().Str("job_id", job.ID).Str("reason", reason).Msg("enrichment queued")
	return job.ID, nil
}

// Jobs returns the most recent finished jobs, oldest first.
func (q *Queue) Jobs() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Job(nil), q.history...)
}

// Stop refuses new jobs, lets any queued job finish and waits for the
// worker until ctx is done.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for enrichment worker: %w", ctx.Err())
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.run(ctx, job)
		}
	}
}

func (q *Queue) run(ctx context.Context, job *Job) {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()

	job.Status = StatusRunning
	job.StartedAt = q.now()
	log := q.log.With().Str("job_id", job.ID).Str("reason", job.Reason).Logger()

	sum, err := q.runner.EnrichUncategorized(ctx)
	job.FinishedAt = q.now()
	job.Summary = sum
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		log.Warn().Err(err).Msg("enrichment job failed")
	} else {
		job.Status = StatusCompleted
		log.Info().Int("updated", sum.Updated).Int("missing", sum.Missing).Msg("enrichment job completed")
	}

	q.mu.Lock()
	q.history = append(q.history, *job)
	if len(q.history) > historySize {
		q.history = q.history[len(q.history)-historySize:]
	}
	q.mu.Unlock()

	if q.onDone != nil {
		q.onDone(*job)
	}
}
