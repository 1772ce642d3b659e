package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler enqueues enrichment passes on a cron schedule.
type Scheduler struct {
	cron  *cron.Cron
	queue *Queue
	log   zerolog.Logger
}

// NewScheduler creates a scheduler that enqueues on q according to spec,
// a standard 5-field cron expression or a descriptor like "@every 15m".
func NewScheduler(q *Queue, spec string, log zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(cron.WithLogger(cronLogger{log: log})),
		queue: q,
		log:   log,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("parsing enrich schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("entries", len(s.cron.Entries())).Msg("enrichment scheduler started")
}

// Stop halts the schedule. The returned context is done once any running
// tick has returned.
func (s *Scheduler) Stop() context.Context {
	s.log.Info().Msg("enrichment scheduler stopping")
	return s.cron.Stop()
}

// RunNow enqueues a pass immediately.
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	if _, err := s.queue.Enqueue(context.Background(), "schedule"); err != nil {
		s.log.Warn().Err(err).Msg("enqueueing scheduled enrichment")
	}
}

// cronLogger routes cron's own logging to zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
