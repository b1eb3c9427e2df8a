// Package schedule runs batch jobs on a cron schedule.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one scheduled unit of work. ctx is cancelled by Stop.
type Job func(ctx context.Context)

// Scheduler runs a single job on a standard five-field cron spec or a
// descriptor such as @hourly. Overlapping firings are skipped.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	job    Job
	log    zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New validates spec and registers job. Nothing runs until Start.
func New(spec string, job Job, log zerolog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		spec:   spec,
		job:    job,
		log:    log.With().Str("component", "schedule").Logger(),
		ctx:    ctx,
		cancel: cancel,
	}

	cronLog := cron.PrintfLogger(&s.log)
	s.cron = cron.New(
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("scheduling %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Time("next", s.Next()).Msg("scheduler started")
}

// Stop halts scheduling, cancels a running job's context and returns a
// context that is done once the running job has returned.
func (s *Scheduler) Stop() context.Context {
	s.log.Info().Msg("scheduler stopping")
	s.cancel()
	return s.cron.Stop()
}

// RunNow runs the job once on the caller's goroutine.
func (s *Scheduler) RunNow() {
	s.run()
}

// Next is the next scheduled firing, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) run() {
	start := time.Now()
	s.log.Info().Msg("scheduled run started")
	s.job(s.ctx)
	s.log.Info().Dur("duration", time.Since(start)).Msg("scheduled run finished")
}
