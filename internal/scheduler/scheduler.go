// Package scheduler drives a graph on a fixed period until cancelled.
//
// Each cycle runs the graph from a fresh empty state, reports a run.Record,
// then sleeps for the interval after success or the shorter backoff after
// failure. Exactly one cycle is in flight at a time. Cycle failures never
// escape Start; only cancellation ends the loop.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/futureCreator/pulse/internal/pipeline"
	"github.com/futureCreator/pulse/internal/run"
	"github.com/futureCreator/pulse/internal/types"
)

// Runner is the unit of work driven on each cycle.
type Runner interface {
	Run(ctx context.Context, initial pipeline.State) (pipeline.State, error)
}

// Phase is the scheduler loop state.
type Phase int32

const (
	Idle Phase = iota
	Running
	Sleeping
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Sleeping:
		return "sleeping"
	}
	return fmt.Sprintf("phase(%d)", int32(p))
}

// SleepFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Reporter receives every cycle record. It runs on the scheduler goroutine.
type Reporter func(rec run.Record, next time.Duration)

// Scheduler runs a Runner forever on a fixed interval.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	backoff  time.Duration

	now    func() time.Time
	sleep  SleepFunc
	report Reporter
	logger *slog.Logger

	phase atomic.Int32
	cycle int
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the time source and sleep primitive.
func WithClock(now func() time.Time, sleep SleepFunc) Option {
	return func(s *Scheduler) {
		s.now = now
		s.sleep = sleep
	}
}

// WithReporter sets the per-cycle callback.
func WithReporter(r Reporter) Option {
	return func(s *Scheduler) { s.report = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// New validates the durations and returns a Scheduler. Non-positive
// durations are reported as *pipeline.ConfigError.
func New(r Runner, interval, backoff time.Duration, opts ...Option) (*Scheduler, error) {
	if r == nil {
		return nil, &pipeline.ConfigError{Reason: "scheduler needs a graph"}
	}
	if interval <= 0 {
		return nil, &pipeline.ConfigError{Reason: fmt.Sprintf("cycle interval must be positive, got %s", interval)}
	}
	if backoff <= 0 {
		return nil, &pipeline.ConfigError{Reason: fmt.Sprintf("failure backoff must be positive, got %s", backoff)}
	}

	s := &Scheduler{
		runner:   r,
		interval: interval,
		backoff:  backoff,
		now:      time.Now,
		sleep:    Sleep,
		report:   func(run.Record, time.Duration) {},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Phase returns the current loop state. Safe to call from any goroutine.
func (s *Scheduler) Phase() Phase { return Phase(s.phase.Load()) }

func (s *Scheduler) setPhase(p Phase) { s.phase.Store(int32(p)) }

// Start loops until ctx is cancelled and then returns nil.
func (s *Scheduler) Start(ctx context.Context) error {
	s.setPhase(Idle)
	defer s.setPhase(Idle)

	s.logger.Info("scheduler started", "interval", s.interval, "backoff", s.backoff)
	for {
		if ctx.Err() != nil {
			break
		}

		rec, ok := s.RunCycle(ctx)
		if !ok {
			break
		}

		next := s.interval
		if !rec.OK() {
			next = s.backoff
		}
		s.report(rec, next)

		s.setPhase(Sleeping)
		if err := s.sleep(ctx, next); err != nil {
			break
		}
		s.setPhase(Idle)
	}
	s.logger.Info("scheduler stopped", "cycles", s.cycle)
	return nil
}

// RunCycle executes one cycle from a fresh empty state and returns its
// record. ok is false when the cycle was interrupted by cancellation, in
// which case no record is produced.
func (s *Scheduler) RunCycle(ctx context.Context) (rec run.Record, ok bool) {
	s.setPhase(Running)
	s.cycle++
	cycle := s.cycle
	started := s.now()

	state, err := s.safeRun(ctx)
	elapsed := s.now().Sub(started)

	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("cycle interrupted by shutdown", "cycle", cycle)
			return run.Record{}, false
		}
		rec = run.Failure(cycle, started, elapsed, err)
		s.logger.Warn("cycle failed", "cycle", cycle, "kind", rec.ErrorKind, "step", rec.Step, "err", err)
		return rec, true
	}

	result, present := state.Result()
	if !present {
		err := fmt.Errorf("graph finished without a %q field", types.DefaultOutput)
		rec = run.Failure(cycle, started, elapsed, err)
		s.logger.Warn("cycle failed", "cycle", cycle, "kind", rec.ErrorKind, "err", err)
		return rec, true
	}
	rec = run.Success(cycle, started, elapsed, result)
	s.logger.Debug("cycle succeeded", "cycle", cycle, "duration", elapsed)
	return rec, true
}

// safeRun converts a panicking step into an ordinary cycle failure.
func (s *Scheduler) safeRun(ctx context.Context) (state pipeline.State, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during cycle: %v", r)
		}
	}()
	return s.runner.Run(ctx, pipeline.State{})
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
