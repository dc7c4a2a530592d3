// Package scheduler runs the grid's absolute-time tick loop: a dedicated
// goroutine that advances a next_tick instant and runs one evaluator tick
// whenever wall-clock time catches up to it.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orcagrid/orca-go/pkg/grid"
)

// Evaluator is the single method the scheduler needs from pkg/engine; kept
// as an interface so the scheduler can be tested without a real registry.
type Evaluator interface {
	Tick(ctx *grid.Context)
}

// Scheduler drives Evaluator.Tick at the grid's configured tempo. It uses
// absolute-time increments (next_tick += tick_duration) rather than
// sleep-for-duration, so a stalled tick is absorbed on the next iteration
// instead of compounding drift.
type Scheduler struct {
	grid *grid.Context
	eval Evaluator
	log  *slog.Logger

	// now is swappable in tests so the clock doesn't have to be real.
	now func() time.Time
}

// New builds a Scheduler over ctx, driven by eval.
func New(ctx *grid.Context, eval Evaluator, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{grid: ctx, eval: eval, log: log, now: time.Now}
}

// Run drives the tick loop until ctx is cancelled or the grid's run state
// becomes Shutdown. It is the sole long-lived goroutine the scheduler
// package starts; callers run it under RunGroup, optionally alongside sink
// goroutines (pkg/app passes none: its sinks are called synchronously by
// the note pipeline inside each tick).
func (s *Scheduler) Run(ctx context.Context) error {
	nextTick := s.now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tickDuration := s.tickDuration()
		now := s.now()

		if !now.Before(nextTick) {
			s.grid.Mu.Lock()
			state := s.grid.State()
			if state == grid.Running {
				s.eval.Tick(s.grid)
			}
			s.grid.Mu.Unlock()

			nextTick = nextTick.Add(tickDuration)
			if state == grid.Shutdown {
				return nil
			}
			continue
		}

		wait := nextTick.Sub(now)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// tickDuration reads the grid's current tempo/divisions under lock; a
// non-positive result (misconfigured tempo) falls back to a 125ms default
// (120 BPM at 4 divisions) so the loop never spins on a zero sleep.
func (s *Scheduler) tickDuration() time.Duration {
	s.grid.Mu.Lock()
	millis := s.grid.TickMillis()
	s.grid.Mu.Unlock()
	if millis <= 0 {
		millis = 125
	}
	return time.Duration(millis) * time.Millisecond
}

// RunGroup starts the scheduler and the given sink goroutines together
// under one errgroup.Group, so a failure or cancellation in any of them
// tears down the rest.
func RunGroup(ctx context.Context, sched *Scheduler, sinks ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Run(gctx) })
	for _, sink := range sinks {
		sink := sink
		g.Go(func() error { return sink(gctx) })
	}
	return g.Wait()
}
