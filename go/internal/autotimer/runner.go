package autotimer

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Runner serializes every controller input on one goroutine: host events,
// bridge messages and timer fires.
type Runner struct {
	controller *Controller
	scheduler  *Scheduler
	workCh     chan func(*Controller)
}

// NewRunner creates a runner for the controller and the scheduler feeding it.
func NewRunner(controller *Controller, scheduler *Scheduler) *Runner {
	return &Runner{
		controller: controller,
		scheduler:  scheduler,
		workCh:     make(chan func(*Controller), 64),
	}
}

// Submit queues work for the controller. It blocks until the work is queued
// or ctx is done.
func (r *Runner) Submit(ctx context.Context, fn func(*Controller)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case r.workCh <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes queued work and timer fires until ctx is cancelled. All
// timers are destroyed on return.
func (r *Runner) Run(ctx context.Context) error {
	log.Info().Msg("review timer runner started")
	defer func() {
		r.scheduler.Stop()
		log.Info().Msg("review timer runner stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-r.workCh:
			r.exec(fn)
		case f := <-r.scheduler.Fired():
			r.exec(func(c *Controller) { c.OnTimerFired(f) })
		}
	}
}

func (r *Runner) exec(fn func(*Controller)) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("recovered from panic in runner work")
		}
	}()
	fn(r.controller)
}
