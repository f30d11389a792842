package alert

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Runner drives an Engine from a Source on a fixed tick.
type Runner struct {
	engine *Engine
	source Source
	sched  *gocron.Scheduler
}

// NewRunner creates a Runner for the given engine and reminder source.
func NewRunner(engine *Engine, source Source) *Runner {
	return &Runner{engine: engine, source: source}
}

// Start begins polling in the background. SingletonMode skips a tick when
// the previous evaluation is still running.
func (r *Runner) Start() error {
	r.sched = gocron.NewScheduler(time.UTC)
	_, err := r.sched.Every(int(r.engine.Config().Tick.Seconds())).Seconds().SingletonMode().Do(r.runOnce)
	if err != nil {
		return err
	}
	r.sched.StartAsync()
	return nil
}

// Stop halts the polling loop.
func (r *Runner) Stop() {
	if r.sched != nil {
		r.sched.Stop()
	}
}

func (r *Runner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.engine.Config().Tick)
	defer cancel()

	reminders, err := r.source.ListReminders(ctx)
	if err != nil {
		log.Printf("alert: list reminders: %v", err)
		return
	}
	r.engine.Evaluate(ctx, reminders)
}
