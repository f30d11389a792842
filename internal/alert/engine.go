// Package alert implements the reminder alerting loop: a polling client
// that raises two-tier alerts (approaching, due) for scheduled reminders.
package alert

import (
	"context"
	"log"
	"sync"
	"time"

	"medtrack/internal/domain"
)

// Default evaluation windows.
const (
	DefaultTick       = 60 * time.Second
	DefaultWarnWindow = 5 * time.Minute
	DefaultDueWindow  = time.Minute
)

// Config controls the evaluation windows and poll cadence.
type Config struct {
	// Tick is the poll interval.
	Tick time.Duration
	// WarnWindow is how far ahead of the scheduled time the approaching
	// alert fires.
	WarnWindow time.Duration
	// DueWindow is how long after the scheduled time the due alert can
	// still fire.
	DueWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.Tick <= 0 {
		c.Tick = DefaultTick
	}
	if c.WarnWindow <= 0 {
		c.WarnWindow = DefaultWarnWindow
	}
	if c.DueWindow <= 0 {
		c.DueWindow = DefaultDueWindow
	}
	return c
}

// Sink receives raised alerts.
type Sink interface {
	// Warn is an approaching-time alert; in is the time remaining.
	Warn(r domain.Reminder, in time.Duration)
	// Due is an at-time alert.
	Due(r domain.Reminder)
}

// Acker reports a raised alert back to the server. Failures are accepted
// silently; local state already suppresses duplicate firing.
type Acker interface {
	MarkNotified(ctx context.Context, id int64) error
}

// Source lists the reminders to evaluate.
type Source interface {
	ListReminders(ctx context.Context) ([]domain.Reminder, error)
}

type reminderState struct {
	warned   bool
	dueFired bool
}

// Engine holds the per-reminder alert state machine. Each reminder moves
// monotonically unseen -> warned -> fired; a tier never fires twice for
// the same reminder while it remains known.
type Engine struct {
	cfg   Config
	sink  Sink
	acker Acker
	now   func() time.Time

	mu    sync.Mutex
	state map[int64]*reminderState
}

// NewEngine creates an Engine with the given sink and acker.
func NewEngine(cfg Config, sink Sink, acker Acker) *Engine {
	return &Engine{
		cfg:   cfg.withDefaults(),
		sink:  sink,
		acker: acker,
		now:   time.Now,
		state: make(map[int64]*reminderState),
	}
}

// Config returns the effective configuration after defaulting.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate runs one pass over the current reminder list. State for
// reminders absent from the list is pruned, so a deleted-then-recreated
// reminder can alert again.
func (e *Engine) Evaluate(ctx context.Context, reminders []domain.Reminder) {
	now := e.now()

	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[int64]bool, len(reminders))
	for _, r := range reminders {
		seen[r.ID] = true
		st := e.state[r.ID]
		if st == nil {
			st = &reminderState{}
			e.state[r.ID] = st
		}

		delta := r.DateTime.Sub(now)

		// Approaching tier. Suppressed once the server already knows the
		// reminder was notified.
		if delta > 0 && delta <= e.cfg.WarnWindow && !r.Notified && !st.warned {
			st.warned = true
			e.sink.Warn(r, delta)
			e.ack(ctx, r.ID)
		}

		// Due tier. Fires regardless of the server-side notified flag so
		// the at-time alert is never lost to an earlier warning.
		if delta <= 0 && delta > -e.cfg.DueWindow && !st.dueFired {
			st.dueFired = true
			e.sink.Due(r)
			e.ack(ctx, r.ID)
		}
	}

	for id := range e.state {
		if !seen[id] {
			delete(e.state, id)
		}
	}
}

// Forget drops local state for a reminder.
func (e *Engine) Forget(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.state, id)
}

func (e *Engine) ack(ctx context.Context, id int64) {
	if err := e.acker.MarkNotified(ctx, id); err != nil {
		log.Printf("alert: mark notified %d: %v", id, err)
	}
}
