package task

import (
	"context"
	"fmt"
	"time"
)

// DefaultReminderInterval is how often the scheduler rescans when the
// config does not say otherwise.
const DefaultReminderInterval = 24 * time.Hour

// Classify decides whether a task warrants a reminder relative to today.
// Completed tasks never do. Overdue tasks get an error-severity reminder,
// tasks due today or tomorrow a warning.
func Classify(t Task, today Date) (Notification, bool) {
	if t.Completed {
		return Notification{}, false
	}
	switch days := t.Date.DaysFrom(today); {
	case days < 0:
		return Notification{
			Message:  fmt.Sprintf("Task %q is overdue!", t.Name),
			Severity: SeverityError,
		}, true
	case days <= 1:
		return Notification{
			Message:  fmt.Sprintf("Task %q is due today or tomorrow!", t.Name),
			Severity: SeverityWarning,
		}, true
	default:
		return Notification{}, false
	}
}

// Scheduler rescans the collection once at start and then on a fixed
// interval, queueing one reminder per qualifying task per scan. Every
// qualifying task is queued, not just the last one scanned; the
// presentation layer decides how many it shows at once.
type Scheduler struct {
	store    *Store
	interval time.Duration
	now      func() time.Time
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(store *Store, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &Scheduler{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Start launches the recurring check. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx)
}

// Stop cancels the recurring check and waits for the worker to exit, so
// no timer outlives the session.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.Check(Today(s.now()))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(Today(s.now()))
		}
	}
}

// Check performs a single scan against the given day.
func (s *Scheduler) Check(today Date) {
	for _, t := range s.store.Tasks() {
		if n, ok := Classify(t, today); ok {
			s.store.emit(n)
		}
	}
}
