package task

import (
	"fmt"
	"math"
	"strings"
)

// Status selects which tasks a view shows.
type Status string

const (
	StatusAll         Status = "all"
	StatusCompleted   Status = "completed"
	StatusUncompleted Status = "uncompleted"
	StatusDueToday    Status = "dueToday"
	StatusOverdue     Status = "overdue"
)

// statusCycle is the order the UI steps through when cycling the filter.
var statusCycle = []Status{StatusAll, StatusUncompleted, StatusCompleted, StatusDueToday, StatusOverdue}

func ParseStatus(s string) (Status, error) {
	for _, st := range statusCycle {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return StatusAll, fmt.Errorf("unknown filter status %q", s)
}

// NextStatus returns the status after s in the cycle.
func NextStatus(s Status) Status {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return StatusAll
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// task name. An empty term matches everything.
func MatchesSearch(t Task, term string) bool {
	return strings.Contains(strings.ToLower(t.Name), strings.ToLower(term))
}

// MatchesStatus reports whether the task passes the status filter relative
// to today. Due-date statuses only ever match incomplete tasks.
func MatchesStatus(t Task, status Status, today Date) bool {
	switch status {
	case StatusCompleted:
		return t.Completed
	case StatusUncompleted:
		return !t.Completed
	case StatusDueToday:
		return !t.Completed && t.Date.Equal(today)
	case StatusOverdue:
		return !t.Completed && t.Date.Before(today)
	default:
		return true
	}
}

// Filtered returns the tasks matching both the search term and the status
// filter, preserving the original order. The input is never mutated.
func Filtered(tasks []Task, term string, status Status, today Date) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesSearch(t, term) && MatchesStatus(t, status, today) {
			out = append(out, t)
		}
	}
	return out
}

// Stats aggregates the whole collection, not a filtered view.
type Stats struct {
	Total          int
	CompletedCount int
	CompletionRate int
	ActiveCount    int
}

func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.CompletedCount++
		}
	}
	s.ActiveCount = s.Total - s.CompletedCount
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.CompletedCount) / float64(s.Total)))
	}
	return s
}
