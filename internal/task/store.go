package task

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FlagDarkMode is the persisted key for the theme flag.
const FlagDarkMode = "darkMode"

// Repository is the persistence contract. Implementations must treat a
// missing key as "no data" rather than an error; a load error means the
// stored value exists but could not be read, which the store surfaces as a
// warning and otherwise ignores.
type Repository interface {
	LoadTasks() ([]Task, error)
	SaveTasks(tasks []Task) error
	LoadFlag(key string) (bool, error)
	SaveFlag(key string, value bool) error
	Close() error
}

// Store owns the canonical in-memory task collection. Every successful
// mutation is written through to the repository before the call returns;
// a failed write keeps the in-memory change and raises an error
// notification instead of rolling back.
type Store struct {
	mu       sync.RWMutex
	repo     Repository
	tasks    []Task
	lastID   int64
	darkMode bool
	events   chan Notification
	now      func() time.Time
}

// NewStore loads the persisted collection and theme flag. Corrupt or
// unreadable state degrades to defaults (empty collection, light theme)
// with a warning on the event stream, never a startup failure.
func NewStore(repo Repository) *Store {
	s := &Store{
		repo:   repo,
		events: make(chan Notification, 16),
		now:    time.Now,
	}

	tasks, err := repo.LoadTasks()
	if err != nil {
		s.emit(Notification{
			Message:  "Stored tasks could not be read; starting with an empty list.",
			Severity: SeverityWarning,
		})
		tasks = nil
	}
	s.tasks = tasks
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}

	dark, err := repo.LoadFlag(FlagDarkMode)
	if err != nil {
		dark = false
	}
	s.darkMode = dark
	return s
}

// Events is the stream of notifications for the presentation layer. The
// store never blocks on it; when the buffer is full the oldest pending
// event is dropped.
func (s *Store) Events() <-chan Notification { return s.events }

func (s *Store) emit(n Notification) {
	for {
		select {
		case s.events <- n:
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}

// Tasks returns a snapshot copy of the canonical collection in insertion
// order.
func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id, if present.
func (s *Store) Get(id int64) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// nextID derives an id from the current time in milliseconds, bumped past
// the last issued id so rapid adds stay unique and monotonic. Must be
// called with the write lock held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Add appends a new incomplete task. It refuses an empty name (after
// trimming) or a missing date without touching the collection.
func (s *Store) Add(name string, date Date) bool {
	name = strings.TrimSpace(name)
	if name == "" || date.IsZero() {
		return false
	}

	s.mu.Lock()
	t := Task{
		ID:        s.nextID(),
		Name:      name,
		Date:      date,
		Completed: false,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, t)
	s.persistLocked()
	s.mu.Unlock()

	s.emit(Notification{Message: "Task added successfully!", Severity: SeveritySuccess})
	return true
}

// Delete removes the task permanently. Unknown ids are a no-op.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	found := false
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if found {
		s.persistLocked()
	}
	s.mu.Unlock()

	if found {
		s.emit(Notification{Message: "Task deleted successfully!", Severity: SeveritySuccess})
	}
}

// Patch carries the optional fields of an update. A nil field is left
// untouched.
type Patch struct {
	Name *string
	Date *Date
}

// Update replaces the provided fields on the matching task. A provided but
// empty name or zero date is refused before any mutation. Unknown ids are
// a no-op; the return value reports whether a task actually changed.
func (s *Store) Update(id int64, p Patch) bool {
	var name string
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
		if name == "" {
			return false
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return false
	}

	s.mu.Lock()
	updated := false
	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		if p.Name != nil {
			t.Name = name
		}
		if p.Date != nil {
			t.Date = *p.Date
		}
		s.tasks[i] = t
		updated = true
		break
	}
	if updated {
		s.persistLocked()
	}
	s.mu.Unlock()

	if updated {
		s.emit(Notification{Message: "Task updated successfully!", Severity: SeveritySuccess})
	}
	return updated
}

// ToggleCompletion flips the completed flag. Unknown ids are a no-op.
func (s *Store) ToggleCompletion(id int64) {
	s.mu.Lock()
	var toggled *Task
	for i, t := range s.tasks {
		if t.ID != id {
			continue
		}
		t.Completed = !t.Completed
		s.tasks[i] = t
		toggled = &t
		break
	}
	if toggled != nil {
		s.persistLocked()
	}
	s.mu.Unlock()

	if toggled != nil {
		msg := "Task marked as active."
		if toggled.Completed {
			msg = "Task marked as completed."
		}
		s.emit(Notification{Message: msg, Severity: SeveritySuccess})
	}
}

// MoveViaDrag sets the completed flag to the drop target's state. It
// mutates nothing when the task already has that state or the id is
// unknown.
func (s *Store) MoveViaDrag(id int64, targetCompleted bool) {
	s.mu.Lock()
	moved := false
	for i, t := range s.tasks {
		if t.ID != id || t.Completed == targetCompleted {
			continue
		}
		t.Completed = targetCompleted
		s.tasks[i] = t
		moved = true
		break
	}
	if moved {
		s.persistLocked()
	}
	s.mu.Unlock()

	if moved {
		msg := "Task moved back to uncompleted list!"
		if targetCompleted {
			msg = "Task marked as completed!"
		}
		s.emit(Notification{Message: msg, Severity: SeveritySuccess})
	}
}

// DarkMode reports the current theme flag.
func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

// SetDarkMode persists the theme flag. A failed write keeps the in-memory
// value, same policy as task writes.
func (s *Store) SetDarkMode(dark bool) {
	s.mu.Lock()
	s.darkMode = dark
	err := s.repo.SaveFlag(FlagDarkMode, dark)
	s.mu.Unlock()

	if err != nil {
		s.emit(Notification{
			Message:  fmt.Sprintf("Theme preference could not be saved: %v", err),
			Severity: SeverityError,
		})
	}
}

// persistLocked writes the full collection through the repository. Called
// with the write lock held. On failure the session keeps its in-memory
// edits and the user is warned that durability is compromised.
func (s *Store) persistLocked() {
	if err := s.repo.SaveTasks(s.tasks); err != nil {
		s.emit(Notification{
			Message:  "Error saving tasks. Your changes may not persist after restart.",
			Severity: SeverityError,
		})
	}
}
