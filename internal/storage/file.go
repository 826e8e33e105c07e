// Package storage provides the persistence backends for the task
// collection and the theme flag: a JSON file per key, or a sqlite
// key-value table. Both store the same serialized layout, so switching
// backends only changes where the bytes live.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"maru/internal/task"
)

const keyTasks = "tasks"

// FileStore keeps one JSON file per key under a data directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func OpenFile(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// LoadTasks reads the stored collection. A missing file means an empty
// collection; an unreadable or corrupt file returns an empty collection
// together with the error so the caller can warn and carry on.
func (s *FileStore) LoadTasks() ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(keyTasks))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", keyTasks, err)
	}
	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyTasks, err)
	}
	return tasks, nil
}

// SaveTasks overwrites the stored collection with the full slice.
func (s *FileStore) SaveTasks(tasks []task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(keyTasks), data, 0o644)
}

func (s *FileStore) LoadFlag(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, nil
}

func (s *FileStore) SaveFlag(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStore) Close() error { return nil }
