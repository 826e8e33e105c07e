package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"maru/internal/task"
)

func fixtureTasks() []task.Task {
	created := time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)
	return []task.Task{
		{ID: 1716190200000, Name: "Pay rent", Date: task.NewDate(2024, time.June, 1), CreatedAt: created},
		{ID: 1716190200001, Name: "Buy groceries", Date: task.NewDate(2024, time.June, 10), Completed: true, CreatedAt: created.Add(time.Minute)},
	}
}

func assertTasksEqual(t *testing.T, want, got []task.Task) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID {
			t.Errorf("task %d: expected id %d, got %d", i, w.ID, g.ID)
		}
		if g.Name != w.Name {
			t.Errorf("task %d: expected name %q, got %q", i, w.Name, g.Name)
		}
		if !g.Date.Equal(w.Date) {
			t.Errorf("task %d: expected date %s, got %s", i, w.Date, g.Date)
		}
		if g.Completed != w.Completed {
			t.Errorf("task %d: expected completed=%t, got %t", i, w.Completed, g.Completed)
		}
		if !g.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("task %d: expected createdAt %v, got %v", i, w.CreatedAt, g.CreatedAt)
		}
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	want := fixtureTasks()

	if err := store.SaveTasks(want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	assertTasksEqual(t, want, got)
}

func TestFileStore_MissingFileIsEmptyCollection(t *testing.T) {
	store, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	got, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestFileStore_CorruptFileReturnsEmptyAndError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	store, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	got, err := store.LoadTasks()
	if err == nil {
		t.Fatal("expected an error for corrupt data")
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestFileStore_Flags(t *testing.T) {
	store, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	// Absent flag defaults to false.
	v, err := store.LoadFlag("darkMode")
	if err != nil || v {
		t.Fatalf("expected false, nil for absent flag, got %t, %v", v, err)
	}

	if err := store.SaveFlag("darkMode", true); err != nil {
		t.Fatalf("save flag failed: %v", err)
	}
	v, err = store.LoadFlag("darkMode")
	if err != nil {
		t.Fatalf("load flag failed: %v", err)
	}
	if !v {
		t.Error("expected flag to round-trip as true")
	}
}

func TestFileStore_CorruptFlagDefaultsFalse(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "darkMode.json"), []byte("??"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt flag: %v", err)
	}
	store, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	v, err := store.LoadFlag("darkMode")
	if err == nil {
		t.Fatal("expected an error for corrupt flag")
	}
	if v {
		t.Error("expected false for corrupt flag")
	}
}

func TestFileStore_SaveOverwritesWithEmptyCollection(t *testing.T) {
	store, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.SaveTasks(fixtureTasks()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.SaveTasks(nil); err != nil {
		t.Fatalf("save of empty collection failed: %v", err)
	}
	got, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection after overwrite, got %d tasks", len(got))
	}
}
