package storage

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "maru.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()
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

func TestSQLiteStore_MissingKeyIsEmptyCollection(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "maru.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	got, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("expected no error for missing key, got: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestSQLiteStore_CorruptValueReturnsEmptyAndError(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "maru.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	if err := store.put("tasks", []byte("{not json")); err != nil {
		t.Fatalf("failed to plant corrupt value: %v", err)
	}

	got, err := store.LoadTasks()
	if err == nil {
		t.Fatal("expected an error for corrupt data")
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(got))
	}
}

func TestSQLiteStore_Flags(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "maru.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

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
