package state

import (
	"os"
	"path/filepath"
	"testing"
)

const testID = "abcdef1234567890abcdef1234567890"

func TestStateStore(t *testing.T) {
	store, err := NewStateStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}

	// Unknown documents have no preferences
	if _, ok := store.Get(testID); ok {
		t.Errorf("Expected no prefs for unknown id")
	}

	want := ViewPrefs{Scale: 1.5, Mode: "focus"}
	if err := store.Set(testID, want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(testID)
	if !ok || got != want {
		t.Errorf("Expected %+v, got %+v (ok=%v)", want, got, ok)
	}

	// Clear removes entry
	if err := store.Clear(testID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Get(testID); ok {
		t.Errorf("Expected no prefs after clear")
	}

	// Clearing twice is harmless
	if err := store.Clear(testID); err != nil {
		t.Fatalf("second Clear failed: %v", err)
	}
}

func TestStateStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewStateStore(dir)
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	if err := store1.Set(testID, ViewPrefs{Scale: 0.75, Mode: "analysis"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Create new store instance - should load persisted data
	store2, err := NewStateStore(dir)
	if err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	got, ok := store2.Get(testID)
	if !ok || got.Scale != 0.75 || got.Mode != "analysis" {
		t.Errorf("Expected persisted prefs, got %+v (ok=%v)", got, ok)
	}

	if _, err := os.Stat(store2.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind")
	}
}

func TestStateStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStateStore(dir)
	if err != nil {
		t.Fatalf("corrupt state should not be fatal: %v", err)
	}
	if _, ok := store.Get(testID); ok {
		t.Errorf("Expected empty store")
	}
	if err := store.Set(testID, ViewPrefs{Scale: 1, Mode: "reading"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
}

func TestStateStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prr")
	if _, err := NewStateStore(dir); err != nil {
		t.Fatalf("NewStateStore failed: %v", err)
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("state dir not created")
	}
}
