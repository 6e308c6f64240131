package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/masmgr/gitsect/internal/console"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	in := payload{Name: "history", Count: 42}
	if err := store.Save("abc123", in); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	var out payload
	if !store.Load("abc123", &out) {
		t.Fatal("Load() = false for a fresh entry")
	}
	if out != in {
		t.Errorf("Load() = %+v, want %+v", out, in)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	var out payload
	if store.Load("nope", &out) {
		t.Error("Load() = true for an absent entry")
	}
}

func TestStore_LoadStale(t *testing.T) {
	store, err := NewStore(t.TempDir(), time.Nanosecond, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if err := store.Save("old", payload{Name: "stale"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	var out payload
	if store.Load("old", &out) {
		t.Error("Load() = true for an entry past its TTL")
	}
	if _, err := os.Stat(store.path("old")); err != nil {
		t.Errorf("stale entry was removed, want it left for overwrite: %v", err)
	}
}

func TestStore_LoadFutureModTime(t *testing.T) {
	store, err := NewStore(t.TempDir(), DefaultTTL, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if err := store.Save("ahead", payload{Name: "future"}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(store.path("ahead"), future, future); err != nil {
		t.Fatalf("Chtimes() unexpected error: %v", err)
	}

	var out payload
	if store.Load("ahead", &out) {
		t.Error("Load() = true for an entry stamped in the future")
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if err := os.WriteFile(store.path("bad"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() unexpected error: %v", err)
	}

	var out payload
	if store.Load("bad", &out) {
		t.Error("Load() = true for a corrupt entry")
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	if err := store.Save("key", payload{Name: "first", Count: 1}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if err := store.Save("key", payload{Name: "second", Count: 2}); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	var out payload
	if !store.Load("key", &out) {
		t.Fatal("Load() = false after overwrite")
	}
	if out.Name != "second" || out.Count != 2 {
		t.Errorf("Load() = %+v, want the second payload", out)
	}
}

func TestStore_Clear(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}

	for _, key := range []string{"one", "two"} {
		if err := store.Save(key, payload{Name: key}); err != nil {
			t.Fatalf("Save(%s) unexpected error: %v", key, err)
		}
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("cache directory missing after clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache directory holds %d entries after clear, want 0", len(entries))
	}

	var out payload
	if store.Load("one", &out) {
		t.Error("Load() = true after clear")
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	store, err := NewStore(dir, 0, console.Discard())
	if err != nil {
		t.Fatalf("NewStore() unexpected error: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", store.Dir(), dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("backing directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestDefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir() unexpected error: %v", err)
	}
	if !strings.HasSuffix(dir, ".gitsect_cache") {
		t.Errorf("DefaultDir() = %s, want a .gitsect_cache suffix", dir)
	}
	if filepath.Dir(dir) != home {
		t.Errorf("DefaultDir() = %s, want it under %s", dir, home)
	}
}
