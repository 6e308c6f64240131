package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/masmgr/gitsect/internal/console"
)

// DefaultTTL bounds how long a cache entry stays fresh.
const DefaultTTL = 24 * time.Hour

// DefaultDir returns the per-user cache directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gitsect_cache"), nil
}

// Store persists JSON payloads under hashed keys with a freshness
// window tied to file modification time.
type Store struct {
	dir     string
	ttl     time.Duration
	console console.Console
}

// NewStore creates the backing directory if needed and returns a store
// over it. A non-positive ttl falls back to DefaultTTL.
func NewStore(dir string, ttl time.Duration, c console.Console) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
	}
	return &Store{dir: dir, ttl: ttl, console: c}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the entry for key into v. It reports false when the entry
// is absent, older than the TTL, or not decodable. A stale or corrupt
// file is left in place for the next save to overwrite.
func (s *Store) Load(key string, v any) bool {
	path := s.path(key)

	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	age := time.Since(info.ModTime())
	if age < 0 || age > s.ttl {
		s.console.Debugf("Cache entry %s is stale (age %s)", key, age)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.console.Debugf("Discarding corrupt cache entry %s: %v", key, err)
		return false
	}
	return true
}

// Save writes v as the entry for key, replacing any prior content.
func (s *Store) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	return nil
}

// Clear removes the cache directory and recreates it empty.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove cache directory %s: %w", s.dir, err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("recreate cache directory %s: %w", s.dir, err)
	}
	return nil
}
