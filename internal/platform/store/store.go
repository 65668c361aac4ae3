// Package store provides a JSON document store backed by flat files
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	perrs "github.com/jordiboehme/gigaset-central-phonebook/internal/platform/errors"
	"github.com/jordiboehme/gigaset-central-phonebook/internal/platform/logger"
)

// Store is a handle over a data directory of JSON documents
// every Save is a whole file rewrite through a temp file and rename
// zero value is not usable, construct with Open
type Store struct {
	// Log is the logger used for slow path diagnostics
	// zero means a no op zerolog logger
	Log logger.Logger

	dir string
	mu  sync.Mutex
}

// Documents is the read and write surface repos use
type Documents interface {
	Load(ctx context.Context, name string, v any) error
	Save(ctx context.Context, name string, v any) error
	Update(ctx context.Context, name string, v any, mutate func() error) error
	LoadRaw(ctx context.Context, name string) ([]byte, error)
	SaveRaw(ctx context.Context, name string, data []byte) error
}

// ErrNotFound reports that a named document does not exist yet
var ErrNotFound = errors.New("store: document not found")

// Open constructs a Store rooted at cfg.Dir, creating the directory if needed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Dir == "" {
		return nil, perrs.InvalidArgf("store: empty data dir")
	}

	s := &Store{dir: cfg.Dir}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, perrs.Storagef("store: create data dir %q: %v", cfg.Dir, err)
	}

	return s, nil
}

// Guard verifies the data directory is present and writable
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store: %q is not a directory", s.dir)
	}
	return nil
}

// Close releases the handle
// flat files hold no connections so this only exists for shutdown symmetry
func (s *Store) Close(ctx context.Context) error { return nil }

// Path returns the absolute path of a named document
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads and unmarshals the named document into v
// returns ErrNotFound when the file does not exist
func (s *Store) Load(ctx context.Context, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(name, v)
}

// Save marshals v with indentation and atomically replaces the named document
func (s *Store) Save(ctx context.Context, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(name, v)
}

// Update runs a read modify write cycle under the store lock
// v is loaded (left zero when the document is missing), mutate edits it in
// place, then v is written back; mutate errors abort the write
func (s *Store) Update(ctx context.Context, name string, v any, mutate func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(name, v); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := mutate(); err != nil {
		return err
	}
	return s.saveLocked(name, v)
}

// LoadRaw reads a named document as raw bytes, for non JSON payloads
func (s *Store) LoadRaw(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, perrs.Storagef("store: read %q: %v", name, err)
	}
	return b, nil
}

// SaveRaw atomically replaces a named document with raw bytes
func (s *Store) SaveRaw(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(name, data)
}

func (s *Store) loadLocked(name string, v any) error {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return perrs.Storagef("store: read %q: %v", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return perrs.Storagef("store: decode %q: %v", name, err)
	}
	return nil
}

func (s *Store) saveLocked(name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perrs.Storagef("store: encode %q: %v", name, err)
	}
	return s.writeLocked(name, append(b, '\n'))
}

// writeLocked lands bytes via temp file and rename so readers never see a
// partial document
func (s *Store) writeLocked(name string, data []byte) error {
	dst := s.Path(name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return perrs.Storagef("store: temp for %q: %v", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perrs.Storagef("store: write %q: %v", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perrs.Storagef("store: close %q: %v", name, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return perrs.Storagef("store: replace %q: %v", name, err)
	}
	return nil
}
