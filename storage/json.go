package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"tasktracker/logger"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755

	// DefaultLockTimeout bounds how long NewJSONStore waits for another
	// process to release the store
	DefaultLockTimeout = 5 * time.Second

	lockRetryDelay = 50 * time.Millisecond
)

// JSONStore implements Store using a JSON file holding an array of tasks
type JSONStore struct {
	filename    string
	data        *collection
	mu          sync.RWMutex
	lock        *flock.Flock
	lockTimeout time.Duration
	log         *logger.Logger
}

// record mirrors one element of the backing file. Pointer fields let
// load tell a missing key from a zero value.
type record struct {
	ID    *uint8  `json:"id"`
	Task  *string `json:"task"`
	State *State  `json:"state"`
}

// Option configures a JSONStore
type Option func(*JSONStore)

// WithLogger sets the logger used for store diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(s *JSONStore) {
		s.log = l
	}
}

// WithLockTimeout sets how long to wait for the store lock.
// Zero means a single attempt.
func WithLockTimeout(d time.Duration) Option {
	return func(s *JSONStore) {
		s.lockTimeout = d
	}
}

// NewJSONStore locks and opens a JSON-backed store. A missing file
// yields an empty store; the file is only created by the first mutation.
func NewJSONStore(ctx context.Context, filename string, opts ...Option) (*JSONStore, error) {
	store := &JSONStore{
		filename:    filename,
		data:        newCollection(nil),
		lockTimeout: DefaultLockTimeout,
		log:         logger.New("error", io.Discard),
	}
	for _, opt := range opts {
		opt(store)
	}

	if err := os.MkdirAll(filepath.Dir(filename), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := store.acquireLock(ctx); err != nil {
		return nil, err
	}

	if err := store.load(); err != nil {
		_ = store.lock.Unlock()
		return nil, err
	}

	store.log.Debug("task store opened", map[string]any{
		"file":    filename,
		"tasks":   len(store.data.tasks),
		"last_id": store.data.lastID,
	})

	return store, nil
}

func (s *JSONStore) acquireLock(ctx context.Context) error {
	s.lock = flock.New(s.filename + ".lock")

	locked, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.lock.Path(), err)
	}
	if locked {
		return nil
	}
	if s.lockTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}

	s.log.Warn("waiting for task store lock", map[string]any{
		"lock":    s.lock.Path(),
		"timeout": s.lockTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err = s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to lock %s: %w", s.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}
	return nil
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.filename, err)
	}

	tasks, err := decodeTasks(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.filename, err)
	}

	s.data = newCollection(tasks)
	return nil
}

// decodeTasks parses the backing file format, rejecting any record that
// lacks a field or repeats an id
func decodeTasks(data []byte) ([]Task, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New("root value must be an array")
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	tasks := make([]Task, 0, len(records))
	seen := make(map[uint8]bool, len(records))
	for i, r := range records {
		switch {
		case r.ID == nil:
			return nil, fmt.Errorf("record %d: missing id", i)
		case r.Task == nil:
			return nil, fmt.Errorf("record %d: missing task", i)
		case r.State == nil:
			return nil, fmt.Errorf("record %d: missing state", i)
		case seen[*r.ID]:
			return nil, fmt.Errorf("record %d: duplicate id %d", i, *r.ID)
		}
		seen[*r.ID] = true
		tasks = append(tasks, NewTask(*r.ID, *r.Task, *r.State))
	}

	return tasks, nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.data.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := atomicWrite(s.filename, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersistence, s.filename, err)
	}

	s.log.Debug("task store saved", map[string]any{
		"file":  s.filename,
		"tasks": len(s.data.tasks),
	})
	return nil
}

// mutate applies fn and persists the result. If the write fails the
// in-memory collection is restored so it never runs ahead of the file.
func (s *JSONStore) mutate(fn func(c *collection) (bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	changed, err := fn(s.data)
	if err != nil || !changed {
		return changed, err
	}

	if err := s.save(); err != nil {
		s.data = snapshot
		return false, err
	}

	return true, nil
}

// GetTasks returns all tasks, or only those in the filter state
func (s *JSONStore) GetTasks(filter *State) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.list(filter)
}

// GetTask returns a copy of the task with the given id
func (s *JSONStore) GetTask(id uint8) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.get(id)
}

// AddTask appends a not-started task and returns its new id
func (s *JSONStore) AddTask(text string) (uint8, error) {
	var id uint8
	_, err := s.mutate(func(c *collection) (bool, error) {
		var err error
		id, err = c.add(text)
		return err == nil, err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetState changes a task's state. An unknown id reports false before
// rawState is looked at.
func (s *JSONStore) SetState(id uint8, rawState string) (bool, error) {
	return s.mutate(func(c *collection) (bool, error) {
		return c.setState(id, rawState)
	})
}

// UpdateTask replaces a task's text
func (s *JSONStore) UpdateTask(id uint8, text string) (bool, error) {
	return s.mutate(func(c *collection) (bool, error) {
		return c.setText(id, text), nil
	})
}

// RemoveTask deletes a task. Its id is never handed out again.
func (s *JSONStore) RemoveTask(id uint8) (bool, error) {
	return s.mutate(func(c *collection) (bool, error) {
		return c.remove(id), nil
	})
}

// Close releases the store lock
func (s *JSONStore) Close() error {
	if s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// atomicWrite replaces path with data via a temp file in the same
// directory, so a failed write leaves the old file intact
func atomicWrite(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Chmod(tmpPath, filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
