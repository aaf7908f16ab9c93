package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/chip"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/fs"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// record is the session file layout. Pending is set when a change was
// saved but its query never reached the emitter.
type record struct {
	ID      uuid.UUID     `json:"id"`
	Model   *filter.Model `json:"model"`
	Pending bool          `json:"pending,omitempty"`
}

// Store persists one session to a file so the CLI can resume it between
// invocations.
type Store struct {
	fs   fs.FS
	path string
}

// NewStore returns a store for the session file at path.
func NewStore(fsys fs.FS, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Lock takes the exclusive lock guarding the session file. Hold it across
// a Load/Save pair.
func (s *Store) Lock() (fs.Locker, error) {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	lock, err := s.fs.Lock(s.path)
	if err != nil {
		return nil, fmt.Errorf("lock session: %w", err)
	}

	return lock, nil
}

// Load resumes the stored session. A missing or blank file yields a fresh
// session.
func (s *Store) Load(catalog chip.Labels, opts ...Option) (*Session, error) {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat session: %w", err)
	}

	if !exists {
		return New(catalog, opts...), nil
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return New(catalog, opts...), nil
	}

	var rec record

	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSnapshotInvalid, s.path, err)
	}

	if rec.Model == nil {
		rec.Model = filter.New()
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	opts = append([]Option{WithID(rec.ID), WithModel(rec.Model)}, opts...)

	sess := New(catalog, opts...)
	sess.pending = rec.Pending

	return sess, nil
}

// Save writes sess atomically, including whether it still has a change
// to emit.
func (s *Store) Save(sess *Session) error {
	data, err := json.MarshalIndent(record{ID: sess.id, Model: sess.model, Pending: sess.pending}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	if err := s.fs.WriteFileAtomic(s.path, append(data, '\n'), filePerm); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}

// Delete removes the session file. A missing file is not an error.
func (s *Store) Delete() error {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return fmt.Errorf("stat session: %w", err)
	}

	if !exists {
		return nil
	}

	if err := s.fs.Remove(s.path); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}

	return nil
}

// IsSnapshotError reports whether err came from an unreadable session file.
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrSnapshotInvalid) || errors.Is(err, filter.ErrInvalidSnapshot)
}
