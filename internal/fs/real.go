package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/sys/unix"
)

const (
	defaultLockTimeout = 2 * time.Second
	lockPollInterval   = 10 * time.Millisecond
	lockDirName        = ".locks"
	lockDirPerm        = 0o755
	lockFilePerm       = 0o644
)

// ErrLockTimeout is returned by [Real.Lock] when another process holds the
// lock for longer than the configured timeout.
var ErrLockTimeout = fmt.Errorf("lock timed out: %w", os.ErrDeadlineExceeded)

// Real implements [FS] on the local filesystem.
type Real struct {
	lockTimeout time.Duration
}

// RealOption configures a [Real].
type RealOption func(*Real)

// WithLockTimeout bounds how long [Real.Lock] waits for a contended lock.
func WithLockTimeout(d time.Duration) RealOption {
	return func(r *Real) { r.lockTimeout = d }
}

// NewReal returns the production filesystem.
func NewReal(opts ...RealOption) *Real {
	r := &Real{lockTimeout: defaultLockTimeout}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Real) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic replaces path via a temp file and rename, then applies
// perm. atomic.WriteFile alone would keep the old file's mode.
func (r *Real) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}

	return os.Chmod(path, perm)
}

func (r *Real) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (r *Real) Exists(path string) (bool, error) {
	_, err := os.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (r *Real) Remove(path string) error {
	return os.Remove(path)
}

// Lock takes an exclusive flock on <dir>/.locks/<base>.lock. The sidecar
// lives in its own directory so locking never touches the mtime of the
// directory holding the session file.
func (r *Real) Lock(path string) (Locker, error) {
	lockPath := filepath.Join(filepath.Dir(path), lockDirName, filepath.Base(path)+".lock")

	if err := os.MkdirAll(filepath.Dir(lockPath), lockDirPerm); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(r.lockTimeout)

	for {
		lock, err := tryLock(lockPath)
		if err != nil {
			return nil, err
		}

		if lock != nil {
			return lock, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}

		time.Sleep(lockPollInterval)
	}
}

// tryLock makes one non-blocking attempt. It returns (nil, nil) when the
// lock is held elsewhere or the file was replaced under us.
func tryLock(lockPath string) (*fileLock, error) {
	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, lockFilePerm)
	if err != nil {
		return nil, err
	}

	fd := int(file.Fd())

	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = file.Close()

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, nil
		}

		return nil, err
	}

	// A previous holder unlinks the file on release. If that happened
	// between our open and flock we hold a lock on an orphaned inode.
	var opened, current unix.Stat_t
	if unix.Fstat(fd, &opened) != nil || unix.Stat(lockPath, &current) != nil || opened.Ino != current.Ino {
		_ = unix.Flock(fd, unix.LOCK_UN)
		_ = file.Close()

		return nil, nil
	}

	return &fileLock{path: lockPath, file: file}, nil
}

type fileLock struct {
	path string
	file *os.File
}

// Close unlinks the sidecar before unlocking so a waiter never locks a
// file that is about to disappear.
func (l *fileLock) Close() error {
	if l.file == nil {
		return nil
	}

	_ = os.Remove(l.path)
	_ = unix.Flock(int(l.file.Fd()), unix.LOCK_UN)

	err := l.file.Close()
	l.file = nil

	return err
}

var _ FS = (*Real)(nil)
