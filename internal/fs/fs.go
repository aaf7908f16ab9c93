// Package fs is the narrow filesystem surface spk persists through: the
// session file, the emitted query file and the lock guarding them.
//
// [Real] is the only implementation. Writes go through a temp file and a
// rename, and [FS.Lock] serializes concurrent spk processes working on the
// same session:
//
//	fsys := fs.NewReal()
//	lock, err := fsys.Lock(".spk/session.json")
//	if err != nil {
//	    return err
//	}
//	defer lock.Close()
package fs

import (
	"io"
	"os"
)

// Locker is a held lock; Close releases it.
type Locker interface {
	io.Closer
}

// FS is what the session store and query emitter need from the disk.
type FS interface {
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic replaces path so readers see either the old or the
	// new content, never a mix.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	MkdirAll(path string, perm os.FileMode) error

	// Exists returns (false, nil) for a missing path.
	Exists(path string) (bool, error)

	Remove(path string) error

	// Lock blocks until the exclusive lock for path is held or a timeout
	// expires.
	Lock(path string) (Locker, error)
}
