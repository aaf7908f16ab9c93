package session

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/fs"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/spark"
)

// FileEmitter writes every emitted query as indented JSON to one file,
// replacing the previous query atomically.
type FileEmitter struct {
	fs   fs.FS
	path string
}

// NewFileEmitter returns an emitter targeting path.
func NewFileEmitter(fsys fs.FS, path string) *FileEmitter {
	return &FileEmitter{fs: fsys, path: path}
}

// Emit implements [Emitter].
func (e *FileEmitter) Emit(q spark.Query) error {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return fmt.Errorf("encode query: %w", err)
	}

	if err := e.fs.MkdirAll(filepath.Dir(e.path), dirPerm); err != nil {
		return fmt.Errorf("create query dir: %w", err)
	}

	if err := e.fs.WriteFileAtomic(e.path, append(data, '\n'), filePerm); err != nil {
		return fmt.Errorf("write query: %w", err)
	}

	return nil
}
