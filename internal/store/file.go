package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/waw666waw666/reminder/pkg/logger"
	"github.com/waw666waw666/reminder/pkg/remind"
)

// document is the on-disk layout of the task file.
type document struct {
	Tasks []remind.Task `json:"tasks"`
}

// FileStore keeps the task list in an indented JSON document.
type FileStore struct {
	fs   afero.Fs
	path string
	log  logger.Logger
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the JSON document at path.
func NewFileStore(fs afero.Fs, path string, l logger.Logger) *FileStore {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &FileStore{fs: fs, path: path, log: l}
}

// Path returns the location of the task document.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the task list. A missing file is created with an empty list.
// Malformed content is logged and treated as an empty list; the file is
// left untouched until the next Save.
func (s *FileStore) Load(_ context.Context) ([]remind.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
		return []remind.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		s.log.Error("failed to parse %s, starting with no tasks: %v", s.path, err)
		return []remind.Task{}, nil
	}
	if doc.Tasks == nil {
		doc.Tasks = []remind.Task{}
	}
	return doc.Tasks, nil
}

// Save writes the list to a temporary file in the same directory and
// renames it over the document.
func (s *FileStore) Save(_ context.Context, tasks []remind.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(tasks)
}

func (s *FileStore) write(tasks []remind.Task) error {
	if tasks == nil {
		tasks = []remind.Task{}
	}
	b, err := json.MarshalIndent(document{Tasks: tasks}, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		s.fs.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(name)
		return err
	}
	if err := s.fs.Rename(name, s.path); err != nil {
		s.fs.Remove(name)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
