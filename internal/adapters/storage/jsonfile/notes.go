package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// NotesStore holds the freeform notes blob backed by notes.txt.
type NotesStore struct {
	path string
	text string
}

func OpenNotesStore(path string) (*NotesStore, error) {
	s := &NotesStore{path: path}
	return s, s.Load()
}

func (s *NotesStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.text = ""
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(s.path), err)
	}
	s.text = string(data)
	return nil
}

func (s *NotesStore) Get() string { return s.text }

func (s *NotesStore) Save(text string) error {
	s.text = text
	return writeFileAtomic(s.path, []byte(text))
}

func (s *NotesStore) Path() string { return s.path }

func (s *NotesStore) ModTime() (time.Time, error) { return modTime(s.path) }
