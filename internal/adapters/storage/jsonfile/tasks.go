package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"tasktracker/internal/domain"
)

// TaskStore holds the task collection backed by tasks.json.
type TaskStore struct {
	path  string
	tasks []domain.Task
}

// OpenTaskStore loads the store. A missing file yields an empty store; a
// malformed file yields a usable empty store alongside the parse error so
// callers can decide whether to continue.
func OpenTaskStore(path string) (*TaskStore, error) {
	s := &TaskStore{path: path}
	return s, s.Load()
}

// Load re-reads tasks.json. On a parse failure the previous in-memory state
// is kept and the error is returned.
func (s *TaskStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.tasks = nil
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(s.path), err)
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(s.path), err)
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	s.tasks = tasks
	return nil
}

func (s *TaskStore) Save() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return writeJSONFile(s.path, tasks)
}

func (s *TaskStore) Path() string { return s.path }

func (s *TaskStore) ModTime() (time.Time, error) { return modTime(s.path) }

// All returns a copy of the cached tasks in storage order.
func (s *TaskStore) All() []domain.Task {
	return slices.Clone(s.tasks)
}

func (s *TaskStore) Get(id string) (domain.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *TaskStore) Add(in domain.TaskInput, now time.Time) (domain.Task, error) {
	task := domain.NewTask(in, now)
	s.tasks = append(s.tasks, task)
	if err := s.Save(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// TaskUpdate carries the fields to change; nil fields stay untouched.
// Identity and creation time are never writable.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.Status
}

func (s *TaskStore) Update(id string, upd TaskUpdate, now time.Time) (domain.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Priority != nil {
			t.Priority = domain.ClampPriority(*upd.Priority)
		}
		if upd.Status != nil {
			t.Status = domain.NormalizeStatus(*upd.Status)
		}
		t.UpdatedAt = domain.Stamp(now)
		if err := s.Save(); err != nil {
			return domain.Task{}, err
		}
		return *t, nil
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (s *TaskStore) Delete(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = slices.Delete(s.tasks, i, i+1)
			return s.Save()
		}
	}
	return domain.ErrTaskNotFound
}

// Replace swaps the whole collection, used by bundle import.
func (s *TaskStore) Replace(tasks []domain.Task) error {
	s.tasks = slices.Clone(tasks)
	for i := range s.tasks {
		s.tasks[i].Normalize()
	}
	return s.Save()
}
