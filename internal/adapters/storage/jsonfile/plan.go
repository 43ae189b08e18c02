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

// PlanStore holds the ordered plan steps backed by plan.json.
type PlanStore struct {
	path  string
	steps []domain.PlanStep
}

func OpenPlanStore(path string) (*PlanStore, error) {
	s := &PlanStore{path: path}
	return s, s.Load()
}

// Load re-reads plan.json. The current format is a bare array; the legacy
// {"steps": [...]} wrapper is still accepted. Parse failures keep the
// previous in-memory state.
func (s *PlanStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.steps = nil
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(s.path), err)
	}
	var steps []domain.PlanStep
	if err := json.Unmarshal(data, &steps); err != nil {
		var legacy struct {
			Steps []domain.PlanStep `json:"steps"`
		}
		if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
			return fmt.Errorf("parse %s: %w", filepath.Base(s.path), err)
		}
		steps = legacy.Steps
	}
	slices.SortStableFunc(steps, func(a, b domain.PlanStep) int {
		return a.Order - b.Order
	})
	s.steps = steps
	return nil
}

func (s *PlanStore) Save() error {
	steps := s.steps
	if steps == nil {
		steps = []domain.PlanStep{}
	}
	return writeJSONFile(s.path, steps)
}

func (s *PlanStore) Path() string { return s.path }

func (s *PlanStore) ModTime() (time.Time, error) { return modTime(s.path) }

// All returns a copy of the steps in plan order.
func (s *PlanStore) All() []domain.PlanStep {
	return slices.Clone(s.steps)
}

func (s *PlanStore) Get(id string) (domain.PlanStep, error) {
	for _, step := range s.steps {
		if step.ID == id {
			return step, nil
		}
	}
	return domain.PlanStep{}, domain.ErrStepNotFound
}

func (s *PlanStore) Add(in domain.PlanStepInput, now time.Time) (domain.PlanStep, error) {
	step := domain.NewPlanStep(in, len(s.steps), now)
	s.steps = append(s.steps, step)
	domain.ReorderSteps(s.steps)
	if err := s.Save(); err != nil {
		return domain.PlanStep{}, err
	}
	return s.Get(step.ID)
}

// PlanStepUpdate carries the fields to change; nil fields stay untouched.
type PlanStepUpdate struct {
	Name        *string
	Description *string
	Details     *string
	Order       *int
	Completed   *bool
}

func (s *PlanStore) Update(id string, upd PlanStepUpdate, now time.Time) (domain.PlanStep, error) {
	idx := -1
	for i := range s.steps {
		if s.steps[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.PlanStep{}, domain.ErrStepNotFound
	}
	step := &s.steps[idx]
	if upd.Name != nil {
		step.Name = *upd.Name
	}
	if upd.Description != nil {
		step.Description = *upd.Description
	}
	if upd.Details != nil {
		step.Details = *upd.Details
	}
	if upd.Completed != nil {
		step.Completed = *upd.Completed
	}
	reorder := false
	if upd.Order != nil {
		step.Order = *upd.Order
		reorder = true
	}
	step.UpdatedAt = domain.Stamp(now)
	if reorder {
		domain.ReorderSteps(s.steps)
	}
	if err := s.Save(); err != nil {
		return domain.PlanStep{}, err
	}
	return s.Get(id)
}

func (s *PlanStore) Toggle(id string, now time.Time) (domain.PlanStep, error) {
	for i := range s.steps {
		if s.steps[i].ID == id {
			s.steps[i].Completed = !s.steps[i].Completed
			s.steps[i].UpdatedAt = domain.Stamp(now)
			if err := s.Save(); err != nil {
				return domain.PlanStep{}, err
			}
			return s.steps[i], nil
		}
	}
	return domain.PlanStep{}, domain.ErrStepNotFound
}

func (s *PlanStore) Delete(id string) error {
	for i := range s.steps {
		if s.steps[i].ID == id {
			s.steps = slices.Delete(s.steps, i, i+1)
			domain.ReorderSteps(s.steps)
			return s.Save()
		}
	}
	return domain.ErrStepNotFound
}

// Reorder compacts order values to 0..len-1 and persists the result.
func (s *PlanStore) Reorder() error {
	domain.ReorderSteps(s.steps)
	return s.Save()
}

// Replace swaps the whole plan, used by bundle import.
func (s *PlanStore) Replace(steps []domain.PlanStep) error {
	s.steps = slices.Clone(steps)
	slices.SortStableFunc(s.steps, func(a, b domain.PlanStep) int {
		return a.Order - b.Order
	})
	return s.Save()
}
