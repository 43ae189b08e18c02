package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"tasktracker/internal/domain"
)

// Bundle is the export file layout: the full tracker state in one document.
// On import, an absent key leaves that part of the state untouched.
type Bundle struct {
	Tasks []domain.Task     `json:"tasks"`
	Plan  []domain.PlanStep `json:"plan"`
	Notes *string           `json:"notes,omitempty"`
}

// ExportData writes the complete tracker state to path as a single JSON
// bundle.
func (s *Service) ExportData(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := s.notes.Get()
	bundle := Bundle{
		Tasks: s.tasks.All(),
		Plan:  s.plan.All(),
		Notes: &notes,
	}
	if bundle.Tasks == nil {
		bundle.Tasks = []domain.Task{}
	}
	if bundle.Plan == nil {
		bundle.Plan = []domain.PlanStep{}
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export bundle: %w", err)
	}
	return nil
}

// ImportData replaces tracker state with the bundle at path. Keys missing
// from the bundle keep their current state; everything touched is saved.
func (s *Service) ImportData(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import bundle: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("parse import bundle: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bundle.Tasks != nil {
		if err := s.tasks.Replace(bundle.Tasks); err != nil {
			return err
		}
	}
	if bundle.Plan != nil {
		if err := s.plan.Replace(bundle.Plan); err != nil {
			return err
		}
	}
	if bundle.Notes != nil {
		if err := s.notes.Save(*bundle.Notes); err != nil {
			return err
		}
	}
	return nil
}
