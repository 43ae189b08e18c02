// Package app exposes the tracker's data API: one facade over the task,
// plan, and notes stores that every surface (TUI, CLI, MCP server) talks to.
package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"tasktracker/internal/adapters/storage/jsonfile"
	"tasktracker/internal/domain"
)

// Clock returns the current time.
type Clock func() time.Time

// Service represents the data API shared by all surfaces. Methods are safe
// for concurrent use; the MCP server handles requests concurrently while
// the TUI polls.
type Service struct {
	mu    sync.Mutex
	tasks *jsonfile.TaskStore
	plan  *jsonfile.PlanStore
	notes *jsonfile.NotesStore
	clock Clock
}

// Open wires a Service over the three backing files in dataDir, creating
// the directory when needed. A malformed existing file is reported but
// still yields a usable Service holding the readable remainder.
func Open(dataDir string, clock Clock) (*Service, error) {
	if clock == nil {
		clock = time.Now
	}
	if err := jsonfile.EnsureDataDir(dataDir); err != nil {
		return nil, err
	}
	tasks, tasksErr := jsonfile.OpenTaskStore(filepath.Join(dataDir, jsonfile.TasksFileName))
	plan, planErr := jsonfile.OpenPlanStore(filepath.Join(dataDir, jsonfile.PlanFileName))
	notes, notesErr := jsonfile.OpenNotesStore(filepath.Join(dataDir, jsonfile.NotesFileName))
	svc := &Service{tasks: tasks, plan: plan, notes: notes, clock: clock}
	return svc, errors.Join(tasksErr, planErr, notesErr)
}

// FileStamps carries the backing files' modification times, used only for
// external-change detection.
type FileStamps struct {
	Tasks time.Time
	Plan  time.Time
	Notes time.Time
}

// Equal reports whether no backing file changed between two readings.
func (f FileStamps) Equal(o FileStamps) bool {
	return f.Tasks.Equal(o.Tasks) && f.Plan.Equal(o.Plan) && f.Notes.Equal(o.Notes)
}

// Stamps reads the current backing-file modification times.
func (s *Service) Stamps(ctx context.Context) (FileStamps, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks, tasksErr := s.tasks.ModTime()
	plan, planErr := s.plan.ModTime()
	notes, notesErr := s.notes.ModTime()
	return FileStamps{Tasks: tasks, Plan: plan, Notes: notes}, errors.Join(tasksErr, planErr, notesErr)
}

// ReloadAll re-reads every backing store. A store whose file is transiently
// malformed keeps its previous in-memory state and contributes an error.
func (s *Service) ReloadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.tasks.Load(), s.plan.Load(), s.notes.Load())
}

// SaveAll writes every store back out.
func (s *Service) SaveAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Join(s.tasks.Save(), s.plan.Save(), s.notes.Save(s.notes.Get()))
}

func (s *Service) GetAllTasks(ctx context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.All()
}

func (s *Service) GetTask(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Get(id)
}

func (s *Service) AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Add(in, s.clock())
}

// UpdateTaskInput holds the task fields to change; nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.Status
}

func (s *Service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Update(id, jsonfile.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
	}, s.clock())
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Delete(id)
}

func (s *Service) GetAllPlanSteps(ctx context.Context) []domain.PlanStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.All()
}

func (s *Service) GetPlanStep(ctx context.Context, id string) (domain.PlanStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Get(id)
}

func (s *Service) AddPlanStep(ctx context.Context, in domain.PlanStepInput) (domain.PlanStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Add(in, s.clock())
}

// UpdatePlanStepInput holds the step fields to change; nil fields are left
// untouched. Setting Order triggers a full reorder.
type UpdatePlanStepInput struct {
	Name        *string
	Description *string
	Details     *string
	Order       *int
	Completed   *bool
}

func (s *Service) UpdatePlanStep(ctx context.Context, id string, in UpdatePlanStepInput) (domain.PlanStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Update(id, jsonfile.PlanStepUpdate{
		Name:        in.Name,
		Description: in.Description,
		Details:     in.Details,
		Order:       in.Order,
		Completed:   in.Completed,
	}, s.clock())
}

func (s *Service) TogglePlanStep(ctx context.Context, id string) (domain.PlanStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Toggle(id, s.clock())
}

func (s *Service) DeletePlanStep(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Delete(id)
}

func (s *Service) ReorderPlanSteps(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.Reorder()
}

func (s *Service) GetNotes(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Get()
}

func (s *Service) SaveNotes(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Save(text)
}
