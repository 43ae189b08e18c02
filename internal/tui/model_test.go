package tui

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"tasktracker/internal/adapters/storage/jsonfile"
	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

type fakeService struct {
	tasks  []domain.Task
	plan   []domain.PlanStep
	notes  string
	stamps app.FileStamps

	reloads  int
	saveAlls int

	addedTasks   []domain.TaskInput
	lastTaskEdit app.UpdateTaskInput
	deletedTasks []string
	addedSteps   []domain.PlanStepInput
	lastStepEdit app.UpdatePlanStepInput
	deletedSteps []string
	savedNotes   []string

	stampsErr     error
	updateTaskErr error
	saveAllErr    error
	saveNotesErr  error
}

func newFakeService(tasks []domain.Task, plan []domain.PlanStep, notes string) *fakeService {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	return &fakeService{
		tasks:  tasks,
		plan:   plan,
		notes:  notes,
		stamps: app.FileStamps{Tasks: base, Plan: base, Notes: base},
	}
}

// touch advances every stamp the way a write to the data dir would.
func (f *fakeService) touch() {
	f.stamps.Tasks = f.stamps.Tasks.Add(time.Second)
	f.stamps.Plan = f.stamps.Plan.Add(time.Second)
	f.stamps.Notes = f.stamps.Notes.Add(time.Second)
}

func (f *fakeService) Stamps(context.Context) (app.FileStamps, error) {
	if f.stampsErr != nil {
		return app.FileStamps{}, f.stampsErr
	}
	return f.stamps, nil
}

func (f *fakeService) ReloadAll(context.Context) error {
	f.reloads++
	return nil
}

func (f *fakeService) SaveAll(context.Context) error {
	f.saveAlls++
	return f.saveAllErr
}

func (f *fakeService) GetAllTasks(context.Context) []domain.Task { return slices.Clone(f.tasks) }

func (f *fakeService) AddTask(_ context.Context, in domain.TaskInput) (domain.Task, error) {
	f.addedTasks = append(f.addedTasks, in)
	task := domain.NewTask(in, time.Now().UTC())
	f.tasks = append(f.tasks, task)
	f.touch()
	return task, nil
}

func (f *fakeService) UpdateTask(_ context.Context, id string, in app.UpdateTaskInput) (domain.Task, error) {
	if f.updateTaskErr != nil {
		return domain.Task{}, f.updateTaskErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		f.lastTaskEdit = in
		if in.Title != nil {
			f.tasks[i].Title = *in.Title
		}
		if in.Description != nil {
			f.tasks[i].Description = *in.Description
		}
		if in.Priority != nil {
			f.tasks[i].Priority = *in.Priority
		}
		if in.Status != nil {
			f.tasks[i].Status = *in.Status
		}
		f.touch()
		return f.tasks[i], nil
	}
	return domain.Task{}, domain.ErrTaskNotFound
}

func (f *fakeService) DeleteTask(_ context.Context, id string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			f.deletedTasks = append(f.deletedTasks, id)
			f.touch()
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (f *fakeService) GetAllPlanSteps(context.Context) []domain.PlanStep {
	return slices.Clone(f.plan)
}

func (f *fakeService) AddPlanStep(_ context.Context, in domain.PlanStepInput) (domain.PlanStep, error) {
	f.addedSteps = append(f.addedSteps, in)
	step := domain.NewPlanStep(in, len(f.plan), time.Now().UTC())
	f.plan = append(f.plan, step)
	f.touch()
	return step, nil
}

func (f *fakeService) UpdatePlanStep(_ context.Context, id string, in app.UpdatePlanStepInput) (domain.PlanStep, error) {
	for i := range f.plan {
		if f.plan[i].ID != id {
			continue
		}
		f.lastStepEdit = in
		if in.Name != nil {
			f.plan[i].Name = *in.Name
		}
		if in.Description != nil {
			f.plan[i].Description = *in.Description
		}
		if in.Details != nil {
			f.plan[i].Details = *in.Details
		}
		if in.Order != nil {
			f.plan[i].Order = *in.Order
		}
		if in.Completed != nil {
			f.plan[i].Completed = *in.Completed
		}
		f.touch()
		return f.plan[i], nil
	}
	return domain.PlanStep{}, domain.ErrStepNotFound
}

func (f *fakeService) TogglePlanStep(_ context.Context, id string) (domain.PlanStep, error) {
	for i := range f.plan {
		if f.plan[i].ID == id {
			f.plan[i].Completed = !f.plan[i].Completed
			f.touch()
			return f.plan[i], nil
		}
	}
	return domain.PlanStep{}, domain.ErrStepNotFound
}

func (f *fakeService) DeletePlanStep(_ context.Context, id string) error {
	for i := range f.plan {
		if f.plan[i].ID == id {
			f.plan = slices.Delete(f.plan, i, i+1)
			f.deletedSteps = append(f.deletedSteps, id)
			f.touch()
			return nil
		}
	}
	return domain.ErrStepNotFound
}

func (f *fakeService) GetNotes(context.Context) string { return f.notes }

func (f *fakeService) SaveNotes(_ context.Context, text string) error {
	if f.saveNotesErr != nil {
		return f.saveNotesErr
	}
	f.notes = text
	f.savedNotes = append(f.savedNotes, text)
	f.touch()
	return nil
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: "t1", Title: "Write report", Priority: domain.PriorityHigh, Status: domain.StatusNotStarted, CreatedAt: "2026-08-19T10:00:00Z", UpdatedAt: "2026-08-19T10:00:00Z"},
		{ID: "t2", Title: "Review notes", Priority: domain.PriorityMedium, Status: domain.StatusInProgress, CreatedAt: "2026-08-19T11:00:00Z", UpdatedAt: "2026-08-20T09:00:00Z"},
		{ID: "t3", Title: "File expenses", Priority: domain.PriorityLow, Status: domain.StatusCompleted, CreatedAt: "2026-08-19T12:00:00Z", UpdatedAt: "2026-08-19T12:00:00Z"},
	}
}

func sampleSteps() []domain.PlanStep {
	return []domain.PlanStep{
		{ID: "s1", Name: "Outline", Description: "Draft the outline", Order: 0, CreatedAt: "2026-08-19T10:00:00Z", UpdatedAt: "2026-08-19T10:00:00Z"},
		{ID: "s2", Name: "Research", Description: "Collect sources", Details: "Start with the archive", Order: 1, Completed: true, CreatedAt: "2026-08-19T10:05:00Z", UpdatedAt: "2026-08-19T10:05:00Z"},
	}
}

// loadReadyModel feeds the initial load by hand instead of through Init so
// the poll timer never arms inside a unit test.
func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.loadData), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestModelLoadsSnapshot(t *testing.T) {
	svc := newFakeService(sampleTasks(), sampleSteps(), "remember the milk")
	m := loadReadyModel(t, NewModel(svc))

	if !m.ready {
		t.Fatal("model not ready after load and resize")
	}
	board := m.renderBoard()
	for _, want := range []string{"Tasks", "Task Details", "Project Plan", "Notes", "Write report", "Outline", "remember the milk"} {
		if !strings.Contains(board, want) {
			t.Fatalf("board missing %q", want)
		}
	}
	if m.tasks[0].ID != "t1" || m.tasks[2].ID != "t3" {
		t.Fatalf("tasks not ordered by priority: %v", m.tasks)
	}
}

func TestModelViewStates(t *testing.T) {
	m := NewModel(newFakeService(nil, nil, ""))
	v := m.View()
	if v.Content == nil || !v.AltScreen {
		t.Fatal("expected fullscreen loading view")
	}

	m = loadReadyModel(t, m)
	if v = m.View(); v.Content == nil {
		t.Fatal("expected board view content")
	}
}

func TestSortTasksGroupsByPriorityThenStatus(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Priority: domain.PriorityLow, Status: domain.StatusNotStarted},
		{ID: "b", Priority: domain.PriorityHigh, Status: domain.StatusNotStarted},
		{ID: "c", Priority: domain.PriorityHigh, Status: domain.StatusCompleted},
		{ID: "d", Priority: domain.PriorityMedium, Status: domain.StatusInProgress},
	}
	sorted := sortTasks(tasks)
	got := make([]string, len(sorted))
	for i, task := range sorted {
		got[i] = task.ID
	}
	want := []string{"c", "b", "d", "a"}
	if !slices.Equal(got, want) {
		t.Fatalf("sortTasks order = %v, want %v", got, want)
	}
}

func TestTaskScrollFollowsSelection(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "one", Priority: 1, Status: domain.StatusNotStarted},
		{ID: "t2", Title: "two", Priority: 1, Status: domain.StatusNotStarted},
		{ID: "t3", Title: "three", Priority: 1, Status: domain.StatusNotStarted},
		{ID: "t4", Title: "four", Priority: 1, Status: domain.StatusNotStarted},
		{ID: "t5", Title: "five", Priority: 1, Status: domain.StatusNotStarted},
	}
	svc := newFakeService(tasks, nil, "")
	m := loadReadyModel(t, NewModel(svc))
	m = applyMsg(t, m, tea.WindowSizeMsg{Width: 120, Height: 11})

	if got := m.taskWin.maxVisible(); got != 3 {
		t.Fatalf("maxVisible = %d, want 3", got)
	}
	for i := 0; i < 4; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if m.taskWin.selected != 4 || m.taskWin.scroll != 2 {
		t.Fatalf("after moving to last row: selected %d scroll %d, want 4/2", m.taskWin.selected, m.taskWin.scroll)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	if m.taskWin.selected != 4 {
		t.Fatalf("selection moved past last row: %d", m.taskWin.selected)
	}
}

func TestCycleStatusNormalizesLegacyPending(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Title: "legacy", Priority: 1, Status: domain.Status("pending")}}
	svc := newFakeService(tasks, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := svc.tasks[0].Status; got != domain.StatusInProgress {
		t.Fatalf("status after first toggle = %q, want in_progress", got)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := svc.tasks[0].Status; got != domain.StatusCompleted {
		t.Fatalf("status after second toggle = %q, want completed", got)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := m.tasks[0].Status; got != domain.StatusNotStarted {
		t.Fatalf("status after third toggle = %q, want not_started", got)
	}
}

func TestFocusCycleSkipsHiddenNotes(t *testing.T) {
	svc := newFakeService(sampleTasks(), sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	if m.notesVisible {
		t.Fatal("notes still visible after ctrl+x")
	}
	want := []focusArea{focusDetails, focusPlan, focusTasks}
	for i, area := range want {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
		if m.focus != area {
			t.Fatalf("tab %d landed on %v, want %v", i+1, m.focus, area)
		}
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	for i := 0; i < 3; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if m.focus != focusNotes {
		t.Fatalf("focus = %v, want notes after showing pane again", m.focus)
	}
}

func TestToggleNotesWhileFocusedReturnsToTasks(t *testing.T) {
	svc := newFakeService(sampleTasks(), sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	for i := 0; i < 3; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if m.focus != focusNotes {
		t.Fatalf("focus = %v, want notes", m.focus)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	if m.focus != focusTasks || m.notesVisible {
		t.Fatalf("after hiding notes: focus %v visible %v, want tasks/false", m.focus, m.notesVisible)
	}
	if m.taskWin.width != 60 {
		t.Fatalf("task pane width = %d, want 60 with notes hidden", m.taskWin.width)
	}
}

func TestNewTaskFormSubmits(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('n'))
	if m.mode != modeNewTask {
		t.Fatalf("mode = %v, want new task form", m.mode)
	}
	for _, r := range "Pay rent" {
		m = applyMsg(t, m, keyRune(r))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, keyRune('2'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(svc.addedTasks) != 1 {
		t.Fatalf("added %d tasks, want 1", len(svc.addedTasks))
	}
	in := svc.addedTasks[0]
	if in.Title != "Pay rent" || in.Priority != domain.PriorityMedium || in.Status != domain.StatusNotStarted {
		t.Fatalf("unexpected task input: %+v", in)
	}
	if m.mode != modeNone {
		t.Fatalf("mode = %v after submit, want none", m.mode)
	}
	task, ok := m.selectedTask()
	if !ok || task.Title != "Pay rent" {
		t.Fatalf("new task not selected after reload: %+v", task)
	}
}

func TestNewTaskBlankPriorityDefaultsLow(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('x'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(svc.addedTasks) != 1 || svc.addedTasks[0].Priority != domain.PriorityLow {
		t.Fatalf("blank priority should fall back to low: %+v", svc.addedTasks)
	}
}

func TestEditTaskKeepsFieldsOnBadInput(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Title: "Keep me", Priority: domain.PriorityMedium, Status: domain.StatusInProgress}}
	svc := newFakeService(tasks, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('e'))
	if m.mode != modeEditTask {
		t.Fatalf("mode = %v, want edit task form", m.mode)
	}
	if got := m.form.inputs[2].Value(); got != "2" {
		t.Fatalf("priority field prefilled with %q, want 2", got)
	}
	m.form.inputs[2].SetValue("")
	m.form.inputs[3].SetValue("bogus")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	edit := svc.lastTaskEdit
	if edit.Priority == nil || *edit.Priority != domain.PriorityMedium {
		t.Fatalf("blank priority did not keep current value: %+v", edit.Priority)
	}
	if edit.Status == nil || *edit.Status != domain.StatusInProgress {
		t.Fatalf("unknown status did not keep current value: %+v", edit.Status)
	}
}

func TestEditTaskAcceptsLegacyPendingStatus(t *testing.T) {
	tasks := []domain.Task{{ID: "t1", Title: "Old data", Priority: domain.PriorityMedium, Status: domain.StatusCompleted}}
	svc := newFakeService(tasks, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('e'))
	m.form.inputs[3].SetValue("pending")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	edit := svc.lastTaskEdit
	if edit.Status == nil || *edit.Status != domain.StatusNotStarted {
		t.Fatalf("pending alias not normalized: %+v", edit.Status)
	}
}

func TestNewStepRequiresName(t *testing.T) {
	svc := newFakeService(nil, sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != focusPlan {
		t.Fatalf("focus = %v, want plan", m.focus)
	}
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(svc.addedSteps) != 0 {
		t.Fatalf("step added despite empty name: %+v", svc.addedSteps)
	}
	if m.mode != modeNone {
		t.Fatalf("form still open: mode %v", m.mode)
	}
}

func TestPlanToggleCompletion(t *testing.T) {
	svc := newFakeService(nil, sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, keyRune(' '))

	if !svc.plan[0].Completed {
		t.Fatal("first step not toggled to completed")
	}
}

func TestPlanDetailsToggle(t *testing.T) {
	svc := newFakeService(nil, sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = applyMsg(t, m, keyRune('d'))

	if !m.planDetails {
		t.Fatal("d did not open step details")
	}
	if board := m.renderBoard(); !strings.Contains(board, "Start with the archive") {
		t.Fatal("details view missing step details text")
	}
	m = applyMsg(t, m, keyRune('d'))
	if m.planDetails {
		t.Fatal("d did not return to the list")
	}
}

func TestEditStepInvalidOrderKeepsCurrent(t *testing.T) {
	svc := newFakeService(nil, sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyDown})
	m = applyMsg(t, m, keyRune('e'))
	if m.mode != modeEditStep {
		t.Fatalf("mode = %v, want edit step form", m.mode)
	}
	m.form.inputs[3].SetValue("-4")
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	edit := svc.lastStepEdit
	if edit.Order == nil || *edit.Order != 1 {
		t.Fatalf("negative order did not keep current value: %+v", edit.Order)
	}
}

func TestDeleteTaskNeedsConfirmation(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.confirm.message, "'Write report'") {
		t.Fatalf("confirm message = %q", m.confirm.message)
	}

	// Enter keeps the task because No is preselected.
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(svc.deletedTasks) != 0 {
		t.Fatal("enter on default No still deleted the task")
	}
	if m.mode != modeNone {
		t.Fatalf("dialog still open: mode %v", m.mode)
	}

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if len(svc.deletedTasks) != 1 || svc.deletedTasks[0] != "t1" {
		t.Fatalf("deleted = %v, want [t1]", svc.deletedTasks)
	}
	if m.status != "task deleted" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestDeleteStepNeedsConfirmation(t *testing.T) {
	svc := newFakeService(nil, sampleSteps(), "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'D', Text: "D"})
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.confirm.message, "'Draft the outline'") {
		t.Fatalf("confirm message = %q", m.confirm.message)
	}
	m = applyMsg(t, m, keyRune('y'))
	if len(svc.deletedSteps) != 1 || svc.deletedSteps[0] != "s1" {
		t.Fatalf("deleted = %v, want [s1]", svc.deletedSteps)
	}
}

func TestConfirmArrowsMoveChoice(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, keyRune('d'))
	if m.confirm.choice != choiceNo {
		t.Fatalf("choice = %d, want default No", m.confirm.choice)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyLeft})
	if m.confirm.choice != choiceYes {
		t.Fatalf("choice = %d after left, want Yes", m.confirm.choice)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(svc.deletedTasks) != 1 {
		t.Fatalf("enter on Yes did not delete: %v", svc.deletedTasks)
	}
}

func TestQuitConfirmFlow(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeConfirm || m.confirm.title != "Exit Confirmation" {
		t.Fatalf("esc did not open exit confirm: mode %v title %q", m.mode, m.confirm.title)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeNone {
		t.Fatalf("mode = %v after declining, want none", m.mode)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	updated, cmd := m.Update(keyRune('y'))
	if _, ok := updated.(Model); !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	if cmd == nil {
		t.Fatal("confirming quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("confirming quit did not produce a quit message")
	}
	if svc.saveAlls != 1 {
		t.Fatalf("saveAlls = %d after confirmed quit, want 1", svc.saveAlls)
	}
}

func TestQuitWithoutConfirmOption(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	m := loadReadyModel(t, NewModel(svc, WithConfirmQuit(false)))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc returned no command with confirm disabled")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("esc did not quit with confirm disabled")
	}
	if svc.saveAlls != 1 {
		t.Fatalf("saveAlls = %d after quit, want 1", svc.saveAlls)
	}
}

func TestQuitSaveFailureSurfacesOnErr(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	svc.saveAllErr = errors.New("disk full")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	updated, _ := m.Update(keyRune('y'))
	final, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	if final.Err() == nil || !strings.Contains(final.Err().Error(), "disk full") {
		t.Fatalf("Err() = %v, want the save failure", final.Err())
	}
}

func TestQuitRewritesStoresFromMemory(t *testing.T) {
	dir := t.TempDir()
	svc, err := app.Open(dir, nil)
	if err != nil {
		t.Fatalf("open service: %v", err)
	}
	task, err := svc.AddTask(context.Background(), domain.TaskInput{
		Title:    "survive exit",
		Priority: domain.PriorityMedium,
		Status:   domain.StatusNotStarted,
	})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	m := loadReadyModel(t, NewModel(svc))

	// Another writer mangles the file while the board holds good state.
	path := filepath.Join(dir, jsonfile.TasksFileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt tasks.json: %v", err)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	m = applyMsg(t, m, keyRune('y'))
	if err := m.Err(); err != nil {
		t.Fatalf("quit save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read tasks.json: %v", err)
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatalf("tasks.json unreadable after quit: %v\n%s", err, data)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("tasks.json holds %d tasks, want the one in memory", len(tasks))
	}
}

func TestPollReloadsOncePerChange(t *testing.T) {
	svc := newFakeService(sampleTasks(), sampleSteps(), "old")
	m := loadReadyModel(t, NewModel(svc, WithPollInterval(time.Millisecond)))

	// Several files change between polls; one reload must cover all of them.
	svc.tasks[0].Title = "Rewritten externally"
	svc.notes = "new"
	svc.touch()

	m = applyMsg(t, m, tickMsg{})
	if svc.reloads != 1 {
		t.Fatalf("reloads = %d, want exactly 1", svc.reloads)
	}
	if m.tasks[0].Title != "Rewritten externally" || m.notes != "new" {
		t.Fatalf("snapshot not refreshed: %q / %q", m.tasks[0].Title, m.notes)
	}
}

func TestPollSkippedWhileDialogOpen(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc, WithPollInterval(time.Millisecond)))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.mode != modeConfirm {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	svc.tasks[0].Title = "Changed behind the dialog"
	svc.touch()

	m = applyMsg(t, m, tickMsg{})
	if svc.reloads != 0 {
		t.Fatalf("reloads = %d while dialog open, want 0", svc.reloads)
	}
	if m.tasks[0].Title == "Changed behind the dialog" {
		t.Fatal("snapshot refreshed while dialog open")
	}
}

func TestPollReportsStampErrors(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc, WithPollInterval(time.Millisecond)))

	svc.stampsErr = errors.New("data dir unreadable")
	m = applyMsg(t, m, tickMsg{})
	if !strings.Contains(m.status, "data dir unreadable") {
		t.Fatalf("status = %q, want stamp error", m.status)
	}
}

func TestLoadErrorSetsStatus(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	svc.stampsErr = errors.New("permission denied")
	m := NewModel(svc)
	m = applyCmd(t, m, m.loadData)

	if !strings.Contains(m.status, "permission denied") {
		t.Fatalf("status = %q, want load error", m.status)
	}
}

func TestNotesEditSavesOnEscape(t *testing.T) {
	svc := newFakeService(nil, nil, "")
	m := loadReadyModel(t, NewModel(svc))

	for i := 0; i < 3; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	m = applyMsg(t, m, keyRune('e'))
	if !m.notesEditing {
		t.Fatal("e did not enter notes edit mode")
	}
	m = applyMsg(t, m, keyRune('h'))
	m = applyMsg(t, m, keyRune('i'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = applyMsg(t, m, keyRune('!'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if m.notesEditing {
		t.Fatal("esc did not leave edit mode")
	}
	if len(svc.savedNotes) != 1 || svc.savedNotes[0] != "hi\n" {
		t.Fatalf("saved notes = %q, want [\"hi\\n\"]", svc.savedNotes)
	}
	if m.status != "notes saved" {
		t.Fatalf("status = %q", m.status)
	}
}

func TestNotesEditSwallowsGlobalKeys(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc))

	for i := 0; i < 3; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	m = applyMsg(t, m, keyRune('e'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	m = applyMsg(t, m, keyRune('n'))

	if m.focus != focusNotes || m.mode != modeNone {
		t.Fatalf("edit mode leaked keys: focus %v mode %v", m.focus, m.mode)
	}
	if m.notesBuffer != "n" {
		t.Fatalf("buffer = %q, want \"n\"", m.notesBuffer)
	}
}

func TestNotesBufferSurvivesExternalReload(t *testing.T) {
	svc := newFakeService(nil, nil, "before")
	m := loadReadyModel(t, NewModel(svc, WithPollInterval(time.Millisecond)))

	for i := 0; i < 3; i++ {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	}
	m = applyMsg(t, m, keyRune('e'))
	m = applyMsg(t, m, keyRune('x'))

	svc.notes = "rewritten elsewhere"
	svc.touch()
	m = applyMsg(t, m, tickMsg{})

	if m.notes != "rewritten elsewhere" {
		t.Fatalf("notes = %q, want external content", m.notes)
	}
	if !m.notesEditing || m.notesBuffer != "beforex" {
		t.Fatalf("edit buffer clobbered by reload: editing %v buffer %q", m.notesEditing, m.notesBuffer)
	}
}

func TestActionErrorShowsMessageModal(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	svc.updateTaskErr = domain.ErrTaskNotFound
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.mode != modeMessage {
		t.Fatalf("mode = %v, want message modal", m.mode)
	}
	if !strings.Contains(m.message, "task not found") {
		t.Fatalf("message = %q", m.message)
	}
	m = applyMsg(t, m, keyRune('x'))
	if m.mode != modeNone || m.message != "" {
		t.Fatalf("modal not dismissed: mode %v message %q", m.mode, m.message)
	}
}

func TestDetailsPaneIgnoresActionKeys(t *testing.T) {
	svc := newFakeService(sampleTasks(), nil, "")
	m := loadReadyModel(t, NewModel(svc))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != focusDetails {
		t.Fatalf("focus = %v, want details", m.focus)
	}
	m = applyMsg(t, m, keyRune('n'))
	m = applyMsg(t, m, keyRune('d'))
	if m.mode != modeNone || len(svc.addedTasks) != 0 {
		t.Fatalf("details pane reacted to keys: mode %v added %d", m.mode, len(svc.addedTasks))
	}
}
