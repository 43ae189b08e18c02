package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

// Service is the application surface the board depends on.
type Service interface {
	Stamps(ctx context.Context) (app.FileStamps, error)
	ReloadAll(ctx context.Context) error
	SaveAll(ctx context.Context) error
	GetAllTasks(ctx context.Context) []domain.Task
	AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, in app.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	GetAllPlanSteps(ctx context.Context) []domain.PlanStep
	AddPlanStep(ctx context.Context, in domain.PlanStepInput) (domain.PlanStep, error)
	UpdatePlanStep(ctx context.Context, id string, in app.UpdatePlanStepInput) (domain.PlanStep, error)
	TogglePlanStep(ctx context.Context, id string) (domain.PlanStep, error)
	DeletePlanStep(ctx context.Context, id string) error
	GetNotes(ctx context.Context) string
	SaveNotes(ctx context.Context, text string) error
}

type focusArea int

const (
	focusTasks focusArea = iota
	focusDetails
	focusPlan
	focusNotes
)

type inputMode int

const (
	modeNone inputMode = iota
	modeNewTask
	modeEditTask
	modeNewStep
	modeEditStep
	modeConfirm
	modeMessage
)

const (
	actionQuit       = "quit"
	actionDeleteTask = "delete-task"
	actionDeleteStep = "delete-step"
)

// pendingAction is the operation a confirm dialog is guarding.
type pendingAction struct {
	kind string
	id   string
}

// loadedMsg carries a full snapshot of the three stores plus the file
// stamps the snapshot was read under.
type loadedMsg struct {
	tasks  []domain.Task
	plan   []domain.PlanStep
	notes  string
	stamps app.FileStamps
	err    error
}

// actionMsg reports the outcome of a mutating service call.
type actionMsg struct {
	err       error
	status    string
	reload    bool
	focusTask string
	focusStep string
}

type tickMsg struct{}

// pollMsg is the result of one file-change check. changed carries a fresh
// snapshot taken after the reload.
type pollMsg struct {
	changed bool
	loaded  loadedMsg
	err     error
}

// Model is the four-pane board: tasks and details on top, the plan below,
// and the notes column on the right.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int

	help   help.Model
	keys   keyMap
	status string

	pollEvery   time.Duration
	notesWidth  int
	confirmQuit bool

	tasks  []domain.Task
	plan   []domain.PlanStep
	notes  string
	stamps app.FileStamps

	focus        focusArea
	notesVisible bool

	taskWin   window
	detailWin window
	planWin   window
	notesWin  window

	planDetails  bool
	notesEditing bool
	notesBuffer  string

	mode    inputMode
	form    inputForm
	confirm confirmDialog
	pending pendingAction
	message string

	editTask domain.Task
	editStep domain.PlanStep

	pendingFocusTask string
	pendingFocusStep string

	quitErr error
}

// NewModel constructs the board bound to svc.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:          svc,
		help:         h,
		keys:         newKeyMap(),
		pollEvery:    time.Second,
		notesWidth:   30,
		confirmQuit:  true,
		notesVisible: true,
		focus:        focusTasks,
		taskWin:      window{title: "Tasks"},
		detailWin:    window{title: "Task Details"},
		planWin:      window{title: "Project Plan"},
		notesWin:     window{title: "Notes"},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadData, m.pollTick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case loadedMsg:
		m.applyLoaded(msg)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.mode = modeMessage
			m.message = msg.err.Error()
			return m, nil
		}
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.focusTask != "" {
			m.pendingFocusTask = msg.focusTask
		}
		if msg.focusStep != "" {
			m.pendingFocusStep = msg.focusStep
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case tickMsg:
		if m.mode != modeNone {
			return m, m.pollTick()
		}
		return m, m.checkFiles

	case pollMsg:
		if msg.err != nil {
			m.status = "reload failed: " + msg.err.Error()
		} else if msg.changed {
			m.applyLoaded(msg.loaded)
		}
		return m, m.pollTick()

	case tea.KeyPressMsg:
		m.status = ""
		if m.mode != modeNone {
			return m.handleDialogKey(msg)
		}
		return m.handleBoardKey(msg)
	}
	return m, nil
}

// applyLoaded installs a store snapshot and re-clamps the list selections.
// A pending focus id set by a create action wins over the old selection.
func (m *Model) applyLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.status = "load failed: " + msg.err.Error()
		return
	}
	m.tasks = msg.tasks
	m.plan = msg.plan
	m.notes = msg.notes
	m.stamps = msg.stamps
	if m.pendingFocusTask != "" {
		for i, t := range m.tasks {
			if t.ID == m.pendingFocusTask {
				m.taskWin.selected = i
				break
			}
		}
		m.pendingFocusTask = ""
	}
	if m.pendingFocusStep != "" {
		for i, s := range m.plan {
			if s.ID == m.pendingFocusStep {
				m.planWin.selected = i
				break
			}
		}
		m.pendingFocusStep = ""
	}
	m.taskWin.adjust(len(m.tasks))
	m.planWin.adjust(len(m.plan))
}

// handleBoardKey routes keys while no dialog is open. Notes edit mode
// swallows everything except Esc; the global bindings run next, then the
// focused pane's handler.
func (m Model) handleBoardKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusNotes && m.notesEditing {
		return m.handleNotesEditKey(msg)
	}
	switch {
	case msg.Code == tea.KeyEscape || key.Matches(msg, m.keys.quit):
		return m.startQuit()
	case key.Matches(msg, m.keys.focusNext):
		m.cycleFocus()
		return m, nil
	case key.Matches(msg, m.keys.toggleNotes):
		m.toggleNotesPane()
		return m, nil
	}
	if handler := m.focusHandler(m.focus); handler != nil {
		return handler(msg)
	}
	return m, nil
}

// focusHandler is the dispatch table keyed by the focused pane.
func (m Model) focusHandler(area focusArea) func(tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	handlers := map[focusArea]func(tea.KeyPressMsg) (tea.Model, tea.Cmd){
		focusTasks:   m.handleTasksKey,
		focusDetails: m.handleDetailsKey,
		focusPlan:    m.handlePlanKey,
		focusNotes:   m.handleNotesKey,
	}
	return handlers[area]
}

func (m Model) handleTasksKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.taskWin.selectPrev(len(m.tasks))
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.taskWin.selectNext(len(m.tasks))
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		next := domain.CycleStatus(task.Status)
		return m, m.updateTask(task.ID, app.UpdateTaskInput{Status: &next})
	case key.Matches(msg, m.keys.newItem):
		cmd := m.startTaskForm(nil)
		return m, cmd
	case key.Matches(msg, m.keys.editItem):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		cmd := m.startTaskForm(&task)
		return m, cmd
	case key.Matches(msg, m.keys.deleteTask):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		m.confirm = newConfirmDialog("Delete Task",
			fmt.Sprintf("Are you sure you want to delete the task '%s'?", task.Title))
		m.pending = pendingAction{kind: actionDeleteTask, id: task.ID}
		m.mode = modeConfirm
		return m, nil
	case key.Matches(msg, m.keys.yankID):
		task, ok := m.selectedTask()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(task.ID); err != nil {
			m.status = "clipboard: " + err.Error()
		} else {
			m.status = "task id copied"
		}
		return m, nil
	}
	return m, nil
}

// handleDetailsKey exists so the dispatch table covers every pane; the
// detail pane is read-only.
func (m Model) handleDetailsKey(tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m Model) handlePlanKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.up):
		m.planWin.selectPrev(len(m.plan))
		return m, nil
	case key.Matches(msg, m.keys.down):
		m.planWin.selectNext(len(m.plan))
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		step, ok := m.selectedStep()
		if !ok {
			return m, nil
		}
		return m, m.toggleStep(step.ID)
	case key.Matches(msg, m.keys.planDetails):
		if _, ok := m.selectedStep(); ok {
			m.planDetails = !m.planDetails
		}
		return m, nil
	case key.Matches(msg, m.keys.newItem):
		cmd := m.startStepForm(nil)
		return m, cmd
	case key.Matches(msg, m.keys.editItem):
		step, ok := m.selectedStep()
		if !ok {
			return m, nil
		}
		cmd := m.startStepForm(&step)
		return m, cmd
	case key.Matches(msg, m.keys.deleteStep):
		step, ok := m.selectedStep()
		if !ok {
			return m, nil
		}
		m.confirm = newConfirmDialog("Delete Plan Step",
			fmt.Sprintf("Are you sure you want to delete the plan step '%s'?", step.Description))
		m.pending = pendingAction{kind: actionDeleteStep, id: step.ID}
		m.mode = modeConfirm
		return m, nil
	}
	return m, nil
}

func (m Model) handleNotesKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.editItem) {
		m.notesEditing = true
		m.notesBuffer = m.notes
	}
	return m, nil
}

// handleNotesEditKey is the naive notes editor: printable text appends,
// backspace trims one rune, enter adds a newline. Esc commits the buffer.
func (m Model) handleNotesEditKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Code == tea.KeyEscape || msg.String() == "esc":
		m.notesEditing = false
		m.notes = m.notesBuffer
		return m, m.saveNotes(m.notesBuffer)
	case msg.Code == tea.KeyEnter:
		m.notesBuffer += "\n"
	case msg.Code == tea.KeyBackspace:
		if rs := []rune(m.notesBuffer); len(rs) > 0 {
			m.notesBuffer = string(rs[:len(rs)-1])
		}
	default:
		if msg.Text != "" && !strings.ContainsFunc(msg.Text, unicode.IsControl) {
			m.notesBuffer += msg.Text
		}
	}
	return m, nil
}

// handleDialogKey routes keys while a form, confirm, or message modal is up.
func (m Model) handleDialogKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeMessage {
		m.mode = modeNone
		m.message = ""
		return m, nil
	}

	if m.mode == modeConfirm {
		switch msg.String() {
		case "esc", "n", "N":
			m.mode = modeNone
			m.pending = pendingAction{}
			return m, nil
		case "left", "right":
			m.confirm.toggle()
			return m, nil
		case "y", "Y":
			return m.applyConfirmed()
		case "enter":
			if m.confirm.choice == choiceYes {
				return m.applyConfirmed()
			}
			m.mode = modeNone
			m.pending = pendingAction{}
			return m, nil
		}
		return m, nil
	}

	switch {
	case msg.Code == tea.KeyEscape || msg.String() == "esc":
		m.mode = modeNone
		return m, nil
	case msg.Code == tea.KeyEnter || msg.String() == "enter":
		return m.submitForm()
	case msg.Code == tea.KeyTab || msg.String() == "tab":
		cmd := m.form.focusNext(true)
		return m, cmd
	case msg.String() == "down":
		cmd := m.form.focusNext(false)
		return m, cmd
	case msg.String() == "up":
		cmd := m.form.focusPrev()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
}

func (m Model) applyConfirmed() (tea.Model, tea.Cmd) {
	action := m.pending
	m.pending = pendingAction{}
	m.mode = modeNone
	switch action.kind {
	case actionQuit:
		return m.quitNow()
	case actionDeleteTask:
		return m, m.deleteTask(action.id)
	case actionDeleteStep:
		return m, m.deleteStep(action.id)
	}
	return m, nil
}

func (m Model) startQuit() (tea.Model, tea.Cmd) {
	if !m.confirmQuit {
		return m.quitNow()
	}
	m.confirm = newConfirmDialog("Exit Confirmation",
		"Are you sure you want to exit? Any unsaved changes will be lost.")
	m.pending = pendingAction{kind: actionQuit}
	m.mode = modeConfirm
	return m, nil
}

// quitNow pushes the in-memory state back through the stores before the
// program stops: an in-flight notes edit is committed first, then every
// store is saved. Failures ride out on Err for the command layer to report.
func (m Model) quitNow() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	if m.notesEditing {
		m.notesEditing = false
		m.notes = m.notesBuffer
		if err := m.svc.SaveNotes(ctx, m.notesBuffer); err != nil {
			m.quitErr = fmt.Errorf("save notes: %w", err)
		}
	}
	if err := m.svc.SaveAll(ctx); err != nil {
		m.quitErr = errors.Join(m.quitErr, fmt.Errorf("save state: %w", err))
	}
	return m, tea.Quit
}

// Err reports a persistence failure from the quit path. The program runner
// inspects it on the final model once the loop has exited.
func (m Model) Err() error { return m.quitErr }

// startTaskForm opens the task dialog, prefilled when editing.
func (m *Model) startTaskForm(task *domain.Task) tea.Cmd {
	if task != nil {
		m.editTask = *task
		m.form = newInputForm("Edit Task",
			[]string{"Title", "Description", "Priority (1-3)", "Status"},
			[]string{task.Title, task.Description, strconv.Itoa(int(task.Priority)), string(task.Status)})
		m.mode = modeEditTask
	} else {
		m.form = newInputForm("New Task",
			[]string{"Title", "Description", "Priority (1-3)"}, nil)
		m.mode = modeNewTask
	}
	return m.form.focusField(0)
}

// startStepForm opens the plan step dialog, prefilled when editing.
func (m *Model) startStepForm(step *domain.PlanStep) tea.Cmd {
	if step != nil {
		m.editStep = *step
		m.form = newInputForm("Edit Plan Step",
			[]string{"Name", "Description", "Details", "Order"},
			[]string{step.Name, step.Description, step.Details, strconv.Itoa(step.Order)})
		m.mode = modeEditStep
	} else {
		m.form = newInputForm("New Plan Step",
			[]string{"Name", "Description", "Details"}, nil)
		m.mode = modeNewStep
	}
	return m.form.focusField(0)
}

// submitForm reads the dialog values and fires the matching service call.
// Malformed priority, status, and order fields fall back instead of
// failing: to the defaults on create, to the item's current values on edit.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	values := m.form.values()
	mode := m.mode
	m.mode = modeNone
	switch mode {
	case modeNewTask:
		in := domain.TaskInput{
			Title:       values[0],
			Description: values[1],
			Priority:    domain.ParsePriority(values[2], domain.PriorityLow),
			Status:      domain.StatusNotStarted,
		}
		return m, m.addTask(in)
	case modeEditTask:
		prio := domain.ParsePriority(values[2], m.editTask.Priority)
		status := m.editTask.Status
		if parsed, ok := domain.ParseStatus(values[3]); ok {
			status = parsed
		}
		in := app.UpdateTaskInput{
			Title:       &values[0],
			Description: &values[1],
			Priority:    &prio,
			Status:      &status,
		}
		return m, m.updateTask(m.editTask.ID, in)
	case modeNewStep:
		if values[0] == "" {
			return m, nil
		}
		in := domain.PlanStepInput{Name: values[0], Description: values[1], Details: values[2]}
		return m, m.addStep(in)
	case modeEditStep:
		order := m.editStep.Order
		if v := strings.TrimSpace(values[3]); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				order = n
			}
		}
		in := app.UpdatePlanStepInput{
			Name:        &values[0],
			Description: &values[1],
			Details:     &values[2],
			Order:       &order,
		}
		return m, m.updateStep(m.editStep.ID, in)
	}
	return m, nil
}

func (m *Model) cycleFocus() {
	order := m.focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.focus {
			idx = i
			break
		}
	}
	m.focus = order[(idx+1)%len(order)]
}

// focusOrder lists the reachable panes; the notes pane drops out while
// hidden.
func (m Model) focusOrder() []focusArea {
	order := []focusArea{focusTasks, focusDetails, focusPlan}
	if m.notesVisible {
		order = append(order, focusNotes)
	}
	return order
}

func (m *Model) toggleNotesPane() {
	m.notesVisible = !m.notesVisible
	if !m.notesVisible && m.focus == focusNotes {
		m.focus = focusTasks
	}
	m.layout()
}

func (m Model) selectedTask() (domain.Task, bool) {
	if len(m.tasks) == 0 {
		return domain.Task{}, false
	}
	return m.tasks[clamp(m.taskWin.selected, 0, len(m.tasks)-1)], true
}

func (m Model) selectedStep() (domain.PlanStep, bool) {
	if len(m.plan) == 0 {
		return domain.PlanStep{}, false
	}
	return m.plan[clamp(m.planWin.selected, 0, len(m.plan)-1)], true
}

// layout recomputes the pane geometry: the top half splits between tasks
// and details, the plan takes the rest, and the notes column sits on the
// right at a fixed width. The bottom row is reserved for the help line.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	boardHeight := max(2, m.height-1)
	mainWidth := m.width
	if m.notesVisible {
		mainWidth = max(2, m.width-m.notesWidth)
	}
	topHeight := boardHeight / 2
	taskWidth := mainWidth / 2
	m.taskWin.resize(taskWidth, topHeight)
	m.detailWin.resize(mainWidth-taskWidth, topHeight)
	m.planWin.resize(mainWidth, boardHeight-topHeight)
	m.notesWin.resize(m.width-mainWidth, boardHeight)
	m.taskWin.adjust(len(m.tasks))
	m.planWin.adjust(len(m.plan))
}

func (m Model) pollTick() tea.Cmd {
	return tea.Tick(m.pollEvery, func(time.Time) tea.Msg { return tickMsg{} })
}

// loadData snapshots the three stores along with their file stamps.
func (m Model) loadData() tea.Msg {
	ctx := context.Background()
	stamps, err := m.svc.Stamps(ctx)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{
		tasks:  sortTasks(m.svc.GetAllTasks(ctx)),
		plan:   m.svc.GetAllPlanSteps(ctx),
		notes:  m.svc.GetNotes(ctx),
		stamps: stamps,
	}
}

// checkFiles is one poll step: compare stamps, and on any difference reload
// everything and hand back a single fresh snapshot.
func (m Model) checkFiles() tea.Msg {
	ctx := context.Background()
	stamps, err := m.svc.Stamps(ctx)
	if err != nil {
		return pollMsg{err: err}
	}
	if stamps.Equal(m.stamps) {
		return pollMsg{}
	}
	if err := m.svc.ReloadAll(ctx); err != nil {
		return pollMsg{err: err}
	}
	loaded := m.loadData().(loadedMsg)
	if loaded.err != nil {
		return pollMsg{err: loaded.err}
	}
	return pollMsg{changed: true, loaded: loaded}
}

func (m Model) addTask(in domain.TaskInput) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.AddTask(context.Background(), in)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, focusTask: task.ID}
	}
}

func (m Model) updateTask(id string, in app.UpdateTaskInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.UpdateTask(context.Background(), id, in); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, focusTask: id}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(context.Background(), id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, status: "task deleted"}
	}
}

func (m Model) addStep(in domain.PlanStepInput) tea.Cmd {
	return func() tea.Msg {
		step, err := m.svc.AddPlanStep(context.Background(), in)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, focusStep: step.ID}
	}
}

func (m Model) updateStep(id string, in app.UpdatePlanStepInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.UpdatePlanStep(context.Background(), id, in); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, focusStep: id}
	}
}

func (m Model) toggleStep(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.TogglePlanStep(context.Background(), id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, focusStep: id}
	}
}

func (m Model) deleteStep(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeletePlanStep(context.Background(), id); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{reload: true, status: "plan step deleted"}
	}
}

func (m Model) saveNotes(text string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.SaveNotes(context.Background(), text); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "notes saved"}
	}
}

func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	content := m.renderBoard() + "\n" + m.renderBottomLine()
	if overlay := m.renderOverlay(); overlay != "" {
		content = overlayOnContent(content, overlay, max(1, m.width), max(1, m.height))
	}

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) renderBoard() string {
	m.taskWin.active = m.focus == focusTasks
	m.detailWin.active = m.focus == focusDetails
	m.planWin.active = m.focus == focusPlan
	m.notesWin.active = m.focus == focusNotes

	var detail []string
	if task, ok := m.selectedTask(); ok {
		detail = taskDetailLines(&task, m.detailWin.contentWidth())
	} else {
		detail = taskDetailLines(nil, m.detailWin.contentWidth())
	}

	var planLines []string
	if step, ok := m.selectedStep(); ok && m.planDetails {
		planLines = planDetailLines(step, m.planWin)
	} else {
		planLines = planListRows(m.plan, m.planWin)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.taskWin.render(taskRows(m.tasks, m.taskWin)),
		m.detailWin.render(detail),
	)
	board := top + "\n" + m.planWin.render(planLines)
	if m.notesVisible {
		notesText := m.notes
		if m.notesEditing {
			notesText = m.notesBuffer
		}
		notes := m.notesWin.render(notesLines(notesText, m.notesWin, m.notesEditing))
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, notes)
	}
	return board
}

// renderBottomLine shows the transient status when set, otherwise the key
// help.
func (m Model) renderBottomLine() string {
	if strings.TrimSpace(m.status) != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
			Render(" " + truncate(m.status, max(0, m.width-2)))
	}
	h := m.help
	h.SetWidth(max(0, m.width-2))
	return " " + h.View(m.keys)
}

func (m Model) renderOverlay() string {
	switch m.mode {
	case modeNewTask, modeEditTask, modeNewStep, modeEditStep:
		return m.form.render(m.width)
	case modeConfirm:
		return m.confirm.render(m.width)
	case modeMessage:
		return renderMessageBox(m.message, m.width)
	}
	return ""
}

// sortTasks orders by priority high to low, then status text, keeping the
// stored order inside each group.
func sortTasks(tasks []domain.Task) []domain.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		if a.Priority != b.Priority {
			return int(b.Priority) - int(a.Priority)
		}
		return strings.Compare(string(a.Status), string(b.Status))
	})
	return out
}

// fitLines pads or trims content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		lines = lines[:maxLines]
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay above base on a fixed-size canvas.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centered := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
	overlayLayer := lipgloss.NewLayer(centered).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}
