package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"

	// statusPending is the legacy on-disk value still found in old data files.
	statusPending Status = "pending"
)

// NormalizeStatus maps the legacy pending value and anything unknown to
// not_started. Called once at the storage boundary so consumers only ever
// see the three canonical values.
func NormalizeStatus(s Status) Status {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return s
	default:
		return StatusNotStarted
	}
}

// CycleStatus advances not_started -> in_progress -> completed and wraps.
func CycleStatus(s Status) Status {
	switch NormalizeStatus(s) {
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusNotStarted
	default:
		return StatusInProgress
	}
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.TrimSpace(raw))
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return s, true
	case statusPending:
		return StatusNotStarted, true
	default:
		return "", false
	}
}

func (s Status) Label() string {
	switch NormalizeStatus(s) {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Not Started"
	}
}

// Glyph is the marker rendered in list rows.
func (s Status) Glyph() string {
	switch NormalizeStatus(s) {
	case StatusInProgress:
		return "[→]"
	case StatusCompleted:
		return "[✓]"
	default:
		return "[ ]"
	}
}

type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) Label() string {
	switch p {
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "Low"
	}
}

// Marker renders the right-aligned urgency mark: ! / !! / !!!.
func (p Priority) Marker() string {
	return strings.Repeat("!", int(ClampPriority(p)))
}

// ClampPriority pins out-of-range values to the nearest valid priority.
func ClampPriority(p Priority) Priority {
	if p < PriorityLow {
		return PriorityLow
	}
	if p > PriorityHigh {
		return PriorityHigh
	}
	return p
}

// ParsePriority reads a dialog or flag field. Empty or malformed input
// falls back rather than failing, matching the form semantics.
func ParsePriority(raw string, fallback Priority) Priority {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	p := Priority(n)
	if !p.Valid() {
		return fallback
	}
	return p
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type TaskInput struct {
	Title       string
	Description string
	Priority    Priority
	Status      Status
}

// NewTask builds a task with a fresh identifier and normalized fields.
// Invalid priorities clamp and unknown statuses fall back to not_started;
// creation never fails.
func NewTask(in TaskInput, now time.Time) Task {
	stamp := Stamp(now)
	return Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    ClampPriority(in.Priority),
		Status:      NormalizeStatus(in.Status),
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}

// Normalize cleans a task read from disk without touching identity or
// timestamps.
func (t *Task) Normalize() {
	t.Status = NormalizeStatus(t.Status)
	t.Priority = ClampPriority(t.Priority)
}
