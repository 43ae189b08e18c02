package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type PlanStep struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Details     string `json:"details"`
	Order       int    `json:"order"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type PlanStepInput struct {
	Name        string
	Description string
	Details     string
	// Order places the step in the plan; nil appends at the end.
	Order     *int
	Completed bool
}

// NewPlanStep builds a step with a fresh identifier. planLen supplies the
// default order when the input leaves it unset.
func NewPlanStep(in PlanStepInput, planLen int, now time.Time) PlanStep {
	order := planLen
	if in.Order != nil {
		order = *in.Order
	}
	stamp := Stamp(now)
	return PlanStep{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Details:     in.Details,
		Order:       order,
		Completed:   in.Completed,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}
}

// ReorderSteps compacts order values to exactly 0..len-1, keeping the
// relative sequence of the existing orders (ties keep insertion order).
func ReorderSteps(steps []PlanStep) {
	slices.SortStableFunc(steps, func(a, b PlanStep) int {
		return a.Order - b.Order
	})
	for i := range steps {
		steps[i].Order = i
	}
}
