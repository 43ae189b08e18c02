package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"tasktracker/internal/domain"
)

// taskRows renders the visible slice of the task list. Each row carries the
// status glyph, the truncated title, and the priority marker right-aligned
// against the pane edge. The selected row is padded to the full width before
// styling so the highlight covers the whole line.
func taskRows(tasks []domain.Task, w window) []string {
	cw := w.contentWidth()
	if len(tasks) == 0 {
		return []string{placeholderStyle().Render(" No tasks")}
	}
	selected := selectionStyle()
	rows := make([]string, 0, w.maxVisible())
	for i := w.scroll; i < len(tasks) && i-w.scroll < w.maxVisible(); i++ {
		row := padRight(taskRow(tasks[i], cw), cw)
		if i == w.selected {
			row = selected.Render(row)
		}
		rows = append(rows, row)
	}
	return rows
}

func taskRow(t domain.Task, width int) string {
	lead := " " + t.Status.Glyph() + " "
	marker := t.Priority.Marker()
	avail := width - len([]rune(lead)) - len([]rune(marker)) - 2
	if avail < 1 {
		return truncate(lead+t.Title, width)
	}
	title := truncate(t.Title, avail)
	gap := width - len([]rune(lead)) - len([]rune(title)) - len([]rune(marker)) - 1
	return lead + title + strings.Repeat(" ", max(1, gap)) + marker
}

// taskDetailLines lays out the detail pane for the selected task. Dates show
// the day only; the updated line is dropped while it still matches creation.
func taskDetailLines(t *domain.Task, width int) []string {
	if t == nil {
		return []string{placeholderStyle().Render(" No task selected")}
	}
	wrapWidth := max(1, width-2)
	lines := []string{
		" Title: " + truncate(t.Title, wrapWidth),
		"",
		" Status: " + t.Status.Label(),
		" Priority: " + t.Priority.Label(),
		"",
	}
	if strings.TrimSpace(t.Description) == "" {
		lines = append(lines, placeholderStyle().Render(" No description provided."))
	} else {
		lines = append(lines, " Description:")
		for _, l := range wrapText(t.Description, wrapWidth) {
			lines = append(lines, " "+truncate(l, wrapWidth))
		}
	}
	lines = append(lines, "", " Created: "+domain.DateOnly(t.CreatedAt))
	if t.UpdatedAt != t.CreatedAt {
		lines = append(lines, " Updated: "+domain.DateOnly(t.UpdatedAt))
	}
	return lines
}

// planListRows renders the ordered step list with completion checkboxes. A
// hint line is drawn on the bottom content row when the list leaves room.
func planListRows(steps []domain.PlanStep, w window) []string {
	cw := w.contentWidth()
	ch := w.contentHeight()
	if len(steps) == 0 {
		return []string{placeholderStyle().Render(" No plan steps")}
	}
	selected := selectionStyle()
	rows := make([]string, 0, ch)
	for i := w.scroll; i < len(steps) && i-w.scroll < w.maxVisible(); i++ {
		row := padRight(planRow(steps[i], cw), cw)
		if i == w.selected {
			row = selected.Render(row)
		}
		rows = append(rows, row)
	}
	if ch > len(rows)+1 {
		for len(rows) < ch-1 {
			rows = append(rows, "")
		}
		rows = append(rows, hintStyle().Render(" Enter/Space: Toggle completion | D: Show/hide details"))
	}
	return rows
}

func planRow(s domain.PlanStep, width int) string {
	check := "[ ]"
	if s.Completed {
		check = "[✓]"
	}
	name := truncate(s.Name, max(0, width-10))
	return fmt.Sprintf(" %2d. %s %s", s.Order+1, check, name)
}

// planDetailLines is the expanded view of one step, toggled with D.
func planDetailLines(s domain.PlanStep, w window) []string {
	cw := w.contentWidth()
	ch := w.contentHeight()
	wrapWidth := max(1, cw-2)
	status := "Not completed"
	if s.Completed {
		status = "Completed"
	}
	lines := []string{
		" Name: " + truncate(s.Name, wrapWidth),
		"",
		" Status: " + status,
		"",
	}
	if s.Description != "" {
		lines = append(lines, " Description:")
		for _, l := range wrapText(s.Description, wrapWidth) {
			lines = append(lines, " "+truncate(l, wrapWidth))
		}
		lines = append(lines, "")
	}
	if s.Details != "" {
		lines = append(lines, " Details:")
		for _, l := range wrapText(s.Details, wrapWidth) {
			lines = append(lines, " "+truncate(l, wrapWidth))
		}
	}
	if len(lines) > ch-1 {
		lines = lines[:max(0, ch-1)]
	}
	for len(lines) < ch-1 {
		lines = append(lines, "")
	}
	return append(lines, hintStyle().Render(" D: Return to plan list"))
}

// notesLines shows the tail of the notes buffer. Edit mode reserves the
// bottom row for the save hint and draws a block cursor after the last
// character.
func notesLines(text string, w window, editing bool) []string {
	cw := w.contentWidth()
	ch := w.contentHeight()
	wrapWidth := max(1, cw-2)
	var lines []string
	switch {
	case text == "" && !editing:
		return []string{placeholderStyle().Render(" No notes. Press 'e' to edit.")}
	case text == "":
		lines = []string{placeholderStyle().Render(" Type to add notes...")}
	default:
		all := strings.Split(text, "\n")
		visible := max(1, ch-1)
		if len(all) > visible {
			all = all[len(all)-visible:]
		}
		for _, l := range all {
			lines = append(lines, " "+truncate(l, wrapWidth))
		}
		if editing {
			cursor := lipgloss.NewStyle().Background(lipgloss.Color("252")).Render(" ")
			lines[len(lines)-1] += cursor
		}
	}
	if editing {
		for len(lines) < ch-1 {
			lines = append(lines, "")
		}
		lines = append(lines, hintStyle().Render(" Esc: Save & exit edit mode"))
	}
	return lines
}

func selectionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252")).Bold(true)
}

func placeholderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
}
