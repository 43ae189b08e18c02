package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// inputForm is the modal entry dialog used for new and edit flows. Fields
// are plain text inputs stacked under their prompts; exactly one holds
// focus and the cursor.
type inputForm struct {
	title   string
	prompts []string
	inputs  []textinput.Model
	focus   int
}

func newInputForm(title string, prompts, values []string) inputForm {
	f := inputForm{title: title, prompts: prompts}
	for i := range prompts {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		f.inputs = append(f.inputs, newFormInput(value))
	}
	return f
}

func newFormInput(value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 256
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// focusField moves focus to idx, blurring every other input and parking the
// cursor at the end of the newly focused value.
func (f *inputForm) focusField(idx int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.focus = clamp(idx, 0, len(f.inputs)-1)
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.inputs[f.focus].CursorEnd()
	return f.inputs[f.focus].Focus()
}

// focusNext advances one field. Tab wraps past the last field; Down stops.
func (f *inputForm) focusNext(wrap bool) tea.Cmd {
	if wrap {
		return f.focusField((f.focus + 1) % max(1, len(f.inputs)))
	}
	if f.focus >= len(f.inputs)-1 {
		return nil
	}
	return f.focusField(f.focus + 1)
}

func (f *inputForm) focusPrev() tea.Cmd {
	if f.focus <= 0 {
		return nil
	}
	return f.focusField(f.focus - 1)
}

func (f inputForm) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = in.Value()
	}
	return out
}

// render draws the dialog box: each field as a prompt line plus an input
// line, then a blank row and the footer hint.
func (f inputForm) render(termWidth int) string {
	width := clamp(min(60, termWidth-4), 20, 60)
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

	lines := make([]string, 0, 2*len(f.inputs)+2)
	for i, prompt := range f.prompts {
		style := promptStyle
		if i == f.focus {
			style = focusedStyle
		}
		lines = append(lines, " "+style.Render(prompt+":"))
		in := f.inputs[i]
		in.SetWidth(width - 4)
		lines = append(lines, " "+in.View())
	}
	lines = append(lines, "")
	lines = append(lines, hintStyle().Render(" Enter: Save | Esc: Cancel"))

	box := window{title: f.title, active: true, width: width, height: len(lines) + 2}
	return box.render(lines)
}

const (
	choiceYes = 0
	choiceNo  = 1
)

// confirmDialog is the yes/no modal. No is preselected so a bare Enter
// never destroys anything.
type confirmDialog struct {
	title   string
	message string
	choice  int
}

func newConfirmDialog(title, message string) confirmDialog {
	return confirmDialog{title: title, message: message, choice: choiceNo}
}

func (d *confirmDialog) toggle() {
	if d.choice == choiceYes {
		d.choice = choiceNo
	} else {
		d.choice = choiceYes
	}
}

func (d confirmDialog) render(termWidth int) string {
	width := clamp(min(50, termWidth-4), 20, 50)
	lines := make([]string, 0, 6)
	for _, l := range wrapText(d.message, width-4) {
		lines = append(lines, " "+l)
	}
	lines = append(lines, "", buttonRow(width, d.choice))

	box := window{title: d.title, active: true, width: width, height: len(lines) + 2}
	return box.render(lines)
}

// buttonRow lays No at a third of the dialog width and Yes at two thirds,
// highlighting whichever is selected.
func buttonRow(width, choice int) string {
	selected := selectionStyle()
	no, yes := " No ", " Yes "
	if choice == choiceNo {
		no = selected.Render(no)
	} else {
		yes = selected.Render(yes)
	}
	noCol := max(1, width/3-2)
	yesCol := max(noCol+5, 2*width/3-2)
	return strings.Repeat(" ", noCol-1) + no + strings.Repeat(" ", yesCol-noCol-4) + yes
}

// renderMessageBox is the any-key notice used for action failures.
func renderMessageBox(message string, termWidth int) string {
	width := clamp(len([]rune(message))+4, 20, min(60, max(20, termWidth-4)))
	lines := []string{
		" " + truncate(message, width-4),
		"",
		hintStyle().Render(" Press any key to continue"),
	}
	box := window{width: width, height: len(lines) + 2}
	return box.render(lines)
}
