package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// window is one bordered pane of the board. The border takes one cell on
// every side, so content renders in a (width-2) x (height-2) region. The
// selected/scroll pair tracks list position for the panes that show lists.
type window struct {
	title    string
	active   bool
	width    int
	height   int
	selected int
	scroll   int
}

func (w *window) resize(width, height int) {
	w.width = width
	w.height = height
}

func (w window) contentWidth() int  { return max(0, w.width-2) }
func (w window) contentHeight() int { return max(0, w.height-2) }

// maxVisible is how many list rows fit inside the border.
func (w window) maxVisible() int { return w.contentHeight() }

// adjust clamps the selection to the list and moves the scroll window so the
// selected row stays visible. With no rows both indexes reset to zero.
func (w *window) adjust(n int) {
	if n <= 0 {
		w.selected = 0
		w.scroll = 0
		return
	}
	w.selected = clamp(w.selected, 0, n-1)
	visible := max(1, w.maxVisible())
	if w.selected < w.scroll {
		w.scroll = w.selected
	} else if w.selected >= w.scroll+visible {
		w.scroll = w.selected - visible + 1
	}
	w.scroll = clamp(w.scroll, 0, max(0, n-visible))
}

func (w *window) selectPrev(n int) {
	if w.selected > 0 {
		w.selected--
	}
	w.adjust(n)
}

func (w *window) selectNext(n int) {
	if w.selected < n-1 {
		w.selected++
	}
	w.adjust(n)
}

// render draws the border with the title centered on the top edge and the
// content lines clipped and padded to the full inner width. Extra lines are
// dropped so the frame never grows past the window height.
func (w window) render(content []string) string {
	if w.width < 2 || w.height < 2 {
		return ""
	}

	accent := lipgloss.Color("62")
	dim := lipgloss.Color("239")
	edgeColor := dim
	if w.active {
		edgeColor = accent
	}
	edge := lipgloss.NewStyle().Foreground(edgeColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	border := lipgloss.RoundedBorder()
	span := max(0, w.width-2)

	title := w.title
	if w.active && title != "" {
		title += " [Active]"
	}

	var top string
	if title == "" {
		top = edge.Render(border.TopLeft + strings.Repeat(border.Top, span) + border.TopRight)
	} else {
		padded := []rune(" " + title + " ")
		if len(padded) > span {
			padded = padded[:span]
		}
		x := max(1, (w.width-len(padded))/2)
		after := max(0, w.width-1-x-len(padded))
		top = edge.Render(border.TopLeft+strings.Repeat(border.Top, x-1)) +
			titleStyle.Render(string(padded)) +
			edge.Render(strings.Repeat(border.Top, after)+border.TopRight)
	}

	rows := make([]string, 0, w.height)
	rows = append(rows, top)
	cw := w.contentWidth()
	left := edge.Render(border.Left)
	right := edge.Render(border.Right)
	for i := 0; i < w.contentHeight(); i++ {
		line := ""
		if i < len(content) {
			line = ansi.Truncate(content[i], cw, "")
		}
		rows = append(rows, left+padRight(line, cw)+right)
	}
	rows = append(rows, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, span)+border.BottomRight))
	return strings.Join(rows, "\n")
}

// padRight pads s with spaces to the given display width. Styled lines are
// measured by cell width, not byte length.
func padRight(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// truncate shortens s to at most width cells, replacing the tail with "..."
// when something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// wrapText greedily wraps s into lines of at most width cells, breaking on
// spaces. A word longer than the width gets a line of its own, unbroken.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if len([]rune(cur))+1+len([]rune(word)) <= width {
			cur += " " + word
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	return append(lines, cur)
}
