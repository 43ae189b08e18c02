package cli

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownWidth is the wrap width for rendered description bodies.
const markdownWidth = 80

// markdownRenderer renders markdown field bodies for show commands,
// recreating the glamour renderer only when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown into terminal text. The style follows the
// terminal, so piped output stays plain. On any renderer failure the raw
// markdown comes back unchanged.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, 24)
	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(rendered, "\n")
}
