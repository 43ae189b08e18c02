package tui

import "time"

type Option func(*Model)

// WithPollInterval sets how often the data files are checked for external
// edits. Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.pollEvery = d
		}
	}
}

// WithNotesWidth sets the width of the notes column.
func WithNotesWidth(w int) Option {
	return func(m *Model) {
		if w >= 10 {
			m.notesWidth = w
		}
	}
}

// WithConfirmQuit controls whether Esc asks before exiting.
func WithConfirmQuit(confirm bool) Option {
	return func(m *Model) {
		m.confirmQuit = confirm
	}
}
