// Package jsonfile persists tracker state as plain JSON and text files in a
// shared data directory, so the TUI, CLI, and MCP server all observe the
// same bytes. Stores cache their collection in memory, reload on demand, and
// write every mutation straight back to disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	TasksFileName = "tasks.json"
	PlanFileName  = "plan.json"
	NotesFileName = "notes.txt"
)

// EnsureDataDir creates the shared data directory.
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// modTime reports a file's modification time; a missing file reads as the
// zero time so pollers treat creation as a change.
func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	return info.ModTime(), nil
}

func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, b)
}

// writeFileAtomic renames a finished temp file into place so external
// readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
