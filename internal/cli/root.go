// Package cli wires the cobra command tree. Scriptable task, plan, notes,
// export/import, and serve commands operate on the same data files the
// interactive board edits; invoking the binary with no subcommand starts
// the board itself.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"tasktracker/internal/app"
	"tasktracker/internal/config"
	"tasktracker/internal/domain"
	"tasktracker/internal/platform"
	"tasktracker/internal/tui"
)

const appName = "tasktracker"

// logFileName is the default file sink inside the data dir while the board
// owns the terminal.
const logFileName = "tasktracker.log"

// App carries flag state and the lazily resolved runtime pieces shared by
// every subcommand.
type App struct {
	DataDir    string
	ConfigPath string

	version string
	cfg     *config.Config
	svc     *app.Service
	logger  *runtimeLogger
	md      markdownRenderer
}

// Execute runs the root command through fang, which supplies styled help,
// error reporting, and --version.
func Execute(ctx context.Context, version string) error {
	return fang.Execute(ctx, NewRootCmd(version), fang.WithVersion(version))
}

// NewRootCmd builds the command tree around one shared App.
func NewRootCmd(version string) *cobra.Command {
	a := &App{version: version}

	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Track tasks, plan steps, and notes from the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  tasktracker

  # Scriptable commands
  tasktracker task list
  tasktracker task add "Write the report" -p 3
  tasktracker plan toggle 7d4f1c2a-...

  # Expose the tracker to MCP clients over stdio
  tasktracker serve
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.HasSubCommands() && len(args) == 0 {
				return runBoard(cmd, a)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if err := a.logger.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: close log sink: %v\n", err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&a.DataDir, "data-dir", envOr("TASKTRACKER_DATA_DIR", ""), "Directory holding tasks.json, plan.json, and notes.txt")
	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", envOr("TASKTRACKER_CONFIG", ""), "Path to config TOML")

	cmd.AddCommand(newTaskCmd(a))
	cmd.AddCommand(newPlanCmd(a))
	cmd.AddCommand(newNotesCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newServeCmd(a))

	return cmd
}

// ensureConfig resolves the effective configuration once: platform defaults,
// then the config file, then the --data-dir override.
func (a *App) ensureConfig() (config.Config, error) {
	if a.cfg != nil {
		return *a.cfg, nil
	}
	paths, err := platform.DefaultPaths()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve platform paths: %w", err)
	}
	path := a.ConfigPath
	if path == "" {
		path = paths.ConfigPath
	}
	cfg, err := config.Load(path, config.Default(paths.DataDir))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	if a.DataDir != "" {
		cfg.Data.Dir = a.DataDir
	}
	a.cfg = &cfg
	return cfg, nil
}

// ensureLogger configures the runtime logger once. Board mode defaults the
// file sink into the data dir so events survive while the console is muted.
func (a *App) ensureLogger(stderr io.Writer, boardMode bool) (*runtimeLogger, error) {
	if a.logger != nil {
		return a.logger, nil
	}
	cfg, err := a.ensureConfig()
	if err != nil {
		return nil, err
	}
	logCfg := cfg.Logging
	if boardMode && strings.TrimSpace(logCfg.File) == "" {
		logCfg.File = filepath.Join(cfg.Data.Dir, logFileName)
	}
	logger, err := newRuntimeLogger(stderr, logCfg)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	a.logger = logger
	return logger, nil
}

// service opens the file-backed stores once and reuses them across the
// command's lifetime. Partially readable state is logged, not fatal.
func (a *App) service(cmd *cobra.Command) (*app.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	cfg, err := a.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := a.ensureLogger(cmd.ErrOrStderr(), false)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(cfg.Data.Dir, time.Now)
	if err != nil {
		if svc == nil {
			return nil, fmt.Errorf("open data dir %q: %w", cfg.Data.Dir, err)
		}
		logger.Warn("state loaded partially", "data_dir", cfg.Data.Dir, "err", err)
	}
	logger.Debug("stores ready", "data_dir", cfg.Data.Dir)
	a.svc = svc
	return svc, nil
}

// runBoard starts the interactive TUI over the shared stores.
func runBoard(cmd *cobra.Command, a *App) error {
	cfg, err := a.ensureConfig()
	if err != nil {
		return err
	}
	// Keep rendering clean: runtime events stay in the file sink while the
	// board is active.
	logger, err := a.ensureLogger(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	logger.SetConsoleEnabled(false)
	defer logger.SetConsoleEnabled(true)

	svc, err := a.service(cmd)
	if err != nil {
		return err
	}
	logger.Info("board starting", "data_dir", cfg.Data.Dir, "poll", cfg.PollDuration().String(), "log_file", logger.FilePath())

	m := tui.NewModel(svc,
		tui.WithPollInterval(cfg.PollDuration()),
		tui.WithNotesWidth(cfg.UI.NotesWidth),
		tui.WithConfirmQuit(cfg.UI.ConfirmQuit),
	)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		logger.Error("board exited with error", "err", err)
		return fmt.Errorf("run board: %w", err)
	}
	if bm, ok := final.(tui.Model); ok {
		if err := bm.Err(); err != nil {
			logger.Error("save on exit failed", "err", err)
			return fmt.Errorf("save on exit: %w", err)
		}
	}
	logger.Info("board stopped")
	return nil
}

// taskNotFound tags the failing id onto the sentinel for command output;
// other errors pass through untouched.
func taskNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrTaskNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return err
}

// stepNotFound mirrors taskNotFound for plan steps.
func stepNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrStepNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrStepNotFound, id)
	}
	return err
}

// parsePriorityFlag validates the 1..3 priority range.
func parsePriorityFlag(v int) (domain.Priority, error) {
	p := domain.Priority(v)
	if !p.Valid() {
		return 0, fmt.Errorf("invalid priority %d (want 1, 2, or 3)", v)
	}
	return p, nil
}

// parseStatusFlag maps a status flag value onto a canonical status.
func parseStatusFlag(v string) (domain.Status, error) {
	st, ok := domain.ParseStatus(v)
	if !ok {
		return "", fmt.Errorf("invalid status %q (want not_started, in_progress, or completed)", v)
	}
	return st, nil
}

// clip truncates s to max runes for fixed-width table columns.
func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
