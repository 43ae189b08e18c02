package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Data    DataConfig    `toml:"data"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

type UIConfig struct {
	PollInterval string `toml:"poll_interval"`
	NotesWidth   int    `toml:"notes_width"`
	ConfirmQuit  bool   `toml:"confirm_quit"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default(dataDir string) Config {
	return Config{
		Data: DataConfig{
			Dir: dataDir,
		},
		UI: UIConfig{
			PollInterval: "1s",
			NotesWidth:   30,
			ConfirmQuit:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return errors.New("data dir is required")
	}

	if _, err := time.ParseDuration(c.UI.PollInterval); err != nil {
		return fmt.Errorf("invalid ui.poll_interval: %q", c.UI.PollInterval)
	}
	if d, _ := time.ParseDuration(c.UI.PollInterval); d <= 0 {
		return fmt.Errorf("ui.poll_interval must be positive: %q", c.UI.PollInterval)
	}

	if c.UI.NotesWidth < 10 {
		return fmt.Errorf("ui.notes_width must be >= 10, got %d", c.UI.NotesWidth)
	}

	return nil
}

// PollDuration returns the parsed reload poll interval. Validate guarantees
// it parses; a zero-value Config falls back to one second.
func (c Config) PollDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.PollInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
