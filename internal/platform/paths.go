package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Paths represents paths data used by this package.
type Paths struct {
	ConfigPath string
	DataDir    string
}

// Options defines optional settings for configuration.
type Options struct {
	AppName string
}

// DefaultPaths returns default paths.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{AppName: "tasktracker"})
}

// DefaultPathsWithOptions returns default paths with options.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	appName := strings.TrimSpace(opts.AppName)
	if appName == "" {
		appName = "tasktracker"
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user home dir: %w", err)
	}

	env := map[string]string{
		"XDG_CONFIG_HOME":      os.Getenv("XDG_CONFIG_HOME"),
		"APPDATA":              os.Getenv("APPDATA"),
		"TASKTRACKER_DATA_DIR": os.Getenv("TASKTRACKER_DATA_DIR"),
	}
	return PathsFor(runtime.GOOS, env, configDir, home, appName)
}

// PathsFor resolves config and data locations for one platform. The data
// directory is the dot-directory in the user's home on every OS so the
// files stay shared with the other tools that read them; TASKTRACKER_DATA_DIR
// overrides it.
func PathsFor(goos string, env map[string]string, userConfigDir, userHomeDir, appName string) (Paths, error) {
	if userConfigDir == "" || userHomeDir == "" {
		return Paths{}, fmt.Errorf("empty base dirs")
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}

	configBase := userConfigDir

	switch goos {
	case "linux":
		if v := env["XDG_CONFIG_HOME"]; v != "" {
			configBase = v
		}
	case "windows":
		if v := env["APPDATA"]; v != "" {
			configBase = v
		}
	case "darwin":
		// Keep os.UserConfigDir defaults for macOS.
	default:
		// Fallback for other platforms.
	}

	dataDir := filepath.Join(userHomeDir, "."+appName)
	if v := strings.TrimSpace(env["TASKTRACKER_DATA_DIR"]); v != "" {
		dataDir = v
	}

	return Paths{
		ConfigPath: filepath.Join(configBase, appName, "config.toml"),
		DataDir:    dataDir,
	}, nil
}
