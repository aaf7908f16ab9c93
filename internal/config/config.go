// Package config loads spk configuration from JSONC files and CLI overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/logging"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	Session   string `json:"session"`
	Catalog   string `json:"catalog,omitempty"`
	QueryFile string `json:"query_file,omitempty"` //nolint:tagliatelle // snake_case for config file
	Log       string `json:"log,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"`
	SessionAbs   string `json:"-"`
	CatalogAbs   string `json:"-"` // empty means the embedded catalog
	QueryFileAbs string `json:"-"` // empty means no emission target

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Session: filepath.Join(".spk", "session.json"),
		Log:     logging.ModeOff,
	}
}

// FileName is the default project config file name.
const FileName = ".spk.json"

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/spk/config.json if set, otherwise ~/.config/spk/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "spk", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "spk", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	SessionOverride string            // --session flag value; empty means no override
	CatalogOverride string            // --catalog flag value; empty means no override
	LogOverride     string            // --log flag value; empty means no override
	Env             map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/spk/config.json or $XDG_CONFIG_HOME/spk/config.json)
// 3. Project config file at default location (.spk.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	globalCfg, loadedGlobal, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = loadedGlobal
	cfg = merge(cfg, globalCfg)

	projectCfg, loadedProject, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = loadedProject
	cfg = merge(cfg, projectCfg)

	if input.SessionOverride != "" {
		cfg.Session = input.SessionOverride
	}

	if input.CatalogOverride != "" {
		cfg.Catalog = input.CatalogOverride
	}

	if input.LogOverride != "" {
		cfg.Log = input.LogOverride
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.SessionAbs = absPath(workDir, cfg.Session)
	cfg.CatalogAbs = absPath(workDir, cfg.Catalog)
	cfg.QueryFileAbs = absPath(workDir, cfg.QueryFile)

	return cfg, nil
}

func absPath(workDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(workDir, p)
}

// loadGlobal loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, explicitEmpty, loaded, err := loadFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["session"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrSessionEmpty)
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.spk.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	var (
		path      string
		mustExist bool
	)

	if configPath != "" {
		path = absPath(workDir, configPath)
		mustExist = true

		if _, statErr := os.Stat(path); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		path = filepath.Join(workDir, FileName)
	}

	cfg, explicitEmpty, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["session"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrSessionEmpty)
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, a map of explicitly empty fields, whether file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, parseErr := Parse(data)
	if parseErr != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, explicitEmpty, true, nil
}

// Parse decodes one JSONC config document. The returned map marks keys
// that were present with an empty string value.
func Parse(data []byte) (Config, map[string]bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	for key, val := range raw {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty[key] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.Session != "" {
		base.Session = overlay.Session
	}

	if overlay.Catalog != "" {
		base.Catalog = overlay.Catalog
	}

	if overlay.QueryFile != "" {
		base.QueryFile = overlay.QueryFile
	}

	if overlay.Log != "" {
		base.Log = overlay.Log
	}

	return base
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Session) == "" {
		return ErrSessionEmpty
	}

	switch strings.ToLower(cfg.Log) {
	case logging.ModeOff, logging.ModeDev, logging.ModeProd:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogMode, cfg.Log)
	}

	return nil
}
