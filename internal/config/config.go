package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// File names searched by LoadConfig
const (
	ProjectFileName = ".laneboard.yaml"
	UserFileName    = "config.yaml"
)

// Config represents the full laneboard configuration
type Config struct {
	Version int          `yaml:"version"`
	Store   StoreConfig  `yaml:"store"`
	Prefs   PrefsConfig  `yaml:"prefs"`
	Board   BoardConfig  `yaml:"board"`
	Toasts  ToastConfig  `yaml:"toasts"`
	Log     LogConfig    `yaml:"log"`
	Server  ServerConfig `yaml:"server"`

	// Source is the file the config was read from, empty for defaults
	Source string `yaml:"-"`
}

// StoreConfig selects the task store the board reads and moves tasks in
type StoreConfig struct {
	Backend   string `yaml:"backend"` // http or cli
	URL       string `yaml:"url"`
	Command   string `yaml:"command"`
	WorkDir   string `yaml:"workDir"`
	TimeoutMs int    `yaml:"timeoutMs"`
}

// PrefsConfig selects where column order and visibility are persisted
type PrefsConfig struct {
	Backend   string `yaml:"backend"` // file, sqlite, redis or memory
	Path      string `yaml:"path"`
	RedisURL  string `yaml:"redisUrl"`
	Namespace string `yaml:"namespace"`
	TimeoutMs int    `yaml:"timeoutMs"`
}

// BoardConfig contains board behaviour settings
type BoardConfig struct {
	RefreshIntervalMs  int    `yaml:"refreshIntervalMs"`
	ActivationDistance int    `yaml:"activationDistance"` // cells the pointer travels before a drag starts
	DefaultView        string `yaml:"defaultView"`        // board or table
}

// ToastConfig contains notification settings
type ToastConfig struct {
	DurationMs      int `yaml:"durationMs"`
	ErrorDurationMs int `yaml:"errorDurationMs"`
	Limit           int `yaml:"limit"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ServerConfig contains settings for `laneboard serve`
type ServerConfig struct {
	Addr        string  `yaml:"addr"`
	DBPath      string  `yaml:"dbPath"`
	NoSeed      bool    `yaml:"noSeed"`
	LatencyMs   int     `yaml:"latencyMs"`
	FailureRate float64 `yaml:"failureRate"`
}

// DataDir is where laneboard keeps its own files
func DataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".laneboard")
}

// UserConfigPath is the per-user config file
func UserConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "laneboard", UserFileName)
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dataDir := DataDir()

	return &Config{
		Version: CurrentVersion,
		Store: StoreConfig{
			Backend:   "http",
			URL:       "http://127.0.0.1:7420",
			Command:   "bd",
			TimeoutMs: 5000,
		},
		Prefs: PrefsConfig{
			Backend:   "file",
			Path:      filepath.Join(dataDir, "prefs.json"),
			Namespace: "laneboard",
			TimeoutMs: 2000,
		},
		Board: BoardConfig{
			RefreshIntervalMs:  10000,
			ActivationDistance: 2,
			DefaultView:        "board",
		},
		Toasts: ToastConfig{
			DurationMs:      3000,
			ErrorDurationMs: 8000,
			Limit:           4,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "logs", "laneboard.log"),
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:7420",
			DBPath: filepath.Join(dataDir, "tasks.sqlite"),
		},
	}
}

// LoadConfig loads configuration with priority:
// 1. CLI flags (applied by the caller)
// 2. .laneboard.yaml in projectPath
// 3. ~/.config/laneboard/config.yaml
// 4. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	return loadFirst(filepath.Join(projectPath, ProjectFileName), UserConfigPath())
}

// LoadFile loads the config at path. Unlike LoadConfig a missing file is an
// error.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return loadFirst(path)
}

func loadFirst(paths ...string) (*Config, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		cfg = MergeWithDefaults(cfg)
		cfg.Source = path
		return cfg, nil
	}

	// Return defaults if no config files found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	cfg.Version = CurrentVersion

	// Merge Store config
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaults.Store.Backend
	}
	if cfg.Store.URL == "" {
		cfg.Store.URL = defaults.Store.URL
	}
	if cfg.Store.Command == "" {
		cfg.Store.Command = defaults.Store.Command
	}
	if cfg.Store.TimeoutMs == 0 {
		cfg.Store.TimeoutMs = defaults.Store.TimeoutMs
	}

	// Merge Prefs config; the default path depends on the backend
	if cfg.Prefs.Backend == "" {
		cfg.Prefs.Backend = defaults.Prefs.Backend
	}
	if cfg.Prefs.Path == "" {
		switch cfg.Prefs.Backend {
		case "sqlite":
			cfg.Prefs.Path = filepath.Join(DataDir(), "prefs.sqlite")
		default:
			cfg.Prefs.Path = defaults.Prefs.Path
		}
	}
	if cfg.Prefs.Namespace == "" {
		cfg.Prefs.Namespace = defaults.Prefs.Namespace
	}
	if cfg.Prefs.TimeoutMs == 0 {
		cfg.Prefs.TimeoutMs = defaults.Prefs.TimeoutMs
	}

	// Merge Board config
	if cfg.Board.RefreshIntervalMs == 0 {
		cfg.Board.RefreshIntervalMs = defaults.Board.RefreshIntervalMs
	}
	if cfg.Board.ActivationDistance == 0 {
		cfg.Board.ActivationDistance = defaults.Board.ActivationDistance
	}
	if cfg.Board.DefaultView == "" {
		cfg.Board.DefaultView = defaults.Board.DefaultView
	}

	// Merge Toasts config
	if cfg.Toasts.DurationMs == 0 {
		cfg.Toasts.DurationMs = defaults.Toasts.DurationMs
	}
	if cfg.Toasts.ErrorDurationMs == 0 {
		cfg.Toasts.ErrorDurationMs = defaults.Toasts.ErrorDurationMs
	}
	if cfg.Toasts.Limit == 0 {
		cfg.Toasts.Limit = defaults.Toasts.Limit
	}

	// Merge Log config
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	// Merge Server config
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaults.Server.Addr
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = defaults.Server.DBPath
	}

	return cfg
}

// Validate reports the first setting that cannot work
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "http", "cli":
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	switch c.Prefs.Backend {
	case "file", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("prefs.backend: unknown backend %q", c.Prefs.Backend)
	}
	if c.Prefs.Backend == "redis" && c.Prefs.RedisURL == "" {
		return errors.New("prefs.redisUrl: required for the redis backend")
	}
	switch c.Board.DefaultView {
	case "board", "table":
	default:
		return fmt.Errorf("board.defaultView: must be board or table, got %q", c.Board.DefaultView)
	}
	if c.Board.ActivationDistance < 0 {
		return errors.New("board.activationDistance: must not be negative")
	}
	if c.Server.FailureRate < 0 || c.Server.FailureRate > 1 {
		return fmt.Errorf("server.failureRate: must be between 0 and 1, got %v", c.Server.FailureRate)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// RefreshInterval is the period between background refetches. A negative
// refreshIntervalMs turns them off and yields zero.
func (c *Config) RefreshInterval() time.Duration {
	if c.Board.RefreshIntervalMs < 0 {
		return 0
	}
	return time.Duration(c.Board.RefreshIntervalMs) * time.Millisecond
}

// RequestTimeout bounds a single task store call
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Store.TimeoutMs) * time.Millisecond
}

// ToastDuration is how long info, success and warning toasts stay up
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Toasts.DurationMs) * time.Millisecond
}

// ErrorToastDuration is how long error toasts stay up
func (c *Config) ErrorToastDuration() time.Duration {
	return time.Duration(c.Toasts.ErrorDurationMs) * time.Millisecond
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}
