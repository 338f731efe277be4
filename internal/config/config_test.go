package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the user config at an empty temp dir
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestDefaultConfig(t *testing.T) {
	home := isolateHome(t)
	cfg := DefaultConfig()

	assert.Equal(t, CurrentVersion, cfg.Version)

	// Store defaults
	assert.Equal(t, "http", cfg.Store.Backend)
	assert.Equal(t, "http://127.0.0.1:7420", cfg.Store.URL)
	assert.Equal(t, 5000, cfg.Store.TimeoutMs)

	// Prefs defaults
	assert.Equal(t, "file", cfg.Prefs.Backend)
	assert.Equal(t, filepath.Join(home, ".laneboard", "prefs.json"), cfg.Prefs.Path)
	assert.Equal(t, "laneboard", cfg.Prefs.Namespace)

	// Board defaults
	assert.Equal(t, 10000, cfg.Board.RefreshIntervalMs)
	assert.Equal(t, 2, cfg.Board.ActivationDistance)
	assert.Equal(t, "board", cfg.Board.DefaultView)

	// Toast defaults
	assert.Equal(t, 3000, cfg.Toasts.DurationMs)
	assert.Equal(t, 8000, cfg.Toasts.ErrorDurationMs)
	assert.Equal(t, 4, cfg.Toasts.Limit)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:7420", cfg.Server.Addr)
	assert.False(t, cfg.Server.NoSeed)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromProjectFile(t *testing.T) {
	isolateHome(t)
	tmpDir := t.TempDir()

	configContent := `version: 1
store:
  url: http://tasks.internal:9000
  timeoutMs: 1500
board:
  refreshIntervalMs: 2500
toasts:
  errorDurationMs: 10000
`
	configPath := filepath.Join(tmpDir, ProjectFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	cfg, err := LoadConfig(tmpDir)
	require.NoError(t, err)

	// Custom values
	assert.Equal(t, "http://tasks.internal:9000", cfg.Store.URL)
	assert.Equal(t, 1500, cfg.Store.TimeoutMs)
	assert.Equal(t, 2500, cfg.Board.RefreshIntervalMs)
	assert.Equal(t, 10000, cfg.Toasts.ErrorDurationMs)
	assert.Equal(t, configPath, cfg.Source)

	// Defaults filled in
	assert.Equal(t, "http", cfg.Store.Backend)
	assert.Equal(t, 3000, cfg.Toasts.DurationMs)
	assert.Equal(t, "file", cfg.Prefs.Backend)
}

func TestLoadConfigPriority(t *testing.T) {
	home := isolateHome(t)
	projectDir := t.TempDir()

	userPath := filepath.Join(home, ".config", "laneboard", UserFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte("store:\n  url: http://user:1\n"), 0o644))

	// Only the user file exists
	cfg, err := LoadConfig(projectDir)
	require.NoError(t, err)
	assert.Equal(t, "http://user:1", cfg.Store.URL)
	assert.Equal(t, userPath, cfg.Source)

	// The project file wins, and files are not merged with each other
	projectPath := filepath.Join(projectDir, ProjectFileName)
	require.NoError(t, os.WriteFile(projectPath, []byte("board:\n  defaultView: table\n"), 0o644))

	cfg, err = LoadConfig(projectDir)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Board.DefaultView)
	assert.Equal(t, "http://127.0.0.1:7420", cfg.Store.URL)
	assert.Equal(t, projectPath, cfg.Source)
}

func TestLoadConfigNoFiles(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "store: [unterminated"},
		{name: "unknown key", content: "store:\n  uri: http://typo\n"},
		{name: "wrong type", content: "board:\n  refreshIntervalMs: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateHome(t)
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(tt.content), 0o644))

			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")

	_, err := LoadFile(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("prefs:\n  backend: sqlite\n"), 0o644))
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Prefs.Backend)
	assert.Equal(t, path, cfg.Source)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), nil, 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "http", cfg.Store.Backend)
}

func TestSaveConfig(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Store.Backend = "cli"
	cfg.Store.Command = "tracker"
	cfg.Board.ActivationDistance = 4
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := loadFirst(path)
	require.NoError(t, err)
	assert.Equal(t, "cli", loaded.Store.Backend)
	assert.Equal(t, "tracker", loaded.Store.Command)
	assert.Equal(t, 4, loaded.Board.ActivationDistance)
	assert.Equal(t, CurrentVersion, loaded.Version)
}

func TestMergeWithDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg := MergeWithDefaults(&Config{
		Store: StoreConfig{Backend: "cli", Command: "tracker"},
		Prefs: PrefsConfig{Backend: "sqlite"},
	})

	assert.Equal(t, "cli", cfg.Store.Backend)
	assert.Equal(t, "tracker", cfg.Store.Command)
	assert.Equal(t, 5000, cfg.Store.TimeoutMs)
	assert.Equal(t, filepath.Join(home, ".laneboard", "prefs.sqlite"), cfg.Prefs.Path, "sqlite gets its own default file")
	assert.Equal(t, 10000, cfg.Board.RefreshIntervalMs)
	assert.Equal(t, CurrentVersion, cfg.Version)
}

func TestMergeWithDefaultsEmptyConfig(t *testing.T) {
	isolateHome(t)
	assert.Equal(t, DefaultConfig(), MergeWithDefaults(&Config{}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "cli store", mutate: func(c *Config) { c.Store.Backend = "cli" }},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Backend = "ftp" }, wantErr: "store.backend"},
		{name: "unknown prefs", mutate: func(c *Config) { c.Prefs.Backend = "etcd" }, wantErr: "prefs.backend"},
		{name: "redis without url", mutate: func(c *Config) { c.Prefs.Backend = "redis" }, wantErr: "prefs.redisUrl"},
		{name: "redis with url", mutate: func(c *Config) { c.Prefs.Backend = "redis"; c.Prefs.RedisURL = "redis://localhost:6379/0" }},
		{name: "bad view", mutate: func(c *Config) { c.Board.DefaultView = "list" }, wantErr: "board.defaultView"},
		{name: "negative distance", mutate: func(c *Config) { c.Board.ActivationDistance = -1 }, wantErr: "board.activationDistance"},
		{name: "failure rate too high", mutate: func(c *Config) { c.Server.FailureRate = 1.5 }, wantErr: "server.failureRate"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "10s", cfg.RefreshInterval().String())
	assert.Equal(t, "3s", cfg.ToastDuration().String())
	assert.Equal(t, "8s", cfg.ErrorToastDuration().String())
	assert.Equal(t, "5s", cfg.RequestTimeout().String())

	cfg.Board.RefreshIntervalMs = -1
	assert.Zero(t, cfg.RefreshInterval())
}
