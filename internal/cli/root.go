// Package cli wires the laneboard commands: the board itself, the task
// service and a few scriptable helpers around the same stores.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/config"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/logging"
	"github.com/riordanpawley/laneboard/internal/prefs"
	"github.com/riordanpawley/laneboard/internal/services/taskstore"
)

// App holds the persistent flags and the config they resolve to
type App struct {
	ConfigPath   string
	StoreURL     string
	StoreBackend string
	PrefsBackend string
	PrefsPath    string
	Debug        bool

	cfg *config.Config
}

// NewRootCmd builds the laneboard command tree
func NewRootCmd() *cobra.Command {
	a := &App{}

	var (
		table    bool
		lanes    []string
		assignee string
	)

	cmd := &cobra.Command{
		Use:          "laneboard",
		Short:        "Kanban board for your task store",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the board against the local task service
  laneboard serve &
  laneboard

  # Only show two lanes' worth of tasks for one person
  laneboard --lane todo,in_progress --assignee ana

  # Scriptable commands
  laneboard tasks list --lane done
  laneboard columns toggle cancelled
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(lanes, assignee, "")
			if err != nil {
				return err
			}
			return runBoard(cmd, a, filter, table)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.loadConfig()
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.ConfigPath, "config", envOr("LANEBOARD_CONFIG", ""), "Config file (default: ./"+config.ProjectFileName+" then "+config.UserConfigPath()+")")
	pf.StringVar(&a.StoreURL, "url", envOr("LANEBOARD_URL", ""), "Task service base URL")
	pf.StringVar(&a.StoreBackend, "store", "", "Task store backend (http|cli)")
	pf.StringVar(&a.PrefsBackend, "prefs", "", "Preference backend (file|sqlite|redis|memory)")
	pf.StringVar(&a.PrefsPath, "prefs-path", "", "Preference file or database path")
	pf.BoolVar(&a.Debug, "debug", false, "Log at debug level")

	cmd.Flags().BoolVar(&table, "table", false, "Start in the table view")
	cmd.Flags().StringSliceVar(&lanes, "lane", nil, "Only fetch tasks in these lanes")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only fetch tasks assigned to this person")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newColumnsCmd(a))
	cmd.AddCommand(newTasksCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// loadConfig resolves the config file and applies flag overrides
func (a *App) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFile(a.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if a.StoreURL != "" {
		cfg.Store.URL = a.StoreURL
	}
	if a.StoreBackend != "" {
		cfg.Store.Backend = a.StoreBackend
	}
	if a.PrefsBackend != "" && a.PrefsBackend != cfg.Prefs.Backend {
		cfg.Prefs.Backend = a.PrefsBackend
		if a.PrefsPath == "" {
			// Re-derive the backend's default path
			cfg.Prefs.Path = ""
			cfg = config.MergeWithDefaults(cfg)
		}
	}
	if a.PrefsPath != "" {
		cfg.Prefs.Path = a.PrefsPath
	}
	if a.Debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// stderrLogger is the logger for the short-lived commands
func (a *App) stderrLogger(w io.Writer) (*logrus.Logger, error) {
	return logging.New(a.cfg.Log.Level, w)
}

func (a *App) openStore(logger logrus.FieldLogger) (taskstore.Store, error) {
	c := a.cfg.Store
	return taskstore.New(taskstore.Options{
		Backend:   taskstore.Backend(c.Backend),
		URL:       c.URL,
		Command:   c.Command,
		WorkDir:   c.WorkDir,
		TimeoutMs: c.TimeoutMs,
	}, logger)
}

func (a *App) openPrefs() (prefs.Store, func() error, error) {
	c := a.cfg.Prefs
	return prefs.Open(prefs.Options{
		Backend:   c.Backend,
		Path:      c.Path,
		RedisURL:  c.RedisURL,
		Namespace: c.Namespace,
		TimeoutMs: c.TimeoutMs,
	})
}

// parseFilter turns lane names (comma separated or repeated) into a filter
func parseFilter(lanes []string, assignee, query string) (domain.Filter, error) {
	f := domain.Filter{Assignee: assignee, Query: query}
	for _, raw := range lanes {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			lane, ok := domain.ParseLane(name)
			if !ok {
				return domain.Filter{}, fmt.Errorf("unknown lane %q", name)
			}
			f.Lanes = append(f.Lanes, lane)
		}
	}
	return f, nil
}

func parseLane(name string) (domain.Lane, error) {
	lane, ok := domain.ParseLane(name)
	if !ok {
		return "", fmt.Errorf("unknown lane %q (want one of %s)", name, laneNames())
	}
	return lane, nil
}

func laneNames() string {
	names := make([]string, 0, len(domain.AllLanes()))
	for _, l := range domain.AllLanes() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
