package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/server"
	"github.com/riordanpawley/laneboard/internal/taskdb"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var (
		addr        string
		dbPath      string
		noSeed      bool
		latency     time.Duration
		failureRate float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task service the board talks to",
		Long: `Serve the task API over a SQLite database. An empty database is seeded
with demo tasks unless --no-seed is given.

--latency and --failure-rate slow down or fail status updates on purpose,
which makes optimistic moves and their rollbacks visible on the board.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = dbPath
			}
			if cmd.Flags().Changed("no-seed") {
				cfg.NoSeed = noSeed
			}
			if cmd.Flags().Changed("latency") {
				cfg.LatencyMs = int(latency / time.Millisecond)
			}
			if cmd.Flags().Changed("failure-rate") {
				cfg.FailureRate = failureRate
			}
			if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
				return errors.New("--failure-rate must be between 0 and 1")
			}

			logger, err := a.stderrLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg.Addr, cfg.DBPath, !cfg.NoSeed, server.Options{
				Latency:     time.Duration(cfg.LatencyMs) * time.Millisecond,
				FailureRate: cfg.FailureRate,
			}, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not seed an empty database")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay every status update by this much")
	cmd.Flags().Float64Var(&failureRate, "failure-rate", 0, "Share of status updates to fail (0..1)")

	return cmd
}

// serve runs the task service until ctx is done
func serve(ctx context.Context, addr, dbPath string, seed bool, opts server.Options, logger *logrus.Logger) error {
	db, err := taskdb.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if seed {
		n, err := db.Seed(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.WithField("count", n).Info("seeded demo tasks")
		}
	}

	e := server.New(db, opts, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":         addr,
			"db":           dbPath,
			"latency":      opts.Latency,
			"failure_rate": opts.FailureRate,
		}).Info("task service listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
