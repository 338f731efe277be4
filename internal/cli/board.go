package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/app"
	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/logging"
)

// runBoard starts the TUI. It owns the terminal, so logs go to the log file.
func runBoard(cmd *cobra.Command, a *App, filter domain.Filter, table bool) error {
	cfg := a.cfg

	logger, logFile, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := a.openStore(logger)
	if err != nil {
		return err
	}
	prefsStore, closePrefs, err := a.openPrefs()
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if err := closePrefs(); err != nil {
			logger.WithError(err).Warn("closing preferences")
		}
	}()

	logger.WithFields(logrus.Fields{
		"store":  cfg.Store.Backend,
		"url":    cfg.Store.URL,
		"prefs":  cfg.Prefs.Backend,
		"config": cfg.Source,
	}).Info("starting board")

	model := app.New(app.Options{
		Store:              store,
		Prefs:              prefsStore,
		Logger:             logger,
		Filter:             filter,
		RefreshInterval:    cfg.RefreshInterval(),
		RequestTimeout:     cfg.RequestTimeout(),
		ToastDuration:      cfg.ToastDuration(),
		ErrorToastDuration: cfg.ErrorToastDuration(),
		ToastLimit:         cfg.Toasts.Limit,
		ActivationDistance: cfg.Board.ActivationDistance,
		StartInTable:       table || cfg.Board.DefaultView == "table",
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}
