package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/kanban"
	"github.com/riordanpawley/laneboard/internal/services/taskstore"
)

// tasksLoadedMsg carries a fetch result. mark was taken when the fetch was
// issued.
type tasksLoadedMsg struct {
	tasks []domain.Task
	mark  uint64
	err   error
}

// resolvedMsg carries the outcome of a dispatched move
type resolvedMsg struct {
	resolution kanban.Resolution
}

type refreshMsg time.Time

type toastTickMsg time.Time

func fetchCmd(store taskstore.Store, filter domain.Filter, mark uint64, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks, err := store.FetchTasks(ctx, filter)
		return tasksLoadedMsg{tasks: tasks, mark: mark, err: err}
	}
}

// dispatchCmd runs the remote half of a move off the UI goroutine
func dispatchCmd(engine *kanban.Engine, r kanban.Relocation, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return resolvedMsg{resolution: engine.Dispatch(ctx, r)}
	}
}

func refreshTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func toastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

func isOffline(err error) bool {
	return errors.Is(err, domain.ErrOffline) ||
		errors.Is(err, context.DeadlineExceeded)
}
