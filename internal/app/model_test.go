package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/layout"
	"github.com/riordanpawley/laneboard/internal/prefs"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
)

// fakeStore serves a fixed task list and applies status updates to it.
// Updates for task ids in fail return the mapped error instead.
type fakeStore struct {
	mu      sync.Mutex
	tasks   []domain.Task
	fail    map[string]error
	updates []string
}

func (s *fakeStore) FetchTasks(_ context.Context, filter domain.Filter) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Apply(append([]domain.Task(nil), s.tasks...)), nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, taskID string, lane domain.Lane) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, taskID+"->"+string(lane))
	if err := s.fail[taskID]; err != nil {
		return err
	}
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Status = lane
		}
	}
	return nil
}

type fixture struct {
	store *fakeStore
	prefs *prefs.Memory
}

// newTestModel returns a loaded 140x40 board. With seven columns every
// column is 20 cells wide; backlog is column 0 and todo column 1.
func newTestModel(t *testing.T) (Model, *fixture) {
	t.Helper()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	f := &fixture{
		store: &fakeStore{
			tasks: []domain.Task{
				{ID: "T1", Title: "Fix login bug", Status: domain.LaneTodo},
				{ID: "T2", Title: "Write docs", Status: domain.LaneInProgress},
				{ID: "T3", Title: "Ship release", Status: domain.LaneDone},
			},
			fail: map[string]error{},
		},
		prefs: prefs.NewMemory(),
	}
	m := New(Options{Store: f.store, Prefs: f.prefs, Logger: quiet})
	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	tasks, err := f.store.FetchTasks(context.Background(), domain.Filter{})
	require.NoError(t, err)
	m = update(t, m, tasksLoadedMsg{tasks: tasks, mark: m.engine.Mark()})
	require.False(t, m.loading)
	return m, f
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(keys ...string) []tea.Msg {
	out := make([]tea.Msg, len(keys))
	for i, k := range keys {
		out[i] = key(k)
	}
	return out
}

func mouse(action tea.MouseAction, p drag.Point) tea.MouseMsg {
	return tea.MouseMsg{X: p.X, Y: p.Y, Action: action, Button: tea.MouseButtonLeft}
}

func lastToast(t *testing.T, m Model) types.Toast {
	t.Helper()
	active := m.toasts.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func lane(t *testing.T, m Model, taskID string) domain.Lane {
	t.Helper()
	l, ok := m.engine.TaskLane(taskID)
	require.True(t, ok, "task %s should exist", taskID)
	return l
}

func droppable(t *testing.T, m Model, kind drag.Kind, id drag.ID) drag.Rect {
	t.Helper()
	for _, d := range m.geometry().Droppables(kind) {
		if d.ID == id {
			return d.Rect
		}
	}
	t.Fatalf("no droppable %s", id)
	return drag.Rect{}
}

func TestKeyboardMove_Success(t *testing.T) {
	m, f := newTestModel(t)

	// Select T1 in todo, pick it up, retarget one lane right and drop.
	for _, msg := range press("l", " ") {
		m = update(t, m, msg)
	}
	require.True(t, m.engine.Dragging())
	assert.Equal(t, ModeMove, m.currentMode())

	m = update(t, m, key("l"))
	m, cmd := updateCmd(t, m, key("enter"))
	require.NotNil(t, cmd, "a lane change dispatches")

	assert.False(t, m.engine.Dragging())
	assert.Equal(t, domain.LaneInProgress, lane(t, m, "T1"), "overlay applies before the store answers")
	assert.True(t, m.engine.Pending("T1"))
	assert.Equal(t, 2, m.cursor.Column, "cursor follows the card")

	m, cmd = updateCmd(t, m, cmd())
	assert.Equal(t, []string{"T1->in_progress"}, f.store.updates)
	assert.Equal(t, "Moved T1 to In Progress", lastToast(t, m).Message)
	assert.False(t, m.engine.Pending("T1"))
	require.NotNil(t, cmd, "a settled move refetches")

	m = update(t, m, cmd())
	assert.Equal(t, domain.LaneInProgress, lane(t, m, "T1"))
}

func TestKeyboardMove_FailureReverts(t *testing.T) {
	m, f := newTestModel(t)
	f.store.fail["T1"] = &domain.StoreError{Op: "update", TaskID: "T1", Message: "T1 is locked"}

	for _, msg := range press("l", " ", "l") {
		m = update(t, m, msg)
	}
	m, cmd := updateCmd(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, domain.LaneInProgress, lane(t, m, "T1"))

	m = update(t, m, cmd())
	assert.Equal(t, domain.LaneTodo, lane(t, m, "T1"))
	toast := lastToast(t, m)
	assert.Equal(t, types.ToastError, toast.Level)
	assert.Equal(t, "T1 is locked", toast.Message)
}

func TestKeyboardMove_CancelAndSameLane(t *testing.T) {
	t.Run("esc puts the card back", func(t *testing.T) {
		m, f := newTestModel(t)
		for _, msg := range press("l", " ", "l", "esc") {
			m = update(t, m, msg)
		}
		assert.False(t, m.engine.Dragging())
		assert.Equal(t, ModeNormal, m.currentMode())
		assert.Equal(t, domain.LaneTodo, lane(t, m, "T1"))
		assert.Empty(t, f.store.updates)
	})

	t.Run("dropping on the source lane does nothing", func(t *testing.T) {
		m, f := newTestModel(t)
		for _, msg := range press("l", " ") {
			m = update(t, m, msg)
		}
		m, cmd := updateCmd(t, m, key("enter"))
		assert.Nil(t, cmd)
		assert.False(t, m.engine.Dragging())
		assert.False(t, m.engine.Pending("T1"))
		assert.Empty(t, f.store.updates)
	})

	t.Run("space on an empty column picks nothing up", func(t *testing.T) {
		m, _ := newTestModel(t)
		m = update(t, m, key(" "))
		assert.False(t, m.engine.Dragging())
	})
}

func TestColumnKeys(t *testing.T) {
	t.Run("digit toggles visibility", func(t *testing.T) {
		m, f := newTestModel(t)
		m = update(t, m, key("1"))

		assert.False(t, m.engine.Layout().Visible(domain.LaneBacklog))
		stored, ok, err := f.prefs.Get(layout.KeyVisibleColumns)
		require.NoError(t, err)
		require.True(t, ok)
		assert.NotContains(t, stored, "backlog")
		assert.Equal(t, "Hid Backlog", lastToast(t, m).Message)
	})

	t.Run("greater-than moves the selected column right", func(t *testing.T) {
		m, _ := newTestModel(t)
		for _, msg := range press("l", ">") {
			m = update(t, m, msg)
		}
		assert.Equal(t, domain.LaneTodo, m.engine.Layout().Order()[2])
		assert.Equal(t, 2, m.cursor.Column)
	})

	t.Run("R restores defaults", func(t *testing.T) {
		m, f := newTestModel(t)
		for _, msg := range press("1", "l", ">", "R") {
			m = update(t, m, msg)
		}
		assert.Equal(t, domain.AllLanes(), m.engine.Layout().Order())
		assert.True(t, m.engine.Layout().Visible(domain.LaneBacklog))
		_, ok, err := f.prefs.Get(layout.KeyColumnOrder)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMouseDrag_TaskToLane(t *testing.T) {
	m, f := newTestModel(t)

	card := droppable(t, m, drag.KindTask, drag.TaskID("T1"))
	slot := droppable(t, m, drag.KindTask, drag.LaneID(domain.LaneDone))
	start := drag.Point{X: card.Min.X + 1, Y: card.Min.Y + 1}
	end := drag.Point{X: start.X + slot.Min.X - card.Min.X, Y: start.Y + slot.Min.Y - card.Min.Y}

	m = update(t, m, mouse(tea.MouseActionPress, start))
	assert.False(t, m.engine.Dragging(), "a press alone is not a drag")

	m = update(t, m, mouse(tea.MouseActionMotion, end))
	require.True(t, m.engine.Dragging())
	sess, ok := m.engine.Session()
	require.True(t, ok)
	assert.Equal(t, drag.LaneID(domain.LaneDone), sess.Over)

	m, cmd := updateCmd(t, m, mouse(tea.MouseActionRelease, end))
	require.NotNil(t, cmd)
	assert.False(t, m.engine.Dragging())
	assert.Equal(t, domain.LaneDone, lane(t, m, "T1"))

	m = update(t, m, cmd())
	assert.Equal(t, []string{"T1->done"}, f.store.updates)
	assert.Equal(t, domain.LaneDone, lane(t, m, "T1"))
}

func TestMouseClick_SelectsOnly(t *testing.T) {
	m, f := newTestModel(t)

	card := droppable(t, m, drag.KindTask, drag.TaskID("T2"))
	p := drag.Point{X: card.Min.X + 1, Y: card.Min.Y + 1}

	m = update(t, m, mouse(tea.MouseActionPress, p))
	m, cmd := updateCmd(t, m, mouse(tea.MouseActionRelease, p))

	assert.Nil(t, cmd)
	assert.False(t, m.engine.Dragging())
	selected, ok := m.selectedTask()
	require.True(t, ok)
	assert.Equal(t, "T2", selected.ID)
	assert.Empty(t, f.store.updates)
}

func TestMouseDrag_ColumnReorder(t *testing.T) {
	m, f := newTestModel(t)

	from := droppable(t, m, drag.KindColumn, drag.LaneID(domain.LaneTodo))
	to := droppable(t, m, drag.KindColumn, drag.LaneID(domain.LaneDone))
	start := drag.Point{X: from.Min.X + 3, Y: from.Min.Y}
	end := drag.Point{X: start.X + to.Min.X - from.Min.X, Y: start.Y}

	m = update(t, m, mouse(tea.MouseActionPress, start))
	m = update(t, m, mouse(tea.MouseActionMotion, end))
	require.True(t, m.engine.Dragging())

	m, cmd := updateCmd(t, m, mouse(tea.MouseActionRelease, end))
	assert.Nil(t, cmd, "column drops never call the store")
	assert.Equal(t, domain.LaneTodo, m.engine.Layout().Order()[5])
	assert.Empty(t, f.store.updates)

	stored, ok, err := f.prefs.Get(layout.KeyColumnOrder)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, stored, `"done","todo"`)
}

func TestTableView(t *testing.T) {
	m, f := newTestModel(t)

	m = update(t, m, key("t"))
	assert.Equal(t, ModeTable, m.currentMode())
	assert.Contains(t, m.View(), "Title")

	// The first row is T1; L shifts it one lane right.
	m, cmd := updateCmd(t, m, key("L"))
	require.NotNil(t, cmd)
	assert.Equal(t, domain.LaneInProgress, lane(t, m, "T1"))

	m = update(t, m, cmd())
	assert.Equal(t, []string{"T1->in_progress"}, f.store.updates)

	m = update(t, m, key("t"))
	assert.Equal(t, ModeNormal, m.currentMode())
}

func TestSearchNarrowsBoard(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, overlay.SearchMsg{Query: "login"})

	assert.Equal(t, "login", m.filter.Query)
	require.Len(t, m.visibleTasks(), 1)
	assert.Equal(t, "T1", m.visibleTasks()[0].ID)
	assert.Empty(t, m.storeFilter().Query, "the query never goes to the store")

	total := 0
	for _, c := range m.columns() {
		total += len(c.Tasks)
	}
	assert.Equal(t, 1, total)
}

func TestFetchErrors(t *testing.T) {
	m, _ := newTestModel(t)
	offline := &domain.StoreError{Op: "list", Err: fmt.Errorf("%w: connection refused", domain.ErrOffline)}

	m = update(t, m, tasksLoadedMsg{err: offline})
	assert.True(t, m.offline)
	require.Equal(t, 1, m.toasts.Len())
	assert.Equal(t, types.ToastError, lastToast(t, m).Level)

	m = update(t, m, tasksLoadedMsg{err: offline})
	assert.Equal(t, 1, m.toasts.Len(), "a repeated failure is not announced twice")
	assert.Len(t, m.engine.Tasks(), 3, "the last good tasks stay on screen")

	m = update(t, m, tasksLoadedMsg{tasks: m.engine.Tasks(), mark: m.engine.Mark()})
	assert.False(t, m.offline)
	assert.Equal(t, "Back online", lastToast(t, m).Message)
}

func TestFetch_QueuesWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := updateCmd(t, m, key("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.fetching)

	m, cmd = updateCmd(t, m, key("r"))
	assert.Nil(t, cmd, "a second refresh waits for the first")
	assert.True(t, m.refetch)

	m, cmd = updateCmd(t, m, tasksLoadedMsg{tasks: m.engine.Tasks(), mark: m.engine.Mark()})
	assert.NotNil(t, cmd, "the queued refresh is issued")
	assert.True(t, m.fetching)
	assert.False(t, m.refetch)
}

func TestView_Loading(t *testing.T) {
	m := New(Options{Store: &fakeStore{}})
	assert.Equal(t, "Loading...", m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Contains(t, m.View(), "Loading tasks")
}

func TestView_Board(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()

	for _, l := range domain.AllLanes() {
		assert.Contains(t, view, l.Label())
	}
	assert.Contains(t, view, "Fix")
}
