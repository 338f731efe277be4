// Package app contains the main application model and TEA implementation.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/drag"
	"github.com/riordanpawley/laneboard/internal/kanban"
	"github.com/riordanpawley/laneboard/internal/layout"
	"github.com/riordanpawley/laneboard/internal/prefs"
	"github.com/riordanpawley/laneboard/internal/services/taskstore"
	"github.com/riordanpawley/laneboard/internal/types"
	"github.com/riordanpawley/laneboard/internal/ui/board"
	"github.com/riordanpawley/laneboard/internal/ui/overlay"
	"github.com/riordanpawley/laneboard/internal/ui/styles"
	"github.com/riordanpawley/laneboard/internal/ui/table"
	"github.com/riordanpawley/laneboard/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeMove   = types.ModeMove
	ModeTable  = types.ModeTable
)

const (
	// DefaultRequestTimeout bounds every task store call the board makes.
	DefaultRequestTimeout = 10 * time.Second
	toastTickInterval     = 500 * time.Millisecond
)

// Options wires the model to its collaborators
type Options struct {
	Store  taskstore.Store
	Prefs  prefs.Store
	Logger logrus.FieldLogger

	// Filter is sent with every fetch. Its Query is also what the search bar
	// edits; the query narrows the board locally.
	Filter domain.Filter

	RefreshInterval    time.Duration // zero disables background refetches
	RequestTimeout     time.Duration
	ToastDuration      time.Duration
	ErrorToastDuration time.Duration
	ToastLimit         int
	ActivationDistance int
	StartInTable       bool
}

// Model is the main application state
type Model struct {
	engine   *kanban.Engine
	store    taskstore.Store
	toasts   *toast.Queue
	overlays *overlay.Stack
	sensor   *drag.PointerSensor
	table    table.Model
	spinner  spinner.Model

	styles        *styles.Styles
	overlayStyles *overlay.Styles
	logger        logrus.FieldLogger

	// Keyboard and view state
	mode   Mode
	cursor board.Cursor
	filter domain.Filter
	sort   domain.Sort

	// Loading state
	loading         bool
	fetching        bool
	refetch         bool // another fetch was asked for while one ran
	offline         bool
	lastFetchErr    string
	lastRefresh     time.Time
	refreshInterval time.Duration
	requestTimeout  time.Duration

	// Terminal size
	width  int
	height int
}

// New creates the application model
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemory()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	s := styles.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	toasts := toast.NewQueue(opts.ToastDuration, opts.ErrorToastDuration)
	toasts.SetLimit(opts.ToastLimit)
	columns := layout.Load(store, logger)
	engine := kanban.NewEngine(columns, opts.Store, toasts, logger)

	mode := ModeNormal
	if opts.StartInTable {
		mode = ModeTable
	}

	return Model{
		engine:          engine,
		store:           opts.Store,
		toasts:          toasts,
		overlays:        overlay.NewStack(),
		sensor:          drag.NewPointerSensor(opts.ActivationDistance),
		table:           table.New(s),
		spinner:         sp,
		styles:          s,
		overlayStyles:   overlay.New(),
		logger:          logger,
		mode:            mode,
		filter:          opts.Filter,
		sort:            domain.DefaultSort(),
		loading:         true,
		fetching:        true, // Init issues the first fetch
		refreshInterval: opts.RefreshInterval,
		requestTimeout:  timeout,
	}
}

// Init starts the first fetch, the spinner and the timers
func (m Model) Init() tea.Cmd {
	mark := m.engine.Mark()
	cmds := []tea.Cmd{
		m.spinner.Tick,
		fetchCmd(m.store, m.storeFilter(), mark, m.requestTimeout),
		toastTick(),
	}
	if m.refreshInterval > 0 {
		cmds = append(cmds, refreshTick(m.refreshInterval))
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetSize(m.width, m.mainHeight())
		return m, nil

	case spinner.TickMsg:
		// The spinner only runs until the first load finishes
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlays.IsEmpty() {
			return m, m.overlays.Update(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlays.Pop()
		return m, nil

	case overlay.SelectionMsg:
		if s, ok := msg.Value.(domain.Sort); ok {
			m.sort = s
			m.syncTable()
		}
		return m, nil

	case overlay.SearchMsg:
		m.filter.Query = msg.Query
		if search, ok := m.overlays.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(len(m.visibleTasks()))
		}
		m.clampCursor()
		m.syncTable()
		return m, nil

	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)

	case resolvedMsg:
		m.engine.Resolve(msg.resolution)
		m.syncTable()
		// Settled moves invalidate the cache either way.
		cmd := m.fetch()
		return m, cmd

	case refreshMsg:
		cmd := m.fetch()
		return m, tea.Batch(cmd, refreshTick(m.refreshInterval))

	case toastTickMsg:
		m.toasts.Expire()
		return m, toastTick()
	}

	return m, nil
}

func (m Model) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	m.fetching = false
	m.loading = false

	var next tea.Cmd
	if m.refetch {
		next = m.fetch()
	}

	if msg.err != nil {
		m.offline = isOffline(msg.err)
		text := domain.UserMessage(msg.err, "Failed to load tasks")
		if text != m.lastFetchErr {
			m.toasts.Notify(types.ToastError, text)
		}
		m.lastFetchErr = text
		m.logger.WithError(msg.err).Warn("task fetch failed")
		return m, next
	}

	if m.offline {
		m.toasts.Notify(types.ToastSuccess, "Back online")
	}
	m.offline = false
	m.lastFetchErr = ""
	m.lastRefresh = time.Now()

	m.engine.SetTasks(msg.tasks, msg.mark)
	if !m.engine.Dragging() && m.mode == ModeMove {
		m.mode = ModeNormal
	}
	m.clampCursor()
	m.syncTable()
	m.logger.WithField("count", len(msg.tasks)).Debug("tasks loaded")
	return m, next
}

// fetch starts a refetch. While one is running the request is queued and
// issued when it returns, so the next result is never older than the call.
func (m *Model) fetch() tea.Cmd {
	if m.fetching {
		m.refetch = true
		return nil
	}
	m.fetching = true
	m.refetch = false
	return fetchCmd(m.store, m.storeFilter(), m.engine.Mark(), m.requestTimeout)
}

// storeFilter is the part of the filter sent to the store. The search query
// stays local so editing it never waits on the network.
func (m Model) storeFilter() domain.Filter {
	f := m.filter
	f.Query = ""
	return f
}

// visibleTasks is the post-overlay task list narrowed by the search query
// and sorted, as the table shows it.
func (m Model) visibleTasks() []domain.Task {
	return m.sort.Apply(domain.Filter{Query: m.filter.Query}.Apply(m.engine.Tasks()))
}

// columns builds the board's visible columns, filtered and sorted
func (m Model) columns() []board.Column {
	query := domain.Filter{Query: m.filter.Query}
	src := m.engine.Columns()
	out := make([]board.Column, 0, len(src))
	for _, c := range src {
		out = append(out, board.Column{
			Lane:  c.Lane,
			Title: c.Label,
			Tasks: m.sort.Apply(query.Apply(c.Tasks)),
		})
	}
	return out
}

// pending marks every task with a move in flight
func (m Model) pending(tasks []domain.Task) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tasks {
		if m.engine.Pending(t.ID) {
			out[t.ID] = true
		}
	}
	return out
}

func (m *Model) syncTable() {
	tasks := m.visibleTasks()
	m.table.SetTasks(tasks, m.pending(tasks))
}

// clampCursor keeps the cursor inside the visible columns
func (m *Model) clampCursor() {
	cols := m.columns()
	if len(cols) == 0 {
		m.cursor = board.Cursor{}
		return
	}
	m.cursor.Column = min(max(m.cursor.Column, 0), len(cols)-1)
	n := len(cols[m.cursor.Column].Tasks)
	m.cursor.Task = min(max(m.cursor.Task, 0), max(n-1, 0))
}

// focusTask moves the cursor onto taskID if it is shown
func (m *Model) focusTask(taskID string) {
	for i, c := range m.columns() {
		for j, t := range c.Tasks {
			if t.ID == taskID {
				m.cursor = board.Cursor{Column: i, Task: j}
				return
			}
		}
	}
}

// selectedTask returns the task under the board cursor
func (m Model) selectedTask() (domain.Task, bool) {
	cols := m.columns()
	if m.cursor.Column < 0 || m.cursor.Column >= len(cols) {
		return domain.Task{}, false
	}
	tasks := cols[m.cursor.Column].Tasks
	if m.cursor.Task < 0 || m.cursor.Task >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.cursor.Task], true
}

// selectedLane returns the lane of the column under the cursor
func (m Model) selectedLane() (domain.Lane, bool) {
	cols := m.columns()
	if m.cursor.Column < 0 || m.cursor.Column >= len(cols) {
		return "", false
	}
	return cols[m.cursor.Column].Lane, true
}

// currentMode is the mode shown in the status bar
func (m Model) currentMode() Mode {
	if m.engine.Dragging() {
		return ModeMove
	}
	return m.mode
}
