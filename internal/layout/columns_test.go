package layout

import (
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/laneboard/internal/domain"
	"github.com/riordanpawley/laneboard/internal/prefs"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// failingStore accepts reads but refuses every write, like a full disk.
type failingStore struct {
	*prefs.Memory
}

func (f *failingStore) Set(key, value string) error { return errors.New("quota exceeded") }
func (f *failingStore) Remove(key string) error     { return errors.New("quota exceeded") }

func TestLoad_Defaults(t *testing.T) {
	c := Load(prefs.NewMemory(), quietLogger())

	assert.Equal(t, domain.AllLanes(), c.Order())
	assert.Equal(t, domain.AllLanes(), c.VisibleOrder())
	assert.Equal(t, len(domain.AllLanes()), c.VisibleCount())
}

func TestLoad_FromStore(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(KeyColumnOrder,
		`["done","todo","backlog","in_progress","paused","in_review","cancelled"]`))
	require.NoError(t, store.Set(KeyVisibleColumns, `["todo","done"]`))

	c := Load(store, quietLogger())

	assert.Equal(t, domain.LaneDone, c.Order()[0])
	assert.Equal(t, []domain.Lane{domain.LaneDone, domain.LaneTodo}, c.VisibleOrder())
}

func TestLoad_Corruption(t *testing.T) {
	tests := []struct {
		name        string
		order       string
		visible     string
		wantOrder   []domain.Lane
		wantVisible int
	}{
		{
			name:        "unparseable values fall back to defaults",
			order:       "not json",
			visible:     "{",
			wantOrder:   domain.AllLanes(),
			wantVisible: 7,
		},
		{
			name:  "order is repaired into a permutation",
			order: `["done","done","nope","todo"]`,
			wantOrder: []domain.Lane{
				domain.LaneDone, domain.LaneTodo, domain.LaneBacklog, domain.LaneInProgress,
				domain.LanePaused, domain.LaneInReview, domain.LaneCancelled,
			},
			wantVisible: 7,
		},
		{
			name:        "visible set without known lanes shows everything",
			visible:     `["nope"]`,
			wantOrder:   domain.AllLanes(),
			wantVisible: 7,
		},
		{
			name:        "empty visible set shows everything",
			visible:     `[]`,
			wantOrder:   domain.AllLanes(),
			wantVisible: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := prefs.NewMemory()
			if tt.order != "" {
				require.NoError(t, store.Set(KeyColumnOrder, tt.order))
			}
			if tt.visible != "" {
				require.NoError(t, store.Set(KeyVisibleColumns, tt.visible))
			}

			c := Load(store, quietLogger())
			assert.Equal(t, tt.wantOrder, c.Order())
			assert.Equal(t, tt.wantVisible, c.VisibleCount())
		})
	}
}

func TestMove_ScenarioA(t *testing.T) {
	order := []domain.Lane{domain.LaneBacklog, domain.LaneTodo, domain.LaneInProgress, domain.LaneDone}

	got, ok := Move(order, domain.LaneTodo, domain.LaneDone)

	require.True(t, ok)
	assert.Equal(t, []domain.Lane{domain.LaneBacklog, domain.LaneInProgress, domain.LaneDone, domain.LaneTodo}, got)
	assert.Equal(t, domain.LaneTodo, order[1], "input must not be modified")
}

func TestMove(t *testing.T) {
	order := []domain.Lane{domain.LaneBacklog, domain.LaneTodo, domain.LaneInProgress, domain.LaneDone}

	tests := []struct {
		name   string
		from   domain.Lane
		to     domain.Lane
		want   []domain.Lane
		wantOK bool
	}{
		{
			name:   "move left",
			from:   domain.LaneDone,
			to:     domain.LaneTodo,
			want:   []domain.Lane{domain.LaneBacklog, domain.LaneDone, domain.LaneTodo, domain.LaneInProgress},
			wantOK: true,
		},
		{
			name:   "move to front",
			from:   domain.LaneInProgress,
			to:     domain.LaneBacklog,
			want:   []domain.Lane{domain.LaneInProgress, domain.LaneBacklog, domain.LaneTodo, domain.LaneDone},
			wantOK: true,
		},
		{
			name:   "adjacent move right",
			from:   domain.LaneBacklog,
			to:     domain.LaneTodo,
			want:   []domain.Lane{domain.LaneTodo, domain.LaneBacklog, domain.LaneInProgress, domain.LaneDone},
			wantOK: true,
		},
		{name: "same lane", from: domain.LaneTodo, to: domain.LaneTodo, want: order},
		{name: "unknown lane", from: domain.LanePaused, to: domain.LaneTodo, want: order},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Move(order, tt.from, tt.to)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReorder_Persists(t *testing.T) {
	store := prefs.NewMemory()
	c := Load(store, quietLogger())

	require.True(t, c.Reorder(domain.LaneTodo, domain.LaneDone))
	assert.False(t, c.Reorder(domain.LaneTodo, domain.LaneTodo))

	raw, ok, err := store.Get(KeyColumnOrder)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["backlog","in_progress","paused","in_review","done","todo","cancelled"]`, raw)

	reloaded := Load(store, quietLogger())
	assert.Equal(t, c.Order(), reloaded.Order())
}

func TestToggle_ScenarioB(t *testing.T) {
	store := prefs.NewMemory()
	require.NoError(t, store.Set(KeyVisibleColumns, `["todo"]`))
	c := Load(store, quietLogger())

	assert.False(t, c.Toggle(domain.LaneTodo))
	assert.Equal(t, []domain.Lane{domain.LaneTodo}, c.VisibleOrder())

	raw, _, err := store.Get(KeyVisibleColumns)
	require.NoError(t, err)
	assert.Equal(t, `["todo"]`, raw, "a no-op toggle writes nothing new")
}

func TestToggle(t *testing.T) {
	store := prefs.NewMemory()
	c := Load(store, quietLogger())

	require.True(t, c.Toggle(domain.LaneBacklog))
	assert.False(t, c.Visible(domain.LaneBacklog))
	assert.NotContains(t, c.VisibleOrder(), domain.LaneBacklog)
	assert.Equal(t, domain.AllLanes(), c.Order(), "hiding never reorders")

	require.True(t, c.Toggle(domain.LaneBacklog))
	assert.True(t, c.Visible(domain.LaneBacklog))

	assert.False(t, c.Toggle(domain.Lane("nope")))
}

func TestHiddenColumnKeepsRelativeOrder(t *testing.T) {
	c := Load(prefs.NewMemory(), quietLogger())
	require.True(t, c.Toggle(domain.LaneInProgress))
	require.True(t, c.Reorder(domain.LaneDone, domain.LaneBacklog))

	assert.Equal(t, []domain.Lane{
		domain.LaneDone, domain.LaneBacklog, domain.LaneTodo, domain.LanePaused,
		domain.LaneInReview, domain.LaneCancelled,
	}, c.VisibleOrder())
}

func TestReset(t *testing.T) {
	store := prefs.NewMemory()
	c := Load(store, quietLogger())
	require.True(t, c.Reorder(domain.LaneCancelled, domain.LaneBacklog))
	require.True(t, c.Toggle(domain.LaneTodo))

	c.ResetOrder()
	c.ResetVisibility()

	assert.Equal(t, domain.AllLanes(), c.Order())
	assert.Equal(t, domain.AllLanes(), c.VisibleOrder())

	_, ok, _ := store.Get(KeyColumnOrder)
	assert.False(t, ok, "reset erases the stored order")
	_, ok, _ = store.Get(KeyVisibleColumns)
	assert.False(t, ok, "reset erases the stored visibility")
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{Memory: prefs.NewMemory()}
	c := Load(store, quietLogger())

	require.True(t, c.Reorder(domain.LaneTodo, domain.LaneDone))
	require.True(t, c.Toggle(domain.LaneBacklog))

	assert.Equal(t, domain.LaneTodo, c.Order()[5])
	assert.False(t, c.Visible(domain.LaneBacklog))

	c.ResetOrder()
	assert.Equal(t, domain.AllLanes(), c.Order())
}

func isPermutation(t *testing.T, order []domain.Lane) {
	t.Helper()
	all := domain.AllLanes()
	require.Len(t, order, len(all))
	seen := make(map[domain.Lane]int)
	for _, lane := range order {
		seen[lane]++
	}
	for _, lane := range all {
		require.Equal(t, 1, seen[lane], "lane %s", lane)
	}
}

func TestOrderStaysPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lanes := domain.AllLanes()
	store := prefs.NewMemory()
	c := Load(store, quietLogger())

	for i := 0; i < 2000; i++ {
		switch rng.Intn(10) {
		case 0:
			c.ResetOrder()
		default:
			c.Reorder(lanes[rng.Intn(len(lanes))], lanes[rng.Intn(len(lanes))])
		}
		isPermutation(t, c.Order())
	}

	isPermutation(t, Load(store, quietLogger()).Order())
}

func TestVisibleNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lanes := domain.AllLanes()
	c := Load(prefs.NewMemory(), quietLogger())

	for i := 0; i < 2000; i++ {
		c.Toggle(lanes[rng.Intn(len(lanes))])
		require.NotZero(t, c.VisibleCount())
		require.NotEmpty(t, c.VisibleOrder())
	}
}
