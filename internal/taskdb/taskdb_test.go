package taskdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/laneboard/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "tasks.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))
	require.NoError(t, db.Migrate(context.Background()))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	n, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoTasks), n)

	again, err := db.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, again, "seeding a non-empty database adds nothing")

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(demoTasks), count)

	tasks, err := db.List(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "LB-1", tasks[0].ID, "oldest first")
}

func TestList_Filters(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, task := range []domain.Task{
		{ID: "T1", Title: "Write release notes", Status: domain.LaneTodo, Assignee: "Ana"},
		{ID: "T2", Title: "Fix login bug", Status: domain.LaneInProgress, Assignee: "ben"},
		{ID: "T3", Title: "Release build", Status: domain.LaneDone, Assignee: "ana"},
	} {
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Insert(ctx, task))
	}

	tests := []struct {
		name   string
		filter domain.Filter
		want   []string
	}{
		{name: "no filter", filter: domain.Filter{}, want: []string{"T1", "T2", "T3"}},
		{name: "lanes", filter: domain.Filter{Lanes: []domain.Lane{domain.LaneTodo, domain.LaneDone}}, want: []string{"T1", "T3"}},
		{name: "assignee ignores case", filter: domain.Filter{Assignee: "ANA"}, want: []string{"T1", "T3"}},
		{name: "query", filter: domain.Filter{Query: "release"}, want: []string{"T1", "T3"}},
		{name: "combined", filter: domain.Filter{Query: "release", Lanes: []domain.Lane{domain.LaneDone}}, want: []string{"T3"}},
		{name: "nothing matches", filter: domain.Filter{Assignee: "zoe"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := db.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(tasks))
		})
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	created := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, db.Insert(ctx, domain.Task{
		ID: "T1", Title: "One", Description: "first", Status: domain.LanePaused,
		Priority: domain.P1, Type: domain.TypeBug, Assignee: "ana", CreatedAt: created,
	}))

	got, err := db.Get(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, domain.Task{
		ID: "T1", Title: "One", Description: "first", Status: domain.LanePaused,
		Priority: domain.P1, Type: domain.TypeBug, Assignee: "ana", CreatedAt: created, UpdatedAt: created,
	}, got)

	_, err = db.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	later := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Insert(ctx, domain.Task{ID: "T1", Title: "One", Status: domain.LaneTodo}))
	db.now = func() time.Time { return later }

	got, err := db.UpdateStatus(ctx, "T1", domain.LaneInReview)
	require.NoError(t, err)
	assert.Equal(t, domain.LaneInReview, got.Status)
	assert.Equal(t, later, got.UpdatedAt)

	_, err = db.UpdateStatus(ctx, "missing", domain.LaneDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "task missing not found", domain.UserMessage(err, ""))

	_, err = db.UpdateStatus(ctx, "T1", domain.Lane("nowhere"))
	assert.ErrorIs(t, err, domain.ErrInvalidLane)

	unchanged, err := db.Get(ctx, "T1")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneInReview, unchanged.Status)
}

func TestInsert_RejectsUnknownLane(t *testing.T) {
	db := openTestDB(t)
	err := db.Insert(context.Background(), domain.Task{ID: "T1", Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidLane)
}
