// Package taskdb is the SQLite task repository behind `laneboard serve`.
package taskdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// DB is a task repository backed by one SQLite file
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("taskdb: no database path configured")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("taskdb: create dir: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("taskdb: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("taskdb: %s: %w", p, err)
		}
	}

	d := &DB{db: db, now: time.Now}
	if err := d.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Migrate creates the schema. Safe to run repeatedly.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			priority INTEGER NOT NULL DEFAULT 2,
			type TEXT NOT NULL DEFAULT 'task',
			assignee TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	}
	for _, st := range stmts {
		if _, err := d.db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("taskdb: migrate: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.db.Close()
}

const selectTasks = `SELECT id, title, description, status, priority, type, assignee,
	created_at_unixms, updated_at_unixms FROM tasks`

// List returns tasks matching filter, oldest first. Lanes and assignee are
// matched in SQL; the fuzzy query runs over the result.
func (d *DB) List(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	var (
		where []string
		args  []any
	)
	if len(filter.Lanes) > 0 {
		marks := make([]string, len(filter.Lanes))
		for i, l := range filter.Lanes {
			marks[i] = "?"
			args = append(args, string(l))
		}
		where = append(where, "status IN ("+strings.Join(marks, ",")+")")
	}
	if filter.Assignee != "" {
		where = append(where, "lower(assignee) = lower(?)")
		args = append(args, filter.Assignee)
	}

	q := selectTasks
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at_unixms, id"

	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "list", Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}

	return domain.Filter{Query: filter.Query}.Apply(tasks), nil
}

// Get returns one task, or domain.ErrNotFound
func (d *DB) Get(ctx context.Context, id string) (domain.Task, error) {
	row := d.db.QueryRowContext(ctx, selectTasks+" WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Message: fmt.Sprintf("task %s not found", id), Err: domain.ErrNotFound}
	}
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "get", TaskID: id, Err: err}
	}
	return t, nil
}

// UpdateStatus moves a task to lane and returns the updated task
func (d *DB) UpdateStatus(ctx context.Context, id string, lane domain.Lane) (domain.Task, error) {
	if !lane.Valid() {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Message: fmt.Sprintf("unknown lane %q", lane), Err: domain.ErrInvalidLane}
	}

	res, err := d.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at_unixms = ? WHERE id = ?`,
		string(lane), d.now().UnixMilli(), id)
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Err: err}
	}
	if n == 0 {
		return domain.Task{}, &domain.StoreError{Op: "update", TaskID: id, Message: fmt.Sprintf("task %s not found", id), Err: domain.ErrNotFound}
	}
	return d.Get(ctx, id)
}

// Insert adds a task. Zero timestamps are set to now.
func (d *DB) Insert(ctx context.Context, t domain.Task) error {
	if !t.Status.Valid() {
		return &domain.StoreError{Op: "insert", TaskID: t.ID, Err: domain.ErrInvalidLane}
	}
	now := d.now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}
	if t.Type == "" {
		t.Type = domain.TypeTask
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, type, assignee, created_at_unixms, updated_at_unixms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), int(t.Priority), string(t.Type), t.Assignee,
		t.CreatedAt.UnixMilli(), t.UpdatedAt.UnixMilli())
	if err != nil {
		return &domain.StoreError{Op: "insert", TaskID: t.ID, Err: err}
	}
	return nil
}

// Count returns the number of stored tasks
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, &domain.StoreError{Op: "count", Err: err}
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (domain.Task, error) {
	var (
		t                domain.Task
		status, typ      string
		priority         int
		created, updated int64
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &typ, &t.Assignee, &created, &updated); err != nil {
		return domain.Task{}, err
	}
	t.Status = domain.Lane(status)
	t.Priority = domain.Priority(priority)
	t.Type = domain.TaskType(typ)
	t.CreatedAt = time.UnixMilli(created).UTC()
	t.UpdatedAt = time.UnixMilli(updated).UTC()
	return t, nil
}
