package taskstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/laneboard/internal/domain"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// mockRunner implements CommandRunner for testing
type mockRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	return m.output, m.err
}

func TestCLIClient_FetchTasks(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		runErr  error
		filter  domain.Filter
		wantIDs []string
		wantErr bool
	}{
		{
			name: "valid response with multiple tasks",
			output: `[
				{"id": "lb-1", "title": "Write docs", "status": "todo", "priority": 1, "type": "task", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z"},
				{"id": "lb-2", "title": "Fix crash", "status": "in_progress", "priority": 0, "type": "bug", "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z"}
			]`,
			wantIDs: []string{"lb-1", "lb-2"},
		},
		{
			name:    "empty response",
			output:  `[]`,
			wantIDs: []string{},
		},
		{
			name: "unknown status is skipped",
			output: `[
				{"id": "lb-1", "title": "Keep", "status": "done"},
				{"id": "lb-2", "title": "Drop", "status": "archived"}
			]`,
			wantIDs: []string{"lb-1"},
		},
		{
			name: "filter applied locally",
			output: `[
				{"id": "lb-1", "title": "One", "status": "todo"},
				{"id": "lb-2", "title": "Two", "status": "done"}
			]`,
			filter:  domain.Filter{Lanes: []domain.Lane{domain.LaneDone}},
			wantIDs: []string{"lb-2"},
		},
		{
			name:    "invalid json",
			output:  `not json`,
			wantErr: true,
		},
		{
			name:    "runner error",
			runErr:  errors.New("command failed"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{output: []byte(tt.output), err: tt.runErr}
			client := NewCLIClient("tracker", runner, quietLogger())

			tasks, err := client.FetchTasks(context.Background(), tt.filter)

			if tt.wantErr {
				require.Error(t, err)
				var storeErr *domain.StoreError
				require.ErrorAs(t, err, &storeErr)
				assert.Equal(t, "list", storeErr.Op)
				return
			}

			require.NoError(t, err)
			ids := make([]string, 0, len(tasks))
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, []string{"tracker", "list", "--format=json"}, runner.calls[0])
		})
	}
}

func TestCLIClient_UpdateStatus(t *testing.T) {
	t.Run("runs update with status flag", func(t *testing.T) {
		runner := &mockRunner{}
		client := NewCLIClient("tracker", runner, quietLogger())

		require.NoError(t, client.UpdateStatus(context.Background(), "lb-7", domain.LaneInReview))
		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"tracker", "update", "lb-7", "--status=in_review"}, runner.calls[0])
	})

	t.Run("invalid lane never runs the command", func(t *testing.T) {
		runner := &mockRunner{}
		client := NewCLIClient("tracker", runner, quietLogger())

		err := client.UpdateStatus(context.Background(), "lb-7", domain.Lane("nowhere"))
		assert.ErrorIs(t, err, domain.ErrInvalidLane)
		assert.Empty(t, runner.calls)
	})

	t.Run("runner failure keeps task id", func(t *testing.T) {
		runner := &mockRunner{err: errors.New("locked")}
		client := NewCLIClient("tracker", runner, quietLogger())

		err := client.UpdateStatus(context.Background(), "lb-7", domain.LaneDone)
		var storeErr *domain.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "update", storeErr.Op)
		assert.Equal(t, "lb-7", storeErr.TaskID)
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    any
		wantErr bool
	}{
		{name: "default backend is http", opts: Options{URL: "http://localhost:7420"}, want: &HTTPClient{}},
		{name: "cli backend", opts: Options{Backend: BackendCLI, Command: "tracker"}, want: &CLIClient{}},
		{name: "http without url", opts: Options{Backend: BackendHTTP}, wantErr: true},
		{name: "cli without command", opts: Options{Backend: BackendCLI}, wantErr: true},
		{name: "unknown backend", opts: Options{Backend: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.opts, quietLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)
		})
	}
}
