// Package taskstore talks to the task store: the laneboard task service over
// HTTP, or a file-backed tracker through its command line.
package taskstore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// Store is the task store as the board sees it: read the tasks, change one
// task's lane. Nothing else is ever written.
type Store interface {
	FetchTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, taskID string, lane domain.Lane) error
}

// Backend names a Store implementation
type Backend string

const (
	BackendHTTP Backend = "http"
	BackendCLI  Backend = "cli"
)

// Options selects and configures a backend
type Options struct {
	Backend   Backend
	URL       string // http: base URL of the task service
	Command   string // cli: tracker executable
	WorkDir   string // cli: directory to run it in
	TimeoutMs int
}

// New builds the Store described by opts. An empty backend means http.
func New(opts Options, logger logrus.FieldLogger) (Store, error) {
	timeout := time.Duration(opts.TimeoutMs) * time.Millisecond
	switch opts.Backend {
	case BackendHTTP, "":
		if opts.URL == "" {
			return nil, fmt.Errorf("taskstore: http backend needs a URL")
		}
		return NewHTTPClient(opts.URL, timeout, logger), nil
	case BackendCLI:
		if opts.Command == "" {
			return nil, fmt.Errorf("taskstore: cli backend needs a command")
		}
		return NewCLIClient(opts.Command, NewExecRunner(opts.WorkDir, timeout), logger), nil
	default:
		return nil, fmt.Errorf("taskstore: unknown backend %q", opts.Backend)
	}
}
