package taskstore

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/sirupsen/logrus"

	"github.com/riordanpawley/laneboard/internal/domain"
)

// CLIClient drives a file-backed tracker through its command line:
// `<cmd> list --format=json` and `<cmd> update <id> --status=<lane>`.
type CLIClient struct {
	command string
	runner  CommandRunner
	logger  logrus.FieldLogger
}

// NewCLIClient creates a new CLI client with dependency injection
func NewCLIClient(command string, runner CommandRunner, logger logrus.FieldLogger) *CLIClient {
	return &CLIClient{
		command: command,
		runner:  runner,
		logger:  logger.WithField("store", "cli"),
	}
}

// FetchTasks lists every task and filters locally; the tracker has no
// filtering of its own.
func (c *CLIClient) FetchTasks(ctx context.Context, filter domain.Filter) ([]domain.Task, error) {
	c.logger.Debug("listing tasks")

	out, err := c.runner.Run(ctx, c.command, "list", "--format=json")
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}

	var tasks []domain.Task
	if err := sonic.Unmarshal(out, &tasks); err != nil {
		return nil, &domain.StoreError{Op: "list", Message: "failed to parse JSON", Err: err}
	}

	// Unknown lanes would have no column to render in.
	valid := tasks[:0]
	for _, t := range tasks {
		if t.Status.Valid() {
			valid = append(valid, t)
		} else {
			c.logger.WithFields(logrus.Fields{"task": t.ID, "status": t.Status}).Warn("skipping task with unknown status")
		}
	}

	c.logger.WithField("count", len(valid)).Debug("listed tasks")
	return filter.Apply(valid), nil
}

// UpdateStatus moves a task using `<cmd> update <id> --status=<lane>`
func (c *CLIClient) UpdateStatus(ctx context.Context, taskID string, lane domain.Lane) error {
	if !lane.Valid() {
		return &domain.StoreError{Op: "update", TaskID: taskID, Err: domain.ErrInvalidLane}
	}
	c.logger.WithFields(logrus.Fields{"task": taskID, "lane": lane}).Debug("updating task status")

	if _, err := c.runner.Run(ctx, c.command, "update", taskID, "--status="+string(lane)); err != nil {
		return &domain.StoreError{Op: "update", TaskID: taskID, Err: err}
	}
	return nil
}
