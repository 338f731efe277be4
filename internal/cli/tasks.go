package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/domain"
)

func newTasksCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Read and move tasks without opening the board",
	}
	cmd.AddCommand(newTasksListCmd(a))
	cmd.AddCommand(newTasksMoveCmd(a))
	return cmd
}

func newTasksListCmd(a *App) *cobra.Command {
	var (
		lanes    []string
		assignee string
		query    string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks from the task store",
		Example: `  laneboard tasks list --lane todo,in_progress
  laneboard tasks list --query login --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseFilter(lanes, assignee, query)
			if err != nil {
				return err
			}
			logger, err := a.stderrLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := a.openStore(logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout())
			defer cancel()
			tasks, err := store.FetchTasks(ctx, filter)
			if err != nil {
				return fmt.Errorf("list tasks: %s", domain.UserMessage(err, "task store failed"))
			}
			// Query matching is fuzzy; stores may not do it themselves.
			tasks = domain.Filter{Query: filter.Query}.Apply(tasks)

			if asJSON {
				return sonic.ConfigStd.NewEncoder(cmd.OutOrStdout()).Encode(tasks)
			}
			return printTasks(cmd.OutOrStdout(), tasks)
		},
	}

	cmd.Flags().StringSliceVar(&lanes, "lane", nil, "Only tasks in these lanes")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only tasks assigned to this person")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy match on id and title")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newTasksMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <lane>",
		Short: "Change a task's lane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lane, err := parseLane(args[1])
			if err != nil {
				return err
			}
			logger, err := a.stderrLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := a.openStore(logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout())
			defer cancel()
			if err := store.UpdateStatus(ctx, args[0], lane); err != nil {
				return fmt.Errorf("move %s: %s", args[0], domain.UserMessage(err, "task store failed"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", args[0], lane.Label())
			return nil
		},
	}
}

func printTasks(out io.Writer, tasks []domain.Task) error {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLANE\tPRI\tTYPE\tASSIGNEE\tTITLE")
	for _, t := range tasks {
		title := t.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Type, t.Assignee, title)
	}
	return w.Flush()
}
