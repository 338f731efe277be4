package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/riordanpawley/laneboard/internal/layout"
)

func newColumnsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Show or change the board's column order and visibility",
	}
	cmd.AddCommand(newColumnsShowCmd(a))
	cmd.AddCommand(newColumnsToggleCmd(a))
	cmd.AddCommand(newColumnsMoveCmd(a))
	cmd.AddCommand(newColumnsResetCmd(a))
	return cmd
}

// withColumns opens the preference store, loads the layout and hands it to fn
func withColumns(cmd *cobra.Command, a *App, fn func(*layout.Columns) error) error {
	logger, err := a.stderrLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	store, closeStore, err := a.openPrefs()
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer closeStore()

	return fn(layout.Load(store, logger))
}

func newColumnsShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List columns in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withColumns(cmd, a, func(c *layout.Columns) error {
				return printColumns(cmd.OutOrStdout(), c)
			})
		},
	}
}

func newColumnsToggleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <lane>",
		Short: "Show a hidden column or hide a shown one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lane, err := parseLane(args[0])
			if err != nil {
				return err
			}
			return withColumns(cmd, a, func(c *layout.Columns) error {
				if !c.Toggle(lane) {
					return fmt.Errorf("cannot hide %s: it is the last visible column", lane.Label())
				}
				state := "hidden"
				if c.Visible(lane) {
					state = "shown"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", lane.Label(), state)
				return nil
			})
		},
	}
}

func newColumnsMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <lane> <target-lane>",
		Short: "Move a column to the position another column holds",
		Example: `  # Put Done right after Backlog
  laneboard columns move done todo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseLane(args[0])
			if err != nil {
				return err
			}
			to, err := parseLane(args[1])
			if err != nil {
				return err
			}
			return withColumns(cmd, a, func(c *layout.Columns) error {
				if !c.Reorder(from, to) {
					fmt.Fprintln(cmd.OutOrStdout(), "Order unchanged")
					return nil
				}
				return printColumns(cmd.OutOrStdout(), c)
			})
		},
	}
}

func newColumnsResetCmd(a *App) *cobra.Command {
	var orderOnly, visibilityOnly bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default column order and show every column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if orderOnly && visibilityOnly {
				return fmt.Errorf("--order and --visibility are mutually exclusive")
			}
			return withColumns(cmd, a, func(c *layout.Columns) error {
				if !visibilityOnly {
					c.ResetOrder()
				}
				if !orderOnly {
					c.ResetVisibility()
				}
				return printColumns(cmd.OutOrStdout(), c)
			})
		},
	}
	cmd.Flags().BoolVar(&orderOnly, "order", false, "Only reset the order")
	cmd.Flags().BoolVar(&visibilityOnly, "visibility", false, "Only reset visibility")
	return cmd
}

func printColumns(out io.Writer, c *layout.Columns) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tLANE\tLABEL\tVISIBLE")
	for i, lane := range c.Order() {
		visible := "no"
		if c.Visible(lane) {
			visible = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, lane, lane.Label(), visible)
	}
	return w.Flush()
}
