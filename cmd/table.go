package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/togglpie/internal/render"
)

var tableWorkdays int

var tableCmd = &cobra.Command{
	Use:   "table [since] [until]",
	Short: "Show hours per tag with their share as a table",
	Args:  cobra.MaximumNArgs(2),
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().IntVar(&tableWorkdays, "workdays", 0, "Number of workdays in the quota (default: days in the interval)")
}

func runTable(cmd *cobra.Command, args []string) error {
	if err := validateWorkdays(tableWorkdays); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	buckets, _, err := fulltimeDurations(cmd.Context(), out, args, tableWorkdays)
	if err != nil {
		return err
	}
	table, err := render.Table(buckets)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, table)
	return nil
}
