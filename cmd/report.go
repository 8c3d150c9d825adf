package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/togglpie/internal/aggregate"
	"github.com/Tiliavir/togglpie/internal/render"
	"github.com/Tiliavir/togglpie/internal/timecalc"
)

var reportCmd = &cobra.Command{
	Use:   "report [date]",
	Short: "Show time per description for one day",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	day := now().In(loc)
	if len(args) == 1 {
		if day, err = timecalc.ParseInstant(args[0], loc); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	entries, err := fetchEntries(cmd.Context(), out, timecalc.DayInterval(day))
	if err != nil {
		return err
	}
	return render.Report(out, aggregate.ByDescription(entries))
}
