package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/togglpie/internal/render"
)

var csvWorkdays int

var csvCmd = &cobra.Command{
	Use:   "csv [since] [until]",
	Short: "Print hours per tag as CSV",
	Long: `Print hours per tag as CSV, including the unaccounted bucket.

since defaults to today's midnight and until to now. Both accept YYYY-MM-DD,
YYYY-MM-DDTHH:MM:SS or RFC 3339.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCSV,
}

func init() {
	csvCmd.Flags().IntVar(&csvWorkdays, "workdays", 0, "Number of workdays in the quota (default: days in the interval)")
}

func runCSV(cmd *cobra.Command, args []string) error {
	if err := validateWorkdays(csvWorkdays); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	buckets, _, err := fulltimeDurations(cmd.Context(), out, args, csvWorkdays)
	if err != nil {
		return err
	}
	return render.CSV(out, buckets)
}
