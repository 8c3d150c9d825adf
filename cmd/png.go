package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/togglpie/internal/render"
)

var (
	pngWorkdays int
	pngFilename string
)

var pngCmd = &cobra.Command{
	Use:   "png [since] [until]",
	Short: "Draw hours per tag as a pie chart",
	Long: `Draw hours per tag, including the unaccounted bucket, as a pie chart.

The image format follows the file extension: .png (default), .svg or .pdf.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runPNG,
}

func init() {
	pngCmd.Flags().IntVar(&pngWorkdays, "workdays", 0, "Number of workdays in the quota (default: days in the interval)")
	pngCmd.Flags().StringVar(&pngFilename, "filename", "", "Output file (default from config, res.png)")
}

func runPNG(cmd *cobra.Command, args []string) error {
	if err := validateWorkdays(pngWorkdays); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	buckets, iv, err := fulltimeDurations(cmd.Context(), out, args, pngWorkdays)
	if err != nil {
		return err
	}

	filename := pngFilename
	if filename == "" {
		filename = cfg.ChartFilename
	}
	opts := render.ChartOptions{
		Title:  fmt.Sprintf("%s - %s", iv.Since.Format("2006-01-02 15:04"), iv.Until.Format("2006-01-02 15:04")),
		Width:  cfg.ChartWidth,
		Height: cfg.ChartHeight,
	}
	if err := render.Chart(filename, buckets, opts); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved chart to %s\n", filename)
	return nil
}

// validateWorkdays rejects negative quotas; zero means "derive from the interval".
func validateWorkdays(n int) error {
	if n < 0 {
		return fmt.Errorf("--workdays must be positive, got %d", n)
	}
	return nil
}
