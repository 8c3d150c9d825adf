package cmd

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/togglpie/internal/config"
)

var (
	configPath string
	inputPath  string
	verbose    bool

	// cfg and logger are set up before any subcommand runs.
	cfg    config.Config
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "togglpie",
	Short: "Toggl Track time breakdown by tag",
	Long: `togglpie fetches your Toggl Track entries for a date range, sums them per
tag and reports the hours missing from the workday quota as CSV, a text
report, a table or a pie chart.

The API token is read from the API_TOKEN environment variable.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.toml, .yaml or .json); default $XDG_CONFIG_HOME/togglpie/config.*")
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "Read entries from an exported JSON file instead of the API")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(csvCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pngCmd)
	rootCmd.AddCommand(tableCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		slog.String("base_url", cfg.BaseURL),
		slog.String("timezone", cfg.Timezone),
		slog.Float64("hours_per_workday", cfg.HoursPerWorkday),
	)
	return nil
}
