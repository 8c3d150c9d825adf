package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Tiliavir/togglpie/internal/aggregate"
	"github.com/Tiliavir/togglpie/internal/model"
	"github.com/Tiliavir/togglpie/internal/storage"
	"github.com/Tiliavir/togglpie/internal/timecalc"
	"github.com/Tiliavir/togglpie/internal/toggl"
)

// now is replaced in tests.
var now = time.Now

// parseInstants parses the optional positional [since] [until] arguments.
func parseInstants(args []string, loc *time.Location) ([]*time.Time, error) {
	out := make([]*time.Time, 2)
	for i, arg := range args {
		t, err := timecalc.ParseInstant(arg, loc)
		if err != nil {
			return nil, err
		}
		out[i] = &t
	}
	return out, nil
}

// newSource picks the exported file given by --input or the Toggl API.
func newSource() (toggl.Source, error) {
	if inputPath != "" {
		logger.Debug("reading entries from file", slog.String("path", inputPath))
		return storage.FileSource{Path: inputPath}, nil
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return nil, err
	}
	return toggl.NewClient(cfg.BaseURL, cfg.APIToken, timeout, logger), nil
}

// fetchEntries prints the interval and loads its entries.
func fetchEntries(ctx context.Context, out io.Writer, iv timecalc.Interval) ([]model.TimeEntry, error) {
	src, err := newSource()
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Interval: %s, %s\n", iv.Since.Format(time.RFC3339), iv.Until.Format(time.RFC3339))
	entries, err := src.ListTimeEntries(ctx, iv.Since, iv.Until)
	if err != nil {
		return nil, err
	}
	logger.Debug("entries loaded", slog.Int("count", len(entries)))
	return entries, nil
}

// fulltimeDurations runs the by-tag pipeline: resolve the interval, fetch,
// sum hours per tag and add the unaccounted bucket.
func fulltimeDurations(ctx context.Context, out io.Writer, args []string, workdays int) (*aggregate.Ordered[string, float64], timecalc.Interval, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, timecalc.Interval{}, err
	}
	bounds, err := parseInstants(args, loc)
	if err != nil {
		return nil, timecalc.Interval{}, err
	}
	iv := timecalc.ResolveInterval(bounds[0], bounds[1], now(), loc)

	entries, err := fetchEntries(ctx, out, iv)
	if err != nil {
		return nil, iv, err
	}

	buckets := aggregate.ByTag(entries)
	days := aggregate.DayCount(workdays, iv.Since, iv.Until)
	fmt.Fprintf(out, "Workdays: %d\n", days)
	missing := aggregate.FillUnaccounted(buckets, days, cfg.HoursPerWorkday, cfg.UnaccountedLabel)
	logger.Debug("buckets aggregated",
		slog.Int("buckets", buckets.Len()),
		slog.Float64("unaccounted_hours", missing),
	)
	return buckets, iv, nil
}
