// Package render turns duration buckets into CSV, text, tables and charts.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Tiliavir/togglpie/internal/aggregate"
	"github.com/Tiliavir/togglpie/internal/timecalc"
)

// FormatHours formats v with the fewest digits that parse back to v exactly.
func FormatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CSV writes a blank line followed by one key,value record per bucket.
func CSV(w io.Writer, buckets *aggregate.Ordered[string, float64]) error {
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	var werr error
	buckets.Each(func(k string, v float64) {
		if werr == nil {
			werr = cw.Write([]string{k, FormatHours(v)})
		}
	})
	if werr != nil {
		return fmt.Errorf("writing CSV: %w", werr)
	}
	cw.Flush()
	return cw.Error()
}

// Report writes one "- key / HH:MM:SS" line per bucket of seconds.
func Report(w io.Writer, buckets *aggregate.Ordered[string, int64]) error {
	var werr error
	buckets.Each(func(k string, seconds int64) {
		if werr == nil {
			_, werr = fmt.Fprintf(w, "- %s / %s\n", k, timecalc.FormatDurationHHMMSS(seconds))
		}
	})
	return werr
}
