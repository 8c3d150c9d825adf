package render

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/Tiliavir/togglpie/internal/aggregate"
)

// Table renders buckets of hours as a terminal table with each bucket's
// share of the chart.
func Table(buckets *aggregate.Ordered[string, float64]) (string, error) {
	data := pterm.TableData{{"Bucket", "Hours", "Share"}}
	for _, s := range pieSlices(buckets) {
		data = append(data, []string{s.Label, fmt.Sprintf("%.2f", s.Value), fmt.Sprintf("%.2f%%", s.Percent)})
	}
	data = append(data, []string{"Total", fmt.Sprintf("%.2f", aggregate.Total(buckets)), ""})
	return pterm.DefaultTable.WithHasHeader().WithRightAlignment().WithData(data).Srender()
}
