package aggregate

import (
	"time"

	"github.com/Tiliavir/togglpie/internal/model"
	"github.com/Tiliavir/togglpie/internal/timecalc"
)

// ByTag sums entry durations per tag, in hours. An entry counts fully towards
// each of its tags; untagged entries are dropped.
func ByTag(entries []model.TimeEntry) *Ordered[string, float64] {
	groups := GroupByKeys(entries, func(e model.TimeEntry) []string { return e.Tags })
	return Reduce(groups, func(es []model.TimeEntry) float64 {
		return float64(sumSeconds(es)) / 3600
	})
}

// ByDescription sums entry durations per description, in seconds.
func ByDescription(entries []model.TimeEntry) *Ordered[string, int64] {
	groups := GroupBy(entries, func(e model.TimeEntry) string { return e.Description })
	return Reduce(groups, sumSeconds)
}

func sumSeconds(entries []model.TimeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// DayCount returns workdays when positive, otherwise the whole days between
// since and until, falling back to 1 for intervals shorter than a day.
// Inverted intervals yield a negative count.
func DayCount(workdays int, since, until time.Time) int {
	if workdays > 0 {
		return workdays
	}
	if days := timecalc.DaysBetween(since, until); days != 0 {
		return days
	}
	return 1
}

// Total sums all bucket values.
func Total(buckets *Ordered[string, float64]) float64 {
	var total float64
	buckets.Each(func(_ string, v float64) { total += v })
	return total
}

// FillUnaccounted sets label to days*hoursPerDay minus the tracked hours and
// returns the value. A real bucket already named label still counts as
// tracked, then gets overwritten.
func FillUnaccounted(buckets *Ordered[string, float64], days int, hoursPerDay float64, label string) float64 {
	missing := float64(days)*hoursPerDay - Total(buckets)
	buckets.Set(label, missing)
	return missing
}
