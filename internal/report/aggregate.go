package report

import (
	"sort"

	"github.com/anhofer/smartime/internal/store"
)

// PropertyTotal is the aggregated minutes of one property for a window.
type PropertyTotal struct {
	ID           string
	Name         string
	TotalMinutes int64
}

// SumProperty totals the closed entries of one property whose date falls in
// the window. Open entries never contribute.
func SumProperty(p store.Property, w Window) int64 {
	var total int64
	for _, e := range p.TimeEntries {
		if e.Duration != nil && w.Contains(e.Date) {
			total += *e.Duration
		}
	}
	return total
}

// SumAll produces per-property totals for the window, sorted by total
// descending. Ties keep the input order.
func SumAll(props []store.Property, w Window) []PropertyTotal {
	totals := make([]PropertyTotal, 0, len(props))
	for _, p := range props {
		totals = append(totals, PropertyTotal{
			ID:           p.ID,
			Name:         p.Name,
			TotalMinutes: SumProperty(p, w),
		})
	}
	sort.SliceStable(totals, func(a, b int) bool {
		return totals[a].TotalMinutes > totals[b].TotalMinutes
	})
	return totals
}

// MultiSum tests every entry against three windows in one pass. An entry may
// contribute to several buckets: its day is part of both its week and its
// month.
func MultiSum(entries []store.TimeEntry, day, week, month Window) (d, w, m int64) {
	for _, e := range entries {
		if e.Duration == nil {
			continue
		}
		if day.Contains(e.Date) {
			d += *e.Duration
		}
		if week.Contains(e.Date) {
			w += *e.Duration
		}
		if month.Contains(e.Date) {
			m += *e.Duration
		}
	}
	return d, w, m
}

// GrandTotal sums a slice of property totals.
func GrandTotal(totals []PropertyTotal) int64 {
	var sum int64
	for _, t := range totals {
		sum += t.TotalMinutes
	}
	return sum
}
