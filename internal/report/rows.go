package report

import (
	"fmt"
	"sort"

	"github.com/anhofer/smartime/internal/store"
)

// runningLabel marks an entry that has not been checked out yet.
const runningLabel = "laeuft..."

// SummaryRow is one line of the per-property totals table.
type SummaryRow struct {
	Name         string
	TotalMinutes int64
	Formatted    string
}

// DetailRow is one line of a single property's entry table. Open entries
// carry the running label and blank duration cells.
type DetailRow struct {
	Date      string
	Start     string
	End       string
	Minutes   string
	Formatted string
}

// SummaryRows projects aggregated totals into display rows.
func SummaryRows(totals []PropertyTotal) []SummaryRow {
	rows := make([]SummaryRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, SummaryRow{
			Name:         t.Name,
			TotalMinutes: t.TotalMinutes,
			Formatted:    FmtMin(t.TotalMinutes),
		})
	}
	return rows
}

// DetailRows projects one property's entries within the window, sorted by
// start time ascending.
func DetailRows(p store.Property, w Window) []DetailRow {
	entries := make([]store.TimeEntry, 0, len(p.TimeEntries))
	for _, e := range p.TimeEntries {
		if w.Contains(e.Date) {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].StartTime.Before(entries[b].StartTime)
	})

	rows := make([]DetailRow, 0, len(entries))
	for _, e := range entries {
		row := DetailRow{
			Date:  e.Date,
			Start: FmtClock(e.StartTime),
			End:   runningLabel,
		}
		if e.EndTime != nil {
			row.End = FmtClock(*e.EndTime)
		}
		if e.Duration != nil {
			row.Minutes = fmt.Sprintf("%d", *e.Duration)
			row.Formatted = FmtMin(*e.Duration)
		}
		rows = append(rows, row)
	}
	return rows
}
