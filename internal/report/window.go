package report

import (
	"fmt"
	"time"
)

// WindowKind selects the reporting period.
type WindowKind int

const (
	Day WindowKind = iota
	Week
	Month
	Year
)

var kindNames = []string{"Tag", "Woche", "Monat", "Jahr"}

func (k WindowKind) String() string { return kindNames[k] }

// Window is a calendar-date interval, inclusive on both ends. All boundary
// math runs in UTC so exports reproduce identically across devices.
type Window struct {
	Kind  WindowKind
	Start time.Time // UTC midnight of the first day
	End   time.Time // UTC midnight of the last day
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow is the single-day window containing ref.
func DayWindow(ref time.Time) Window {
	d := midnight(ref)
	return Window{Kind: Day, Start: d, End: d}
}

// WeekWindow is the ISO week (Monday through Sunday) containing ref.
func WeekWindow(ref time.Time) Window {
	d := midnight(ref)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // ISO: Sunday is day 7
	}
	monday := d.AddDate(0, 0, -(wd - 1))
	return Window{Kind: Week, Start: monday, End: monday.AddDate(0, 0, 6)}
}

// MonthWindow spans the full calendar month containing ref.
func MonthWindow(ref time.Time) Window {
	d := midnight(ref)
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Kind: Month, Start: first, End: first.AddDate(0, 1, -1)}
}

// YearWindow spans Jan 1 through Dec 31 of ref's year.
func YearWindow(ref time.Time) Window {
	d := midnight(ref)
	first := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Kind: Year, Start: first, End: time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)}
}

// Shift returns the window offset by n periods of its own kind. Month shifts
// roll the year over as needed (January - 1 = December of the prior year).
func (w Window) Shift(n int) Window {
	switch w.Kind {
	case Day:
		return DayWindow(w.Start.AddDate(0, 0, n))
	case Week:
		return WeekWindow(w.Start.AddDate(0, 0, 7*n))
	case Month:
		return MonthWindow(w.Start.AddDate(0, n, 0))
	default:
		return YearWindow(w.Start.AddDate(n, 0, 0))
	}
}

// Contains reports whether the calendar date (format "2006-01-02") falls
// within the window, boundaries included.
func (w Window) Contains(date string) bool {
	return date >= w.Start.Format("2006-01-02") && date <= w.End.Format("2006-01-02")
}

var monthNames = [...]string{
	"Januar", "Februar", "Maerz", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// Label returns the period heading used on reports and exports.
func (w Window) Label() string {
	switch w.Kind {
	case Day:
		return w.Start.Format("02.01.2006")
	case Week:
		year, week := w.Start.ISOWeek()
		return fmt.Sprintf("KW %02d %d", week, year)
	case Month:
		return fmt.Sprintf("%s %d", monthNames[w.Start.Month()-1], w.Start.Year())
	default:
		return fmt.Sprintf("Jahr %d", w.Start.Year())
	}
}
