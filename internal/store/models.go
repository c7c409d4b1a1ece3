package store

import "time"

// Property is a tracked location ("Liegenschaft") with its owned time entries.
type Property struct {
	ID          string
	Name        string
	Street      string
	HouseNumber string
	City        string
	TimeEntries []TimeEntry
	CreatedAt   time.Time
}

// Address returns the display form "Street HouseNumber, City".
func (p Property) Address() string {
	return p.Street + " " + p.HouseNumber + ", " + p.City
}

// TimeEntry is a single check-in/check-out interval. EndTime and Duration are
// nil together while the entry is open; both are set exactly once at
// check-out and never touched again.
type TimeEntry struct {
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // minutes
	Date      string // UTC calendar date of StartTime, "2006-01-02"
}

// Open reports whether the entry has not been checked out yet.
func (e TimeEntry) Open() bool {
	return e.EndTime == nil
}

// ActiveTimer is the single persisted record identifying which property, if
// any, currently has an open entry.
type ActiveTimer struct {
	PropertyID string
	StartTime  time.Time
}
