package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anhofer/smartime/internal/store"
)

var (
	// ErrTimerConflict is returned by CheckIn when a different property
	// already holds the global active timer.
	ErrTimerConflict = errors.New("another property is actively checked in")

	// ErrNoActiveEntry is returned by CheckOut when the property has no open
	// entry. Callers treat it as a silent no-op.
	ErrNoActiveEntry = errors.New("no active entry for this property")

	ErrPropertyNotFound = errors.New("property not found")
)

// ValidationError reports a required property field that was blank after
// trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q must not be empty", e.Field)
}

// PropertyStore persists the full property list. Writes are all-or-nothing
// overwrites; there are no partial-record updates.
type PropertyStore interface {
	LoadAll() ([]store.Property, error)
	SaveAll([]store.Property) error
	DeleteByID(id string) error
}

// TimerRegister holds at most one running-timer record process-wide.
type TimerRegister interface {
	Get() (*store.ActiveTimer, error)
	Set(store.ActiveTimer) error
	Clear() error
}

// Tracker implements the time-entry lifecycle: property creation, check-in,
// check-out and deletion. It assumes a single sequential writer; the
// one-open-entry-globally invariant is enforced by a read-then-write check
// against the register.
type Tracker struct {
	props PropertyStore
	reg   TimerRegister
	now   func() time.Time
}

func New(props PropertyStore, reg TimerRegister) *Tracker {
	return &Tracker{props: props, reg: reg, now: time.Now}
}

// NewWithClock is like New but with an injected clock for tests.
func NewWithClock(props PropertyStore, reg TimerRegister, now func() time.Time) *Tracker {
	return &Tracker{props: props, reg: reg, now: now}
}

// CreateProperty validates the four required fields (trimmed), assigns an id
// and persists the new property.
func (t *Tracker) CreateProperty(name, street, houseNumber, city string) (store.Property, error) {
	fields := []struct {
		label string
		value *string
	}{
		{"name", &name},
		{"street", &street},
		{"houseNumber", &houseNumber},
		{"city", &city},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return store.Property{}, &ValidationError{Field: f.label}
		}
	}

	props, err := t.props.LoadAll()
	if err != nil {
		return store.Property{}, fmt.Errorf("load properties: %w", err)
	}

	p := store.Property{
		ID:          uuid.NewString(),
		Name:        name,
		Street:      street,
		HouseNumber: houseNumber,
		City:        city,
		TimeEntries: []store.TimeEntry{},
		CreatedAt:   t.now().UTC(),
	}
	props = append(props, p)
	if err := t.props.SaveAll(props); err != nil {
		return store.Property{}, fmt.Errorf("save properties: %w", err)
	}
	return p, nil
}

// CheckIn opens a time entry for the property and records the active timer.
// If the same property is already checked in the call is an idempotent
// resume returning the existing start time. If a different property holds
// the timer, CheckIn fails with ErrTimerConflict and mutates nothing.
func (t *Tracker) CheckIn(propertyID string) (time.Time, error) {
	active, err := t.reg.Get()
	if err != nil {
		return time.Time{}, fmt.Errorf("read active timer: %w", err)
	}
	if active != nil {
		if active.PropertyID != propertyID {
			return time.Time{}, ErrTimerConflict
		}
		return active.StartTime, nil
	}

	props, err := t.props.LoadAll()
	if err != nil {
		return time.Time{}, fmt.Errorf("load properties: %w", err)
	}
	i := indexOf(props, propertyID)
	if i < 0 {
		return time.Time{}, ErrPropertyNotFound
	}

	now := t.now().UTC()
	entry := store.TimeEntry{
		StartTime: now,
		Date:      now.Format("2006-01-02"),
	}
	props[i].TimeEntries = append([]store.TimeEntry{entry}, props[i].TimeEntries...)

	if err := t.props.SaveAll(props); err != nil {
		return time.Time{}, fmt.Errorf("save properties: %w", err)
	}
	if err := t.reg.Set(store.ActiveTimer{PropertyID: propertyID, StartTime: now}); err != nil {
		return time.Time{}, fmt.Errorf("set active timer: %w", err)
	}
	return now, nil
}

// CheckOut closes the property's open entry in place, computing its duration
// in whole minutes (half rounds away from zero, negatives clamp to zero),
// and clears the active timer. Exactly one entry transitions state.
func (t *Tracker) CheckOut(propertyID string) (store.TimeEntry, error) {
	props, err := t.props.LoadAll()
	if err != nil {
		return store.TimeEntry{}, fmt.Errorf("load properties: %w", err)
	}
	i := indexOf(props, propertyID)
	if i < 0 {
		return store.TimeEntry{}, ErrPropertyNotFound
	}

	open := -1
	for j, e := range props[i].TimeEntries {
		if e.Open() {
			open = j
			break
		}
	}
	if open < 0 {
		return store.TimeEntry{}, ErrNoActiveEntry
	}

	end := t.now().UTC()
	entry := props[i].TimeEntries[open]
	minutes := int64(math.Round(end.Sub(entry.StartTime).Minutes()))
	if minutes < 0 {
		minutes = 0
	}
	entry.EndTime = &end
	entry.Duration = &minutes
	props[i].TimeEntries[open] = entry

	if err := t.props.SaveAll(props); err != nil {
		return store.TimeEntry{}, fmt.Errorf("save properties: %w", err)
	}
	if err := t.reg.Clear(); err != nil {
		return store.TimeEntry{}, fmt.Errorf("clear active timer: %w", err)
	}
	return entry, nil
}

// DeleteProperty removes the property and all its entries. If it currently
// holds the active timer, the register is cleared first.
func (t *Tracker) DeleteProperty(propertyID string) error {
	active, err := t.reg.Get()
	if err != nil {
		return fmt.Errorf("read active timer: %w", err)
	}
	if active != nil && active.PropertyID == propertyID {
		if err := t.reg.Clear(); err != nil {
			return fmt.Errorf("clear active timer: %w", err)
		}
	}
	if err := t.props.DeleteByID(propertyID); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

// Active returns the current active-timer record, or nil when idle.
func (t *Tracker) Active() (*store.ActiveTimer, error) {
	return t.reg.Get()
}

// Get returns a single property by id.
func (t *Tracker) Get(propertyID string) (store.Property, error) {
	props, err := t.props.LoadAll()
	if err != nil {
		return store.Property{}, fmt.Errorf("load properties: %w", err)
	}
	i := indexOf(props, propertyID)
	if i < 0 {
		return store.Property{}, ErrPropertyNotFound
	}
	return props[i], nil
}

// Properties returns all properties ordered for the home listing: the
// checked-in property first, then by most recent activity, properties
// without entries last.
func (t *Tracker) Properties() ([]store.Property, error) {
	props, err := t.props.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	for i := range props {
		if props[i].TimeEntries == nil {
			props[i].TimeEntries = []store.TimeEntry{}
		}
	}
	SortForHome(props)
	return props, nil
}

// SortForHome orders properties in place: active (open entry) first, then
// most-recent-activity descending. Ties keep their original order.
func SortForHome(props []store.Property) {
	sort.SliceStable(props, func(a, b int) bool {
		pa, pb := props[a], props[b]
		aActive, aRecent := activity(pa)
		bActive, bRecent := activity(pb)
		if aActive != bActive {
			return aActive
		}
		return aRecent.After(bRecent)
	})
}

// activity reports whether the property has an open entry and the timestamp
// of its most recent activity: the open entry's start if one exists,
// otherwise the latest EndTime (falling back to StartTime) of any entry.
func activity(p store.Property) (bool, time.Time) {
	var recent time.Time
	for _, e := range p.TimeEntries {
		if e.Open() {
			return true, e.StartTime
		}
		at := e.StartTime
		if e.EndTime != nil {
			at = *e.EndTime
		}
		if at.After(recent) {
			recent = at
		}
	}
	return false, recent
}

func indexOf(props []store.Property, id string) int {
	for i := range props {
		if props[i].ID == id {
			return i
		}
	}
	return -1
}
