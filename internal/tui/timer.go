package tui

import (
	"time"

	"github.com/anhofer/smartime/internal/store"
	"github.com/anhofer/smartime/internal/tracker"
)

// timerModel mirrors the persisted active-timer register for display and
// drives check-in/check-out through the lifecycle layer. Elapsed time is
// always derived from the register's start instant, so the readout survives
// restarts of the program.
type timerModel struct {
	tracker *tracker.Tracker

	active       *store.ActiveTimer
	propertyName string
}

func newTimerModel(t *tracker.Tracker) timerModel {
	return timerModel{tracker: t}
}

// sync adopts the current register record and the display name of the
// property it points at.
func (t *timerModel) sync(active *store.ActiveTimer, propertyName string) {
	t.active = active
	t.propertyName = propertyName
}

func (t *timerModel) checkIn(propertyID, propertyName string) (time.Time, error) {
	start, err := t.tracker.CheckIn(propertyID)
	if err != nil {
		return time.Time{}, err
	}
	t.active = &store.ActiveTimer{PropertyID: propertyID, StartTime: start}
	t.propertyName = propertyName
	return start, nil
}

func (t *timerModel) checkOut() (store.TimeEntry, error) {
	if t.active == nil {
		return store.TimeEntry{}, tracker.ErrNoActiveEntry
	}
	entry, err := t.tracker.CheckOut(t.active.PropertyID)
	if err != nil {
		return store.TimeEntry{}, err
	}
	t.active = nil
	t.propertyName = ""
	return entry, nil
}

func (t timerModel) running() bool {
	return t.active != nil
}

func (t timerModel) runningPropertyID() string {
	if t.active == nil {
		return ""
	}
	return t.active.PropertyID
}

func (t timerModel) currentElapsed() time.Duration {
	if t.active == nil {
		return 0
	}
	d := time.Since(t.active.StartTime)
	if d < 0 {
		return 0
	}
	return d
}
