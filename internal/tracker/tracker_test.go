package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/anhofer/smartime/internal/store"
)

// fakeStore keeps everything in memory, mirroring the persistence
// contract: SaveAll overwrites, LoadAll returns a copy.
type fakeStore struct {
	props []store.Property
	timer *store.ActiveTimer
}

func (f *fakeStore) LoadAll() ([]store.Property, error) {
	out := make([]store.Property, len(f.props))
	copy(out, f.props)
	return out, nil
}

func (f *fakeStore) SaveAll(props []store.Property) error {
	f.props = make([]store.Property, len(props))
	copy(f.props, props)
	return nil
}

func (f *fakeStore) DeleteByID(id string) error {
	for i, p := range f.props {
		if p.ID == id {
			f.props = append(f.props[:i], f.props[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Get() (*store.ActiveTimer, error) {
	if f.timer == nil {
		return nil, nil
	}
	t := *f.timer
	return &t, nil
}

func (f *fakeStore) Set(t store.ActiveTimer) error {
	f.timer = &t
	return nil
}

func (f *fakeStore) Clear() error {
	f.timer = nil
	return nil
}

// clock is a settable test clock.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

var t0 = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *fakeStore, *clock) {
	t.Helper()
	f := &fakeStore{}
	c := &clock{t: t0}
	return NewWithClock(f, f, c.now), f, c
}

func mustCreate(t *testing.T, tr *Tracker, name string) store.Property {
	t.Helper()
	p, err := tr.CreateProperty(name, "Bahnhofstrasse", "12", "Zuerich")
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return p
}

// ============================================================
// Property creation
// ============================================================

func TestCreateProperty(t *testing.T) {
	tr, f, _ := newTestTracker(t)

	p := mustCreate(t, tr, "Haus A")
	if p.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if p.TimeEntries == nil || len(p.TimeEntries) != 0 {
		t.Fatal("new property should start with an empty entry list")
	}
	if !p.CreatedAt.Equal(t0) {
		t.Fatalf("created at %v, want %v", p.CreatedAt, t0)
	}
	if len(f.props) != 1 {
		t.Fatal("property was not persisted")
	}
}

func TestCreatePropertyTrims(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	p, err := tr.CreateProperty("  Haus A  ", " Bahnhofstrasse ", " 12 ", " Zuerich ")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Haus A" || p.Street != "Bahnhofstrasse" || p.HouseNumber != "12" || p.City != "Zuerich" {
		t.Fatalf("fields not trimmed: %+v", p)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	tr, f, _ := newTestTracker(t)

	cases := []struct {
		field                        string
		name, street, houseNum, city string
	}{
		{"name", "", "S", "1", "C"},
		{"street", "N", "   ", "1", "C"},
		{"houseNumber", "N", "S", "", "C"},
		{"city", "N", "S", "1", "\t"},
	}
	for _, c := range cases {
		_, err := tr.CreateProperty(c.name, c.street, c.houseNum, c.city)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", c.field, err)
		}
		if verr.Field != c.field {
			t.Fatalf("expected field %s, got %s", c.field, verr.Field)
		}
	}
	if len(f.props) != 0 {
		t.Fatal("invalid properties must not be persisted")
	}
}

// ============================================================
// Check-in / check-out lifecycle
// ============================================================

func TestCheckInCheckOutCycle(t *testing.T) {
	tr, f, c := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")

	start, err := tr.CheckIn(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !start.Equal(t0) {
		t.Fatalf("start %v, want %v", start, t0)
	}
	if f.timer == nil || f.timer.PropertyID != p.ID {
		t.Fatal("register should hold the checked-in property")
	}

	got, _ := tr.Get(p.ID)
	if len(got.TimeEntries) != 1 || !got.TimeEntries[0].Open() {
		t.Fatal("check-in should prepend one open entry")
	}
	if got.TimeEntries[0].Date != "2026-08-31" {
		t.Fatalf("entry date %s, want 2026-08-31", got.TimeEntries[0].Date)
	}

	c.advance(47 * time.Minute)
	entry, err := tr.CheckOut(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if entry.Duration == nil || *entry.Duration != 47 {
		t.Fatalf("duration %v, want 47", entry.Duration)
	}
	if entry.EndTime == nil || !entry.EndTime.Equal(t0.Add(47*time.Minute)) {
		t.Fatalf("end time %v", entry.EndTime)
	}
	if f.timer != nil {
		t.Fatal("register should be cleared after check-out")
	}

	got, _ = tr.Get(p.ID)
	if len(got.TimeEntries) != 1 || got.TimeEntries[0].Open() {
		t.Fatal("the open entry should be closed in place")
	}
}

func TestCheckInConflict(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	a := mustCreate(t, tr, "Haus A")
	b := mustCreate(t, tr, "Haus B")

	if _, err := tr.CheckIn(a.ID); err != nil {
		t.Fatal(err)
	}
	_, err := tr.CheckIn(b.ID)
	if !errors.Is(err, ErrTimerConflict) {
		t.Fatalf("expected ErrTimerConflict, got %v", err)
	}

	// Nothing about B may change on a refused check-in.
	got, _ := tr.Get(b.ID)
	if len(got.TimeEntries) != 0 {
		t.Fatal("refused check-in must not record an entry")
	}
	active, _ := tr.Active()
	if active == nil || active.PropertyID != a.ID {
		t.Fatal("register must still point at A")
	}
}

func TestCheckInResume(t *testing.T) {
	tr, _, c := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")

	first, _ := tr.CheckIn(p.ID)
	c.advance(10 * time.Minute)
	second, err := tr.CheckIn(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Equal(first) {
		t.Fatalf("resume should return the original start, got %v", second)
	}

	got, _ := tr.Get(p.ID)
	if len(got.TimeEntries) != 1 {
		t.Fatalf("resume must not add entries, have %d", len(got.TimeEntries))
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")

	_, err := tr.CheckOut(p.ID)
	if !errors.Is(err, ErrNoActiveEntry) {
		t.Fatalf("expected ErrNoActiveEntry, got %v", err)
	}
}

func TestCheckOutTwice(t *testing.T) {
	tr, _, c := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")

	tr.CheckIn(p.ID)
	c.advance(5 * time.Minute)
	if _, err := tr.CheckOut(p.ID); err != nil {
		t.Fatal(err)
	}
	_, err := tr.CheckOut(p.ID)
	if !errors.Is(err, ErrNoActiveEntry) {
		t.Fatalf("second check-out should fail with ErrNoActiveEntry, got %v", err)
	}
}

func TestCheckInUnknownProperty(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, err := tr.CheckIn("missing")
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestCheckOutRounding(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    int64
	}{
		{150 * time.Second, 3}, // 2.5 min rounds up
		{89 * time.Second, 1},  // 1.48 min rounds down
		{29 * time.Second, 0},
		{30 * time.Second, 1}, // exactly half rounds away from zero
		{0, 0},
	}
	for _, c := range cases {
		tr, _, clk := newTestTracker(t)
		p := mustCreate(t, tr, "Haus A")
		tr.CheckIn(p.ID)
		clk.advance(c.elapsed)
		entry, err := tr.CheckOut(p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if *entry.Duration != c.want {
			t.Errorf("elapsed %v: got %d min, want %d", c.elapsed, *entry.Duration, c.want)
		}
	}
}

func TestCheckOutClampsNegative(t *testing.T) {
	tr, _, c := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")

	tr.CheckIn(p.ID)
	c.t = t0.Add(-10 * time.Minute) // clock moved backwards
	entry, err := tr.CheckOut(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *entry.Duration != 0 {
		t.Fatalf("negative span must clamp to 0, got %d", *entry.Duration)
	}
}

// ============================================================
// Deletion
// ============================================================

func TestDeleteProperty(t *testing.T) {
	tr, f, _ := newTestTracker(t)
	a := mustCreate(t, tr, "Haus A")
	b := mustCreate(t, tr, "Haus B")

	if err := tr.DeleteProperty(a.ID); err != nil {
		t.Fatal(err)
	}
	if len(f.props) != 1 || f.props[0].ID != b.ID {
		t.Fatalf("expected only B left, got %+v", f.props)
	}
}

func TestDeleteCheckedInProperty(t *testing.T) {
	tr, f, _ := newTestTracker(t)
	p := mustCreate(t, tr, "Haus A")
	tr.CheckIn(p.ID)

	if err := tr.DeleteProperty(p.ID); err != nil {
		t.Fatal(err)
	}
	if f.timer != nil {
		t.Fatal("deleting the checked-in property must clear the register")
	}
}

func TestDeleteOtherPropertyKeepsTimer(t *testing.T) {
	tr, f, _ := newTestTracker(t)
	a := mustCreate(t, tr, "Haus A")
	b := mustCreate(t, tr, "Haus B")
	tr.CheckIn(a.ID)

	tr.DeleteProperty(b.ID)
	if f.timer == nil || f.timer.PropertyID != a.ID {
		t.Fatal("deleting an idle property must not touch the register")
	}
}

// ============================================================
// Listing order
// ============================================================

func TestSortForHome(t *testing.T) {
	now := t0
	end1 := now.Add(-time.Hour)
	end2 := now.Add(-10 * time.Minute)
	d := int64(30)

	x := store.Property{ID: "x", Name: "X", TimeEntries: []store.TimeEntry{
		{StartTime: end1.Add(-30 * time.Minute), EndTime: &end1, Duration: &d, Date: "2026-08-31"},
	}}
	y := store.Property{ID: "y", Name: "Y", TimeEntries: []store.TimeEntry{
		{StartTime: now, Date: "2026-08-31"}, // open
	}}
	z := store.Property{ID: "z", Name: "Z", TimeEntries: []store.TimeEntry{
		{StartTime: end2.Add(-30 * time.Minute), EndTime: &end2, Duration: &d, Date: "2026-08-31"},
	}}

	props := []store.Property{x, y, z}
	SortForHome(props)

	wantOrder := []string{"y", "z", "x"}
	for i, id := range wantOrder {
		if props[i].ID != id {
			t.Fatalf("position %d: got %s, want %s (%v)", i, props[i].ID, id, ids(props))
		}
	}
}

func TestSortForHomeEmptyLast(t *testing.T) {
	end := t0.Add(-time.Hour)
	d := int64(15)
	empty := store.Property{ID: "empty", Name: "Empty", TimeEntries: []store.TimeEntry{}}
	used := store.Property{ID: "used", Name: "Used", TimeEntries: []store.TimeEntry{
		{StartTime: end.Add(-15 * time.Minute), EndTime: &end, Duration: &d, Date: "2026-08-31"},
	}}

	props := []store.Property{empty, used}
	SortForHome(props)
	if props[0].ID != "used" {
		t.Fatalf("properties without entries sort last, got %v", ids(props))
	}
}

func TestPropertiesGlobalSequence(t *testing.T) {
	tr, _, c := newTestTracker(t)
	a := mustCreate(t, tr, "Haus A")
	b := mustCreate(t, tr, "Haus B")

	// A works 30 min, then B checks in and stays open.
	tr.CheckIn(a.ID)
	c.advance(30 * time.Minute)
	tr.CheckOut(a.ID)
	c.advance(time.Minute)
	tr.CheckIn(b.ID)

	props, err := tr.Properties()
	if err != nil {
		t.Fatal(err)
	}
	if props[0].ID != b.ID || props[1].ID != a.ID {
		t.Fatalf("active property must lead the list, got %v", ids(props))
	}
}

func ids(props []store.Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}
