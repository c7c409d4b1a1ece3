package tui

import (
	"fmt"
	"time"

	"github.com/anhofer/smartime/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewProperties
	viewReports
)

var viewNames = []string{"Dashboard", "Liegenschaften", "Berichte"}

// --- Messages ---

type checkedInMsg struct {
	start time.Time
}

type checkedOutMsg struct {
	entry store.TimeEntry
}

type propertyCreatedMsg struct {
	property store.Property
}

type propertyDeletedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
