package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anhofer/smartime/internal/report"
	"github.com/anhofer/smartime/internal/store"
	"github.com/anhofer/smartime/internal/tracker"
)

type dashboardModel struct {
	tracker *tracker.Tracker
	timer   timerModel
	width   int
	height  int

	properties []store.Property
	cursor     int
}

func newDashboardModel(t *tracker.Tracker) dashboardModel {
	return dashboardModel{
		tracker: t,
		timer:   newTimerModel(t),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool        { return d.timer.running() }
func (d dashboardModel) elapsed() time.Duration { return d.timer.currentElapsed() }

type dashboardDataMsg struct {
	properties []store.Property
	active     *store.ActiveTimer
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		props, err := d.tracker.Properties()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		active, err := d.tracker.Active()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return dashboardDataMsg{properties: props, active: active}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.properties = msg.properties
		if d.cursor >= len(d.properties) {
			d.cursor = max(0, len(d.properties)-1)
		}
		name := ""
		if msg.active != nil {
			for _, p := range d.properties {
				if p.ID == msg.active.PropertyID {
					name = p.Name
					break
				}
			}
		}
		d.timer.sync(msg.active, name)
		return d, nil

	case tickMsg:
		// Elapsed derives from the register's start; nothing to advance.
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.properties)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.CheckIn):
			return d.checkIn()
		case key.Matches(msg, keys.CheckOut):
			return d.checkOut()
		}
	}
	return d, nil
}

func (d dashboardModel) checkIn() (dashboardModel, tea.Cmd) {
	if len(d.properties) == 0 {
		return d, func() tea.Msg {
			return statusMsg{text: "Noch keine Liegenschaften. Mit 2 zur Erfassung wechseln.", isError: true}
		}
	}
	p := d.properties[d.cursor]
	start, err := d.timer.checkIn(p.ID, p.Name)
	if errors.Is(err, tracker.ErrTimerConflict) {
		return d, func() tea.Msg {
			return statusMsg{text: "Eine andere Liegenschaft ist bereits eingecheckt.", isError: true}
		}
	}
	if err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return checkedInMsg{start: start} },
	)
}

func (d dashboardModel) checkOut() (dashboardModel, tea.Cmd) {
	entry, err := d.timer.checkOut()
	if errors.Is(err, tracker.ErrNoActiveEntry) {
		// Cannot happen through normal key sequencing; swallow it.
		return d, nil
	}
	if err != nil {
		return d, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
	}
	return d, tea.Batch(
		d.loadData(),
		func() tea.Msg { return checkedOutMsg{entry: entry} },
	)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal zu klein"
	}

	contentWidth := d.width - 4
	timerPanel := d.renderTimerPanel(contentWidth)
	listPanel := d.renderPropertyList(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, listPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	if d.timer.running() {
		timeDisplay := timerRunningStyle.Width(w - 6).Render(formatElapsed(d.timer.currentElapsed()))
		indicator := successStyle.Render("●  EINGECHECKT")
		propertyLine := highlightStyle.Render(d.timer.propertyName)

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			propertyLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  KEIN TIMER")
	hint := mutedStyle.Render("Mit s bei der markierten Liegenschaft einchecken")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderPropertyList(w int) string {
	title := titleStyle.Render("Liegenschaften")

	if len(d.properties) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("Keine Liegenschaften erfasst."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := report.DayWindow(time.Now())

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, p := range d.properties {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		status := " "
		if p.ID == d.timer.runningPropertyID() {
			status = successStyle.Render("●")
		}
		todayTotal := report.SumProperty(p, today)
		row := style.Render(fmt.Sprintf("%s%s %-24s %-30s heute %s",
			cursor, status, p.Name, p.Address(), report.FmtMin(todayTotal)))
		rows = append(rows, row)
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  s: check-in  x: check-out  ↑/↓: auswaehlen"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
