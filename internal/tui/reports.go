package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anhofer/smartime/internal/report"
	"github.com/anhofer/smartime/internal/store"
	"github.com/anhofer/smartime/internal/tracker"
)

type reportsModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	window     report.Window
	properties []store.Property
	totals     []report.PropertyTotal

	cursor int  // selection in the summary table
	detail bool // true = single-property entry listing

	chart barchart.Model
}

func newReportsModel(t *tracker.Tracker) reportsModel {
	return reportsModel{
		tracker: t,
		window:  report.MonthWindow(time.Now()),
		chart:   barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

// currentWindow exposes the selected period to the export flow.
func (r reportsModel) currentWindow() report.Window {
	return r.window
}

type reportsDataMsg struct {
	properties []store.Property
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		props, err := r.tracker.Properties()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return reportsDataMsg{properties: props}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.properties = msg.properties
		r.recompute()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.window = r.window.Shift(-1)
			r.recompute()
			return r, nil
		case key.Matches(msg, keys.Right):
			r.window = r.window.Shift(1)
			r.recompute()
			return r, nil
		case key.Matches(msg, keys.Tab):
			r.window = nextKindWindow(r.window.Kind)
			r.detail = false
			r.recompute()
			return r, nil
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
			return r, nil
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.totals)-1 {
				r.cursor++
			}
			return r, nil
		case key.Matches(msg, keys.Enter):
			if len(r.totals) > 0 {
				r.detail = true
			}
			return r, nil
		case key.Matches(msg, keys.Back):
			r.detail = false
			return r, nil
		}
	}
	return r, nil
}

// nextKindWindow cycles Tag → Woche → Monat → Jahr for the current date.
func nextKindWindow(k report.WindowKind) report.Window {
	now := time.Now()
	switch k {
	case report.Day:
		return report.WeekWindow(now)
	case report.Week:
		return report.MonthWindow(now)
	case report.Month:
		return report.YearWindow(now)
	default:
		return report.DayWindow(now)
	}
}

func (r *reportsModel) recompute() {
	r.totals = report.SumAll(r.properties, r.window)
	if r.cursor >= len(r.totals) {
		r.cursor = max(0, len(r.totals)-1)
	}
	r.buildChart()
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, t := range r.totals {
		hours := float64(t.TotalMinutes) / 60.0
		label := t.Name
		if len(label) > 10 {
			label = label[:10]
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  t.Name,
				Value: hours,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "-",
			Values: []barchart.BarValue{{Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	if r.detail && r.cursor < len(r.totals) {
		return r.renderDetail(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Berichte"), "  ",
		r.renderModeTabs(), "  ",
		mutedStyle.Render(r.window.Label()),
	)

	chartView := r.chart.View()
	tableView := r.renderSummaryTable(w)
	nav := mutedStyle.Render("  ←/→: zeitraum  tab: modus  enter: details")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) renderModeTabs() string {
	kinds := []report.WindowKind{report.Day, report.Week, report.Month, report.Year}
	var tabs []string
	for _, k := range kinds {
		if k == r.window.Kind {
			tabs = append(tabs, activeTabStyle.Render(k.String()))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(k.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.totals) == 0 {
		return mutedStyle.Render("  Keine Daten fuer diesen Zeitraum")
	}

	var rows []string
	headerRow := mutedStyle.Render(fmt.Sprintf("  %-28s %12s", "Liegenschaft", "Dauer"))
	rows = append(rows, headerRow)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 42))))

	for i, t := range r.totals {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-28s %12s",
			cursor, t.Name, report.FmtMin(t.TotalMinutes))))
	}

	grand := report.GrandTotal(r.totals)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 42))))
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("  %-28s %12s", "Gesamt", report.FmtMin(grand))))

	return strings.Join(rows, "\n")
}

func (r reportsModel) renderDetail(w int) string {
	total := r.totals[r.cursor]
	var prop store.Property
	for _, p := range r.properties {
		if p.ID == total.ID {
			prop = p
			break
		}
	}

	title := titleStyle.Render(prop.Name)
	sub := mutedStyle.Render(prop.Address() + "  ·  " + r.window.Label())

	detailRows := report.DetailRows(prop, r.window)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, sub)
	rows = append(rows, "")
	if len(detailRows) == 0 {
		rows = append(rows, mutedStyle.Render("  Noch keine Eintraege vorhanden."))
	} else {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-7s %-10s %10s", "Datum", "Start", "Ende", "Dauer")))
		for _, dr := range detailRows {
			dur := dr.Formatted
			if dur == "" {
				dur = accentStyle.Render("laeuft...")
			}
			rows = append(rows, fmt.Sprintf("  %-12s %-7s %-10s %10s", dr.Date, dr.Start, dr.End, dur))
		}
	}
	rows = append(rows, "")
	rows = append(rows, highlightStyle.Render("  Gesamt: "+report.FmtMin(total.TotalMinutes)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  esc: zurueck"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
