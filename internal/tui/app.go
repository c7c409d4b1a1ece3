package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anhofer/smartime/internal/export"
	"github.com/anhofer/smartime/internal/report"
	"github.com/anhofer/smartime/internal/tracker"
)

// App is the root Bubble Tea model.
type App struct {
	tracker   *tracker.Tracker
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard  dashboardModel
	properties propertiesModel
	reports    reportsModel

	help   help.Model
	status string
}

func NewApp(t *tracker.Tracker, exportDir string) App {
	h := help.New()
	h.ShowAll = false

	return App{
		tracker:    t,
		exportDir:  exportDir,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(t),
		properties: newPropertiesModel(t),
		reports:    newReportsModel(t),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.properties.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If the property form is capturing input, delegate first.
		if a.activeView == viewProperties && a.properties.formActive {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewProperties
			return a, a.properties.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.reports.refresh()
		}

	case tickMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		return a, nil

	case checkedInMsg:
		a.status = "Check-in gestartet"
		return a, nil

	case checkedOutMsg:
		if msg.entry.Duration != nil {
			a.status = "Check-out: " + report.FmtMin(*msg.entry.Duration)
		} else {
			a.status = "Check-out abgeschlossen"
		}
		return a, nil

	case propertyCreatedMsg:
		a.status = fmt.Sprintf("Liegenschaft %q angelegt", msg.property.Name)
		return a, nil

	case propertyDeletedMsg:
		a.status = "Liegenschaft geloescht"
		return a, tea.Batch(a.properties.refresh(), a.dashboard.loadData())

	case exportDoneMsg:
		a.status = "Exportiert nach " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewProperties:
		a.properties, cmd = a.properties.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Laedt..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewProperties:
		content = a.properties.view()
	case viewReports:
		content = a.reports.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("smartime")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	timerInfo := ""
	if a.dashboard.isRunning() {
		timerInfo = successStyle.Render(" ● " + formatElapsed(a.dashboard.elapsed()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"HTML-Bericht", "CSV", "JSON"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Exportformat")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: exportieren  esc: abbrechen"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	window := a.reports.currentWindow()
	return func() tea.Msg {
		props, err := a.tracker.Properties()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export fehlgeschlagen: %v", err), isError: true}
		}

		dateStr := time.Now().UTC().Format("2006-01-02")

		var path string
		switch format {
		case 0:
			doc := report.SummaryDocument(window.Label(), report.SummaryRows(report.SumAll(props, window)))
			path = filepath.Join(a.exportDir, fmt.Sprintf("smartime-bericht-%s.html", dateStr))
			if err := export.WriteHTML(doc, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export fehlgeschlagen: %v", err), isError: true}
			}
		case 1:
			path = filepath.Join(a.exportDir, fmt.Sprintf("smartime-export-%s.csv", dateStr))
			if err := export.ToCSV(props, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export fehlgeschlagen: %v", err), isError: true}
			}
		default:
			path = filepath.Join(a.exportDir, fmt.Sprintf("smartime-export-%s.json", dateStr))
			if err := export.ToJSON(props, path); err != nil {
				return statusMsg{text: fmt.Sprintf("Export fehlgeschlagen: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
