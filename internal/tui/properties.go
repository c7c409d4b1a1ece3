package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/anhofer/smartime/internal/store"
	"github.com/anhofer/smartime/internal/tracker"
)

type propertiesModel struct {
	tracker *tracker.Tracker
	width   int
	height  int

	properties []store.Property
	cursor     int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName   *string
	formStreet *string
	formNumber *string
	formCity   *string

	confirming bool // delete confirmation overlay
}

func newPropertiesModel(t *tracker.Tracker) propertiesModel {
	name, street, number, city := "", "", "", ""
	return propertiesModel{
		tracker:    t,
		formName:   &name,
		formStreet: &street,
		formNumber: &number,
		formCity:   &city,
	}
}

func (p *propertiesModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type propertiesDataMsg struct {
	properties []store.Property
}

func (p propertiesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		props, err := p.tracker.Properties()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Fehler: %v", err), isError: true}
		}
		return propertiesDataMsg{properties: props}
	}
}

func (p propertiesModel) update(msg tea.Msg) (propertiesModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case propertiesDataMsg:
		p.properties = msg.properties
		if p.cursor >= len(p.properties) {
			p.cursor = max(0, len(p.properties)-1)
		}
		return p, nil

	case tea.KeyMsg:
		if p.confirming {
			return p.updateConfirm(msg)
		}
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.properties)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showForm()
		case key.Matches(msg, keys.Delete):
			if len(p.properties) > 0 {
				p.confirming = true
			}
		}
	}
	return p, nil
}

func (p propertiesModel) updateConfirm(msg tea.KeyMsg) (propertiesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		p.confirming = false
		prop := p.properties[p.cursor]
		return p, func() tea.Msg {
			if err := p.tracker.DeleteProperty(prop.ID); err != nil {
				return statusMsg{text: fmt.Sprintf("Loeschen fehlgeschlagen: %v", err), isError: true}
			}
			return propertyDeletedMsg{}
		}
	case key.Matches(msg, keys.Back):
		p.confirming = false
	}
	return p, nil
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s darf nicht leer sein", field)
		}
		return nil
	}
}

func (p propertiesModel) showForm() (propertiesModel, tea.Cmd) {
	*p.formName = ""
	*p.formStreet = ""
	*p.formNumber = ""
	*p.formCity = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(p.formName).Validate(notBlank("Name")),
			huh.NewInput().Title("Strasse").Value(p.formStreet).Validate(notBlank("Strasse")),
			huh.NewInput().Title("Hausnummer").Value(p.formNumber).Validate(notBlank("Hausnummer")),
			huh.NewInput().Title("Ort").Value(p.formCity).Validate(notBlank("Ort")),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p propertiesModel) updateForm(msg tea.Msg) (propertiesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		created, err := p.tracker.CreateProperty(*p.formName, *p.formStreet, *p.formNumber, *p.formCity)
		var verr *tracker.ValidationError
		if errors.As(err, &verr) {
			// The form validators keep this from happening; keep the form
			// open with the entered values if it does.
			p.formActive = true
			return p, func() tea.Msg {
				return statusMsg{text: "Bitte alle Felder ausfuellen.", isError: true}
			}
		}
		if err != nil {
			return p, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Speichern fehlgeschlagen: %v", err), isError: true}
			}
		}
		return p, tea.Batch(
			p.refresh(),
			func() tea.Msg { return propertyCreatedMsg{property: created} },
		)
	}

	return p, cmd
}

func (p propertiesModel) view() string {
	if p.formActive && p.form != nil {
		title := titleStyle.Render("Neue Liegenschaft")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", p.form.View())
		return panelStyle.Width(p.width - 4).Render(content)
	}

	if p.confirming {
		return p.renderConfirm()
	}
	return p.renderList()
}

func (p propertiesModel) renderConfirm() string {
	w := p.width - 4
	prop := p.properties[p.cursor]
	title := errorStyle.Render("Liegenschaft loeschen")
	body := fmt.Sprintf("\"%s\" wirklich loeschen? Alle Zeiteintraege werden mit entfernt.", prop.Name)
	hint := mutedStyle.Render("  enter: loeschen  esc: abbrechen")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
	return activePanelStyle.Width(w).Render(content)
}

func (p propertiesModel) renderList() string {
	w := p.width - 4
	title := titleStyle.Render("Liegenschaften")

	if len(p.properties) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Keine Liegenschaften erfasst. Mit n eine anlegen."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-24s %-30s %s", "Name", "Adresse", "Eintraege"))
	rows = append(rows, header)

	for i, prop := range p.properties {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-24s %-30s %d", cursor, prop.Name, prop.Address(), len(prop.TimeEntries)))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: neu  d: loeschen  ↑/↓: auswaehlen"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
