package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/ledger"
)

type entryFormType int

const (
	formAdd entryFormType = iota
	formDelete
)

// entryFields backs the huh forms. It is shared by pointer so values
// survive model copies.
type entryFields struct {
	date      string
	therapist string
	search    string
	treatment string
	price     string
	notes     string
	confirm   bool
}

type entriesModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	groups []ledger.DateGroup
	rows   []ledger.LogEntry
	cursor int

	defaultTherapist string

	formActive bool
	form       *huh.Form
	formType   entryFormType
	fields     *entryFields
	deleting   ledger.LogEntry
}

func newEntriesModel(l *ledger.Ledger) entriesModel {
	return entriesModel{
		ledger: l,
		fields: &entryFields{},
	}
}

func (m *entriesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *entriesModel) refresh() {
	m.groups = ledger.GroupChronological(m.ledger.Entries())
	m.rows = ledger.Flatten(m.groups)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m entriesModel) selected() (ledger.LogEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ledger.LogEntry{}, false
	}
	return m.rows[m.cursor], true
}

func (m entriesModel) update(msg tea.Msg, today string) (entriesModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showAddForm(today)
		case key.Matches(msg, keys.Delete):
			if e, ok := m.selected(); ok {
				return m.showDeleteForm(e)
			}
		}
	}
	return m, nil
}

func (m entriesModel) showAddForm(today string) (entriesModel, tea.Cmd) {
	*m.fields = entryFields{date: today, therapist: m.defaultTherapist}
	m.formType = formAdd
	f := m.fields

	dateInput := huh.NewInput().
		Title("Date (YYYY-MM-DD)").
		Value(&f.date).
		Validate(func(s string) error {
			if err := validateDate(strings.TrimSpace(s)); err != nil {
				return errors.New("use YYYY-MM-DD")
			}
			if strings.TrimSpace(s) > today {
				return errors.New("date cannot be in the future")
			}
			return nil
		})
	notesInput := huh.NewInput().Title("Notes (optional)").Value(&f.notes)

	var group *huh.Group
	if m.ledger.Mode() == ledger.ModePercentage {
		group = huh.NewGroup(
			huh.NewInput().Title("Therapist").Value(&f.therapist).Validate(required("therapist")),
			dateInput,
			huh.NewInput().
				Title("Treatment").
				Description(`Append the price to fill it in, e.g. "Facial: 100.000"`).
				Value(&f.treatment).
				Validate(required("treatment")),
			huh.NewInput().
				Title("Price (Rp)").
				Description("Leave empty to use the price in the treatment name").
				Value(&f.price).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if n, err := parseAmount(s); err != nil || n <= 0 {
						return errors.New("price must be a positive amount")
					}
					return nil
				}),
			notesInput,
		)
	} else {
		catalog := m.ledger.Catalog()
		group = huh.NewGroup(
			dateInput,
			huh.NewInput().Title("Search treatments").Value(&f.search),
			huh.NewSelect[string]().
				Title("Treatment").
				OptionsFunc(func() []huh.Option[string] {
					return treatmentOptions(catalog.Search(f.search))
				}, &f.search).
				Height(8).
				Value(&f.treatment).
				Validate(required("treatment")),
			huh.NewInput().Title("Therapist (optional)").Value(&f.therapist),
			notesInput,
		)
	}

	m.form = huh.NewForm(group).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m entriesModel) showDeleteForm(e ledger.LogEntry) (entriesModel, tea.Cmd) {
	*m.fields = entryFields{}
	m.formType = formDelete
	m.deleting = e

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete this entry?").
				Description(entrySummary(e)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirm),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		switch m.formType {
		case formAdd:
			return m.submitAdd()
		case formDelete:
			if m.fields.confirm {
				return m.submitDelete()
			}
		}
		return m, nil
	}

	return m, cmd
}

// input turns the completed add form into a ledger input.
func (m entriesModel) input() (ledger.Input, error) {
	f := m.fields
	in := ledger.Input{
		Therapist:     f.therapist,
		Date:          strings.TrimSpace(f.date),
		TreatmentName: f.treatment,
		Notes:         f.notes,
	}
	if strings.TrimSpace(f.price) != "" {
		p, err := parseAmount(f.price)
		if err != nil {
			return in, fmt.Errorf("price %q: %w", f.price, err)
		}
		in.Price = p
	}
	return in, nil
}

func (m entriesModel) submitAdd() (entriesModel, tea.Cmd) {
	in, err := m.input()
	if err != nil {
		return m, statusCmd("Not saved: "+err.Error(), true)
	}

	e, err := m.ledger.Add(in)
	switch {
	case errors.Is(err, ledger.ErrStorageUnavailable):
		m.refresh()
		return m, tea.Batch(
			changedCmd,
			statusCmd("Added in memory only: "+err.Error(), true),
		)
	case err != nil:
		return m, statusCmd("Not saved: "+err.Error(), true)
	}

	m.refresh()
	return m, tea.Batch(
		changedCmd,
		statusCmd(fmt.Sprintf("Added %s (%s)", e.TreatmentName, rupiah(e.Commission)), false),
	)
}

func (m entriesModel) submitDelete() (entriesModel, tea.Cmd) {
	err := m.ledger.Delete(m.deleting.ID)
	m.refresh()
	if err != nil {
		return m, tea.Batch(changedCmd, statusCmd("Deleted in memory only: "+err.Error(), true))
	}
	return m, tea.Batch(changedCmd, statusCmd("Entry deleted", false))
}

func changedCmd() tea.Msg { return ledgerChangedMsg{} }

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func treatmentOptions(c ledger.Catalog) []huh.Option[string] {
	opts := make([]huh.Option[string], len(c))
	for i, t := range c {
		opts[i] = huh.NewOption(fmt.Sprintf("%s  %s", t.Name, rupiah(t.Commission)), t.Name)
	}
	return opts
}

func entrySummary(e ledger.LogEntry) string {
	lines := []string{
		"Date:       " + longDate(e.Date),
		"Input time: " + e.InputTime,
	}
	if e.Therapist != "" {
		lines = append(lines, "Therapist:  "+e.Therapist)
	}
	lines = append(lines,
		"Treatment:  "+e.TreatmentName,
		"Commission: "+rupiah(e.Commission),
	)
	return strings.Join(lines, "\n")
}

func (m entriesModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Entry")
		if m.formType == formDelete {
			title = titleStyle.Render("Delete Entry")
		} else {
			title += mutedStyle.Render("  " + string(m.ledger.Mode()) + " mode")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	return m.renderList(w)
}

func (m entriesModel) renderList(w int) string {
	title := titleStyle.Render(fmt.Sprintf("Entries (%d)", len(m.rows)))

	if len(m.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to log a treatment."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var lines []string
	cursorLine := 0
	n := 0
	for _, g := range m.groups {
		header := fmt.Sprintf("%s  %s", longDate(g.Date), rupiah(ledger.TotalCommission(g.Entries)))
		lines = append(lines, groupHeaderStyle.Render(header))
		for _, e := range g.Entries {
			cursor := "  "
			style := normalItemStyle
			if n == m.cursor {
				cursor = "> "
				style = selectedItemStyle
				cursorLine = len(lines)
			}
			n++
			row := fmt.Sprintf("%s%3d. %s  %-28s %14s", cursor, n, e.InputTime, truncate(e.Label(), 28), rupiah(e.Commission))
			line := style.Render(row)
			if e.Label() != e.TreatmentName {
				line += mutedStyle.Render("  " + truncate(e.TreatmentName, 24))
			}
			if e.Notes != "" {
				line += mutedStyle.Render("  · " + truncate(e.Notes, 30))
			}
			lines = append(lines, line)
		}
	}

	lines = window(lines, cursorLine, max(m.height-8, 3))

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, lines...)
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete  s: share/export  ↑/↓: move"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// window returns at most size lines of lines, keeping focus visible.
func window(lines []string, focus, size int) []string {
	if len(lines) <= size {
		return lines
	}
	start := focus - size/2
	start = max(0, min(start, len(lines)-size))
	return lines[start : start+size]
}
