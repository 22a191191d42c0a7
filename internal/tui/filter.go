package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/ledger"
)

type filterModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	start, end *string
	// Bound to the open form; committed to start/end only on completion.
	draftStart, draftEnd *string

	entries []ledger.LogEntry
	total   int64

	formActive bool
	form       *huh.Form
}

func newFilterModel(l *ledger.Ledger) filterModel {
	start, end := "", ""
	return filterModel{ledger: l, start: &start, end: &end}
}

func (f *filterModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f filterModel) active() bool {
	return *f.start != "" || *f.end != ""
}

func (f *filterModel) refresh() {
	f.entries = f.ledger.EntriesInRange(*f.start, *f.end)
	f.total = ledger.TotalCommission(f.entries)
}

func (f filterModel) update(msg tea.Msg) (filterModel, tea.Cmd) {
	if f.formActive && f.form != nil {
		return f.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return f.showForm()
		case key.Matches(msg, keys.Clear):
			*f.start, *f.end = "", ""
			f.refresh()
			return f, statusCmd("Filter cleared", false)
		}
	}
	return f, nil
}

func (f filterModel) showForm() (filterModel, tea.Cmd) {
	from, to := *f.start, *f.end
	f.draftStart, f.draftEnd = &from, &to

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From (YYYY-MM-DD)").
				Description("Leave empty for no lower bound").
				Value(f.draftStart).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("To (YYYY-MM-DD)").
				Description("Leave empty for no upper bound").
				Value(f.draftEnd).
				Validate(validateOptionalDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	f.formActive = true
	return f, f.form.Init()
}

func (f filterModel) updateForm(msg tea.Msg) (filterModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			f.closeForm()
			return f, nil
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		*f.start = strings.TrimSpace(*f.draftStart)
		*f.end = strings.TrimSpace(*f.draftEnd)
		f.closeForm()
		f.refresh()
		return f, nil
	}

	return f, cmd
}

func (f *filterModel) closeForm() {
	f.formActive = false
	f.form = nil
	f.draftStart, f.draftEnd = nil, nil
}

func (f filterModel) rangeLabel() string {
	from, to := *f.start, *f.end
	if from == "" {
		from = "…"
	}
	if to == "" {
		to = "…"
	}
	return from + " → " + to
}

func (f filterModel) view() string {
	w := f.width - 4
	title := titleStyle.Render("Filter")

	if f.formActive && f.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", f.form.View()),
		)
	}

	if !f.active() {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No date range set. Press enter to choose one."),
		))
	}

	var rows []string
	rows = append(rows,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", highlightStyle.Render(f.rangeLabel())),
		"",
		fmt.Sprintf("%d treatment  %s", len(f.entries), moneyStyle.Render(rupiah(f.total))),
		"",
	)

	if len(f.entries) == 0 {
		rows = append(rows, mutedStyle.Render("  No entries in this range"))
	} else {
		var lines []string
		n := 0
		for _, g := range ledger.GroupChronological(f.entries) {
			lines = append(lines, groupHeaderStyle.Render(longDate(g.Date)))
			for _, e := range g.Entries {
				n++
				lines = append(lines, fmt.Sprintf("  %3d. %s  %-28s %14s",
					n, e.InputTime, truncate(e.Label(), 28), rupiah(e.Commission)))
			}
		}
		rows = append(rows, window(lines, 0, max(f.height-10, 3))...)
	}

	rows = append(rows, "", mutedStyle.Render("  enter: edit range  c: clear  s: share filtered"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
