package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/log"
	"github.com/sadopc/komisi/internal/store"
	"github.com/shopspring/decimal"
)

type settingsModel struct {
	store  *store.Store
	ledger *ledger.Ledger
	opts   Options
	width  int
	height int

	settings   []store.Setting
	lastSaved  time.Time
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	mode      *string
	therapist *string
}

func newSettingsModel(s *store.Store, l *ledger.Ledger, opts Options) settingsModel {
	mode, therapist := string(l.Mode()), ""
	if opts.Log == nil {
		opts.Log = log.Discard()
	}
	return settingsModel{
		store:     s,
		ledger:    l,
		opts:      opts,
		mode:      &mode,
		therapist: &therapist,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s *settingsModel) refresh() {
	settings, err := s.store.GetAllSettings()
	if err != nil {
		s.opts.Log.Warn("load settings", "error", err)
	}
	s.settings = settings

	saved, err := s.store.SnapshotUpdatedAt(ledger.SnapshotKey)
	if err != nil {
		s.opts.Log.Warn("read last save time", "error", err)
	}
	s.lastSaved = saved
}

// lastSavedLabel is the time the ledger was last written, in the business zone.
func (s settingsModel) lastSavedLabel() string {
	if s.lastSaved.IsZero() {
		return "never"
	}
	return s.lastSaved.In(s.ledger.Clock().Location()).Format("2006-01-02 15:04:05")
}

// defaultTherapist is the name pre-filled in the add form.
func (s settingsModel) defaultTherapist() string {
	return s.store.SettingOr(store.SettingDefaultTherapist, "")
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.mode = string(s.ledger.Mode())
	*s.therapist = s.defaultTherapist()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Commission mode").
				Options(
					huh.NewOption("Catalog (fixed commission per treatment)", string(ledger.ModeCatalog)),
					huh.NewOption(fmt.Sprintf("Percentage (%s of price)", percent(s.ledger.Rate())), string(ledger.ModePercentage)),
				).Value(s.mode),
			huh.NewInput().Title("Default therapist").Value(s.therapist),
		).Title("Commission"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		if err := s.saveSettings(); err != nil {
			return s, statusCmd("Settings not saved: "+err.Error(), true)
		}
		s.refresh()
		return s, tea.Batch(changedCmd, statusCmd("Settings saved", false))
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	mode := ledger.Mode(*s.mode)
	s.ledger.SetMode(mode)
	if err := s.store.SetSetting(store.SettingCommissionMode, string(mode)); err != nil {
		return err
	}
	return s.store.SetSetting(store.SettingDefaultTherapist, strings.TrimSpace(*s.therapist))
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	therapist := s.defaultTherapist()
	if therapist == "" {
		therapist = "(none)"
	}
	items := [][2]string{
		{"Commission mode", string(s.ledger.Mode())},
		{"Commission rate", percent(s.ledger.Rate())},
		{"Default therapist", therapist},
		{"Catalog", fmt.Sprintf("%d treatments", len(s.ledger.Catalog()))},
		{"Business", s.opts.Report.BusinessName},
		{"Instagram", "@" + s.opts.Report.Instagram},
		{"Export folder", s.opts.ExportDir},
		{"Last saved", s.lastSavedLabel()},
	}

	var rows []string
	rows = append(rows, title, "")
	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it[1])))
	}
	if len(s.settings) > 0 {
		saved := make([]string, len(s.settings))
		for i, st := range s.settings {
			saved[i] = st.Key + "=" + st.Value
		}
		rows = append(rows, "", mutedStyle.Render("  saved: "+strings.Join(saved, "  ")))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// percent renders a rate such as 0.3 as "30%".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
