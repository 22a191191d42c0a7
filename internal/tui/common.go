package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/komisi/internal/clock"
	"github.com/sadopc/komisi/internal/report"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewEntries
	viewWeekly
	viewFilter
	viewSettings
)

var viewNames = []string{"Dashboard", "Entries", "Weekly", "Filter", "Settings"}

// --- Messages ---

// DayChanged tells the app the business date rolled over. It is sent by the
// midnight watcher; the app also detects rollovers on ticks and focus.
type DayChanged struct {
	Today string
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// ledgerChangedMsg is emitted after an add or delete so every view
// recomputes its derived data.
type ledgerChangedMsg struct{}

type exportDoneMsg struct {
	path string
	size int64
}

// --- Helpers ---

func rupiah(n int64) string { return report.FormatCurrency(n) }

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: isError} }
}

// parseAmount accepts "150000", "150.000" and "Rp 150.000".
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, " ", "")
	return strconv.ParseInt(s, 10, 64)
}

func validateDate(s string) error {
	_, err := clock.ParseDate(s)
	return err
}

// validateOptionalDate accepts an empty string or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateDate(strings.TrimSpace(s))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// longDate renders a YYYY-MM-DD date the Indonesian way, or returns it
// unchanged when it does not parse.
func longDate(d string) string {
	t, err := clock.ParseDate(d)
	if err != nil {
		return d
	}
	return report.LongDate(t)
}
