package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/report"
)

const (
	recentLimit  = 5
	marqueeLimit = 5
)

type dashboardModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	todayCount int
	todayTotal int64
	monthCount int
	monthTotal int64
	marquee    string
	recent     []ledger.LogEntry
}

func newDashboardModel(l *ledger.Ledger) dashboardModel {
	return dashboardModel{ledger: l}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

// refresh recomputes the statistics for the business date today.
func (d *dashboardModel) refresh(today string) {
	todays := d.ledger.EntriesOnDate(today)
	d.todayCount = len(todays)
	d.todayTotal = ledger.TotalCommission(todays)

	var month []ledger.LogEntry
	if len(today) >= 7 {
		month = d.ledger.EntriesInMonth(today[:7])
	}
	d.monthCount = len(month)
	d.monthTotal = ledger.TotalCommission(month)

	d.marquee = report.Marquee(d.ledger.TopTreatments(marqueeLimit))

	sorted := ledger.SortChronological(d.ledger.Entries())
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	d.recent = sorted
}

func (d dashboardModel) view(c clockModel) string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderClockPanel(contentWidth, c),
		d.renderStatsPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderClockPanel(w int, c clockModel) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		clockStyle.Width(w-6).Render(c.timeString()),
		dateStyle.Width(w-6).Render(c.dateString()),
		mutedStyle.Width(w-6).Align(lipgloss.Center).Render(truncate(d.marquee, max(w-8, 10))),
	)
	return activePanelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	cell := func(title string, count int, total int64) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(title),
			fmt.Sprintf("%d treatment", count),
			moneyStyle.Render(rupiah(total)),
		)
	}
	half := lipgloss.NewStyle().Width((w - 6) / 2)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		half.Render(cell("Today", d.todayCount, d.todayTotal)),
		half.Render(cell("This month", d.monthCount, d.monthTotal)),
	)
	return panelStyle.Width(w).Render(row)
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Entries")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet. Press 2 then n to log a treatment."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, e := range d.recent {
		row := fmt.Sprintf("  %s %s  %-24s %s",
			e.Date, e.InputTime, truncate(e.Label(), 24), rupiah(e.Commission))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
