package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/komisi/internal/clock"
	"github.com/sadopc/komisi/internal/ledger"
	"github.com/sadopc/komisi/internal/report"
)

// maxWeekOffset bounds how far the weekly view pages from the current week.
const maxWeekOffset = 4

type dayTotal struct {
	date  string
	count int
	total int64
}

type weeklyModel struct {
	ledger *ledger.Ledger
	width  int
	height int

	offset int

	start, end   string
	entries      []ledger.LogEntry
	days         []dayTotal
	total        int64
	mostFrequent string

	chart barchart.Model
}

func newWeeklyModel(l *ledger.Ledger) weeklyModel {
	return weeklyModel{
		ledger: l,
		chart:  barchart.New(60, 12),
	}
}

func (r *weeklyModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

// shift moves the window by delta weeks within [-maxWeekOffset, maxWeekOffset].
func (r *weeklyModel) shift(delta int) {
	r.offset = max(-maxWeekOffset, min(maxWeekOffset, r.offset+delta))
}

func (r *weeklyModel) refresh() {
	r.start, r.end = r.ledger.Clock().WeekBounds(r.offset)
	r.entries = r.ledger.EntriesInWeek(r.offset)
	r.total = ledger.TotalCommission(r.entries)
	r.mostFrequent = ledger.MostFrequentTreatment(r.entries)

	r.days = nil
	first, err := clock.ParseDate(r.start)
	if err == nil {
		for i := 0; i < 7; i++ {
			d := first.AddDate(0, 0, i).Format(clock.DateLayout)
			on := ledger.OnDate(r.entries, d)
			r.days = append(r.days, dayTotal{date: d, count: len(on), total: ledger.TotalCommission(on)})
		}
	}
	r.buildChart()
}

func (r weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Left):
			r.shift(-1)
			r.refresh()
		case key.Matches(msg, keys.Right):
			r.shift(1)
			r.refresh()
		}
	}
	return r, nil
}

func (r *weeklyModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)
	if r.total == 0 {
		return
	}

	var bars []barchart.BarData
	for _, d := range r.days {
		label := d.date
		if t, err := time.Parse(clock.DateLayout, d.date); err == nil {
			label = t.Format("Mon 02")
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "Komisi",
				Value: float64(d.total),
				Style: lipgloss.NewStyle().Foreground(colorSuccess),
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r weeklyModel) view() string {
	w := r.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Weekly"), "  ",
		highlightStyle.Render(report.WeekLabel(r.start, r.end, r.offset)),
	)

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBlock("Treatments", fmt.Sprintf("%d", len(r.entries))),
		statBlock("Total commission", moneyStyle.Render(rupiah(r.total))),
		statBlock("Most frequent", r.mostFrequent),
	)

	nav := mutedStyle.Render(fmt.Sprintf("  ←/→: week (%+d of ±%d)  s: share this week", r.offset, maxWeekOffset))

	chart := mutedStyle.Render("  Nothing to chart")
	if r.total > 0 {
		chart = r.chart.View()
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", stats, "", chart, "", r.renderDayTable(w), "", nav,
		),
	)
}

func statBlock(title, value string) string {
	return lipgloss.NewStyle().Width(26).Render(
		lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render(title), value),
	)
}

func (r weeklyModel) renderDayTable(w int) string {
	if len(r.entries) == 0 {
		return mutedStyle.Render("  No treatments this week")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-26s %8s %16s", "Day", "Entries", "Commission")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 52))))
	for _, d := range r.days {
		if d.count == 0 {
			continue
		}
		rows = append(rows, fmt.Sprintf("  %-26s %8d %16s", longDate(d.date), d.count, rupiah(d.total)))
	}
	return strings.Join(rows, "\n")
}
