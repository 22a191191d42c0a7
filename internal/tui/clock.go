package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/komisi/internal/clock"
	"github.com/sadopc/komisi/internal/report"
)

// clockModel tracks the business wall clock shown in the header and footer
// and notices when the business date rolls over.
type clockModel struct {
	clk   *clock.Clock
	now   time.Time
	today string
}

func newClockModel(c *clock.Clock) clockModel {
	return clockModel{
		clk:   c,
		now:   c.Now(),
		today: c.Today(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// tick refreshes the displayed time and returns the current business date.
func (c *clockModel) tick() string {
	c.now = c.clk.Now()
	return c.clk.Today()
}

// observe records today and reports whether it differs from the date the
// model last saw.
func (c *clockModel) observe(today string) (string, bool) {
	if today == "" || today == c.today {
		return c.today, false
	}
	c.today = today
	return today, true
}

func (c clockModel) timeString() string {
	return c.now.Format(clock.TimeLayout) + " " + c.zone()
}

func (c clockModel) dateString() string {
	return report.LongDate(c.now)
}

func (c clockModel) zone() string {
	name, _ := c.now.Zone()
	return name
}
