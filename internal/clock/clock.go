// Package clock provides the business clock: wall time in a fixed UTC offset
// that is used for every "today", input time and date rollover.
package clock

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// DefaultOffsetHours is WIB (Western Indonesia Time).
	DefaultOffsetHours = 7
)

// Clock reports time in the business zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock for a fixed offset of offsetHours from UTC.
func New(offsetHours int) *Clock {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	if offsetHours == DefaultOffsetHours {
		name = "WIB"
	}
	return &Clock{
		loc: time.FixedZone(name, offsetHours*60*60),
		now: time.Now,
	}
}

// WithNow returns a copy of c that reads the current instant from fn.
func (c *Clock) WithNow(fn func() time.Time) *Clock {
	cp := *c
	cp.now = fn
	return &cp
}

func (c *Clock) Location() *time.Location { return c.loc }

// Now is the current instant expressed in the business zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the current business date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// TimeString is the current business wall-clock time as HH:MM:SS.
func (c *Clock) TimeString() string {
	return c.Now().Format(TimeLayout)
}

// NextMidnight is the start of the next business day.
func (c *Clock) NextMidnight() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)
}

// UntilMidnight is the time left before the business date rolls over.
func (c *Clock) UntilMidnight() time.Duration {
	return c.NextMidnight().Sub(c.Now())
}

// WeekBounds returns the Sunday and Saturday of the week containing today
// shifted by offset weeks.
func (c *Clock) WeekBounds(offset int) (start, end string) {
	start, end, _ = WeekOf(c.Today(), offset)
	return start, end
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// WeekOf returns the Sunday..Saturday window of the week that contains day
// shifted by offset weeks.
func WeekOf(day string, offset int) (start, end string, err error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", "", err
	}
	t = t.AddDate(0, 0, 7*offset)
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format(DateLayout), sunday.AddDate(0, 0, 6).Format(DateLayout), nil
}
