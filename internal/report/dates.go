package report

import (
	"time"

	"github.com/goodsign/monday"
)

const locale = monday.LocaleIdID

// LongDate formats t the Indonesian way, e.g. "Senin, 10 Juni 2024".
func LongDate(t time.Time) string {
	return monday.Format(t, "Monday, 2 January 2006", locale)
}

// WeekLabel names the Sunday..Saturday window start..end (YYYY-MM-DD) at
// the given offset from the current week.
func WeekLabel(start, end string, offset int) string {
	s, err1 := time.Parse(time.DateOnly, start)
	e, err2 := time.Parse(time.DateOnly, end)
	if err1 != nil || err2 != nil {
		return start + " - " + end
	}
	span := monday.Format(s, "02 Jan", locale) + " - " + monday.Format(e, "02 Jan", locale)
	switch offset {
	case 0:
		return "Minggu Ini (" + span + ")"
	case -1:
		return "Minggu Lalu (" + span + ")"
	default:
		return span
	}
}
