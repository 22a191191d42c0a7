// Package report renders the ledger as the plain-text summary that is shared
// to chat apps, copied to the clipboard and shown in the preview pane.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/komisi/internal/ledger"
)

const (
	headerRule = 50
	groupRule  = 30
)

// Empty is returned by Format when there are no entries.
const Empty = "Tidak ada data"

// Options carries the business branding printed around the report body.
type Options struct {
	BusinessName string
	Instagram    string
}

// DefaultOptions matches the salon the tool was first written for.
func DefaultOptions() Options {
	return Options{BusinessName: "OREA 85", Instagram: "OREA_85"}
}

// Format renders entries grouped by date, newest first, with one running row
// number across all groups. The totals cover every entry passed in. now is
// the report date printed in the header; passing the same now yields the same
// text.
func Format(entries []ledger.LogEntry, now time.Time, opts Options) string {
	if len(entries) == 0 {
		return Empty
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 CATATAN KOMISI TREATMENT - %s\n", opts.BusinessName)
	fmt.Fprintf(&b, "📅 %s\n", LongDate(now))
	b.WriteString(strings.Repeat("=", headerRule) + "\n\n")

	n := 1
	var total int64
	for _, g := range ledger.GroupChronological(entries) {
		fmt.Fprintf(&b, "📅 %s\n", groupDate(g.Date))
		b.WriteString(strings.Repeat("-", groupRule) + "\n")

		for _, e := range g.Entries {
			fmt.Fprintf(&b, "%d. %s - %s\n", n, e.InputTime, e.Label())
			fmt.Fprintf(&b, "   Treatment: %s\n", e.TreatmentName)
			fmt.Fprintf(&b, "   Komisi: %s\n", FormatCurrency(e.Commission))
			if e.Notes != "" {
				fmt.Fprintf(&b, "   Catatan: %s\n", e.Notes)
			}
			b.WriteString("\n")
			n++
			total += e.Commission
		}
	}

	b.WriteString(strings.Repeat("=", headerRule) + "\n")
	fmt.Fprintf(&b, "💰 TOTAL KOMISI: %s\n", FormatCurrency(total))
	fmt.Fprintf(&b, "📊 TOTAL ENTRY: %d treatment\n", len(entries))
	b.WriteString(strings.Repeat("=", headerRule) + "\n")
	fmt.Fprintf(&b, "📱 Instagram: @%s\n", opts.Instagram)
	fmt.Fprintf(&b, "🏢 %s - Luxury Treatment Center", opts.BusinessName)

	return b.String()
}

// FormatCurrency renders an amount in rupiah with dot thousands grouping,
// e.g. "Rp 1.250.000".
func FormatCurrency(amount int64) string {
	return "Rp " + FormatNumber(amount)
}

// FormatNumber groups thousands with dots and drops decimals.
func FormatNumber(n int64) string {
	return strings.ReplaceAll(humanize.Comma(n), ",", ".")
}

func groupDate(d string) string {
	t, err := time.Parse(time.DateOnly, d)
	if err != nil {
		return d
	}
	return LongDate(t)
}

// NoTreatments is the marquee text before anything has been logged.
const NoTreatments = "Belum ada data treatment"

// Marquee joins the most popular treatments as "Name (Nx)".
func Marquee(top []ledger.TreatmentCount) string {
	if len(top) == 0 {
		return NoTreatments
	}
	parts := make([]string, len(top))
	for i, t := range top {
		parts[i] = fmt.Sprintf("%s (%dx)", t.Name, t.Count)
	}
	return strings.Join(parts, " • ")
}
