package ledger

import (
	"sort"
	"strings"
)

// TreatmentCount is how often a treatment was logged.
type TreatmentCount struct {
	Name  string
	Count int
}

func filter(entries []LogEntry, keep func(LogEntry) bool) []LogEntry {
	var out []LogEntry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// OnDate returns the entries logged for day d.
func OnDate(entries []LogEntry, d string) []LogEntry {
	return filter(entries, func(e LogEntry) bool { return e.Date == d })
}

// InMonth returns the entries whose date starts with yyyymm ("2024-06").
func InMonth(entries []LogEntry, yyyymm string) []LogEntry {
	return filter(entries, func(e LogEntry) bool { return strings.HasPrefix(e.Date, yyyymm) })
}

// Between returns the entries dated within [start, end], both inclusive.
func Between(entries []LogEntry, start, end string) []LogEntry {
	return filter(entries, func(e LogEntry) bool { return e.Date >= start && e.Date <= end })
}

// InRange applies an optional inclusive date range. With both bounds empty no
// filter has been chosen yet and the result is empty.
func InRange(entries []LogEntry, start, end string) []LogEntry {
	if start == "" && end == "" {
		return nil
	}
	return filter(entries, func(e LogEntry) bool {
		if start != "" && e.Date < start {
			return false
		}
		if end != "" && e.Date > end {
			return false
		}
		return true
	})
}

// TotalCommission sums commissions.
func TotalCommission(entries []LogEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Commission
	}
	return total
}

// countTreatments counts names in first-seen order.
func countTreatments(entries []LogEntry, name func(LogEntry) string) []TreatmentCount {
	idx := make(map[string]int)
	var counts []TreatmentCount
	for _, e := range entries {
		n := name(e)
		i, ok := idx[n]
		if !ok {
			i = len(counts)
			idx[n] = i
			counts = append(counts, TreatmentCount{Name: n})
		}
		counts[i].Count++
	}
	return counts
}

// MostFrequentTreatment returns the most logged treatment name. Ties go to
// the name seen first. An empty set gives NoTreatment.
func MostFrequentTreatment(entries []LogEntry) string {
	counts := countTreatments(entries, func(e LogEntry) string { return e.TreatmentName })
	if len(counts) == 0 {
		return NoTreatment
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best.Name
}

// TopTreatments returns up to n treatments by descending count, using the
// name without any embedded price. Ties keep first-seen order.
func TopTreatments(entries []LogEntry, n int) []TreatmentCount {
	counts := countTreatments(entries, func(e LogEntry) string { return BaseTreatmentName(e.TreatmentName) })
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
