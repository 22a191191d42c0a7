package ledger

import "sort"

// DateGroup is the entries of one date in display order.
type DateGroup struct {
	Date    string
	Entries []LogEntry
}

// SortChronological returns a copy of entries ordered newest first by date,
// then by input time. Both are fixed-width and zero padded, so string order
// is time order.
func SortChronological(entries []LogEntry) []LogEntry {
	out := make([]LogEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].InputTime > out[j].InputTime
	})
	return out
}

// GroupChronological groups entries by date, newest date first, keeping the
// newest-first order inside each group.
func GroupChronological(entries []LogEntry) []DateGroup {
	var groups []DateGroup
	for _, e := range SortChronological(entries) {
		if n := len(groups); n > 0 && groups[n-1].Date == e.Date {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DateGroup{Date: e.Date, Entries: []LogEntry{e}})
	}
	return groups
}

// Flatten lists grouped entries in display order. Row numbers in reports and
// exports are the 1-based position in this list.
func Flatten(groups []DateGroup) []LogEntry {
	var out []LogEntry
	for _, g := range groups {
		out = append(out, g.Entries...)
	}
	return out
}
