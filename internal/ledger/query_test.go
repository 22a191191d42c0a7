package ledger

import (
	"testing"
)

func entry(id, date, inputTime, treatment string, commission int64) LogEntry {
	return LogEntry{ID: id, Date: date, InputTime: inputTime, TreatmentName: treatment, Commission: commission}
}

func ids(entries []LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sameIDs(t *testing.T, got []LogEntry, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got ids %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got ids %v, want %v", g, want)
		}
	}
}

func sample() []LogEntry {
	return []LogEntry{
		entry("a", "2024-06-10", "09:00:00", "FB 2 jam", 67500),
		entry("b", "2024-06-10", "14:30:00", "Chair Refleksi 1 jam", 30000),
		entry("c", "2024-06-08", "11:00:00", "FB 2 jam", 67500),
		entry("d", "2024-06-02", "08:00:00", "Sport Massage 1 jam", 45000),
		entry("e", "2024-05-31", "17:45:00", "Chair Refleksi 1 jam", 30000),
		entry("f", "2024-06-16", "10:00:00", "Bengkung 30 menit", 37500),
	}
}

// ============================================================
// Filters
// ============================================================

func TestOnDate(t *testing.T) {
	sameIDs(t, OnDate(sample(), "2024-06-10"), "a", "b")
	sameIDs(t, OnDate(sample(), "2024-01-01"))
}

func TestInMonth(t *testing.T) {
	sameIDs(t, InMonth(sample(), "2024-06"), "a", "b", "c", "d", "f")
	sameIDs(t, InMonth(sample(), "2024-05"), "e")
}

func TestInRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"both bounds", "2024-06-02", "2024-06-08", []string{"c", "d"}},
		{"start only", "2024-06-10", "", []string{"a", "b", "f"}},
		{"end only", "", "2024-06-02", []string{"d", "e"}},
		{"inclusive single day", "2024-06-08", "2024-06-08", []string{"c"}},
		{"no bounds", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sameIDs(t, InRange(sample(), tt.start, tt.end), tt.want...)
		})
	}
}

func TestEntriesInRangeNoBoundsOnNonEmptyLedger(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	if got := l.EntriesInRange("", ""); len(got) != 0 {
		t.Fatalf("expected empty result without bounds, got %d", len(got))
	}
}

func TestEntriesInWeek(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s)
	// Clock is Monday 2024-06-10; current week is 06-09..06-15.
	for _, d := range []string{"2024-06-08", "2024-06-09", "2024-06-10", "2024-06-01", "2024-06-02"} {
		if _, err := l.Add(Input{Date: d, TreatmentName: "FB 2 jam"}); err != nil {
			t.Fatal(err)
		}
	}

	current := l.EntriesInWeek(0)
	if len(current) != 2 {
		t.Fatalf("current week has %d entries, want 2", len(current))
	}
	var want int64
	for _, e := range l.Entries() {
		if e.Date >= "2024-06-09" && e.Date <= "2024-06-15" {
			want += e.Commission
		}
	}
	if got := TotalCommission(current); got != want {
		t.Fatalf("week total = %d, want %d", got, want)
	}

	// 2024-06-01 is the Saturday before last week.
	if got := len(l.EntriesInWeek(-1)); got != 2 {
		t.Fatalf("last week has %d entries, want 2", got)
	}
	if got := len(l.EntriesInWeek(1)); got != 0 {
		t.Fatalf("next week has %d entries, want 0", got)
	}
}

func TestEntriesOnDateMethod(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	l.Add(Input{Date: "2024-06-09", TreatmentName: "FB 2 jam"})
	if got := len(l.EntriesOnDate("2024-06-10")); got != 1 {
		t.Fatalf("got %d entries, want 1", got)
	}
}

// ============================================================
// Aggregates
// ============================================================

func TestTotalCommission(t *testing.T) {
	if got := TotalCommission(sample()); got != 277500 {
		t.Fatalf("total = %d, want 277500", got)
	}
	if got := TotalCommission(nil); got != 0 {
		t.Fatalf("empty total = %d", got)
	}
}

func TestMostFrequentTreatment(t *testing.T) {
	if got := MostFrequentTreatment(nil); got != NoTreatment {
		t.Fatalf("empty = %q, want %q", got, NoTreatment)
	}

	entries := []LogEntry{
		entry("1", "2024-06-10", "", "A", 1),
		entry("2", "2024-06-10", "", "B", 1),
		entry("3", "2024-06-10", "", "B", 1),
		entry("4", "2024-06-10", "", "A", 1),
		entry("5", "2024-06-10", "", "C", 1),
	}
	// A and B tie at two; A was seen first.
	if got := MostFrequentTreatment(entries); got != "A" {
		t.Fatalf("most frequent = %q, want A", got)
	}

	entries = append(entries, entry("6", "2024-06-10", "", "B", 1))
	if got := MostFrequentTreatment(entries); got != "B" {
		t.Fatalf("most frequent = %q, want B", got)
	}
}

func TestTopTreatments(t *testing.T) {
	entries := []LogEntry{
		entry("1", "2024-06-10", "", "Facial: 100.000", 1),
		entry("2", "2024-06-10", "", "Massage: 150.000", 1),
		entry("3", "2024-06-10", "", "Massage: 150.000", 1),
		entry("4", "2024-06-10", "", "Facial: 120.000", 1),
		entry("5", "2024-06-10", "", "Lulur", 1),
		entry("6", "2024-06-10", "", "Massage", 1),
	}

	top := TopTreatments(entries, 5)
	want := []TreatmentCount{{"Massage", 3}, {"Facial", 2}, {"Lulur", 1}}
	if len(top) != len(want) {
		t.Fatalf("top = %+v, want %+v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("top[%d] = %+v, want %+v", i, top[i], want[i])
		}
	}

	if got := TopTreatments(entries, 1); len(got) != 1 || got[0].Name != "Massage" {
		t.Fatalf("top 1 = %+v", got)
	}
}

func TestTopTreatmentsTiesKeepFirstSeen(t *testing.T) {
	entries := []LogEntry{
		entry("1", "2024-06-10", "", "Z", 1),
		entry("2", "2024-06-10", "", "Y", 1),
		entry("3", "2024-06-10", "", "X", 1),
	}
	top := TopTreatments(entries, 5)
	if top[0].Name != "Z" || top[1].Name != "Y" || top[2].Name != "X" {
		t.Fatalf("tie order = %+v", top)
	}
}

func TestLedgerTopTreatmentsUsesWholeCollection(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	l.Add(Input{Date: "2024-05-01", TreatmentName: "FB 2 jam"})
	l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	l.Add(Input{Date: "2024-06-10", TreatmentName: "Bengkung 30 menit"})

	top := l.TopTreatments(5)
	if len(top) != 2 || top[0].Name != "FB 2 jam" || top[0].Count != 2 {
		t.Fatalf("top = %+v", top)
	}
}

// ============================================================
// Grouping
// ============================================================

func TestGroupChronologicalWithinDay(t *testing.T) {
	groups := GroupChronological([]LogEntry{
		entry("morning", "2024-06-10", "09:00", "FB 2 jam", 1),
		entry("afternoon", "2024-06-10", "14:30", "FB 2 jam", 1),
	})
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	sameIDs(t, groups[0].Entries, "afternoon", "morning")
}

func TestGroupChronologicalOrder(t *testing.T) {
	groups := GroupChronological(sample())

	var dates []string
	for _, g := range groups {
		dates = append(dates, g.Date)
	}
	want := []string{"2024-06-16", "2024-06-10", "2024-06-08", "2024-06-02", "2024-05-31"}
	if len(dates) != len(want) {
		t.Fatalf("dates = %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}

	flat := Flatten(groups)
	if len(flat) != len(sample()) {
		t.Fatalf("flattened %d entries, want %d", len(flat), len(sample()))
	}
	for i := 1; i < len(flat); i++ {
		prev, cur := flat[i-1], flat[i]
		if cur.Date > prev.Date || (cur.Date == prev.Date && cur.InputTime > prev.InputTime) {
			t.Fatalf("flattened output not sorted at %d: %+v after %+v", i, cur, prev)
		}
	}
}

func TestGroupChronologicalDoesNotMutate(t *testing.T) {
	in := sample()
	GroupChronological(in)
	sameIDs(t, in, "a", "b", "c", "d", "e", "f")
}

func TestGroupChronologicalEmpty(t *testing.T) {
	if got := GroupChronological(nil); len(got) != 0 {
		t.Fatalf("expected no groups, got %d", len(got))
	}
}
