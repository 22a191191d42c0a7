package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sadopc/komisi/internal/clock"
)

// memStore is an in-memory persistence port.
type memStore struct {
	slots   map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{slots: make(map[string][]byte)}
}

func (m *memStore) LoadSnapshot(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.slots[key], nil
}

func (m *memStore) SaveSnapshot(key string, data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.slots[key] = append([]byte(nil), data...)
	return nil
}

// testClock is fixed at Monday 2024-06-10 10:15:30 WIB.
func testClock() *clock.Clock {
	return clock.New(7).WithNow(func() time.Time {
		return time.Date(2024, 6, 10, 3, 15, 30, 0, time.UTC)
	})
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

func newTestLedger(t *testing.T, s Store, opts ...Option) *Ledger {
	t.Helper()
	opts = append([]Option{WithIDs(sequentialIDs())}, opts...)
	l := New(s, testClock(), opts...)
	if err := l.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return l
}

// ============================================================
// Entry creation
// ============================================================

func TestAddCatalogTreatment(t *testing.T) {
	l := newTestLedger(t, newMemStore())

	e, err := l.Add(Input{Date: "2024-06-10", TreatmentName: "Chair Refleksi 1 jam"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Commission != 30000 {
		t.Fatalf("commission = %d, want 30000", e.Commission)
	}
	if e.ID == "" {
		t.Fatal("expected id")
	}
	if e.InputTime != "10:15:30" {
		t.Fatalf("input time = %q, want 10:15:30", e.InputTime)
	}
	if e.Price != 0 {
		t.Fatalf("catalog mode should not record a price, got %d", e.Price)
	}

	month := l.EntriesInMonth("2024-06")
	if len(month) != 1 || month[0].ID != e.ID {
		t.Fatalf("EntriesInMonth = %+v, want only the new entry", month)
	}
}

func TestAddCatalogOverridesSuppliedCommission(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	e, err := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam", Commission: 1})
	if err != nil {
		t.Fatal(err)
	}
	if e.Commission != 67500 {
		t.Fatalf("commission = %d, want catalog value 67500", e.Commission)
	}
}

func TestAddFreeTextWithCommission(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	e, err := l.Add(Input{Date: "2024-06-09", TreatmentName: "Hot Stone", Commission: 40000, Notes: "  regular  "})
	if err != nil {
		t.Fatal(err)
	}
	if e.Commission != 40000 || e.Notes != "regular" {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestAddPercentageFromLabel(t *testing.T) {
	l := newTestLedger(t, newMemStore(), WithMode(ModePercentage))

	e, err := l.Add(Input{Therapist: "Sari", Date: "2024-06-10", TreatmentName: "Facial: 100.000"})
	if err != nil {
		t.Fatal(err)
	}
	if e.Price != 100000 {
		t.Fatalf("price = %d, want 100000", e.Price)
	}
	if e.Commission != 30000 {
		t.Fatalf("commission = %d, want 30000", e.Commission)
	}
}

func TestAddPercentageCustomRate(t *testing.T) {
	l := newTestLedger(t, newMemStore(), WithMode(ModePercentage), WithRate(decimal.RequireFromString("0.25")))

	e, err := l.Add(Input{Therapist: "Sari", Date: "2024-06-10", TreatmentName: "Massage", Price: 150000})
	if err != nil {
		t.Fatal(err)
	}
	if e.Commission != 37500 {
		t.Fatalf("commission = %d, want 37500", e.Commission)
	}
}

func TestAddPercentageKeepsManualCommission(t *testing.T) {
	l := newTestLedger(t, newMemStore(), WithMode(ModePercentage))
	e, err := l.Add(Input{Therapist: "Sari", Date: "2024-06-10", TreatmentName: "Facial: 100.000", Commission: 35000})
	if err != nil {
		t.Fatal(err)
	}
	if e.Commission != 35000 {
		t.Fatalf("commission = %d, want 35000", e.Commission)
	}
}

func TestAddMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		in    Input
		field string
	}{
		{"no date", ModeCatalog, Input{TreatmentName: "FB 2 jam"}, "date"},
		{"no treatment", ModeCatalog, Input{Date: "2024-06-10"}, "treatment"},
		{"blank treatment", ModeCatalog, Input{Date: "2024-06-10", TreatmentName: "   "}, "treatment"},
		{"unknown treatment without commission", ModeCatalog, Input{Date: "2024-06-10", TreatmentName: "Hot Stone"}, "commission"},
		{"no therapist", ModePercentage, Input{Date: "2024-06-10", TreatmentName: "Facial: 100.000"}, "therapist"},
		{"no price", ModePercentage, Input{Therapist: "Sari", Date: "2024-06-10", TreatmentName: "Facial"}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemStore()
			l := newTestLedger(t, s, WithMode(tt.mode))

			_, err := l.Add(tt.in)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("err = %v, want ErrMissingField", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Fatalf("err = %v, want field %q", err, tt.field)
			}
			if l.Len() != 0 {
				t.Fatal("entry should not be created")
			}
			if s.saves != 0 {
				t.Fatal("nothing should be persisted")
			}
		})
	}
}

func TestAddRejectsFutureDate(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	_, err := l.Add(Input{Date: "2024-06-11", TreatmentName: "FB 2 jam"})
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("err = %v, want ErrFutureDate", err)
	}
}

func TestAddRejectsMalformedDate(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	_, err := l.Add(Input{Date: "10-06-2024", TreatmentName: "FB 2 jam"})
	if !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	l := New(newMemStore(), testClock())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e, err := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
		if err != nil {
			t.Fatal(err)
		}
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddThenReload(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s, WithMode(ModePercentage))
	added, err := l.Add(Input{Therapist: "Sari", Date: "2024-06-08", TreatmentName: "Facial: 100.000", Notes: "first visit"})
	if err != nil {
		t.Fatal(err)
	}

	reloaded := New(s, testClock())
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	got, ok := reloaded.Get(added.ID)
	if !ok {
		t.Fatal("entry missing after reload")
	}
	if !got.CreatedAt.Equal(added.CreatedAt) {
		t.Fatalf("createdAt = %v, want %v", got.CreatedAt, added.CreatedAt)
	}
	got.CreatedAt, added.CreatedAt = time.Time{}, time.Time{}
	if got != added {
		t.Fatalf("reloaded %+v, want %+v", got, added)
	}
}

func TestAddKeepsEntryWhenSaveFails(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s)
	s.saveErr = errors.New("disk full")

	e, err := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
	if e.ID == "" {
		t.Fatal("entry should still be returned")
	}
	if l.Len() != 1 {
		t.Fatal("ledger should stay usable in memory")
	}
}

// ============================================================
// Deletion
// ============================================================

func TestDeleteIdempotent(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s)
	a, _ := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	b, _ := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 1,5 jam"})

	if err := l.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	once := l.Entries()
	if err := l.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	twice := l.Entries()

	if len(once) != 1 || len(twice) != 1 || twice[0].ID != b.ID {
		t.Fatalf("after deletes: %+v / %+v", once, twice)
	}
	if _, ok := l.Get(a.ID); ok {
		t.Fatal("deleted entry still present")
	}
}

func TestDeleteUnknownStillPersists(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s)
	if err := l.Delete("missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}
	if s.saves != 1 {
		t.Fatalf("saves = %d, want 1", s.saves)
	}
}

func TestDeleteReportsStorageFailure(t *testing.T) {
	s := newMemStore()
	l := newTestLedger(t, s)
	e, _ := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})
	s.saveErr = errors.New("read-only")

	if err := l.Delete(e.ID); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
	if l.Len() != 0 {
		t.Fatal("delete should apply in memory")
	}
}

// ============================================================
// Loading
// ============================================================

func TestLoadEmptyStore(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	if l.Len() != 0 {
		t.Fatal("expected empty ledger")
	}
}

func TestLoadFailure(t *testing.T) {
	s := newMemStore()
	s.loadErr = errors.New("locked")
	l := New(s, testClock())

	if err := l.Load(); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
	if _, err := l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"}); err != nil {
		t.Fatalf("ledger should be usable after failed load: %v", err)
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	s := newMemStore()
	s.slots[SnapshotKey] = []byte("{not json")
	if err := New(s, testClock()).Load(); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestLoadBackfillsLegacyRecords(t *testing.T) {
	s := newMemStore()
	s.slots[SnapshotKey] = []byte(`[
		{"id":"1718000000000","therapistName":"Sari","date":"2024-06-10","inputTime":"09:00",
		 "treatmentType":"Facial: 100.000","price":100000,"commission":30000,"notes":"",
		 "createdAt":"2024-06-10T09:00:00.000Z"},
		{"id":"1718000000001","date":"2024-06-09","day":1,"treatmentName":"FB 2 jam","commission":67500}
	]`)

	l := newTestLedger(t, s)
	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(entries))
	}
	if entries[0].TreatmentName != "Facial: 100.000" {
		t.Fatalf("treatmentType not migrated: %+v", entries[0])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("createdAt not parsed")
	}
	if entries[1].InputTime != MissingInputTime {
		t.Fatalf("input time = %q, want %q", entries[1].InputTime, MissingInputTime)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	l := newTestLedger(t, newMemStore())
	l.Add(Input{Date: "2024-06-10", TreatmentName: "FB 2 jam"})

	got := l.Entries()
	got[0].Commission = 1
	if e := l.Entries()[0]; e.Commission != 67500 {
		t.Fatal("Entries should not expose internal storage")
	}
}

func TestSetMode(t *testing.T) {
	l := New(newMemStore(), testClock())
	if l.Mode() != ModeCatalog {
		t.Fatalf("default mode = %q", l.Mode())
	}
	l.SetMode(ModePercentage)
	if l.Mode() != ModePercentage {
		t.Fatal("mode not changed")
	}
}

func TestResolvePreview(t *testing.T) {
	l := New(newMemStore(), testClock(), WithMode(ModePercentage))
	price, commission := l.Resolve(Input{TreatmentName: "Body Scrub: 85.000"})
	if price != 85000 || commission != 25500 {
		t.Fatalf("Resolve = %d/%d, want 85000/25500", price, commission)
	}
}
