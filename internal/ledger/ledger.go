package ledger

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sadopc/komisi/internal/clock"
	"github.com/sadopc/komisi/internal/log"
)

// SnapshotKey is the storage slot holding the serialized collection.
const SnapshotKey = "komisiLogs"

// Store is the persistence port: one slot holding the whole collection.
// LoadSnapshot returns nil data when the slot has never been written.
type Store interface {
	LoadSnapshot(key string) ([]byte, error)
	SaveSnapshot(key string, data []byte) error
}

// Ledger owns the in-memory collection and writes it back to the store
// after every mutation.
type Ledger struct {
	store   Store
	clock   *clock.Clock
	catalog Catalog
	mode    Mode
	rate    decimal.Decimal
	log     *log.Logger
	newID   func() string

	entries []LogEntry
}

type Option func(*Ledger)

func WithCatalog(c Catalog) Option { return func(l *Ledger) { l.catalog = c } }

func WithMode(m Mode) Option { return func(l *Ledger) { l.mode = m } }

func WithRate(r decimal.Decimal) Option { return func(l *Ledger) { l.rate = r } }

func WithLogger(lg *log.Logger) Option { return func(l *Ledger) { l.log = lg } }

// WithIDs replaces the id generator.
func WithIDs(fn func() string) Option { return func(l *Ledger) { l.newID = fn } }

// New returns an empty ledger. Call Load to populate it from the store.
func New(store Store, clk *clock.Clock, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		clock:   clk,
		catalog: DefaultCatalog,
		mode:    ModeCatalog,
		rate:    DefaultRate,
		log:     log.Discard(),
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load replaces the in-memory collection with the stored snapshot. On
// failure the ledger keeps its current (possibly empty) collection.
func (l *Ledger) Load() error {
	data, err := l.store.LoadSnapshot(SnapshotKey)
	if err != nil {
		l.log.Error("load ledger", "error", err)
		return fmt.Errorf("load ledger: %w: %w", ErrStorageUnavailable, err)
	}
	entries, err := decodeSnapshot(data)
	if err != nil {
		l.log.Error("decode ledger", "error", err)
		return fmt.Errorf("load ledger: %w: %w", ErrStorageUnavailable, err)
	}
	l.entries = entries
	l.log.Info("ledger loaded", "entries", len(entries))
	return nil
}

func (l *Ledger) save() error {
	data, err := encodeSnapshot(l.entries)
	if err != nil {
		return fmt.Errorf("save ledger: %w: %w", ErrStorageUnavailable, err)
	}
	if err := l.store.SaveSnapshot(SnapshotKey, data); err != nil {
		l.log.Error("save ledger", "error", err, "entries", len(l.entries))
		return fmt.Errorf("save ledger: %w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (l *Ledger) Clock() *clock.Clock { return l.clock }
func (l *Ledger) Catalog() Catalog    { return l.catalog }
func (l *Ledger) Mode() Mode          { return l.mode }
func (l *Ledger) SetMode(m Mode)      { l.mode = m }

// Rate is the share of the price paid as commission in percentage mode.
func (l *Ledger) Rate() decimal.Decimal { return l.rate }

// Resolve fills in the price and commission the ledger would record for in.
// A catalog match sets the commission. Otherwise a supplied commission is
// kept, and in percentage mode a missing one is derived from the price,
// which in turn may come from the label.
func (l *Ledger) Resolve(in Input) (price, commission int64) {
	price, commission = in.Price, in.Commission
	if l.mode == ModePercentage && price <= 0 {
		if p, ok := ParseEmbeddedPrice(in.TreatmentName); ok {
			price = p
		}
	}
	if t, ok := l.catalog.Lookup(in.TreatmentName); ok {
		return price, t.Commission
	}
	if commission <= 0 && l.mode == ModePercentage && price > 0 {
		commission = PercentOf(price, l.rate)
	}
	return price, commission
}

// Validate checks in without touching the collection.
func (l *Ledger) Validate(in Input) error {
	in = trimInput(in)
	price, commission := l.Resolve(in)

	if in.Date == "" {
		return &FieldError{Field: "date"}
	}
	if in.TreatmentName == "" {
		return &FieldError{Field: "treatment"}
	}
	if l.mode == ModePercentage {
		if in.Therapist == "" {
			return &FieldError{Field: "therapist"}
		}
		if price <= 0 {
			return &FieldError{Field: "price"}
		}
	}
	if commission <= 0 {
		return &FieldError{Field: "commission"}
	}

	if _, err := clock.ParseDate(in.Date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, in.Date)
	}
	if in.Date > l.clock.Today() {
		return fmt.Errorf("%w: %s", ErrFutureDate, in.Date)
	}
	return nil
}

// Add validates in, appends a new entry and persists the collection. When
// only the save fails, the entry is kept in memory and returned together with
// an error wrapping ErrStorageUnavailable.
func (l *Ledger) Add(in Input) (LogEntry, error) {
	in = trimInput(in)
	if err := l.Validate(in); err != nil {
		return LogEntry{}, err
	}
	price, commission := l.Resolve(in)

	now := l.clock.Now()
	e := LogEntry{
		ID:            l.newID(),
		Date:          in.Date,
		InputTime:     now.Format(clock.TimeLayout),
		Therapist:     in.Therapist,
		TreatmentName: in.TreatmentName,
		Commission:    commission,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	if l.mode == ModePercentage {
		e.Price = price
	}

	l.entries = append(l.entries, e)
	l.log.Info("entry added", "id", e.ID, "date", e.Date, "treatment", e.TreatmentName, "commission", e.Commission)

	if err := l.save(); err != nil {
		return e, err
	}
	return e, nil
}

// Delete removes the entry with id. An unknown id is not an error; the
// collection is persisted either way.
func (l *Ledger) Delete(id string) error {
	kept := l.entries[:0:0]
	for _, e := range l.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) != len(l.entries) {
		l.log.Info("entry deleted", "id", id)
	}
	l.entries = kept
	return l.save()
}

// Get returns the entry with id.
func (l *Ledger) Get(id string) (LogEntry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return LogEntry{}, false
}

// Entries returns a copy of the collection in insertion order.
func (l *Ledger) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Ledger) Len() int { return len(l.entries) }

func (l *Ledger) EntriesOnDate(d string) []LogEntry { return OnDate(l.entries, d) }

func (l *Ledger) EntriesInMonth(yyyymm string) []LogEntry { return InMonth(l.entries, yyyymm) }

// EntriesInWeek returns the entries of the Sunday..Saturday week containing
// today shifted by offset weeks.
func (l *Ledger) EntriesInWeek(offset int) []LogEntry {
	start, end := l.clock.WeekBounds(offset)
	return Between(l.entries, start, end)
}

func (l *Ledger) EntriesInRange(start, end string) []LogEntry {
	return InRange(l.entries, start, end)
}

// TopTreatments counts treatments over the whole collection.
func (l *Ledger) TopTreatments(n int) []TreatmentCount {
	return TopTreatments(l.entries, n)
}

func trimInput(in Input) Input {
	in.Therapist = strings.TrimSpace(in.Therapist)
	in.Date = strings.TrimSpace(in.Date)
	in.TreatmentName = strings.TrimSpace(in.TreatmentName)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}
