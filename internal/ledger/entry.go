// Package ledger holds the commission ledger: the ordered collection of
// treatment log entries and the rules for creating, removing and summarising
// them.
package ledger

import (
	"errors"
	"time"
)

// LogEntry is one logged treatment session. Entries are never edited in
// place; an edit is a delete followed by an add.
type LogEntry struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	InputTime     string    `json:"inputTime"`
	Therapist     string    `json:"therapistName,omitempty"`
	TreatmentName string    `json:"treatmentName"`
	Price         int64     `json:"price,omitempty"`
	Commission    int64     `json:"commission"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
}

// Label is the name shown on the numbered row of a report: the therapist
// when one was recorded, otherwise the treatment.
func (e LogEntry) Label() string {
	if e.Therapist != "" {
		return e.Therapist
	}
	return e.TreatmentName
}

// Input is what a user submits to create an entry.
type Input struct {
	Therapist     string
	Date          string
	TreatmentName string
	Price         int64
	Commission    int64
	Notes         string
}

// Mode selects how commissions are derived.
type Mode string

const (
	// ModeCatalog takes the commission from the treatment catalog.
	ModeCatalog Mode = "catalog"
	// ModePercentage takes a fixed share of the session price.
	ModePercentage Mode = "percentage"
)

// NoTreatment is returned by MostFrequentTreatment for an empty set.
const NoTreatment = "-"

// MissingInputTime backfills records saved before input times were captured.
const MissingInputTime = "-"

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate         = errors.New("date is after today")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// FieldError reports which required field was empty or zero.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *FieldError) Unwrap() error { return ErrMissingField }
