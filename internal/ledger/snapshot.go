package ledger

import (
	"encoding/json"
	"fmt"
)

// storedEntry accepts records written by older versions, which called the
// treatment "treatmentType" and did not always record an input time.
type storedEntry struct {
	LogEntry
	TreatmentType string `json:"treatmentType,omitempty"`
}

func encodeSnapshot(entries []LogEntry) ([]byte, error) {
	if entries == nil {
		entries = []LogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) ([]LogEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var stored []storedEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	entries := make([]LogEntry, 0, len(stored))
	for _, s := range stored {
		e := s.LogEntry
		if e.TreatmentName == "" {
			e.TreatmentName = s.TreatmentType
		}
		if e.InputTime == "" {
			e.InputTime = MissingInputTime
		}
		entries = append(entries, e)
	}
	return entries, nil
}
