package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/komisi/internal/ledger"
)

type jsonExport struct {
	ExportedAt      string            `json:"exported_at"`
	Mode            ledger.Mode       `json:"mode"`
	Count           int               `json:"count"`
	TotalCommission int64             `json:"total_commission"`
	Entries         []ledger.LogEntry `json:"entries"`
}

// ToJSON writes a pretty-printed backup of entries in display order.
func ToJSON(entries []ledger.LogEntry, mode ledger.Mode, path string) error {
	export := jsonExport{
		ExportedAt:      time.Now().UTC().Format(time.RFC3339),
		Mode:            mode,
		Count:           len(entries),
		TotalCommission: ledger.TotalCommission(entries),
		Entries:         ledger.Flatten(ledger.GroupChronological(entries)),
	}
	if export.Entries == nil {
		export.Entries = []ledger.LogEntry{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
