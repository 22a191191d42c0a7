package export

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sadopc/komisi/internal/ledger"
)

// bom marks the file as UTF-8 for spreadsheet apps.
const bom = "\ufeff"

var (
	catalogHeader    = []string{"No", "Tanggal", "Waktu Input", "Nama Treatment", "Komisi", "Catatan"}
	percentageHeader = []string{"No", "Tanggal", "Waktu Input", "Nama Terapis", "Jenis Treatment", "Harga", "Komisi", "Catatan"}
)

// Header returns the CSV column names for mode.
func Header(mode ledger.Mode) []string {
	if mode == ledger.ModePercentage {
		return percentageHeader
	}
	return catalogHeader
}

// ToCSV writes entries to path in display order (newest date first) with a
// running row number. Every cell is quoted.
func ToCSV(entries []ledger.LogEntry, mode ledger.Mode, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(bom); err != nil {
		return err
	}
	writeRow(w, Header(mode))

	rows := ledger.Flatten(ledger.GroupChronological(entries))
	for i, e := range rows {
		writeRow(w, csvRow(i+1, e, mode))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write csv file: %w", err)
	}
	return nil
}

func csvRow(n int, e ledger.LogEntry, mode ledger.Mode) []string {
	no := strconv.Itoa(n)
	commission := strconv.FormatInt(e.Commission, 10)
	if mode == ledger.ModePercentage {
		return []string{
			no,
			e.Date,
			e.InputTime,
			e.Therapist,
			e.TreatmentName,
			strconv.FormatInt(e.Price, 10),
			commission,
			e.Notes,
		}
	}
	return []string{no, e.Date, e.InputTime, e.TreatmentName, commission, e.Notes}
}

// writeRow quotes every cell, doubling embedded quotes. Errors surface on
// Flush.
func writeRow(w *bufio.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(c, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}
