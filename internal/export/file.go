package export

import (
	"path/filepath"
	"strings"
)

const filePrefix = "komisi-treatment-"

// FileName is the export file name for the given business date and
// extension, e.g. "komisi-treatment-2024-06-10.csv".
func FileName(date, ext string) string {
	return filePrefix + date + "." + strings.TrimPrefix(ext, ".")
}

// PathIn joins FileName onto dir.
func PathIn(dir, date, ext string) string {
	return filepath.Join(dir, FileName(date, ext))
}
