package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// Treatment is a catalog item with its fixed commission.
type Treatment struct {
	Name       string
	Commission int64
}

// Catalog is the ordered list of treatments offered.
type Catalog []Treatment

// DefaultCatalog is the treatment menu with commissions in rupiah.
var DefaultCatalog = Catalog{
	{"Chair Refleksi 1 jam", 30000},
	{"Chair Refleksi 1,5 jam", 45000},
	{"Chair Refleksi 2 jam", 60000},
	{"FB 1,5 jam", 52500},
	{"FB 2 jam", 67500},
	{"FB + Lulur 1,5 jam", 67500},
	{"FB + Lulur 2 jam", 82500},
	{"FB + Totok Wajah 1,5 jam", 61500},
	{"FB + Totok Wajah 2 jam", 76500},
	{"FB + Kerokan 1,5 jam", 61500},
	{"FB + Kerokan 2 jam", 76500},
	{"FB + Refleksi 1,5 jam", 61500},
	{"FB + Refleksi 2 jam", 76500},
	{"Sport Massage 1 jam", 45000},
	{"Sport Massage 1,5 jam", 58500},
	{"Prenatal 1,5 jam", 67500},
	{"Prenatal 2 jam", 76500},
	{"Prenatal + Lulur 1,5 jam", 75000},
	{"Prenatal + Lulur 2 jam", 93750},
	{"Post Natal 1 jam", 52500},
	{"Pijat Laktasi 30 menit", 45000},
	{"Bengkung 30 menit", 37500},
	{"Post Natal Paket 2 jam", 127500},
	{"Brazilian Lympatic 1 jam", 157750},
	{"Brazilian Lympatic 1,5 jam", 228750},
	{"Facial Lympatic 30 menit", 52500},
	{"Manual Lympatic 1 jam", 116250},
	{"Add on FB 30 menit", 16500},
	{"Add on FB 1 jam", 33500},
	{"Add on Lulur 30 menit", 30000},
	{"Add on Totok Wajah 30 menit", 24000},
	{"Add on Kerokan 30 menit", 24000},
	{"Add on Refleksi FB 30 menit", 24000},
	{"Add on Refleksi Chair 30 menit", 18000},
}

// Lookup finds a treatment by its exact name.
func (c Catalog) Lookup(name string) (Treatment, bool) {
	for _, t := range c {
		if t.Name == name {
			return t, true
		}
	}
	return Treatment{}, false
}

// Search returns the treatments whose name contains query, ignoring case.
// An empty query matches everything.
func (c Catalog) Search(query string) Catalog {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return c
	}
	var out Catalog
	for _, t := range c {
		if strings.Contains(fold.String(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}
