package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRate is the therapist share of the price in percentage mode.
var DefaultRate = decimal.RequireFromString("0.30")

var embeddedPrice = regexp.MustCompile(`: ([\d.]+)\s*$`)

// ParseEmbeddedPrice reads the price written at the end of a treatment label,
// as in "Facial: 100.000". Dots are thousands separators; there is no decimal part.
func ParseEmbeddedPrice(label string) (int64, bool) {
	m := embeddedPrice.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	digits := strings.ReplaceAll(m[1], ".", "")
	if digits == "" {
		return 0, false
	}
	price, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// PercentOf returns price × rate rounded half up to a whole amount.
func PercentOf(price int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(price).Mul(rate).Round(0).IntPart()
}

// BaseTreatmentName strips an embedded price: "Facial: 100.000" -> "Facial".
func BaseTreatmentName(label string) string {
	name, _, _ := strings.Cut(label, ":")
	return strings.TrimSpace(name)
}
