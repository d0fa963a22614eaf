package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a recognized currency string ("$1,234.56") into a
// decimal. The boolean result reports whether the string held a usable
// amount; malformed input never panics.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, "$", "")
	amount = strings.ReplaceAll(amount, ",", "")
	amount = strings.ReplaceAll(amount, " ", "")
	if amount == "" {
		return decimal.Zero, false
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil || dec.IsNegative() {
		return decimal.Zero, false
	}
	return dec, true
}

// FormatAmount renders a decimal as the fixed two-decimal currency string
// written to ledger cells, with thousands separators: "$1,234.56".
func FormatAmount(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var grouped strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	out := "$" + grouped.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// CentTolerance is the permitted difference between two independently rounded
// monetary figures when cross-checking amounts from separate screenshots.
var CentTolerance = decimal.New(1, -2)

// WithinOneCent reports whether a and b differ by less than one cent.
func WithinOneCent(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(CentTolerance)
}
