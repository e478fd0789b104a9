// Package brl formats decimal amounts in the Brazilian convention used by
// the Receita Federal statement: two fixed decimals, comma decimal
// separator, dot thousands separator.
package brl

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders d as "1.234,56". The value is rounded to two decimals at
// the formatting boundary only; callers keep full precision.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
