package main

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatImporte renders a decimal the way the bot shows money: leading $,
// dot-grouped integer digits, comma decimals (e.g. $1.234.567,89).
func formatImporte(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	out := "$" + groupThousands(intPart) + "," + fracPart
	if neg {
		out = "$-" + out[1:]
	}
	return out
}

// groupThousands inserts dot separators every 3 digits.
func groupThousands(ds string) string {
	n := len(ds)
	if n <= 3 {
		return ds
	}
	var parts []string
	for n > 3 {
		parts = append([]string{ds[n-3:]}, parts...)
		ds = ds[:n-3]
		n = len(ds)
	}
	parts = append([]string{ds}, parts...)
	return strings.Join(parts, ".")
}
