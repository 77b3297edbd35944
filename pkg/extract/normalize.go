package extract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeMatch converts one raw amount match into a decimal value.
//
// Separator rule, applied in order:
//  1. Both '.' and ',' present: the last separator in the match is the
//     decimal mark, every earlier separator is grouping.
//  2. A single separator type occurring more than once: all grouping.
//  3. One separator followed by exactly three digits: grouping.
//  4. Otherwise the separator is the decimal mark.
func normalizeMatch(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "$€ ")
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decIdx := lastDot
		if lastComma > lastDot {
			decIdx = lastComma
		}
		s = onlyDigits(s[:decIdx]) + "." + s[decIdx+1:]
	case lastDot >= 0:
		s = normalizeSingleSep(s, ".", lastDot)
	case lastComma >= 0:
		s = normalizeSingleSep(s, ",", lastComma)
	}
	return decimal.NewFromString(s)
}

func normalizeSingleSep(s, sep string, last int) string {
	frac := s[last+1:]
	if strings.Count(s, sep) > 1 || len(frac) == 3 {
		return onlyDigits(s)
	}
	return onlyDigits(s[:last]) + "." + frac
}

// onlyDigits extracts decimal digits from a string.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
