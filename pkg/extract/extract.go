// Package extract derives normalized monetary amounts from free text
// produced by OCR or PDF text layers.
package extract

import "regexp"

// amountRE matches amount-shaped substrings: an optional currency symbol,
// then either grouped digits (1-3 digits plus dot/comma separated 3-digit
// groups, with an optional 2-digit decimal tail) or plain digits with a
// mandatory 2-digit decimal tail. Captures 1.234,56 / 1,234.56 / 1234.56 /
// $10.000.
var amountRE = regexp.MustCompile(`[$€]?\s?(?:\d{1,3}(?:[.,]\d{3})+(?:[.,]\d{2})?|\d+[.,]\d{2})`)

// truncatedRE flags a digit run cut off after a single fractional digit
// (e.g. "1234,5"), a common artifact of lossy PDF text layers and OCR.
var truncatedRE = regexp.MustCompile(`\d[.,]\d(?:[^\d]|$)`)

// FindAmounts scans text for monetary amounts and returns each one as a
// canonical two-decimal string, in order of appearance, duplicates kept.
// Matches that fail to normalize are skipped; extraction is best-effort,
// not validation.
func FindAmounts(text string) []string {
	var out []string
	for _, m := range amountRE.FindAllString(text, -1) {
		d, err := normalizeMatch(m)
		if err != nil {
			continue
		}
		out = append(out, d.StringFixed(2))
	}
	return out
}

// LooksTruncated reports whether text contains an amount that appears cut
// off mid-decimal. Callers use it to decide whether to escalate to a
// higher-quality extraction pass.
func LooksTruncated(text string) bool {
	return truncatedRE.MatchString(text)
}
