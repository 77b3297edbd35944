package extract

import "testing"

func TestNormalizeMatchStripDecimals(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"$ 10.000,00", "10000.00"},
		{"10.000", "10000.00"},
		{"1.234.567", "1234567.00"},
		{"25,50", "25.50"},
		{"€1234.56", "1234.56"},
	}
	for _, c := range cases {
		d, err := normalizeMatch(c.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.in, err)
		}
		if got := d.StringFixed(2); got != c.want {
			t.Fatalf("%q: expected %s got %s", c.in, c.want, got)
		}
	}
}

func TestNormalizeMatchRejectsEmpty(t *testing.T) {
	if _, err := normalizeMatch("$ "); err == nil {
		t.Fatal("expected error for match with no digits")
	}
}
