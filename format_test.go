package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatImporte(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0,00"},
		{"1234.5", "$1.234,50"},
		{"1000000", "$1.000.000,00"},
		{"999.99", "$999,99"},
		{"-1234.5", "$-1.234,50"},
		{"12345678.90", "$12.345.678,90"},
	}
	for _, c := range cases {
		got := formatImporte(decimal.RequireFromString(c.in))
		assert.Equal(t, c.want, got, "input %s", c.in)
	}
}

func TestAmountsSummary(t *testing.T) {
	assert.Equal(t, msgSinImportes, amountsSummary(nil))
	assert.Equal(t,
		"💵 Importes detectados: $1.234,56, $25,50",
		amountsSummary([]string{"1234.56", "25.50"}))
}
