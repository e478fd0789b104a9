package brl

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"5000", "5.000,00"},
		{"1234.5", "1.234,50"},
		{"1234567.89", "1.234.567,89"},
		{"999.999", "1.000,00"},
		{"-1234.56", "-1.234,56"},
		{"-0.01", "-0,01"},
		{"120", "120,00"},
	}
	for _, tc := range cases {
		d := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.want, Format(d), "input %s", tc.in)
	}
}
