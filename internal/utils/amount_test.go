package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"250", "250", true},
		{" 99.50 ", "99.5", true},
		{"₹1,234.50", "1234.5", true},
		{"Rs. 250", "250", true},
		{"12,34,567", "1234567", true},
		{"1 234,50", "1234.5", true},
		{"1.234,50", "1234.5", true},
		{"197,5", "197.5", true},
		{"(100)", "-100", true},
		{"-5", "-5", true},
		{"", "0", false},
		{"n/a", "0", false},
		{"nan", "0", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseAmount(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 5, ParseQuantity("5"))
	assert.Equal(t, 12, ParseQuantity("12.9"))
	assert.Equal(t, 0, ParseQuantity("-3"))
	assert.Equal(t, 0, ParseQuantity(""))
	assert.Equal(t, 1500, ParseQuantity("1,500"))
}
