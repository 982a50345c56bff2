package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "zero", amount: 0, expected: "0,00"},
		{name: "two decimals kept", amount: 85.5, expected: "85,50"},
		{name: "rounded to two decimals", amount: 45.555, expected: "45,56"},
		{name: "thousands separator", amount: 20249, expected: "20.249,00"},
		{name: "NaN renders placeholder", amount: math.NaN(), expected: "0,00"},
		{name: "infinity renders placeholder", amount: math.Inf(1), expected: "0,00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.amount))
		})
	}
}

func TestFormatCurrencyPtr(t *testing.T) {
	assert.Equal(t, "0,00", FormatCurrencyPtr(nil))

	v := 1234.5
	got := FormatCurrencyPtr(&v)
	assert.Contains(t, got, ",50")
}
