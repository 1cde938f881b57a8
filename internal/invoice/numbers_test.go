package invoice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ailurophile47/invoice-qc/internal/invoice"
)

func TestNormalizeNumberGerman(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"thousands and decimal", "1.285,20", 1285.20},
		{"decimal only", "170,10", 170.10},
		{"plain integer", "1285", 1285},
		{"thousands separator only", "1.285", 1285},
		{"currency symbol stripped", "€1.285,20", 1285.20},
		{"negative amount", "-42,50", -42.50},
		{"multiple thousands groups", "1.234.567,89", 1234567.89},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := invoice.NormalizeNumber(tc.in, invoice.LanguageGerman)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestNormalizeNumberEnglish(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"thousands and decimal", "1,285.20", 1285.20},
		{"decimal only", "170.10", 170.10},
		{"plain integer", "2", 2},
		{"multiple thousands groups", "1,234,567.89", 1234567.89},
		{"currency symbol stripped", "$99.95", 99.95},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := invoice.NormalizeNumber(tc.in, invoice.LanguageEnglish)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestNormalizeNumberLocaleEquivalence(t *testing.T) {
	de, okDE := invoice.NormalizeNumber("1.285,20", invoice.LanguageGerman)
	require.True(t, okDE)
	en, okEN := invoice.NormalizeNumber("1,285.20", invoice.LanguageEnglish)
	require.True(t, okEN)
	assert.Equal(t, de, en)
}

func TestNormalizeNumberRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		in   string
		lang invoice.Language
	}{
		{"empty string", "", invoice.LanguageEnglish},
		{"letters only", "abc", invoice.LanguageEnglish},
		{"separators only", "..", invoice.LanguageGerman},
		{"ambiguous english", "1.2.3", invoice.LanguageEnglish},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := invoice.NormalizeNumber(tc.in, tc.lang)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeNumberGermanCollapsesBarePeriods(t *testing.T) {
	// Without a decimal comma every period is a thousands separator.
	got, ok := invoice.NormalizeNumber("1.2.3", invoice.LanguageGerman)
	require.True(t, ok)
	assert.InDelta(t, 123.0, got, 1e-9)
}
