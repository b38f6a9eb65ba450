package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	amountScale = 2
	// NUMERIC(14, 2) leaves twelve integer digits.
	maxAmountIntegerDigits = 12
	// Inputs like "1.50000" carry zeros past the second decimal place.
	maxAmountTrailingZeros = 8
)

// cleanText trims surrounding whitespace and drops invalid UTF-8 bytes, which
// the SQL backends would otherwise reject.
func cleanText(s string) string {
	return strings.TrimSpace(sanitizeUTF8(s))
}

// checkAmount bounds the exponent and digit count of a money value before any
// arithmetic touches it. Rescaling a value such as 1e-100000000 never
// finishes, so Round must only run once the value is known to be small.
func checkAmount(field string, d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Decimal{}, invalid("%s is required", field)
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, invalid("%s must be greater than zero", field)
	}

	exp := int64(d.Exponent())
	if exp < -(amountScale + maxAmountTrailingZeros) {
		return decimal.Decimal{}, invalid("%s must have at most two decimal places", field)
	}
	if int64(d.NumDigits())+exp > maxAmountIntegerDigits {
		return decimal.Decimal{}, invalid("%s must be less than 10^%d", field, maxAmountIntegerDigits)
	}

	rounded := d.Round(amountScale)
	if !rounded.Equal(*d) {
		return decimal.Decimal{}, invalid("%s must have at most two decimal places", field)
	}
	return rounded, nil
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
