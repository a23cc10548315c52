// Package pricing turns scraped price strings into INR amounts.
//
// ParsePrice is a lossy heuristic: it keeps only digits and dots, so
// "$1,234.56" parses as 1234.56 but a European "1.234,56" becomes 1.23456
// and anything with more than one dot left over ("1.2.3") becomes 0.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// DefaultUSDToINR fixed exchange rate used when none is configured
const DefaultUSDToINR = 86.0

// ParsePrice extracts a non-negative number from a noisy price string.
// It never fails; unparsable input yields 0.
func ParsePrice(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// Convert multiplies amount by rate and rounds to 2 decimals, halves away
// from zero.
func Convert(amount, rate float64) float64 {
	return math.Round(amount*rate*100) / 100
}
