// Package utils provides common formatting and ticker helpers for finratios.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatCompact formats a reported amount in short-scale notation.
// e.g., 142610000000 → "142.61B", -2500000 → "-2.5M"
func FormatCompact(amount float64) string {
	if s, ok := nonFinite(amount); ok {
		return s
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	switch {
	case abs >= 1e12:
		return sign + formatWithDecimals(abs/1e12) + "T"
	case abs >= 1e9:
		return sign + formatWithDecimals(abs/1e9) + "B"
	case abs >= 1e6:
		return sign + formatWithDecimals(abs/1e6) + "M"
	case abs >= 1e3:
		return sign + formatWithDecimals(abs/1e3) + "K"
	default:
		return sign + formatWithDecimals(abs)
	}
}

// FormatRatio formats a ratio with two decimals.
// e.g., 13.4 → "13.40", NaN → "NaN", +Inf → "inf"
func FormatRatio(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return fmt.Sprintf("%.2f", v)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "inf", true
	case math.IsInf(v, -1):
		return "-inf", true
	}
	return "", false
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
