package utils

import "strings"

// NormalizeTicker normalizes a user-input ticker to Yahoo Finance form.
// It handles uppercasing, whitespace and a leading "$".
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	return strings.TrimPrefix(ticker, "$")
}

// BaseSymbol strips the exchange suffix ("BMW.DE" → "BMW").
func BaseSymbol(ticker string) string {
	ticker = NormalizeTicker(ticker)
	if i := strings.LastIndexByte(ticker, '.'); i >= 0 {
		return ticker[:i]
	}
	return ticker
}
