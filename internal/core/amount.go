// Package core provides the donation site's record types and the input
// validation boundary in front of the ledger.
//
// This file contains parsing of monetary amounts from form input. Amounts
// are whole currency units only; the ledger never rounds, so rounding never
// happens anywhere.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a decimal string into whole currency units.
//
// It accepts both dot (25.00) and comma (25,00) decimal separators, but the
// fractional part must be zero: amounts are whole units and nothing here is
// allowed to round. Returns ErrInvalidAmount for signs, fractions, junk,
// overflow, or non-positive values.
//
// Examples:
//
//	ParseAmount("250")    -> 250, nil
//	ParseAmount("250.00") -> 250, nil
//	ParseAmount("250.50") -> 0, ErrInvalidAmount
//	ParseAmount("-5")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	// A fractional part is tolerated only when it spells zero ("25.0").
	for _, r := range fracPart {
		if r != '0' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	a := Amount(v)
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a, nil
}
