package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ParseAmount coerces a monetary or meter-reading input at the API boundary.
// Blank means zero; anything else must parse as a non-negative decimal.
// Amounts are never trusted as already-numeric JSON.
func ParseAmount(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: not a number", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", field)
	}
	return v, nil
}

// ParseIntDefault parses a non-negative integer, falling back to def.
func ParseIntDefault(s string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && v >= 0 {
		return v
	}
	return def
}
