package util

import (
	"math"
	"strconv"
	"strings"
)

// MaxQuantity caps parsed quantities so they fit an int on every platform.
const MaxQuantity = math.MaxInt32

func parseNumber(input string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(input, "\u00A0", " "))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampQty(v float64) int {
	if v > MaxQuantity {
		return MaxQuantity
	}
	return int(v)
}

// ParseQtyHint reads a quantity column cell. Only finite numbers that floor to
// at least one produce a hint.
func ParseQtyHint(cell string) *int {
	v, ok := parseNumber(cell)
	if !ok || v <= 0 {
		return nil
	}
	q := clampQty(math.Floor(v))
	if q < 1 {
		return nil
	}
	return IntPtr(q)
}

// CoerceQuantity turns user input into a selection quantity. Anything that is
// not a finite positive number becomes 1.
func CoerceQuantity(raw string) int {
	v, ok := parseNumber(raw)
	if !ok || v == 0 {
		return 1
	}
	q := math.Floor(v)
	if q < 1 {
		return 1
	}
	return clampQty(q)
}
