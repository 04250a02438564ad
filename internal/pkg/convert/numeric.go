// Package convert turns the decimal strings exchanges return into numbers.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a numeric exchange field; field names the value in errors.
func ParseFloat(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("field %s is empty", field)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", field, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("field %s is not a finite number: %q", field, trimmed)
	}
	return f, nil
}

// DecimalPlaces counts the significant fractional digits of a tick or step
// string: "0.01000" -> 2, "1.0" -> 0, "0.5" -> 1.
func DecimalPlaces(raw string) int {
	s := strings.TrimSpace(raw)
	idx := strings.IndexByte(s, '.')
	if idx < 0 {
		return 0
	}
	frac := strings.TrimRight(s[idx+1:], "0")
	return len(frac)
}
