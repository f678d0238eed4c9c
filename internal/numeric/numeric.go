// Package numeric coerces loosely typed wizard values into numbers.
package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Clamp coerces a number or numeric string into a finite float64.
// Thousands-separator commas are stripped and any trailing text after the
// leading number is ignored. ok is false for blank, non-numeric or
// non-finite input.
func Clamp(v any) (n float64, ok bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		n = x
	case float32:
		n = float64(x)
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case int32:
		n = float64(x)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(x, ",", ""))
		match := leadingNumber.FindString(s)
		if match == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
