package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// countSentinels are textual visitor values that mean "no figure".
var countSentinels = []string{"미집계", "최초행사"}

// CleanCount converts a raw visitor value to a non-negative integer.
// Thousands separators are stripped, sentinels and unparseable values
// become 0. Cleaning an already-clean count returns it unchanged.
func CleanCount(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return nonNegative(x)
	case int64:
		return nonNegative(int(x))
	case float64:
		return floatToCount(x)
	case string:
		return cleanCountString(x)
	default:
		return cleanCountString(fmt.Sprint(x))
	}
}

func cleanCountString(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	for _, sentinel := range countSentinels {
		if strings.Contains(s, sentinel) {
			return 0
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return nonNegative(n)
	}
	// Spreadsheet exports sometimes write counts as "1200.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return floatToCount(f)
}

// ParseMonth converts a raw start-month value to 1-12, or 0 when the value
// is blank, non-numeric or out of range. A trailing "월" is accepted.
func ParseMonth(v any) int {
	var m int
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		m = x
	case int64:
		m = int(x)
	case float64:
		m = floatToCount(x)
	case string:
		m = CleanCount(strings.TrimSuffix(strings.TrimSpace(x), "월"))
	default:
		m = CleanCount(fmt.Sprint(x))
	}
	if m < 1 || m > 12 {
		return 0
	}
	return m
}

// SizeMetric compresses a visitor count into a marker size. The +1 offset
// keeps zero-visitor festivals visible.
func SizeMetric(visitors int) float64 {
	return math.Log1p(float64(nonNegative(visitors))) + 1
}

func floatToCount(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt {
		return 0
	}
	return int(f)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
