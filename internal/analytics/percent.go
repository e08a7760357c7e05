package analytics

import (
	"fmt"
	"math"
)

// Round rounds half up (towards +Inf), so Round(-2.5) == -2.
func Round(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// PercentChange formats the change from prev to curr as a signed whole
// percentage ("+12%", "-3%"). It returns "0%" whenever prev <= 0.
func PercentChange(curr, prev float64) string {
	if prev <= 0 {
		return "0%"
	}
	return SignedPercent(Round((curr - prev) / prev * 100))
}

// SignedPercent renders p with a leading "+" when p >= 0.
func SignedPercent(p int64) string {
	if p >= 0 {
		return fmt.Sprintf("+%d%%", p)
	}
	return fmt.Sprintf("%d%%", p)
}

// Ratio returns part/whole*100, or 0 when whole is 0.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
