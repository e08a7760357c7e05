package analytics

import (
	"strconv"
	"strings"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₹"

// GroupIndian formats n with Indian digit grouping: the last three digits,
// then groups of two (12,34,567).
func GroupIndian(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail
}

// FormatCurrency rounds amount and renders it as "₹12,34,567".
func FormatCurrency(amount float64) string {
	return CurrencySymbol + GroupIndian(Round(amount))
}
