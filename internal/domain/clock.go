package domain

import (
	"strconv"
	"strings"
)

// ValidClockTime reports whether s is a 24-hour "HH:MM" clock time, the
// format medication schedule times are stored in. Both fields must be
// exactly two digits; signs and spaces are rejected.
func ValidClockTime(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if len(p) != 2 {
			return false
		}
		for i := 0; i < len(p); i++ {
			if p[i] < '0' || p[i] > '9' {
				return false
			}
		}
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h <= 23 && m <= 59
}
