package domain

import "testing"

func TestValidClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"08:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"8:00", false},
		{"08:0", false},
		{"0800", false},
		{"ab:cd", false},
		{"", false},
		{"08:00:00", false},
		{"-1:30", false},
		{"+5:30", false},
		{"+1:30", false},
		{"1 :30", false},
	}
	for _, tc := range tests {
		if got := ValidClockTime(tc.in); got != tc.want {
			t.Errorf("ValidClockTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
