package domain

import (
	"testing"
	"time"
)

func TestTimeOfDay_SecondsAndValid(t *testing.T) {
	cases := []struct {
		in      TimeOfDay
		seconds int
		valid   bool
	}{
		{TimeOfDay{0, 0, 0}, 0, true},
		{TimeOfDay{8, 0, 0}, 28800, true},
		{TimeOfDay{23, 59, 59}, 86399, true},
		{TimeOfDay{24, 0, 0}, 86400, false},
		{TimeOfDay{-1, 0, 0}, -3600, false},
		{TimeOfDay{12, 60, 0}, 46800, false},
		{TimeOfDay{12, 0, 60}, 43260, false},
	}
	for _, tc := range cases {
		if got := tc.in.Seconds(); got != tc.seconds {
			t.Fatalf("%v.Seconds() = %d; want %d", tc.in, got, tc.seconds)
		}
		if got := tc.in.Valid(); got != tc.valid {
			t.Fatalf("%v.Valid() = %v; want %v", tc.in, got, tc.valid)
		}
	}
}

func TestTimeOfDay_Ordering(t *testing.T) {
	a := TimeOfDay{8, 0, 0}
	b := TimeOfDay{8, 0, 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("Before ordering is wrong")
	}
	if !a.SameMinute(TimeOfDay{8, 0, 59}) || a.SameMinute(TimeOfDay{8, 1, 0}) {
		t.Fatalf("SameMinute is wrong")
	}
}

func TestClockOf(t *testing.T) {
	tm := time.Date(2024, 3, 9, 7, 45, 12, 0, time.UTC)
	if got := ClockOf(tm); got != (TimeOfDay{7, 45, 12}) {
		t.Fatalf("ClockOf = %v", got)
	}
	if got := ClockOf(tm).String(); got != "07:45:12" {
		t.Fatalf("String = %q", got)
	}
}

func TestClockFromSeconds(t *testing.T) {
	for _, c := range []TimeOfDay{{0, 0, 0}, {7, 45, 12}, {23, 59, 58}, {23, 59, 59}} {
		if got := ClockFromSeconds(c.Seconds()); got != c {
			t.Fatalf("ClockFromSeconds(%d) = %v, want %v", c.Seconds(), got, c)
		}
	}
}
