package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock instant within a day. Sessions store their
// window as two of these rather than as absolute timestamps so the same
// automatic session fires every day.
type TimeOfDay struct {
	Hour   int `json:"heures"   gorm:"not null;default:0"`
	Minute int `json:"minutes"  gorm:"not null;default:0"`
	Second int `json:"secondes" gorm:"not null;default:0"`
}

// ClockOf returns the time-of-day of t in t's location.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ClockFromSeconds is the inverse of Seconds for n within one day.
func ClockFromSeconds(n int) TimeOfDay {
	return TimeOfDay{Hour: n / 3600, Minute: n % 3600 / 60, Second: n % 60}
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Valid reports whether every component is within range
// (hour 0–23, minute 0–59, second 0–59).
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// Before reports whether t is strictly earlier than u in seconds-of-day.
func (t TimeOfDay) Before(u TimeOfDay) bool { return t.Seconds() < u.Seconds() }

// SameMinute reports whether t and u share hour and minute.
func (t TimeOfDay) SameMinute(u TimeOfDay) bool {
	return t.Hour == u.Hour && t.Minute == u.Minute
}

// String renders t as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
