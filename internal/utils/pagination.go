// Package utils provides small query-string helpers shared by handlers.
// They carry no domain logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrBadNumber is returned by PositiveInt for values that are not integers
// greater than zero.
var ErrBadNumber = errors.New("not a positive integer")

// ErrBadDate is returned by ParseDate for unparseable dates.
var ErrBadDate = errors.New("invalid date")

// PositiveInt parses a page or limit parameter. Empty yields def; anything
// else must be an integer >= 1.
func PositiveInt(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, ErrBadNumber
	}
	return n, nil
}

// ParseDate accepts RFC3339 or YYYY-MM-DD. A bare date is interpreted in loc
// at the start of the day, or at its last second when endOfDay is set, so
// that a date-only upper bound includes the whole day. Empty yields nil.
func ParseDate(s string, endOfDay bool, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, ErrBadDate
	}
	if endOfDay {
		d = d.AddDate(0, 0, 1).Add(-time.Second)
	}
	return &d, nil
}
