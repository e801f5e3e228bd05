// Package staleness decides which open pull requests have gone without an update for too long.
package staleness

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp is returned when a pull request timestamp cannot be parsed
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimeDelta is an elapsed duration in whole hours and whole days
type TimeDelta struct {
	Hours int
	Days  int
}

// Since returns the elapsed time between an ISO-8601 timestamp and now.
// The absolute difference is used, so a timestamp slightly in the future
// (clock skew) still yields a small positive delta.
func Since(ts string, now time.Time) (TimeDelta, error) {
	t, err := parseTimestamp(ts)
	if err != nil {
		return TimeDelta{}, err
	}
	return Between(t, now), nil
}

// Between returns the elapsed time between two already-parsed instants
func Between(t, now time.Time) TimeDelta {
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	hours := int(d / time.Hour)
	return TimeDelta{Hours: hours, Days: hours / 24}
}

// String renders the delta the way it appears in reports, e.g. "30 hours ago (1 day)"
func (d TimeDelta) String() string {
	return fmt.Sprintf("%d hours ago (%d day)", d.Hours, d.Days)
}

func parseTimestamp(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
	}
	return t, nil
}
