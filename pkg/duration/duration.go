// Package duration resolves the small closed set of human-readable
// relative durations the bot accepts in command options.
package duration

import (
	"fmt"
	"time"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
)

var known = map[string]time.Duration{
	"5 mins":  5 * time.Minute,
	"15 mins": 15 * time.Minute,
	"30 mins": 30 * time.Minute,
	"1 hour":  time.Hour,
	"1 day":   day,
	"1 week":  week,
	"1 month": month,
}

// Resolve converts a known relative duration string into a time.Duration.
func Resolve(s string) (time.Duration, error) {
	d, ok := known[s]
	if !ok {
		return 0, fmt.Errorf("unknown duration %q", s)
	}
	return d, nil
}
