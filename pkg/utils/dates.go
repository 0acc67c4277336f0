package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// CanonicalDateLayout is the single date format the service works with
// internally and echoes back to callers.
const CanonicalDateLayout = "2006-01-02"

// acceptedDateLayouts are the input shapes NormalizeDate understands. Anything
// else is rejected instead of being passed through.
var acceptedDateLayouts = []string{
	CanonicalDateLayout,
	"02/01/2006",
	"02-01-2006",
	"2.1.2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// NormalizeDate parses input against the accepted layouts and returns it in
// the canonical YYYY-MM-DD form.
func NormalizeDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("empty date")
	}
	for _, layout := range acceptedDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(CanonicalDateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", input)
}

// ParseDay parses a canonical date into a time anchored at midnight UTC.
func ParseDay(date string) (time.Time, error) {
	return time.Parse(CanonicalDateLayout, date)
}

// ParseClock validates an HH:MM time of day and returns its components.
func ParseClock(input string) (int, int, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(input))
	if err != nil {
		return 0, 0, fmt.Errorf("unrecognized time %q", input)
	}
	return parsed.Hour(), parsed.Minute(), nil
}

// DaysBetween returns the number of calendar days from one canonical date to
// another. Negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDay(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDay(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// AddHoursToClock advances an HH:MM clock by a fractional number of hours,
// wrapping at 24h. Minutes are rounded to the nearest whole minute.
func AddHoursToClock(clock string, hours float64) (string, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	total := float64(h)*60 + float64(m) + hours*60
	minutes := int(math.Round(total)) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}
