package parse

import (
	"strconv"
	"strings"
	"time"
)

// generalLayouts are tried, in order, when the dashed decomposition fails.
var generalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date converts a loosely formatted date string into a calendar day.
// Legacy payloads carry anything from plain "2006-01-02" to full timestamps,
// sometimes with the time glued onto the day field ("2024-03-05T10:00").
// The dashed year-month-day decomposition is attempted first, truncating the
// day field to its leading digits; a set of general layouts is the fallback.
// A nil result means "no usable date" and is never an error.
func Date(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if parts := strings.SplitN(s, "-", 3); len(parts) == 3 {
		y, errY := strconv.Atoi(strings.TrimSpace(parts[0]))
		m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		d, errD := strconv.Atoi(leadingDigits(parts[2], 2))
		if errY == nil && errM == nil && errD == nil &&
			m >= 1 && m <= 12 && d >= 1 && d <= 31 {
			t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
			return &t
		}
	}

	for _, layout := range generalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// leadingDigits returns up to max leading digit characters of s.
func leadingDigits(s string, max int) string {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && end < max && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// StartOfDay returns the 00:00:00.000 instant of t's calendar day.
func StartOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return &d
}

// EndOfDay returns the 23:59:59.999 instant of t's calendar day.
func EndOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	return &d
}
