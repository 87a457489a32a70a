package report

import (
	"errors"
	"fmt"
	"time"

	"hostel-income-backend/internal/parse"
)

// ErrInvalidRange is returned when a query range is missing, unparseable, or
// inverted. The report is not attempted.
var ErrInvalidRange = errors.New("invalid date range: start and end must be valid dates with start <= end")

// Range is an inclusive day range, already expanded to day boundaries:
// Start is 00:00:00.000 of the first day, End is 23:59:59.999 of the last.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange validates and normalizes a user-supplied day range.
func NewRange(startStr, endStr string) (Range, error) {
	start := parse.StartOfDay(parse.Date(startStr))
	end := parse.EndOfDay(parse.Date(endStr))
	if start == nil || end == nil || start.After(*end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: *start, End: *end}, nil
}

// DefaultRange is first day of the previous month through the last day of the
// current month, the window the dashboard preselects. Entry dates parse as UTC
// instants, so the bounds are built in UTC regardless of the host zone.
func DefaultRange(now time.Time) Range {
	now = now.UTC()
	firstOfPrevMonth := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	lastOfCurrentMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return Range{
		Start: *parse.StartOfDay(&firstOfPrevMonth),
		End:   *parse.EndOfDay(&lastOfCurrentMonth),
	}
}

// StartDay and EndDay format the bounds as calendar days.
func (r Range) StartDay() string { return r.Start.Format("2006-01-02") }
func (r Range) EndDay() string   { return r.End.Format("2006-01-02") }

// ExportFilename is the download name for the report artifact.
func (r Range) ExportFilename() string {
	return fmt.Sprintf("income-report-%s_to_%s.json", r.StartDay(), r.EndDay())
}

// overlaps reports whether the closed intervals [aStart, aEnd] and
// [bStart, bEnd] intersect. Touching endpoints count.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !(aEnd.Before(bStart) || bEnd.Before(aStart))
}
