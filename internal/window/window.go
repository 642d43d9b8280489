// Package window computes the completion-date windows used to filter tasks.
package window

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultCycleWeeks is the length of the rolling window.
const DefaultCycleWeeks = 6

// ErrInvalidDate is returned when a from/to parameter cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Window is a half-open [From, To) interval. An unbounded window matches
// every task, including tasks that have no completion date.
type Window struct {
	From      time.Time
	To        time.Time
	Unbounded bool
}

// Unfiltered returns a window that performs no date comparison.
func Unfiltered() Window {
	return Window{Unbounded: true}
}

// Contains reports whether a completion date falls within the window.
// A nil date is only contained by an unbounded window.
func (w Window) Contains(t *time.Time) bool {
	if w.Unbounded {
		return true
	}
	if t == nil {
		return false
	}
	return !t.Before(w.From) && t.Before(w.To)
}

func (w Window) String() string {
	if w.Unbounded {
		return "unfiltered"
	}
	return fmt.Sprintf("[%s, %s)", w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
}

// Today returns the window from 00:00:00 to 23:59:59 of now's local day.
func Today(now time.Time) Window {
	return Window{From: startOfDay(now), To: endOfDay(now)}
}

// Rolling returns the window starting the given number of weeks before now,
// truncated to midnight, and ending at 23:59:59 today.
func Rolling(now time.Time, weeks int) Window {
	if weeks <= 0 {
		weeks = DefaultCycleWeeks
	}
	from := now.Add(-time.Duration(weeks) * 7 * 24 * time.Hour)
	return Window{From: startOfDay(from), To: endOfDay(now)}
}

// Explicit parses caller supplied bounds without adjusting them. An
// inverted range is not an error; it simply matches nothing.
func Explicit(fromStr, toStr string, loc *time.Location) (Window, error) {
	from, err := ParseDate(fromStr, loc)
	if err != nil {
		return Window{}, fmt.Errorf("from: %w", err)
	}
	to, err := ParseDate(toStr, loc)
	if err != nil {
		return Window{}, fmt.Errorf("to: %w", err)
	}
	return Window{From: from, To: to}, nil
}

// Accepted input layouts, tried in order. Date-time layouts without a
// zone are interpreted in the caller's location.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Date-only values always mean midnight UTC.
const dateOnly = "2006-01-02"

// ParseDate parses a single date parameter.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC 3339)", ErrInvalidDate, s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
