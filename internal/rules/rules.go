package rules

import (
	"errors"
	"fmt"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
)

// ErrInvalidRange is returned when an absolute range starts after it ends.
var ErrInvalidRange = errors.New("invalid range")

// Kind distinguishes rules pinned to a specific year from rules matched
// against every year by month and day alone.
type Kind int

const (
	Absolute Kind = iota
	Recurring
)

// RangeRule highlights a span of days. Absolute rules compare full dates and
// may cross year boundaries; recurring rules compare month/day pairs and wrap
// across the year boundary when End precedes Start.
type RangeRule struct {
	Kind        Kind
	Start       calendar.Date     // Absolute only
	End         calendar.Date     // Absolute only
	StartDay    calendar.MonthDay // Recurring only
	EndDay      calendar.MonthDay // Recurring only
	Color       Color
	Description string
}

// AbsoluteRange builds a range rule over concrete dates.
func AbsoluteRange(start, end calendar.Date, color Color, description string) RangeRule {
	return RangeRule{Kind: Absolute, Start: start, End: end, Color: color, Description: description}
}

// RecurringRange builds a range rule matched every year.
func RecurringRange(start, end calendar.MonthDay, color Color, description string) RangeRule {
	return RangeRule{Kind: Recurring, StartDay: start, EndDay: end, Color: color, Description: description}
}

// Covers reports whether d falls inside the rule's span.
func (r RangeRule) Covers(d calendar.Date) bool {
	switch r.Kind {
	case Absolute:
		return !d.Before(r.Start) && !d.After(r.End)
	default:
		return calendar.MonthDayInRange(d.MonthDay(), r.StartDay, r.EndDay)
	}
}

// DateRule highlights a single day, either a concrete date or a yearly one.
type DateRule struct {
	Kind        Kind
	Date        calendar.Date     // Absolute only
	Day         calendar.MonthDay // Recurring only
	Color       Color
	Description string
}

// AbsoluteDate builds a single-date rule for one concrete date.
func AbsoluteDate(date calendar.Date, color Color, description string) DateRule {
	return DateRule{Kind: Absolute, Date: date, Color: color, Description: description}
}

// RecurringDate builds a single-date rule matched every year.
func RecurringDate(day calendar.MonthDay, color Color, description string) DateRule {
	return DateRule{Kind: Recurring, Day: day, Color: color, Description: description}
}

// Matches reports whether d is the rule's day.
func (r DateRule) Matches(d calendar.Date) bool {
	if r.Kind == Absolute {
		return d.Equal(r.Date)
	}
	return d.MonthDay() == r.Day
}

// Store holds every highlight rule in configuration order. It is immutable
// after NewStore; overlap between rules is resolved at query time.
type Store struct {
	ranges []RangeRule
	dates  []DateRule
}

// NewStore validates the rules and builds a Store. Absolute ranges must not
// start after they end, and every color must be in the supported set.
func NewStore(ranges []RangeRule, dates []DateRule) (*Store, error) {
	for _, r := range ranges {
		if r.Kind == Absolute && r.Start.After(r.End) {
			return nil, fmt.Errorf("%w: %s after %s", ErrInvalidRange, r.Start, r.End)
		}
		if !r.Color.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(r.Color))
		}
	}
	for _, d := range dates {
		if !d.Color.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(d.Color))
		}
	}
	return &Store{ranges: ranges, dates: dates}, nil
}

// RangesCovering returns all range rules whose span includes d, in
// configuration order.
func (s *Store) RangesCovering(d calendar.Date) []RangeRule {
	var out []RangeRule
	for _, r := range s.ranges {
		if r.Covers(d) {
			out = append(out, r)
		}
	}
	return out
}

// DatesMatching returns all single-date rules matching d, in configuration
// order.
func (s *Store) DatesMatching(d calendar.Date) []DateRule {
	var out []DateRule
	for _, r := range s.dates {
		if r.Matches(d) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of rules held, for diagnostics.
func (s *Store) Len() (ranges, dates int) {
	return len(s.ranges), len(s.dates)
}
