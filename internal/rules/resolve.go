package rules

import (
	"time"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
)

// Options carries the per-render settings that influence resolution. Today is
// passed in explicitly so resolution stays pure and testable.
type Options struct {
	Today       calendar.Date
	DimWeekends bool
	WorkMode    bool
	StrikePast  bool
}

// DayAnnotation is the fully resolved visual state of a single day.
type DayAnnotation struct {
	Date        calendar.Date
	Color       Color
	HasColor    bool
	Description string
	Weekend     bool
	Today       bool
	Past        bool
	Dimmed      bool
	Struck      bool
}

// Resolve produces the annotation for one day. Rule precedence, highest
// first: absolute date, recurring date, absolute range, recurring range. At
// equal precedence the rule declared last in configuration wins. Color and
// description are taken independently from the highest-precedence rule that
// sets each, so a description-only date entry does not blank the color of a
// surrounding range.
func Resolve(d calendar.Date, store *Store, opts Options) DayAnnotation {
	a := DayAnnotation{Date: d}

	wd := d.Weekday()
	a.Weekend = wd == time.Saturday || wd == time.Sunday
	a.Today = d.Equal(opts.Today)
	a.Past = d.Before(opts.Today)
	a.Dimmed = a.Weekend && opts.DimWeekends && !opts.WorkMode
	a.Struck = a.Past && opts.StrikePast

	// Weekends are never highlighted in work mode, even by an exact match.
	if opts.WorkMode && a.Weekend {
		return a
	}

	colorTier, descTier := tierCount, tierCount
	for _, r := range store.DatesMatching(d) {
		t := tierRecurringDate
		if r.Kind == Absolute {
			t = tierAbsoluteDate
		}
		if r.Color != ColorNone && t <= colorTier {
			a.Color, a.HasColor = r.Color, true
			colorTier = t
		}
		if r.Description != "" && t <= descTier {
			a.Description = r.Description
			descTier = t
		}
	}
	for _, r := range store.RangesCovering(d) {
		t := tierRecurringRange
		if r.Kind == Absolute {
			t = tierAbsoluteRange
		}
		if r.Color != ColorNone && t <= colorTier {
			a.Color, a.HasColor = r.Color, true
			colorTier = t
		}
		if r.Description != "" && t <= descTier {
			a.Description = r.Description
			descTier = t
		}
	}

	return a
}

// Precedence tiers, strongest first.
const (
	tierAbsoluteDate = iota
	tierRecurringDate
	tierAbsoluteRange
	tierRecurringRange
	tierCount
)

// ResolveYear resolves every day of the grid for year: all days of the year
// itself plus the out-of-year days padding the first and last weeks to full
// rows starting on weekStart.
func ResolveYear(year int, store *Store, opts Options, weekStart time.Weekday) ([]DayAnnotation, error) {
	first, err := calendar.NewDate(year, 1, 1)
	if err != nil {
		return nil, err
	}
	last, err := calendar.NewDate(year, 12, 31)
	if err != nil {
		return nil, err
	}

	start := calendar.AlignToWeekStart(first, weekStart)
	end := calendar.AlignToWeekStart(last, weekStart).AddDays(6)

	var days []DayAnnotation
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, Resolve(d, store, opts))
	}
	return days, nil
}
