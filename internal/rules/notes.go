package rules

import (
	"fmt"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
)

// Note is one entry for the annotation column beside the grid: either a range
// callout ("06/01 to 06/14 - Sprint 12") or a single-date callout
// ("12/25 - Christmas"). Notes are anchored to the first day of the target
// year they describe; the renderer attaches each note to the week row
// containing its anchor.
type Note struct {
	Anchor calendar.Date
	Label  string
	Color  Color
	Ranged bool
}

// Notes materializes the annotation-column entries for one target year, in
// configuration order: every range rule that covers at least one day of the
// year, then every single-date rule with a description that falls inside it.
func (s *Store) Notes(year int) []Note {
	var notes []Note

	for _, r := range s.ranges {
		n, ok := rangeNote(r, year)
		if ok {
			notes = append(notes, n)
		}
	}
	for _, r := range s.dates {
		if r.Description == "" {
			continue
		}
		date := r.Date
		if r.Kind == Recurring {
			date = r.Day.InYear(year)
		}
		if date.Year != year {
			continue
		}
		notes = append(notes, Note{
			Anchor: date,
			Label:  fmt.Sprintf("%02d/%02d - %s", date.Month, date.Day, r.Description),
			Color:  r.Color,
		})
	}

	return notes
}

func rangeNote(r RangeRule, year int) (Note, bool) {
	var anchor calendar.Date
	var startLabel, endLabel string

	switch r.Kind {
	case Absolute:
		if r.End.Year < year || r.Start.Year > year {
			return Note{}, false
		}
		anchor = r.Start
		if anchor.Year < year {
			anchor = calendar.MustDate(year, 1, 1)
		}
		startLabel = monthDayLabel(r.Start.Month, r.Start.Day)
		endLabel = monthDayLabel(r.End.Month, r.End.Day)
	default:
		anchor = r.StartDay.InYear(year)
		if r.StartDay.Compare(r.EndDay) > 0 {
			// Wrapped range: the January head is the first covered day.
			anchor = calendar.MustDate(year, 1, 1)
		}
		startLabel = monthDayLabel(r.StartDay.Month, r.StartDay.Day)
		endLabel = monthDayLabel(r.EndDay.Month, r.EndDay.Day)
	}

	label := fmt.Sprintf("%s to %s", startLabel, endLabel)
	if r.Description != "" {
		label += " - " + r.Description
	}
	return Note{Anchor: anchor, Label: label, Color: r.Color, Ranged: true}, true
}

func monthDayLabel(month, day int) string {
	return fmt.Sprintf("%02d/%02d", month, day)
}
