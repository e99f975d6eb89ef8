package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/rules"
)

const (
	daysInWeek    = 7
	gutterWidth   = 13
	calendarWidth = 34
	headerWidth   = 48
)

// Renderer lays the resolved days of one year out as a continuous grid of
// week rows, one month block flowing into the next, with an annotation column
// on the right. Rendering is pure: the same inputs produce identical output.
type Renderer struct {
	Year            int
	WeekStart       time.Weekday
	ShowWeekNumbers bool
	MaxNoteWidth    int
	Styles          *Styles
}

// Render produces the full calendar block. days must be the padded span
// produced by rules.ResolveYear for the same year and week start.
func (r *Renderer) Render(days []rules.DayAnnotation, notes []rules.Note) (string, error) {
	if r.Year < calendar.MinYear || r.Year > calendar.MaxYear {
		return "", fmt.Errorf("%w: %d", calendar.ErrInvalidYear, r.Year)
	}
	if len(days) == 0 || len(days)%daysInWeek != 0 {
		return "", fmt.Errorf("day span of %d does not form whole weeks", len(days))
	}
	if wd := days[0].Date.Weekday(); wd != r.WeekStart {
		return "", fmt.Errorf("day span starts on %s, want %s", wd, r.WeekStart)
	}

	var b strings.Builder
	r.writeHeader(&b)

	weeks := len(days) / daysInWeek
	currentMonth := 0
	firstMonth := true
	shown := make([]bool, len(notes))
	var queue []rules.Note

	for w := 0; w < weeks; w++ {
		row := days[w*daysInWeek : (w+1)*daysInWeek]
		startIdx, startMonth := monthStartIn(row)

		if startIdx >= 0 {
			currentMonth = startMonth
			if firstMonth {
				r.writeMonthTopBorder(&b, startIdx)
				firstMonth = false
			}
		}

		queue = r.queueNotes(row, notes, shown, queue)

		r.writeWeekRow(&b, w+1, row, startIdx, startMonth)
		queue = r.writeNote(&b, row, notes, shown, queue)
		b.WriteByte('\n')

		switch {
		case w == weeks-1:
			r.writeBottomBorder(&b, row)
		case startIdx > 0:
			r.writeSeparatorAfterMonthStart(&b, row, currentMonth)
		default:
			next := days[(w+1)*daysInWeek : (w+2)*daysInWeek]
			if nextIdx, _ := monthStartIn(next); nextIdx >= 0 {
				r.writeSeparatorBeforeMonth(&b, nextIdx)
			}
		}
	}

	return b.String(), nil
}

func (r *Renderer) writeHeader(b *strings.Builder) {
	fmt.Fprintf(b, "┌%s┐\n", dashes(headerWidth))
	fmt.Fprintf(b, "│                   COMPACT CALENDAR %04d        │\n", r.Year)
	fmt.Fprintf(b, "├%s┤\n", dashes(headerWidth))
	fmt.Fprintf(b, "│              %s │\n", strings.Join(r.weekdayNames(), "  "))
}

func (r *Renderer) weekdayNames() []string {
	names := make([]string, 0, daysInWeek)
	for i := 0; i < daysInWeek; i++ {
		wd := time.Weekday((int(r.WeekStart) + i) % 7)
		names = append(names, wd.String()[:3])
	}
	return names
}

func (r *Renderer) writeWeekRow(b *strings.Builder, weekNum int, row []rules.DayAnnotation, startIdx, startMonth int) {
	prefix := "   "
	if r.ShowWeekNumbers {
		prefix = fmt.Sprintf("W%02d", weekNum)
	}
	if startIdx >= 0 {
		fmt.Fprintf(b, "│%s %-9s", prefix, calendar.MonthName(startMonth))
	} else {
		fmt.Fprintf(b, "│%s          ", prefix)
	}
	b.WriteString("│")

	for idx, a := range row {
		if idx > 0 && monthBoundary(row[idx-1], a) {
			b.WriteString("│")
		}
		b.WriteString(" ")
		b.WriteString(r.Styles.Day(a).Render(fmt.Sprintf("%02d", a.Date.Day)))
		switch {
		case idx == daysInWeek-1:
			b.WriteString(" ")
		case monthBoundary(a, row[idx+1]):
			b.WriteString(" ")
		default:
			b.WriteString("  ")
		}
	}
	b.WriteString("│")
}

// queueNotes moves every unqueued single-date note anchored inside this week
// row onto the pending queue. Notes print one per row, so a busy week carries
// its extras over to the following rows.
func (r *Renderer) queueNotes(row []rules.DayAnnotation, notes []rules.Note, shown []bool, queue []rules.Note) []rules.Note {
	for i, n := range notes {
		if n.Ranged || shown[i] {
			continue
		}
		if inWeek(n.Anchor, row) {
			queue = append(queue, n)
			shown[i] = true
		}
	}
	return queue
}

// writeNote emits at most one annotation beside the row: an unshown range
// note starting this week takes priority, otherwise the oldest queued
// single-date note.
func (r *Renderer) writeNote(b *strings.Builder, row []rules.DayAnnotation, notes []rules.Note, shown []bool, queue []rules.Note) []rules.Note {
	for i, n := range notes {
		if !n.Ranged || shown[i] {
			continue
		}
		if inWeek(n.Anchor, row) {
			shown[i] = true
			r.renderNote(b, n)
			return queue
		}
	}
	if len(queue) > 0 {
		r.renderNote(b, queue[0])
		return queue[1:]
	}
	return queue
}

func (r *Renderer) renderNote(b *strings.Builder, n rules.Note) {
	label := n.Label
	if r.MaxNoteWidth > 0 {
		label = truncate.StringWithTail(label, uint(r.MaxNoteWidth), "…")
	}
	b.WriteString(r.Styles.Note(n).Render(label))
}

func (r *Renderer) writeMonthTopBorder(b *strings.Builder, startIdx int) {
	if startIdx <= 0 {
		return
	}
	fmt.Fprintf(b, "│%s┌%s┬%s┤\n",
		spaces(gutterWidth),
		dashes((startIdx-1)*5+4),
		dashes((daysInWeek-startIdx)*5-1))
}

func (r *Renderer) writeSeparatorAfterMonthStart(b *strings.Builder, row []rules.DayAnnotation, currentMonth int) {
	barIdx := -1
	for idx, a := range row {
		inMonth := a.Date.Year == r.Year && a.Date.Month == currentMonth
		prevIn := idx > 0 && row[idx-1].Date.Year == r.Year && row[idx-1].Date.Month == currentMonth
		if inMonth && !prevIn {
			barIdx = idx
		}
	}
	fmt.Fprintf(b, "│%s├", spaces(gutterWidth))
	if barIdx > 0 {
		fmt.Fprintf(b, "%s┘%s│\n",
			dashes((barIdx-1)*5+4),
			spaces((daysInWeek-barIdx)*5-1))
	} else {
		fmt.Fprintf(b, "%s┤│\n", dashes(calendarWidth-3))
	}
}

func (r *Renderer) writeSeparatorBeforeMonth(b *strings.Builder, nextStartIdx int) {
	if nextStartIdx == 0 {
		fmt.Fprintf(b, "│%s├%s┤\n", spaces(gutterWidth), dashes(calendarWidth))
		return
	}
	fmt.Fprintf(b, "│%s│%s┌%s┤\n",
		spaces(gutterWidth),
		spaces((nextStartIdx-1)*5+4),
		dashes((daysInWeek-1-nextStartIdx)*5+4))
}

func (r *Renderer) writeBottomBorder(b *strings.Builder, row []rules.DayAnnotation) {
	boundary := -1
	for idx := 1; idx < len(row); idx++ {
		if monthBoundary(row[idx-1], row[idx]) {
			boundary = idx
			break
		}
	}
	if boundary >= 0 {
		fmt.Fprintf(b, "└%s┴%s┴%s┘\n",
			dashes(gutterWidth),
			dashes((boundary-1)*5+4),
			dashes((daysInWeek-boundary)*5-1))
	} else {
		fmt.Fprintf(b, "└%s┴%s┘\n", dashes(gutterWidth), dashes(calendarWidth))
	}
}

func monthStartIn(row []rules.DayAnnotation) (idx, month int) {
	for i, a := range row {
		if a.Date.Day == 1 {
			return i, a.Date.Month
		}
	}
	return -1, 0
}

func monthBoundary(a, b rules.DayAnnotation) bool {
	return a.Date.Month != b.Date.Month || a.Date.Year != b.Date.Year
}

func inWeek(d calendar.Date, row []rules.DayAnnotation) bool {
	return !d.Before(row[0].Date) && !d.After(row[daysInWeek-1].Date)
}

func dashes(n int) string { return strings.Repeat("─", n) }
func spaces(n int) string { return strings.Repeat(" ", n) }
