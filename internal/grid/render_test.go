package grid

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/rules"
)

func plainStyles() *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return NewStyles(r)
}

func colorStyles() *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return NewStyles(r)
}

var testOpts = rules.Options{
	Today:       calendar.MustDate(2024, 6, 15),
	DimWeekends: true,
	StrikePast:  true,
}

func renderYear(t *testing.T, year int, weekStart time.Weekday, store *rules.Store, styles *Styles) string {
	t.Helper()
	days, err := rules.ResolveYear(year, store, testOpts, weekStart)
	if err != nil {
		t.Fatalf("ResolveYear: %v", err)
	}
	r := Renderer{
		Year:            year,
		WeekStart:       weekStart,
		ShowWeekNumbers: true,
		Styles:          styles,
	}
	out, err := r.Render(days, store.Notes(year))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func emptyStore(t *testing.T) *rules.Store {
	t.Helper()
	s, err := rules.NewStore(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestRenderHeader(t *testing.T) {
	out := renderYear(t, 2024, time.Monday, emptyStore(t), plainStyles())

	if !strings.Contains(out, "COMPACT CALENDAR 2024") {
		t.Error("missing title")
	}
	if !strings.Contains(out, "Mon  Tue  Wed  Thu  Fri  Sat  Sun │") {
		t.Error("missing Monday-first weekday header")
	}
}

func TestRenderSundayStartHeader(t *testing.T) {
	out := renderYear(t, 2024, time.Sunday, emptyStore(t), plainStyles())

	if !strings.Contains(out, "Sun  Mon  Tue  Wed  Thu  Fri  Sat │") {
		t.Error("missing Sunday-first weekday header")
	}
	if strings.Contains(out, "Mon  Tue  Wed  Thu  Fri  Sat  Sun │") {
		t.Error("Monday-first header in Sunday-start output")
	}
}

func TestRenderWeekRows(t *testing.T) {
	out := renderYear(t, 2024, time.Monday, emptyStore(t), plainStyles())

	// 2024 starts on a Monday and is a leap year: 53 week rows.
	if !strings.Contains(out, "W01 January") {
		t.Error("missing first week gutter")
	}
	if !strings.Contains(out, "W53") {
		t.Error("missing last week gutter")
	}
	if strings.Contains(out, "W54") {
		t.Error("too many week rows")
	}
	for _, month := range []string{
		"January", "February", "March", "April", "May", "June", "July",
		"August", "September", "October", "November", "December",
	} {
		if !strings.Contains(out, month) {
			t.Errorf("missing month name %s", month)
		}
	}
}

func TestRenderMonthBoundaryBar(t *testing.T) {
	out := renderYear(t, 2024, time.Monday, emptyStore(t), plainStyles())

	// Jan 31 2024 is a Wednesday; the February row splits mid-week.
	if !strings.Contains(out, " 29  30  31 │ 01  02  03  04 ") {
		t.Error("missing month boundary bar between Jan 31 and Feb 1")
	}
	if !strings.Contains(out, "February") {
		t.Error("missing February gutter label")
	}
}

func TestRenderWeekNumbersHidden(t *testing.T) {
	days, err := rules.ResolveYear(2024, emptyStore(t), testOpts, time.Monday)
	if err != nil {
		t.Fatal(err)
	}
	r := Renderer{
		Year:      2024,
		WeekStart: time.Monday,
		Styles:    plainStyles(),
	}
	out, err := r.Render(days, nil)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "W01") || strings.Contains(out, "W53") {
		t.Error("week numbers rendered while hidden")
	}
	if !strings.Contains(out, "January") {
		t.Error("month gutter must survive hiding week numbers")
	}
}

func TestRenderDeterministic(t *testing.T) {
	store, err := rules.NewStore(
		[]rules.RangeRule{
			rules.AbsoluteRange(calendar.MustDate(2024, 1, 1), calendar.MustDate(2024, 3, 31), rules.ColorGreen, "Q1"),
			rules.RecurringRange(calendar.MustMonthDay(12, 20), calendar.MustMonthDay(1, 5), rules.ColorPurple, "break"),
		},
		[]rules.DateRule{
			rules.RecurringDate(calendar.MustMonthDay(12, 25), rules.ColorRed, "christmas"),
		})
	if err != nil {
		t.Fatal(err)
	}

	styles := colorStyles()
	first := renderYear(t, 2024, time.Monday, store, styles)
	second := renderYear(t, 2024, time.Monday, store, styles)
	if first != second {
		t.Error("identical inputs produced different output")
	}
}

func TestRenderAnnotationColumn(t *testing.T) {
	store, err := rules.NewStore(
		[]rules.RangeRule{
			rules.AbsoluteRange(calendar.MustDate(2024, 1, 1), calendar.MustDate(2024, 3, 31), rules.ColorGreen, "Q1"),
		},
		[]rules.DateRule{
			rules.AbsoluteDate(calendar.MustDate(2024, 7, 4), rules.ColorNone, "fireworks"),
		})
	if err != nil {
		t.Fatal(err)
	}

	out := renderYear(t, 2024, time.Monday, store, plainStyles())

	if !strings.Contains(out, "01/01 to 03/31 - Q1") {
		t.Error("missing range annotation")
	}
	if !strings.Contains(out, "07/04 - fireworks") {
		t.Error("missing date annotation")
	}
	// The annotation sits on the week row containing its anchor.
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "07/04 - fireworks") && !strings.Contains(line, "W27") {
			t.Errorf("fireworks annotation on wrong row: %q", line)
		}
	}
}

func TestRenderAnnotationQueueCarriesOver(t *testing.T) {
	// Two dated notes in the same week: the second must appear on a
	// following row instead of being dropped.
	store, err := rules.NewStore(nil, []rules.DateRule{
		rules.AbsoluteDate(calendar.MustDate(2024, 7, 2), rules.ColorNone, "alpha"),
		rules.AbsoluteDate(calendar.MustDate(2024, 7, 3), rules.ColorNone, "beta"),
	})
	if err != nil {
		t.Fatal(err)
	}

	out := renderYear(t, 2024, time.Monday, store, plainStyles())
	alphaLine, betaLine := -1, -1
	for i, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "07/02 - alpha") {
			alphaLine = i
		}
		if strings.Contains(line, "07/03 - beta") {
			betaLine = i
		}
	}
	if alphaLine < 0 || betaLine < 0 {
		t.Fatalf("missing annotations (alpha=%d beta=%d)", alphaLine, betaLine)
	}
	if betaLine <= alphaLine {
		t.Errorf("beta must print after alpha (alpha=%d beta=%d)", alphaLine, betaLine)
	}
}

func TestRenderNoteTruncation(t *testing.T) {
	store, err := rules.NewStore(nil, []rules.DateRule{
		rules.AbsoluteDate(calendar.MustDate(2024, 7, 4), rules.ColorNone,
			"a very long description that should not survive truncation"),
	})
	if err != nil {
		t.Fatal(err)
	}

	days, err := rules.ResolveYear(2024, store, testOpts, time.Monday)
	if err != nil {
		t.Fatal(err)
	}
	r := Renderer{
		Year:            2024,
		WeekStart:       time.Monday,
		ShowWeekNumbers: true,
		MaxNoteWidth:    16,
		Styles:          plainStyles(),
	}
	out, err := r.Render(days, store.Notes(2024))
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "survive truncation") {
		t.Error("note was not truncated")
	}
	if !strings.Contains(out, "…") {
		t.Error("missing truncation tail")
	}
}

func TestRenderColorProfiles(t *testing.T) {
	store, err := rules.NewStore([]rules.RangeRule{
		rules.AbsoluteRange(calendar.MustDate(2024, 1, 1), calendar.MustDate(2024, 12, 31), rules.ColorBlue, ""),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	plain := renderYear(t, 2024, time.Monday, store, plainStyles())
	if strings.Contains(plain, "\x1b[") {
		t.Error("Ascii profile output contains escape sequences")
	}

	colored := renderYear(t, 2024, time.Monday, store, colorStyles())
	if !strings.Contains(colored, "\x1b[") {
		t.Error("TrueColor profile output has no escape sequences")
	}
}

func TestRenderStructure(t *testing.T) {
	out := renderYear(t, 2025, time.Monday, emptyStore(t), plainStyles())

	if !strings.HasPrefix(out, "┌") {
		t.Error("output must start with the header border")
	}
	if !strings.HasSuffix(out, "┘\n") {
		t.Error("output must end with the bottom border")
	}
	if strings.Count(out, "COMPACT CALENDAR") != 1 {
		t.Error("header rendered more than once")
	}
}

func TestRenderInvalidInputs(t *testing.T) {
	r := Renderer{Year: 0, WeekStart: time.Monday, Styles: plainStyles()}
	if _, err := r.Render(nil, nil); !errors.Is(err, calendar.ErrInvalidYear) {
		t.Errorf("year 0 error = %v, want ErrInvalidYear", err)
	}

	days, err := rules.ResolveYear(2024, emptyStore(t), testOpts, time.Monday)
	if err != nil {
		t.Fatal(err)
	}

	r = Renderer{Year: 2024, WeekStart: time.Monday, Styles: plainStyles()}
	if _, err := r.Render(days[:10], nil); err == nil {
		t.Error("ragged span must be rejected")
	}
	if _, err := r.Render(days[1:8], nil); err == nil {
		t.Error("misaligned span must be rejected")
	}
}
