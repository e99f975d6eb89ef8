package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidYear is returned when a year is outside the supported range.
	ErrInvalidYear = errors.New("invalid year")
	// ErrInvalidDate is returned when a month/day combination is not a real
	// Gregorian calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// MinYear and MaxYear bound the years a Date can represent.
const (
	MinYear = 1
	MaxYear = 9999
)

// Date is a calendar date. Construct it with NewDate or ParseDate so that it
// is always a valid Gregorian date.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate validates year, month and day and returns the Date.
func NewDate(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustDate is NewDate for values known to be valid. It panics on error and is
// intended for tests and fixed constants.
func MustDate(year, month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// FromTime converts the date portion of a time.Time.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Time returns the date at midnight UTC. Used for weekday and day arithmetic.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// Compare orders two dates: -1 if d < other, 0 if equal, 1 if d > other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }
func (d Date) Equal(other Date) bool  { return d == other }

// MonthDay drops the year component.
func (d Date) MonthDay() MonthDay {
	return MonthDay{Month: d.Month, Day: d.Day}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month of the given year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month]
}

// MonthName returns the English month name for month 1..12.
func MonthName(month int) string {
	return time.Month(month).String()
}

// AlignToWeekStart walks backwards from d to the nearest day whose weekday is
// start (possibly d itself).
func AlignToWeekStart(d Date, start time.Weekday) Date {
	offset := int(d.Weekday()) - int(start)
	if offset < 0 {
		offset += 7
	}
	return d.AddDays(-offset)
}

// WeekNumber returns the week number of d in a scheme parameterized by the
// weekday weeks start on. Week 1 begins on the first start-day on or after
// January 1. Days before that boundary belong to the last week of the prior
// year's scheme.
func WeekNumber(d Date, start time.Weekday) int {
	boundary := firstWeekStart(d.Year, start)
	if d.Before(boundary) {
		boundary = firstWeekStart(d.Year-1, start)
	}
	days := int(d.Time().Sub(boundary.Time()).Hours() / 24)
	return days/7 + 1
}

func firstWeekStart(year int, start time.Weekday) Date {
	d := Date{Year: year, Month: 1, Day: 1}
	offset := int(start) - int(d.Weekday())
	if offset < 0 {
		offset += 7
	}
	return d.AddDays(offset)
}
