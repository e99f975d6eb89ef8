package calendar

import (
	"fmt"
	"time"
)

// MonthDay is a month/day pair without a year, used for rules that recur
// every year. February 29 is a valid MonthDay; it only matches in leap years.
type MonthDay struct {
	Month int
	Day   int
}

// NewMonthDay validates the pair against the longest form of the month.
func NewMonthDay(month, day int) (MonthDay, error) {
	if month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf("%w: %02d-%02d", ErrInvalidDate, month, day)
	}
	maxDay := monthLengths[month]
	if month == 2 {
		maxDay = 29
	}
	if day < 1 || day > maxDay {
		return MonthDay{}, fmt.Errorf("%w: %02d-%02d", ErrInvalidDate, month, day)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// MustMonthDay is NewMonthDay for values known to be valid.
func MustMonthDay(month, day int) MonthDay {
	md, err := NewMonthDay(month, day)
	if err != nil {
		panic(err)
	}
	return md
}

// ParseMonthDay parses a month/day pair in MM-DD form.
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("01-02", s)
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewMonthDay(int(t.Month()), t.Day())
}

// Compare orders two month/day pairs ignoring years.
func (md MonthDay) Compare(other MonthDay) int {
	if md.Month != other.Month {
		return sign(md.Month - other.Month)
	}
	return sign(md.Day - other.Day)
}

// InYear pins the pair to a concrete year. Feb 29 in a common year shifts to
// Mar 1, matching what callers rendering a non-leap year expect.
func (md MonthDay) InYear(year int) Date {
	if d, err := NewDate(year, md.Month, md.Day); err == nil {
		return d
	}
	return FromTime(time.Date(year, time.Month(md.Month), md.Day, 0, 0, 0, 0, time.UTC))
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", md.Month, md.Day)
}

// MonthDayInRange reports whether md falls inside [start, end] in month-day
// order. When end precedes start the range wraps across the year boundary:
// (12-20, 01-05) covers Dec 20 through Dec 31 and Jan 1 through Jan 5.
func MonthDayInRange(md, start, end MonthDay) bool {
	if start.Compare(end) <= 0 {
		return md.Compare(start) >= 0 && md.Compare(end) <= 0
	}
	return md.Compare(start) >= 0 || md.Compare(end) <= 0
}
