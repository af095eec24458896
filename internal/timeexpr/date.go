package timeexpr

import "time"

// DateLayout is the accepted calendar date format.
const DateLayout = "2006-01-02"

// Date is a calendar day, independent of time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// InvalidDateError is returned by ParseDate for input not in YYYY-MM-DD form.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return "invalid date " + e.Input + ": use YYYY-MM-DD"
}

func (e *InvalidDateError) Unwrap() []error { return []error{ErrInvalidDate, e.Err} }

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Err: err}
	}
	return DateOf(t, time.UTC), nil
}

// DateOf returns the calendar day t falls on in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(location(loc)).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the calendar day containing now in loc.
func Today(now time.Time, loc *time.Location) Date {
	return DateOf(now, loc)
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC), time.UTC)
}

// Contains reports whether t falls on d in loc.
func (d Date) Contains(t time.Time, loc *time.Location) bool {
	return DateOf(t, loc) == d
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}
