// Package timeexpr turns human time expressions such as "30m", "yesterday" or
// "2024-05-01" into absolute instants.
package timeexpr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// LastSessionLookback is how far back "last-session" reaches. It is a fixed
// offset and does not consult recorded session boundaries.
const LastSessionLookback = time.Hour

var (
	// ErrUnrecognizedTimeExpression matches *UnrecognizedExpressionError.
	ErrUnrecognizedTimeExpression = errors.New("unrecognized time expression")
	// ErrInvalidTimeFormat matches *InvalidFormatError.
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrInvalidDate matches *InvalidDateError.
	ErrInvalidDate = errors.New("invalid date")
)

// UnrecognizedExpressionError is returned for input that is not one of the
// known keywords and has no known unit suffix.
type UnrecognizedExpressionError struct {
	Expr string
}

func (e *UnrecognizedExpressionError) Error() string {
	return "unrecognized time format: " + e.Expr
}

func (e *UnrecognizedExpressionError) Unwrap() error { return ErrUnrecognizedTimeExpression }

// InvalidFormatError is returned when an expression has a unit suffix but its
// numeric prefix is not an integer.
type InvalidFormatError struct {
	Expr string
	Err  error
}

func (e *InvalidFormatError) Error() string {
	return "invalid time format: " + e.Expr
}

func (e *InvalidFormatError) Unwrap() []error { return []error{ErrInvalidTimeFormat, e.Err} }

var errOutOfRange = errors.New("offset out of range")

var units = map[byte]time.Duration{
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// Resolve converts expr to an absolute UTC instant relative to now. Calendar
// keywords ("today", "yesterday") use midnight in loc.
//
// Recognised forms: now, today, yesterday, last-session and <N>m, <N>h, <N>d,
// <N>w for any integer N whose offset fits in a time.Duration.
func Resolve(expr string, now time.Time, loc *time.Location) (time.Time, error) {
	switch expr {
	case "now":
		return now.UTC(), nil
	case "today":
		return midnight(now, loc, 0), nil
	case "yesterday":
		return midnight(now, loc, -1), nil
	case "last-session":
		return now.Add(-LastSessionLookback).UTC(), nil
	}

	if expr == "" {
		return time.Time{}, &UnrecognizedExpressionError{Expr: expr}
	}
	unit, ok := units[expr[len(expr)-1]]
	if !ok {
		return time.Time{}, &UnrecognizedExpressionError{Expr: expr}
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(expr, expr[len(expr)-1:]), 10, 64)
	if err != nil {
		return time.Time{}, &InvalidFormatError{Expr: expr, Err: err}
	}
	if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
		return time.Time{}, &InvalidFormatError{Expr: expr, Err: errOutOfRange}
	}
	return now.Add(-time.Duration(n) * unit).UTC(), nil
}

// midnight returns the start of the local calendar day offset by days from
// the day containing now.
func midnight(now time.Time, loc *time.Location, days int) time.Time {
	local := now.In(location(loc))
	y, m, d := local.Date()
	return time.Date(y, m, d+days, 0, 0, 0, 0, local.Location()).UTC()
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// FormatDuration renders d with its two most significant units, e.g.
// "2d 3h", "5h 12m", "42m" or "30s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) % 24
	minutes := int64(d/time.Minute) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", int64(d/time.Second))
}
