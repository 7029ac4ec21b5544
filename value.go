// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package sdlite

import (
	"fmt"
	"time"
)

// A Value is a scalar SDLang data value: one of Null, String, Binary,
// Int32, Int64, Decimal, Float32, Float64, Bool, Date, DateTime, or
// Duration.
type Value interface{ isValue() }

// Null is the null constant.
type Null struct{}

// A String is a text value.
type String string

// A Binary is a byte-string value.
type Binary []byte

// An Int32 is a 32-bit integer value.
type Int32 int32

// An Int64 is a 64-bit integer value, written with an "L" suffix.
type Int64 int64

// A Decimal is a placeholder for arbitrary-precision decimal values.
// The tag is retained so that adopting a real decimal representation
// does not change the shape of the union, but the decoder currently
// produces Null for decimal literals.
type Decimal struct{}

// A Float32 is an IEEE single-precision value, written with an "f"
// suffix.
type Float32 float32

// A Float64 is an IEEE double-precision value.
type Float64 float64

// A Bool is a Boolean constant: true, false, on, or off.
type Bool bool

// A Duration is a signed time span counted in hundred-nanosecond ticks.
type Duration int64

// TicksPerSecond is the number of Duration ticks in one second.
const TicksPerSecond = 10_000_000

// DurationOf converts a standard library duration to ticks.
func DurationOf(d time.Duration) Duration { return Duration(d / 100) }

// Std converts d to a standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) * 100 }

// A Date is a date on the proleptic Gregorian calendar, with no time of
// day attached.
type Date struct {
	Year  int
	Month int // 1-based
	Day   int // 1-based
}

// NewDate constructs a date, reporting an error if the month or day is
// out of range.
func NewDate(year, month, day int) (Date, error) {
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month (%d) out of range", month)
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf("day (%d) out of range", day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

func daysInMonth(year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
	return 31
}

// ZoneKind discriminates the time zone variants of a DateTime.
type ZoneKind byte

// Constants defining the valid ZoneKind values.
const (
	ZoneLocal  ZoneKind = iota // no zone attached; interpreted locally
	ZoneUTC                    // the UTC singleton
	ZoneOffset                 // a fixed offset from UTC in minutes
	ZoneNamed                  // a named zone, stored as its text name
)

// A TimeZone is the zone attached to a DateTime.  The zero value is the
// local zone.
type TimeZone struct {
	Kind    ZoneKind
	Minutes int    // offset east of UTC; ZoneOffset only
	Name    string // zone name; ZoneNamed only
}

// UTC returns the UTC zone singleton.
func UTC() TimeZone { return TimeZone{Kind: ZoneUTC} }

// OffsetZone returns a fixed-offset zone the given number of minutes
// east of UTC.
func OffsetZone(minutes int) TimeZone {
	return TimeZone{Kind: ZoneOffset, Minutes: minutes}
}

// NamedZone returns a zone identified by its standard name.
func NamedZone(name string) TimeZone {
	return TimeZone{Kind: ZoneNamed, Name: name}
}

// A DateTime is a civil date and time of day with sub-second precision
// and an optional time zone.
type DateTime struct {
	Date   Date
	Hour   int
	Minute int
	Second int
	Frac   int // fractional seconds in ticks, 0 ≤ Frac < TicksPerSecond
	Zone   TimeZone
}

// NewDateTime constructs a date-time, reporting an error if any
// component is out of range.
func NewDateTime(date Date, hour, minute, second, frac int, zone TimeZone) (DateTime, error) {
	if hour < 0 || hour > 23 {
		return DateTime{}, fmt.Errorf("hour (%d) out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return DateTime{}, fmt.Errorf("minute (%d) out of range", minute)
	}
	if second < 0 || second > 59 {
		return DateTime{}, fmt.Errorf("second (%d) out of range", second)
	}
	if frac < 0 || frac >= TicksPerSecond {
		return DateTime{}, fmt.Errorf("fractional second (%d) out of range", frac)
	}
	return DateTime{
		Date: date, Hour: hour, Minute: minute, Second: second, Frac: frac, Zone: zone,
	}, nil
}

func (Null) isValue()     {}
func (String) isValue()   {}
func (Binary) isValue()   {}
func (Int32) isValue()    {}
func (Int64) isValue()    {}
func (Decimal) isValue()  {}
func (Float32) isValue()  {}
func (Float64) isValue()  {}
func (Bool) isValue()     {}
func (Date) isValue()     {}
func (DateTime) isValue() {}
func (Duration) isValue() {}
