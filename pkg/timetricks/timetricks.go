// Package timetricks holds the calendar and timezone arithmetic the
// planetary hour scheduler leans on. A "civil date" here is a YYYY-MM-DD
// string interpreted in a named IANA zone, never a UTC instant.
package timetricks

import (
	"fmt"
	"time"
)

const (
	dayFormat = "20060102"

	// CivilDateFormat is the wire format for civil dates.
	CivilDateFormat = "2006-01-02"
)

// CivilDate is a calendar date bound to a time zone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
	Loc   *time.Location
}

// ParseCivilDate interprets a YYYY-MM-DD string in the named IANA zone.
func ParseCivilDate(date, zone string) (CivilDate, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return CivilDate{}, fmt.Errorf("unknown time zone %q: %w", zone, err)
	}
	parsed, err := time.ParseInLocation(CivilDateFormat, date, loc)
	if err != nil {
		return CivilDate{}, fmt.Errorf("date %q not in format %q: %w", date, CivilDateFormat, err)
	}
	y, m, d := parsed.Date()
	return CivilDate{Year: y, Month: m, Day: d, Loc: loc}, nil
}

func (c CivilDate) String() string {
	return c.Start().Format(CivilDateFormat)
}

// Start is the zone-local midnight instant of the date. time.Date resolves
// DST gaps itself, so a spring-forward day with no literal midnight still
// yields a valid instant.
func (c CivilDate) Start() time.Time {
	return time.Date(c.Year, c.Month, c.Day, 0, 0, 0, 0, c.Loc)
}

// Noon is the zone-local 12:00 instant. Rise/set searches anchor here
// rather than at midnight so the events found unambiguously belong to this
// calendar day.
func (c CivilDate) Noon() time.Time {
	return time.Date(c.Year, c.Month, c.Day, 12, 0, 0, 0, c.Loc)
}

// Weekday is the civil weekday (Sunday = 0) of the local date.
func (c CivilDate) Weekday() time.Weekday {
	return c.Noon().Weekday()
}

// AddDays shifts the calendar date, letting time.Date normalize month and
// year boundaries.
func (c CivilDate) AddDays(n int) CivilDate {
	y, m, d := time.Date(c.Year, c.Month, c.Day+n, 12, 0, 0, 0, c.Loc).Date()
	return CivilDate{Year: y, Month: m, Day: d, Loc: c.Loc}
}

// Today is the current civil date in loc.
func Today(loc *time.Location) CivilDate {
	y, m, d := time.Now().In(loc).Date()
	return CivilDate{Year: y, Month: m, Day: d, Loc: loc}
}

// SameDay reports whether two instants fall on the same calendar day,
// each read in its own location. Convert both to one zone first when the
// question is about a single civil day.
func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}
