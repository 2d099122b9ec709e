package hours

import (
	"fmt"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/timetricks"
)

// ChaldeanOrder is the fixed rulership cycle, slowest body first. Hour
// rulers advance through it with wraparound.
var ChaldeanOrder = [7]astro.Planet{
	astro.Saturn, astro.Jupiter, astro.Mars, astro.Sun,
	astro.Venus, astro.Mercury, astro.Moon,
}

// WeekdayRuler maps a civil weekday (Sunday = 0) to the planet ruling that
// day, which always rules the day's first planetary hour.
var WeekdayRuler = [7]astro.Planet{
	astro.Sun, astro.Moon, astro.Mars, astro.Mercury,
	astro.Jupiter, astro.Venus, astro.Saturn,
}

// chaldeanIndex returns p's position in ChaldeanOrder. Only classical
// planets appear there.
func chaldeanIndex(p astro.Planet) int {
	for i, q := range ChaldeanOrder {
		if q == p {
			return i
		}
	}
	return -1
}

// Query names one civil day at one place.
type Query struct {
	Latitude  float64
	Longitude float64
	Date      string // YYYY-MM-DD, interpreted in Zone
	Zone      string // IANA zone name
}

func (q Query) observer() astro.Observer {
	return astro.Observer{Latitude: q.Latitude, Longitude: q.Longitude}
}

// Interval is a single planetary hour. Start and end are UTC instants;
// intervals are half-open [Start, End).
type Interval struct {
	Index int // 1..24
	Ruler astro.Planet
	IsDay bool
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Schedule is the full partition of one civil day into 24 planetary hours.
// It is immutable once computed; "which hour is it now" is answered by At
// against a caller-supplied clock, never stored.
type Schedule struct {
	Date        timetricks.CivilDate
	Observer    astro.Observer
	Sunrise     time.Time
	Sunset      time.Time
	NextSunrise time.Time
	DayRuler    astro.Planet
	Hours       [24]Interval
}

// Location is the zone the schedule's civil date was interpreted in.
func (s *Schedule) Location() *time.Location {
	return s.Date.Loc
}

// Bound classifies an instant against a schedule's span.
type Bound int

const (
	Within Bound = iota
	Before       // earlier than the first hour's start
	After        // at or past the last hour's end
)

func (b Bound) String() string {
	switch b {
	case Within:
		return "within"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("bound(%d)", int(b))
	}
}
