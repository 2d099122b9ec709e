// Package hours partitions a civil day into the 24 unequal planetary hours
// and stamps each with its ruling planet in Chaldean order.
package hours

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/timetricks"
)

// searchWindowDays bounds every rise/set search. Beyond it the query is in
// polar day or night and the ephemeris reports no event.
const searchWindowDays = 2.0

var (
	// ErrInconsistent means the sun events came back out of order, which
	// is a programming or ephemeris fault, never valid data.
	ErrInconsistent = errors.New("inconsistent sun events")

	// ErrClockOutOfRange means the supplied clock is more than one civil
	// day away from the queried date's schedule.
	ErrClockOutOfRange = errors.New("clock outside adjacent schedules")
)

// Scheduler computes planetary hour schedules. It is stateless; every call
// derives everything from its arguments and the injected ephemeris.
type Scheduler struct {
	eph astro.Ephemeris
}

func NewScheduler(eph astro.Ephemeris) *Scheduler {
	return &Scheduler{eph: eph}
}

// Compute builds the schedule for one civil day. The same query always
// yields identical boundaries.
func (s *Scheduler) Compute(q Query) (*Schedule, error) {
	obs := q.observer()
	if err := obs.Validate(); err != nil {
		return nil, err
	}
	date, err := timetricks.ParseCivilDate(q.Date, q.Zone)
	if err != nil {
		return nil, &astro.BadInputError{Field: "date", Reason: err.Error()}
	}
	return s.compute(date, obs)
}

func (s *Scheduler) compute(date timetricks.CivilDate, obs astro.Observer) (*Schedule, error) {
	// Anchor at local noon and search backward for the day's sunrise, then
	// chain forward. Anchoring at noon keeps the rise/set pair attached to
	// this calendar day near the date line and at high latitudes.
	noon := date.Noon()
	sunrise, err := s.eph.SearchRise(obs, noon, -searchWindowDays)
	if err != nil {
		return nil, err
	}
	sunset, err := s.eph.SearchSet(obs, sunrise, searchWindowDays)
	if err != nil {
		return nil, err
	}
	nextSunrise, err := s.eph.SearchRise(obs, sunset, searchWindowDays)
	if err != nil {
		return nil, err
	}

	day := sunset.Sub(sunrise)
	night := nextSunrise.Sub(sunset)
	if day <= 0 || night <= 0 {
		return nil, fmt.Errorf("%w: sunrise=%v sunset=%v nextSunrise=%v",
			ErrInconsistent, sunrise, sunset, nextSunrise)
	}

	sched := &Schedule{
		Date:        date,
		Observer:    obs,
		Sunrise:     sunrise,
		Sunset:      sunset,
		NextSunrise: nextSunrise,
		DayRuler:    WeekdayRuler[date.Weekday()],
	}

	// The first hour is ruled by the day ruler; every later hour steps
	// once through the Chaldean wheel.
	start := chaldeanIndex(sched.DayRuler)
	for i := 0; i < 24; i++ {
		iv := Interval{
			Index: i + 1,
			Ruler: ChaldeanOrder[(start+i)%7],
			IsDay: i < 12,
		}
		if iv.IsDay {
			iv.Start = sunrise.Add(day * time.Duration(i) / 12)
			iv.End = sunrise.Add(day * time.Duration(i+1) / 12)
		} else {
			iv.Start = sunset.Add(night * time.Duration(i-12) / 12)
			iv.End = sunset.Add(night * time.Duration(i-11) / 12)
		}
		sched.Hours[i] = iv
	}
	// Pin the partition boundaries exactly, so no division remainder ever
	// leaks into the sunset or next-sunrise seams.
	sched.Hours[11].End = sunset
	sched.Hours[12].Start = sunset
	sched.Hours[23].End = nextSunrise

	return sched, nil
}

// At locates now against the schedule. When the answer is Within, the
// returned interval contains now. Otherwise the caller is looking at the
// wrong civil day and the interval is nil.
func (s *Schedule) At(now time.Time) (*Interval, Bound) {
	if now.Before(s.Sunrise) {
		return nil, Before
	}
	if !now.Before(s.NextSunrise) {
		return nil, After
	}
	// First interval ending after now.
	i := sort.Search(len(s.Hours), func(i int) bool {
		return now.Before(s.Hours[i].End)
	})
	return &s.Hours[i], Within
}

// CurrentHour finds the planetary hour containing now for the queried
// place. If now precedes the date's sunrise or follows its next sunrise,
// the adjacent civil day is computed instead; the correction is bounded to
// a single step in either direction.
func (s *Scheduler) CurrentHour(q Query, now time.Time) (*Schedule, *Interval, error) {
	sched, err := s.Compute(q)
	if err != nil {
		return nil, nil, err
	}
	iv, bound := sched.At(now)
	if bound == Within {
		return sched, iv, nil
	}

	step := 1
	if bound == Before {
		step = -1
	}
	sched, err = s.compute(sched.Date.AddDays(step), sched.Observer)
	if err != nil {
		return nil, nil, err
	}
	iv, bound = sched.At(now)
	if bound != Within {
		return nil, nil, fmt.Errorf("%w: %v still %s schedule for %s",
			ErrClockOutOfRange, now, bound, sched.Date)
	}
	return sched, iv, nil
}
