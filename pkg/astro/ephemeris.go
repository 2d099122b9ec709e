package astro

import (
	"fmt"
	"time"
)

// Ephemeris is the astronomical computation capability the rest of the
// system depends on. It is injected into the scheduler and positions
// service so tests can substitute a fake.
type Ephemeris interface {
	// SearchRise finds a sunrise for the observer starting at from. A
	// negative limitDays searches backward in time. A miss inside the
	// window returns a *NoEventError.
	SearchRise(obs Observer, from time.Time, limitDays float64) (time.Time, error)

	// SearchSet is SearchRise for sunsets.
	SearchSet(obs Observer, from time.Time, limitDays float64) (time.Time, error)

	// Longitude returns the geocentric apparent ecliptic longitude of date
	// for p at the given instant, in degrees [0, 360).
	Longitude(p Planet, at time.Time) (float64, error)

	// SiderealTime returns Greenwich apparent sidereal time at the instant,
	// in degrees.
	SiderealTime(at time.Time) float64
}

// NoEventError reports that no rise or set event exists inside the search
// window, e.g. polar day or polar night.
type NoEventError struct {
	Event  string // "sunrise" or "sunset"
	Around time.Time
	Days   float64
}

func (e *NoEventError) Error() string {
	return fmt.Sprintf("no %s within %v days of %s",
		e.Event, e.Days, e.Around.Format(time.RFC3339))
}
