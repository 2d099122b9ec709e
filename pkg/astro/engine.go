package astro

import (
	"time"

	astronomy "github.com/cosinekitty/astronomy/source/golang"
)

// Engine implements Ephemeris on top of the Astronomy Engine. All use of
// the library is confined to this file.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

var engineBody = map[Planet]astronomy.Body{
	Sun:     astronomy.Sun,
	Moon:    astronomy.Moon,
	Mercury: astronomy.Mercury,
	Venus:   astronomy.Venus,
	Mars:    astronomy.Mars,
	Jupiter: astronomy.Jupiter,
	Saturn:  astronomy.Saturn,
	Uranus:  astronomy.Uranus,
	Neptune: astronomy.Neptune,
	Pluto:   astronomy.Pluto,
}

// astroTime converts a Go instant to the engine's days-since-J2000 form.
func astroTime(t time.Time) astronomy.AstroTime {
	return astronomy.TimeFromUniversalDays(t.Sub(J2000).Seconds() / secondsPerDay)
}

// goTime converts back. Precision is limited by the float64 day count,
// which keeps sub-millisecond accuracy for several millennia around J2000.
func goTime(at astronomy.AstroTime) time.Time {
	return J2000.Add(time.Duration(at.Ut * secondsPerDay * float64(time.Second)))
}

func (e *Engine) SearchRise(obs Observer, from time.Time, limitDays float64) (time.Time, error) {
	return e.searchSunEvent(astronomy.Rise, "sunrise", obs, from, limitDays)
}

func (e *Engine) SearchSet(obs Observer, from time.Time, limitDays float64) (time.Time, error) {
	return e.searchSunEvent(astronomy.Set, "sunset", obs, from, limitDays)
}

func (e *Engine) searchSunEvent(dir astronomy.Direction, name string, obs Observer, from time.Time, limitDays float64) (time.Time, error) {
	observer := astronomy.Observer{
		Latitude:  obs.Latitude,
		Longitude: obs.Longitude,
		Height:    0,
	}
	at, err := astronomy.SearchRiseSet(astronomy.Sun, observer, dir, astroTime(from), limitDays, 0)
	if err != nil {
		return time.Time{}, err
	}
	if at == nil {
		return time.Time{}, &NoEventError{Event: name, Around: from, Days: limitDays}
	}
	return goTime(*at), nil
}

func (e *Engine) Longitude(p Planet, at time.Time) (float64, error) {
	t := astroTime(at)
	switch p {
	case Sun:
		// Apparent solar longitude already comes in true-ecliptic-of-date
		// coordinates.
		return Normalize360(astronomy.SunPosition(t).Elon), nil
	case Moon:
		return Normalize360(astronomy.EclipticGeoMoon(t).Lon), nil
	default:
		// Geocentric vector with light-travel and aberration correction,
		// rotated from the J2000 equator to the true ecliptic of date.
		vec, err := astronomy.GeoVector(engineBody[p], t, astronomy.Aberrate)
		if err != nil {
			return 0, err
		}
		rot := astronomy.RotationEqjEct(&t)
		sph := astronomy.SphereFromVector(astronomy.RotateVector(rot, vec))
		return Normalize360(sph.Lon), nil
	}
}

func (e *Engine) SiderealTime(at time.Time) float64 {
	t := astroTime(at)
	// The engine reports sidereal hours; callers want degrees.
	return Normalize360(astronomy.SiderealTime(&t) * 15.0)
}
