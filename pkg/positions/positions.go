// Package positions computes geocentric ecliptic positions of the tracked
// bodies: longitude of date, zodiac sign, retrograde state, essential
// dignity, and optionally a whole-sign house when an observer is supplied.
package positions

import (
	"math"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/zodiac"
)

// retroWindow is the backward finite-difference step for the retrograde
// test. It is far shorter than any tracked body's retrograde arc, so the
// longitude delta's sign is a reliable direction proxy everywhere except
// within hours of a station, where the heuristic may report either way.
const retroWindow = 6 * time.Hour

// Position describes one body at one instant.
type Position struct {
	Planet     astro.Planet
	Longitude  float64 // ecliptic longitude of date, [0, 360)
	Sign       zodiac.Sign
	Degree     float64 // degree within Sign, [0, 30)
	Retrograde bool
	Dignity    zodiac.Dignity
	House      int // whole-sign house 1..12, or 0 when no observer given
}

// Service computes positions through an injected ephemeris.
type Service struct {
	eph astro.Ephemeris
}

func NewService(eph astro.Ephemeris) *Service {
	return &Service{eph: eph}
}

// Compute returns the position of every tracked body at the instant, in
// Tracked order. With a non-nil observer, each position also carries its
// whole-sign house counted from the ascendant's sign.
func (s *Service) Compute(at time.Time, obs *astro.Observer) ([]Position, error) {
	ascSign := zodiac.Aries
	withHouses := obs != nil
	if withHouses {
		if err := obs.Validate(); err != nil {
			return nil, err
		}
		ascSign, _ = zodiac.SignOf(s.Ascendant(at, *obs))
	}

	result := make([]Position, 0, len(astro.Tracked))
	for _, p := range astro.Tracked {
		pos, err := s.positionOf(p, at)
		if err != nil {
			return nil, err
		}
		if withHouses {
			pos.House = (int(pos.Sign)-int(ascSign)+12)%12 + 1
		}
		result = append(result, pos)
	}
	return result, nil
}

func (s *Service) positionOf(p astro.Planet, at time.Time) (Position, error) {
	lon, err := s.eph.Longitude(p, at)
	if err != nil {
		return Position{}, err
	}
	earlier, err := s.eph.Longitude(p, at.Add(-retroWindow))
	if err != nil {
		return Position{}, err
	}

	sign, degree := zodiac.SignOf(lon)
	return Position{
		Planet:     p,
		Longitude:  lon,
		Sign:       sign,
		Degree:     degree,
		Retrograde: astro.Normalize180(lon-earlier) < 0,
		Dignity:    zodiac.Status(p, sign),
	}, nil
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon,
// in degrees. This is the simplified formula over mean obliquity and local
// sidereal time; it backs whole-sign houses only, not a quadrant system.
func (s *Service) Ascendant(at time.Time, obs astro.Observer) float64 {
	lst := astro.Normalize360(s.eph.SiderealTime(at) + obs.Longitude)
	eps := astro.MeanObliquity(at) * math.Pi / 180
	phi := obs.Latitude * math.Pi / 180
	ramc := lst * math.Pi / 180

	asc := math.Atan2(
		math.Sin(ramc)*math.Cos(eps)+math.Tan(phi)*math.Sin(eps),
		math.Cos(ramc),
	)
	return astro.Normalize360(asc * 180 / math.Pi)
}
