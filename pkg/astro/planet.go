package astro

import (
	"encoding/json"
	"fmt"
)

// Planet is a closed enumeration of the bodies the ephemeris tracks. The
// first seven are the classical planets and the only ones that ever rule a
// planetary hour; the outer three are position-only.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Tracked lists every body in the order position queries report them.
var Tracked = []Planet{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto,
}

var planetNames = [...]string{
	"sun", "moon", "mercury", "venus", "mars",
	"jupiter", "saturn", "uranus", "neptune", "pluto",
}

func (p Planet) Valid() bool {
	return p >= Sun && p <= Pluto
}

// Classical reports whether p is one of the seven classical planets, i.e.
// eligible for hour rulership and essential dignity.
func (p Planet) Classical() bool {
	return p >= Sun && p <= Saturn
}

func (p Planet) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return planetNames[p]
}

// ParsePlanet maps a lowercase planet name back to its Planet.
func ParsePlanet(s string) (Planet, error) {
	for i, name := range planetNames {
		if s == name {
			return Planet(i), nil
		}
	}
	return Planet(-1), fmt.Errorf("unknown planet %q", s)
}

// Verify the enum round-trips through JSON.
var _ json.Marshaler = Sun
var _ json.Unmarshaler = new(Planet)

func (p Planet) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid planet %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *Planet) UnmarshalJSON(buf []byte) error {
	var s string
	if err := json.Unmarshal(buf, &s); err != nil {
		return fmt.Errorf("planet %q not a string: %w", buf, err)
	}
	parsed, err := ParsePlanet(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
