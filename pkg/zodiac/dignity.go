package zodiac

import (
	"encoding/json"
	"fmt"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
)

// Dignity is the classical strength classification of a planet in a sign.
type Dignity int

const (
	Peregrine Dignity = iota
	Domicile
	Exaltation
	Detriment
	Fall
)

var dignityNames = [...]string{
	"peregrine", "domicile", "exaltation", "detriment", "fall",
}

func (d Dignity) String() string {
	if d < Peregrine || d > Fall {
		return "invalid"
	}
	return dignityNames[d]
}

var _ json.Marshaler = Peregrine
var _ json.Unmarshaler = new(Dignity)

func (d Dignity) MarshalJSON() ([]byte, error) {
	if d < Peregrine || d > Fall {
		return nil, fmt.Errorf("cannot marshal invalid dignity %d", int(d))
	}
	return json.Marshal(d.String())
}

func (d *Dignity) UnmarshalJSON(buf []byte) error {
	var name string
	if err := json.Unmarshal(buf, &name); err != nil {
		return fmt.Errorf("dignity %q not a string: %w", buf, err)
	}
	for i, candidate := range dignityNames {
		if name == candidate {
			*d = Dignity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dignity %q", name)
}

// The classical rulership scheme. Detriment and fall are the signs opposite
// the domiciles and exaltation, derived below rather than listed twice.
var domiciles = map[astro.Planet][]Sign{
	astro.Sun:     {Leo},
	astro.Moon:    {Cancer},
	astro.Mercury: {Gemini, Virgo},
	astro.Venus:   {Taurus, Libra},
	astro.Mars:    {Aries, Scorpio},
	astro.Jupiter: {Sagittarius, Pisces},
	astro.Saturn:  {Capricorn, Aquarius},
}

var exaltations = map[astro.Planet]Sign{
	astro.Sun:     Aries,
	astro.Moon:    Taurus,
	astro.Mercury: Virgo,
	astro.Venus:   Pisces,
	astro.Mars:    Capricorn,
	astro.Jupiter: Cancer,
	astro.Saturn:  Libra,
}

// Status returns the essential dignity of p in s. It is total: outer
// planets, which have no classical rulerships, always come back Peregrine.
// Domicile wins over exaltation where the two coincide (Mercury in Virgo).
func Status(p astro.Planet, s Sign) Dignity {
	if !p.Classical() {
		return Peregrine
	}
	for _, home := range domiciles[p] {
		if s == home {
			return Domicile
		}
	}
	if s == exaltations[p] {
		return Exaltation
	}
	for _, home := range domiciles[p] {
		if s == home.Opposite() {
			return Detriment
		}
	}
	if s == exaltations[p].Opposite() {
		return Fall
	}
	return Peregrine
}
