// Package zodiac maps ecliptic longitudes onto the twelve tropical signs
// and classifies classical planets by essential dignity.
package zodiac

import (
	"encoding/json"
	"fmt"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
)

// Sign is one of the twelve 30-degree segments of the ecliptic, starting at
// 0 degrees Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

const signSpan = 30.0

var signNames = [...]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return "invalid"
	}
	return signNames[s]
}

// ParseSign maps a lowercase sign name back to its Sign.
func ParseSign(s string) (Sign, error) {
	for i, name := range signNames {
		if s == name {
			return Sign(i), nil
		}
	}
	return Sign(-1), fmt.Errorf("unknown sign %q", s)
}

var _ json.Marshaler = Aries
var _ json.Unmarshaler = new(Sign)

func (s Sign) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid sign %d", int(s))
	}
	return json.Marshal(s.String())
}

func (s *Sign) UnmarshalJSON(buf []byte) error {
	var name string
	if err := json.Unmarshal(buf, &name); err != nil {
		return fmt.Errorf("sign %q not a string: %w", buf, err)
	}
	parsed, err := ParseSign(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SignOf places an ecliptic longitude in its sign and returns the degree
// within that sign, in [0, 30).
func SignOf(longitude float64) (Sign, float64) {
	lon := astro.Normalize360(longitude)
	idx := int(lon / signSpan)
	// Guard against float edge cases at exactly 360.
	if idx < 0 {
		idx = 0
	} else if idx > 11 {
		idx = 11
	}
	return Sign(idx), lon - float64(idx)*signSpan
}

// Opposite returns the sign 180 degrees away.
func (s Sign) Opposite() Sign {
	return Sign((int(s) + 6) % 12)
}
