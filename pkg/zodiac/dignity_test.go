package zodiac

import (
	"testing"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
)

func TestStatusSpotChecks(t *testing.T) {
	table := []struct {
		planet astro.Planet
		sign   Sign
		want   Dignity
	}{
		{astro.Sun, Leo, Domicile},
		{astro.Sun, Aries, Exaltation},
		{astro.Sun, Aquarius, Detriment},
		{astro.Sun, Libra, Fall},
		{astro.Sun, Gemini, Peregrine},
		{astro.Moon, Cancer, Domicile},
		{astro.Moon, Taurus, Exaltation},
		{astro.Moon, Scorpio, Fall},
		// Virgo is both Mercury's domicile and exaltation; domicile wins.
		{astro.Mercury, Virgo, Domicile},
		{astro.Mercury, Gemini, Domicile},
		{astro.Mercury, Sagittarius, Detriment},
		{astro.Venus, Libra, Domicile},
		{astro.Venus, Pisces, Exaltation},
		{astro.Venus, Virgo, Fall},
		{astro.Mars, Scorpio, Domicile},
		{astro.Mars, Capricorn, Exaltation},
		{astro.Mars, Cancer, Fall},
		{astro.Jupiter, Sagittarius, Domicile},
		{astro.Jupiter, Cancer, Exaltation},
		{astro.Jupiter, Capricorn, Fall},
		{astro.Saturn, Aquarius, Domicile},
		{astro.Saturn, Libra, Exaltation},
		{astro.Saturn, Aries, Fall},
		{astro.Saturn, Leo, Detriment},
	}
	for _, tc := range table {
		if got := Status(tc.planet, tc.sign); got != tc.want {
			t.Errorf("Status(%v, %v): got %v, wanted %v", tc.planet, tc.sign, got, tc.want)
		}
	}
}

func TestStatusTotal(t *testing.T) {
	// Every (planet, sign) pair must classify without panicking, and outer
	// planets are always peregrine.
	for _, p := range astro.Tracked {
		for s := Aries; s <= Pisces; s++ {
			got := Status(p, s)
			if got < Peregrine || got > Fall {
				t.Errorf("Status(%v, %v): invalid dignity %d", p, s, int(got))
			}
			if !p.Classical() && got != Peregrine {
				t.Errorf("Status(%v, %v): got %v, outer planets are always peregrine", p, s, got)
			}
		}
	}
}

func TestDomicileDetrimentMirror(t *testing.T) {
	// Detriment must be exactly the signs opposite each domicile.
	for p, homes := range domiciles {
		for _, home := range homes {
			if got := Status(p, home.Opposite()); got != Detriment {
				t.Errorf("Status(%v, %v): got %v, wanted detriment", p, home.Opposite(), got)
			}
		}
	}
	for p, exalted := range exaltations {
		// The fall sign mirrors the exaltation, except where it is also
		// opposite a domicile (Mercury in Pisces): detriment outranks fall.
		want := Fall
		for _, home := range domiciles[p] {
			if exalted.Opposite() == home.Opposite() {
				want = Detriment
			}
		}
		if got := Status(p, exalted.Opposite()); got != want {
			t.Errorf("Status(%v, %v): got %v, wanted %v", p, exalted.Opposite(), got, want)
		}
	}
}
