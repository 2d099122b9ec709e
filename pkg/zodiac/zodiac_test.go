package zodiac

import (
	"math"
	"testing"
)

func TestSignOf(t *testing.T) {
	table := []struct {
		lon    float64
		sign   Sign
		degree float64
	}{
		{0, Aries, 0},
		{29.999, Aries, 29.999},
		{30, Taurus, 0},
		{123.45, Leo, 3.45},
		{280.8138, Capricorn, 10.8138},
		{359.999, Pisces, 29.999},
		{360, Aries, 0},
		{-5, Pisces, 25},
		{745, Aquarius, 25},
	}
	for _, tc := range table {
		sign, degree := SignOf(tc.lon)
		if sign != tc.sign || math.Abs(degree-tc.degree) > 1e-9 {
			t.Errorf("SignOf(%v): got (%v, %v), wanted (%v, %v)",
				tc.lon, sign, degree, tc.sign, tc.degree)
		}
	}
}

func TestSignOfConsistentWithIndex(t *testing.T) {
	for lon := -720.0; lon < 720.0; lon += 7.3 {
		sign, degree := SignOf(lon)
		norm := lon
		for norm < 0 {
			norm += 360
		}
		for norm >= 360 {
			norm -= 360
		}
		if got, want := int(sign), int(norm/30); got != want {
			t.Fatalf("SignOf(%v): got sign index %d, wanted %d", lon, got, want)
		}
		if degree < 0 || degree >= 30 {
			t.Fatalf("SignOf(%v): degree %v out of [0, 30)", lon, degree)
		}
	}
}

func TestOpposite(t *testing.T) {
	if got := Aries.Opposite(); got != Libra {
		t.Errorf("got %v, wanted libra", got)
	}
	if got := Capricorn.Opposite(); got != Cancer {
		t.Errorf("got %v, wanted cancer", got)
	}
	for s := Aries; s <= Pisces; s++ {
		if got := s.Opposite().Opposite(); got != s {
			t.Errorf("double opposite of %v is %v", s, got)
		}
	}
}
