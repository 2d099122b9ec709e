package positions

import (
	"math"
	"testing"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/zodiac"
)

// fakeEphemeris moves each body linearly from a base longitude at a fixed
// rate in degrees per hour, so direction and wraparound are controlled.
type fakeEphemeris struct {
	epoch    time.Time
	base     map[astro.Planet]float64
	rate     map[astro.Planet]float64
	sidereal float64
}

func (f *fakeEphemeris) Longitude(p astro.Planet, at time.Time) (float64, error) {
	h := at.Sub(f.epoch).Hours()
	return astro.Normalize360(f.base[p] + f.rate[p]*h), nil
}

func (f *fakeEphemeris) SiderealTime(time.Time) float64 {
	return f.sidereal
}

func (f *fakeEphemeris) SearchRise(astro.Observer, time.Time, float64) (time.Time, error) {
	panic("not used")
}

func (f *fakeEphemeris) SearchSet(astro.Observer, time.Time, float64) (time.Time, error) {
	panic("not used")
}

func newFake() *fakeEphemeris {
	f := &fakeEphemeris{
		epoch: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		base:  map[astro.Planet]float64{},
		rate:  map[astro.Planet]float64{},
	}
	for _, p := range astro.Tracked {
		f.base[p] = float64(p) * 20
		f.rate[p] = 0.1
	}
	return f
}

func TestComputeRetrograde(t *testing.T) {
	f := newFake()
	f.rate[astro.Mars] = -0.05 // retrograde
	// Prograde across the 0-degree wraparound: 359.9 moving forward must
	// not read as backward motion.
	f.base[astro.Venus] = 359.9
	f.rate[astro.Venus] = 0.1

	got, err := NewService(f).Compute(f.epoch.Add(12*time.Hour), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byPlanet := map[astro.Planet]Position{}
	for _, pos := range got {
		byPlanet[pos.Planet] = pos
	}
	if !byPlanet[astro.Mars].Retrograde {
		t.Errorf("Mars moving backward should be retrograde")
	}
	if byPlanet[astro.Venus].Retrograde {
		t.Errorf("Venus crossing 0 degrees prograde should not be retrograde")
	}
	if byPlanet[astro.Sun].Retrograde {
		t.Errorf("Sun should never read retrograde")
	}
}

func TestComputeOrderAndSigns(t *testing.T) {
	f := newFake()
	got, err := NewService(f).Compute(f.epoch, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(astro.Tracked) {
		t.Fatalf("got %d positions, wanted %d", len(got), len(astro.Tracked))
	}
	for i, pos := range got {
		if pos.Planet != astro.Tracked[i] {
			t.Errorf("position %d is %v, wanted %v", i, pos.Planet, astro.Tracked[i])
		}
		wantSign, wantDeg := zodiac.SignOf(pos.Longitude)
		if pos.Sign != wantSign || math.Abs(pos.Degree-wantDeg) > 1e-12 {
			t.Errorf("%v: got (%v, %v), wanted (%v, %v)",
				pos.Planet, pos.Sign, pos.Degree, wantSign, wantDeg)
		}
		if pos.House != 0 {
			t.Errorf("%v: got house %d without an observer", pos.Planet, pos.House)
		}
	}
}

func TestComputeHouses(t *testing.T) {
	f := newFake()
	// Put the Sun at 0 Aries and fix sidereal time so the ascendant lands
	// in a known sign, then check the whole-sign offsets.
	f.base[astro.Sun] = 5 // Aries
	obs := &astro.Observer{Latitude: 0, Longitude: 0}

	svc := NewService(f)
	asc := svc.Ascendant(f.epoch, *obs)
	ascSign, _ := zodiac.SignOf(asc)

	got, err := svc.Compute(f.epoch, obs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, pos := range got {
		want := (int(pos.Sign)-int(ascSign)+12)%12 + 1
		if pos.House != want {
			t.Errorf("%v in %v with ascendant in %v: got house %d, wanted %d",
				pos.Planet, pos.Sign, ascSign, pos.House, want)
		}
		if pos.House < 1 || pos.House > 12 {
			t.Errorf("%v: house %d out of range", pos.Planet, pos.House)
		}
	}
}

func TestComputeRejectsBadObserver(t *testing.T) {
	f := newFake()
	_, err := NewService(f).Compute(f.epoch, &astro.Observer{Latitude: math.NaN()})
	if err == nil {
		t.Fatal("expected an error for NaN latitude")
	}
}

func TestAscendantAtEquinoxPoint(t *testing.T) {
	// With 0 local sidereal time at the equator the formula reduces to
	// atan2(sin(0)cos e, cos 0) = 0: the ascendant sits at 0 Aries.
	f := newFake()
	f.sidereal = 0
	asc := NewService(f).Ascendant(f.epoch, astro.Observer{Latitude: 0, Longitude: 0})
	if math.Abs(astro.Normalize180(asc)) > 1e-9 {
		t.Errorf("got ascendant %v, wanted 0", asc)
	}
}

// TestGoldenLongitudes pins the classical bodies against the real
// ephemeris at 2025-01-01T00:00:00Z.
func TestGoldenLongitudes(t *testing.T) {
	at := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	got, err := NewService(astro.NewEngine()).Compute(at, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[astro.Planet]struct {
		lon   float64
		retro bool
	}{
		astro.Sun:     {280.813782275972, false},
		astro.Moon:    {293.91430308803325, false},
		astro.Mercury: {259.8703910793755, false},
		astro.Venus:   {327.712373643942, false},
		astro.Mars:    {121.91730636403625, true},
		astro.Jupiter: {73.21479306295934, true},
		astro.Saturn:  {344.5224140684451, false},
	}

	const tolerance = 1e-6
	for _, pos := range got {
		w, ok := want[pos.Planet]
		if !ok {
			continue
		}
		if math.Abs(pos.Longitude-w.lon) > tolerance {
			t.Errorf("%v: got longitude %.9f, wanted %.9f", pos.Planet, pos.Longitude, w.lon)
		}
		if pos.Retrograde != w.retro {
			t.Errorf("%v: got retrograde=%v, wanted %v", pos.Planet, pos.Retrograde, w.retro)
		}
	}
}
