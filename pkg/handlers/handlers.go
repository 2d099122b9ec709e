package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/cache"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/hours"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/metrics"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/positions"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/timetricks"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/zodiac"

	"github.com/gorilla/mux"
)

const (
	// Schedules for past or future dates are stable; cache for slightly
	// less than one day so daily clients don't see stale data. Today's
	// schedule expires fast to absorb polling without pinning a date
	// across its own rollover.
	scheduleTTL = 23 * time.Hour
	todayTTL    = 30 * time.Second

	// isoMillis renders instants with millisecond precision; "Z07:00"
	// collapses to "Z" for UTC.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// Register attaches the API endpoints to the router. The ephemeris is
// injected once here and shared by the scheduler and the positions service.
// fallback is an operator-configured observer used when a request omits
// both coordinates; pass an invalid observer (NaN) to disable the
// substitution and require coordinates on every request. Responses built
// from the fallback carry coordsDefaulted so callers can tell a substituted
// location from a requested one.
func Register(r *mux.Router, eph astro.Ephemeris, fallback astro.Observer) {
	scheduler := hours.NewScheduler(eph)
	service := positions.NewService(eph)

	r.Handle("/api/v1/hours", metrics.LatencyHandler(makeServeHours(scheduler, fallback)))
	r.Handle("/api/v1/hours/current", metrics.LatencyHandler(makeServeCurrentHour(scheduler, fallback)))
	r.Handle("/api/v1/positions", metrics.LatencyHandler(makeServePositions(service)))
}

type hourJSON struct {
	Index      int          `json:"index"`
	Ruler      astro.Planet `json:"ruler"`
	IsDay      bool         `json:"isDay"`
	StartUTC   string       `json:"startUtc"`
	EndUTC     string       `json:"endUtc"`
	StartLocal string       `json:"startLocal"`
	EndLocal   string       `json:"endLocal"`
}

type scheduleJSON struct {
	Date            string       `json:"date"`
	Timezone        string       `json:"timezone"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	CoordsDefaulted bool         `json:"coordsDefaulted,omitempty"`
	SunriseUTC      string       `json:"sunriseUtc"`
	SunsetUTC       string       `json:"sunsetUtc"`
	NextSunriseUTC  string       `json:"nextSunriseUtc"`
	DayRuler        astro.Planet `json:"dayRuler"`
	Hours           []hourJSON   `json:"hours"`
}

type currentHourJSON struct {
	Date            string       `json:"date"`
	Timezone        string       `json:"timezone"`
	CoordsDefaulted bool         `json:"coordsDefaulted,omitempty"`
	AsOf            string       `json:"asOf"`
	DayRuler        astro.Planet `json:"dayRuler"`
	Hour            hourJSON     `json:"hour"`
}

func hourToJSON(iv hours.Interval, loc *time.Location) hourJSON {
	return hourJSON{
		Index:      iv.Index,
		Ruler:      iv.Ruler,
		IsDay:      iv.IsDay,
		StartUTC:   iv.Start.UTC().Format(isoMillis),
		EndUTC:     iv.End.UTC().Format(isoMillis),
		StartLocal: iv.Start.In(loc).Format(isoMillis),
		EndLocal:   iv.End.In(loc).Format(isoMillis),
	}
}

func scheduleToJSON(sched *hours.Schedule, zone string, defaulted bool) scheduleJSON {
	loc := sched.Location()
	out := scheduleJSON{
		Date:            sched.Date.String(),
		Timezone:        zone,
		Latitude:        sched.Observer.Latitude,
		Longitude:       sched.Observer.Longitude,
		CoordsDefaulted: defaulted,
		SunriseUTC:      sched.Sunrise.UTC().Format(isoMillis),
		SunsetUTC:       sched.Sunset.UTC().Format(isoMillis),
		NextSunriseUTC:  sched.NextSunrise.UTC().Format(isoMillis),
		DayRuler:        sched.DayRuler,
		Hours:           make([]hourJSON, 0, len(sched.Hours)),
	}
	for _, iv := range sched.Hours {
		out.Hours = append(out.Hours, hourToJSON(iv, loc))
	}
	return out
}

// scheduleText renders the schedule as a plain-text table, one hour per
// line in zone-local time.
func scheduleText(sched *hours.Schedule, zone string, defaulted bool) []byte {
	var b bytes.Buffer
	loc := sched.Location()
	origin := ""
	if defaulted {
		origin = "  (default coordinates)"
	}
	fmt.Fprintf(&b, "%s (%s)  lat %.4f lon %.4f%s\n",
		sched.Date, zone, sched.Observer.Latitude, sched.Observer.Longitude, origin)
	fmt.Fprintf(&b, "day ruler: %s\n", sched.DayRuler)
	fmt.Fprintf(&b, "sunrise %s  sunset %s  next sunrise %s\n",
		sched.Sunrise.In(loc).Format(isoMillis),
		sched.Sunset.In(loc).Format(isoMillis),
		sched.NextSunrise.In(loc).Format(isoMillis))
	for _, iv := range sched.Hours {
		phase := "night"
		if iv.IsDay {
			phase = "day"
		}
		fmt.Fprintf(&b, "%2d  %-7s  %-5s  %s - %s\n",
			iv.Index, iv.Ruler, phase,
			iv.Start.In(loc).Format(isoMillis),
			iv.End.In(loc).Format(isoMillis))
	}
	return b.Bytes()
}

// hoursQuery reads and validates the hours endpoints' parameters. An empty
// date means today in the requested zone. When both coordinates are absent
// and the configured fallback observer is valid, the fallback is
// substituted and defaulted reports that, so responses can mark the result
// as coming from configuration rather than the request.
func hoursQuery(r *http.Request, fallback astro.Observer) (q hours.Query, defaulted bool, err error) {
	var lat, lon float64
	if r.FormValue("lat") == "" && r.FormValue("lon") == "" && fallback.Validate() == nil {
		lat, lon = fallback.Latitude, fallback.Longitude
		defaulted = true
	} else {
		if lat, err = parseFloatParam(r, "lat"); err != nil {
			return hours.Query{}, false, err
		}
		if lon, err = parseFloatParam(r, "lon"); err != nil {
			return hours.Query{}, false, err
		}
	}
	zone := r.FormValue("tz")
	if zone == "" {
		return hours.Query{}, false, &astro.BadInputError{Field: "tz", Reason: "missing"}
	}
	date := r.FormValue("date")
	if date == "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return hours.Query{}, false, &astro.BadInputError{Field: "tz", Reason: err.Error()}
		}
		date = timetricks.Today(loc).String()
	}
	return hours.Query{Latitude: lat, Longitude: lon, Date: date, Zone: zone}, defaulted, nil
}

func parseFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return 0, &astro.BadInputError{Field: name, Reason: "missing"}
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &astro.BadInputError{Field: name, Reason: err.Error()}
	}
	return val, nil
}

func makeServeHours(scheduler *hours.Scheduler, fallback astro.Observer) http.Handler {
	timeCache := cache.NewTimed(scheduleTTL)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, defaulted, err := hoursQuery(r, fallback)
		if err != nil {
			writeError(w, err)
			return
		}

		contentType := "application/json"
		outputFormat := r.FormValue("o")
		if outputFormat == "text" {
			contentType = "text/plain"
		}

		// Coordinates are rounded to four decimals (roughly 11 m) in the
		// key; that is far finer than any hour boundary can resolve. The
		// output format is part of the key since the rendered bytes are
		// what gets cached.
		key := fmt.Sprintf("%s|%s|%.4f|%.4f|%s", q.Date, q.Zone, q.Latitude, q.Longitude, outputFormat)

		// serve cached version from memory if possible
		if cached, ok := timeCache.Get(key); ok {
			metrics.ObserveCacheHit("hours")
			w.Header().Add("Content-Type", contentType)
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		metrics.ObserveCacheMiss("hours")

		sched, err := scheduler.Compute(q)
		if err != nil {
			writeError(w, err)
			return
		}

		var buf []byte
		if outputFormat == "text" {
			buf = scheduleText(sched, q.Zone, defaulted)
		} else {
			buf, err = json.Marshal(scheduleToJSON(sched, q.Zone, defaulted))
			if err != nil {
				writeError(w, err)
				return
			}
		}

		ttl := scheduleTTL
		if timetricks.SameDay(sched.Date.Start(), time.Now().In(sched.Location())) {
			ttl = todayTTL
		}
		timeCache.SetTTL(key, buf, ttl)

		w.Header().Add("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(buf)
	})
}

func makeServeCurrentHour(scheduler *hours.Scheduler, fallback astro.Observer) http.Handler {
	// Never cached: the answer depends on the wall clock.
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, defaulted, err := hoursQuery(r, fallback)
		if err != nil {
			writeError(w, err)
			return
		}

		now := time.Now()
		sched, iv, err := scheduler.CurrentHour(q, now)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, currentHourJSON{
			Date:            sched.Date.String(),
			Timezone:        q.Zone,
			CoordsDefaulted: defaulted,
			AsOf:            now.UTC().Format(isoMillis),
			DayRuler:        sched.DayRuler,
			Hour:            hourToJSON(*iv, sched.Location()),
		})
	})
}

type positionJSON struct {
	Planet       astro.Planet   `json:"planet"`
	LongitudeDeg float64        `json:"longitudeDeg"`
	Sign         zodiac.Sign    `json:"sign"`
	DegreeInSign float64        `json:"degreeInSign"`
	IsRetrograde bool           `json:"isRetrograde"`
	Dignity      zodiac.Dignity `json:"dignity"`
	House        int            `json:"house,omitempty"`
}

type positionsJSON struct {
	InstantUTC string         `json:"instantUtc"`
	Positions  []positionJSON `json:"positions"`
}

func makeServePositions(service *positions.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		at := time.Now()
		if raw := r.FormValue("at"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeError(w, &astro.BadInputError{Field: "at", Reason: err.Error()})
				return
			}
			at = parsed
		}

		// Houses need an observer; lat and lon come together or not at all.
		var obs *astro.Observer
		rawLat, rawLon := r.FormValue("lat"), r.FormValue("lon")
		if (rawLat == "") != (rawLon == "") {
			writeError(w, &astro.BadInputError{
				Field:  "lat/lon",
				Reason: "both or neither must be given",
			})
			return
		}
		if rawLat != "" {
			lat, err := parseFloatParam(r, "lat")
			if err != nil {
				writeError(w, err)
				return
			}
			lon, err := parseFloatParam(r, "lon")
			if err != nil {
				writeError(w, err)
				return
			}
			obs = &astro.Observer{Latitude: lat, Longitude: lon}
		}

		computed, err := service.Compute(at, obs)
		if err != nil {
			writeError(w, err)
			return
		}

		out := positionsJSON{
			InstantUTC: at.UTC().Format(isoMillis),
			Positions:  make([]positionJSON, 0, len(computed)),
		}
		for _, pos := range computed {
			out.Positions = append(out.Positions, positionJSON{
				Planet:       pos.Planet,
				LongitudeDeg: pos.Longitude,
				Sign:         pos.Sign,
				DegreeInSign: pos.Degree,
				IsRetrograde: pos.Retrograde,
				Dignity:      pos.Dignity,
				House:        pos.House,
			})
		}
		writeJSON(w, out)
	})
}

type errorJSON struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// writeError maps the error taxonomy onto status codes: bad input is the
// caller's fault, a missing sun event is a real-world condition the caller
// must handle, anything else is ours.
func writeError(w http.ResponseWriter, err error) {
	body := errorJSON{Error: err.Error()}
	code := http.StatusInternalServerError

	var bad *astro.BadInputError
	var noEvent *astro.NoEventError
	switch {
	case errors.As(err, &bad):
		code = http.StatusBadRequest
	case errors.As(err, &noEvent):
		code = http.StatusConflict
		body.Reason = "polar_day_or_night"
	default:
		log.Printf("Failed to serve request: %+v", err)
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		log.Printf("Failed to encode error response: %+v", encodeErr)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode JSON result: %+v", err)
	}
}
