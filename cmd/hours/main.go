// Command hours prints one day's planetary hour table and the current
// planetary positions for a location.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/hours"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/positions"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/timetricks"
)

func main() {
	lat := flag.Float64("lat", 40.7608, "observer latitude")
	lon := flag.Float64("lon", -111.891, "observer longitude")
	zone := flag.String("tz", "America/Denver", "IANA time zone")
	date := flag.String("date", "", "civil date YYYY-MM-DD (default today)")
	flag.Parse()

	if *date == "" {
		loc, err := time.LoadLocation(*zone)
		if err != nil {
			fmt.Printf("bad time zone: %v\n", err)
			os.Exit(1)
		}
		*date = timetricks.Today(loc).String()
	}

	eph := astro.NewEngine()
	sched, err := hours.NewScheduler(eph).Compute(hours.Query{
		Latitude:  *lat,
		Longitude: *lon,
		Date:      *date,
		Zone:      *zone,
	})
	if err != nil {
		fmt.Printf("failed to compute schedule: %v\n", err)
		os.Exit(1)
	}

	loc := sched.Location()
	fmt.Printf("%s (%s)  day ruler: %s\n", sched.Date, *zone, sched.DayRuler)
	fmt.Printf("sunrise %s  sunset %s  next sunrise %s\n\n",
		sched.Sunrise.In(loc).Format("15:04:05"),
		sched.Sunset.In(loc).Format("15:04:05"),
		sched.NextSunrise.In(loc).Format("15:04:05"))
	now := time.Now()
	for _, iv := range sched.Hours {
		phase := "night"
		if iv.IsDay {
			phase = "day"
		}
		marker := " "
		if iv.Contains(now) {
			marker = "*"
		}
		fmt.Printf("%s %2d  %-7s  %-5s  %s - %s\n",
			marker, iv.Index, iv.Ruler, phase,
			iv.Start.In(loc).Format("15:04:05"),
			iv.End.In(loc).Format("15:04:05"))
	}

	computed, err := positions.NewService(eph).Compute(now, &astro.Observer{
		Latitude:  *lat,
		Longitude: *lon,
	})
	if err != nil {
		fmt.Printf("failed to compute positions: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\npositions at %s\n", now.UTC().Format(time.RFC3339))
	for _, pos := range computed {
		retro := " "
		if pos.Retrograde {
			retro = "R"
		}
		fmt.Printf("  %-7s %s  %7.3f  %s %6.3f  house %2d  %s\n",
			pos.Planet, retro, pos.Longitude, pos.Sign, pos.Degree, pos.House, pos.Dignity)
	}
}
