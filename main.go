package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/astro"
	"github.com/dub88/kronos-planetary-rituals-sub000/pkg/handlers"
)

// Config comes from the environment. The default coordinates back the
// hours endpoints when a request omits lat and lon; they default to NaN
// so the substitution stays off unless an operator sets both.
type Config struct {
	Port             string  `default:"8080"`
	Prefix           string  `default:"/"`
	DefaultLatitude  float64 `split_words:"true" default:"NaN"`
	DefaultLongitude float64 `split_words:"true" default:"NaN"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()

	s.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL)
		fmt.Fprintf(w, "kronos planetary hours\n")
	})
	fallback := astro.Observer{
		Latitude:  env.DefaultLatitude,
		Longitude: env.DefaultLongitude,
	}
	handlers.Register(s, astro.NewEngine(), fallback)
	s.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s/%s", srv.Addr, env.Prefix[1:])
	log.Fatal(srv.ListenAndServe())
}
