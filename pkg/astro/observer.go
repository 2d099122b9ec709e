package astro

import (
	"fmt"
	"math"
)

// Observer is a point on the Earth's surface.
type Observer struct {
	Latitude  float64
	Longitude float64
}

// BadInputError describes a query parameter that failed validation. Invalid
// coordinates are rejected outright rather than defaulted to 0,0.
type BadInputError struct {
	Field  string
	Reason string
}

func (e *BadInputError) Error() string {
	return fmt.Sprintf("bad input %s: %s", e.Field, e.Reason)
}

// Validate rejects NaN and out-of-range coordinates.
func (o Observer) Validate() error {
	if math.IsNaN(o.Latitude) || o.Latitude < -90 || o.Latitude > 90 {
		return &BadInputError{
			Field:  "latitude",
			Reason: fmt.Sprintf("%v not in [-90, 90]", o.Latitude),
		}
	}
	if math.IsNaN(o.Longitude) || o.Longitude < -180 || o.Longitude > 180 {
		return &BadInputError{
			Field:  "longitude",
			Reason: fmt.Sprintf("%v not in [-180, 180]", o.Longitude),
		}
	}
	return nil
}
