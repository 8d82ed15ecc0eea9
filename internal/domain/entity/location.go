package entity

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	errs "github.com/amirhossein-jamali/tahajjud-scheduler/internal/domain/error"
)

var coordinateValidator = validator.New()

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// NewCoordinates creates validated coordinates
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	c := Coordinates{Latitude: latitude, Longitude: longitude}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks that both values are within [-90, 90] and [-180, 180]
func (c Coordinates) Validate() error {
	if err := coordinateValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %.6f,%.6f", errs.ErrInvalidCoordinates, c.Latitude, c.Longitude)
	}
	return nil
}

// String renders the pair the way it is printed to users
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// ResolvedVia tells how a location was obtained
type ResolvedVia string

const (
	// ResolvedExplicit means the caller supplied the coordinates
	ResolvedExplicit ResolvedVia = "explicit"
	// ResolvedDetected means the coordinates came from IP geolocation
	ResolvedDetected ResolvedVia = "detected"
	// ResolvedDefault means detection failed and the configured fallback was used
	ResolvedDefault ResolvedVia = "default"
)

// Location is a named place as reported by a geolocation service
type Location struct {
	Coordinates
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// ResolvedLocation is the outcome of location resolution
type ResolvedLocation struct {
	Location
	Via ResolvedVia `json:"resolvedVia"`
}

// IsApproximate reports whether the location is the fallback rather than the user's real position
func (r *ResolvedLocation) IsApproximate() bool {
	return r.Via == ResolvedDefault
}

// DisplayName returns "City, Country" or an empty string when neither is known
func (l Location) DisplayName() string {
	switch {
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.City != "":
		return l.City
	default:
		return l.Country
	}
}
