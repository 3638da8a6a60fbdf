/*
# Module: types/location.go
Geographic location value type and coordinate validation.

## Linked Modules
(None - types package has no dependencies)

## Tags
data-types, location, validation

## Exports
Location, NewLocation, ErrInvalidLocation

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/location.go" ;
    code:description "Geographic location value type and coordinate validation" ;
    code:exports :Location, :NewLocation, :ErrInvalidLocation ;
    code:tags "data-types", "location", "validation" .
<!-- End LinkedDoc RDF -->
*/
package types

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidLocation is returned when coordinates fall outside the valid range
var ErrInvalidLocation = errors.New("invalid location")

// Location represents a geographic coordinate with optional fix metadata.
// Timestamp and Accuracy are nil when the client did not send them.
type Location struct {
	Latitude  float64    `json:"latitude" dynamodbav:"latitude"`
	Longitude float64    `json:"longitude" dynamodbav:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty" dynamodbav:"timestamp,omitempty"`
	Accuracy  *float64   `json:"accuracy,omitempty" dynamodbav:"accuracy,omitempty"`
}

// NewLocation validates the coordinates and returns a Location
func NewLocation(lat, lng float64, timestamp *time.Time, accuracy *float64) (Location, error) {
	loc := Location{
		Latitude:  lat,
		Longitude: lng,
		Timestamp: timestamp,
		Accuracy:  accuracy,
	}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks latitude is within [-90, 90] and longitude within [-180, 180]
func (l Location) Validate() error {
	if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidLocation, l.Latitude)
	}
	if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidLocation, l.Longitude)
	}
	if l.Accuracy != nil && (math.IsNaN(*l.Accuracy) || *l.Accuracy < 0) {
		return fmt.Errorf("%w: accuracy must be non-negative", ErrInvalidLocation)
	}
	return nil
}

// String formats the coordinate pair the way it appears in logs and prompts
func (l Location) String() string {
	return fmt.Sprintf("%.6f, %.6f", l.Latitude, l.Longitude)
}
