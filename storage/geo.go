/*
# Module: storage/geo.go
Great-circle distance used by cache similarity and location lookups.

## Linked Modules
(None - leaf module)

## Tags
storage, geo, distance

## Exports
(None - package internal)

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/geo.go" ;
    code:description "Great-circle distance used by cache similarity and location lookups" ;
    code:tags "storage", "geo", "distance" .
<!-- End LinkedDoc RDF -->
*/
package storage

import "math"

const earthRadiusMeters = 6371000.0

// haversineMeters calculates the great-circle distance between two points in meters
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
