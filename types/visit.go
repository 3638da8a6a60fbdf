/*
# Module: types/visit.go
Visit log records for processed location requests.

## Linked Modules
- [types/location](./location.go) - Location value type

## Tags
data-types, location, history

## Exports
Visit

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/visit.go" ;
    code:description "Visit log records for processed location requests" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location value type"
    ] ;
    code:exports :Visit ;
    code:tags "data-types", "location", "history" .
<!-- End LinkedDoc RDF -->
*/
package types

import "time"

// Visit records one processed location request and the seeds it produced
type Visit struct {
	VisitID   string    `json:"visit_id" dynamodbav:"visit_id"`
	Latitude  float64   `json:"latitude" dynamodbav:"latitude"`
	Longitude float64   `json:"longitude" dynamodbav:"longitude"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
	SeedIDs   []string  `json:"seed_ids" dynamodbav:"seed_ids"`
	POICount  int       `json:"poi_count" dynamodbav:"poi_count"`
	Fallback  bool      `json:"fallback" dynamodbav:"fallback"`
}
