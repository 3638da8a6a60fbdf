/*
# Module: types/poi.go
Point of interest data structures produced by POI providers.

## Linked Modules
- [types/location](./location.go) - Location value type

## Tags
data-types, poi, geolocation

## Exports
PointOfInterest, POICategory, POIMetadata, SearchOptions

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/poi.go" ;
    code:description "Point of interest data structures produced by POI providers" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location value type"
    ] ;
    code:exports :PointOfInterest, :POICategory, :POIMetadata, :SearchOptions ;
    code:tags "data-types", "poi", "geolocation" .
<!-- End LinkedDoc RDF -->
*/
package types

// POICategory is the domain tag attached to every point of interest
type POICategory string

const (
	CategoryHistorical    POICategory = "historical"
	CategoryCultural      POICategory = "cultural"
	CategoryNatural       POICategory = "natural"
	CategoryArchitectural POICategory = "architectural"
	CategoryReligious     POICategory = "religious"
	CategoryEntertainment POICategory = "entertainment"
	CategoryCommercial    POICategory = "commercial"
	CategoryGeographical  POICategory = "geographical"
	CategoryOther         POICategory = "other"
)

// Valid reports whether c is one of the known categories
func (c POICategory) Valid() bool {
	switch c {
	case CategoryHistorical, CategoryCultural, CategoryNatural, CategoryArchitectural,
		CategoryReligious, CategoryEntertainment, CategoryCommercial, CategoryGeographical, CategoryOther:
		return true
	}
	return false
}

// POIMetadata carries the provider's scoring output alongside raw provider fields
type POIMetadata struct {
	Significance     float64           `json:"significance"`
	SignificanceTags []string          `json:"significance_tags,omitempty"`
	Extra            map[string]string `json:"extra,omitempty"`
}

// PointOfInterest is a named, located, categorized place of narrative interest
type PointOfInterest struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    POICategory `json:"category"`
	Location    Location    `json:"location"`
	Description string      `json:"description,omitempty"`
	Metadata    POIMetadata `json:"metadata"`
}

// Significance is shorthand for Metadata.Significance
func (p PointOfInterest) Significance() float64 {
	return p.Metadata.Significance
}

// SearchOptions bounds a POI discovery query
type SearchOptions struct {
	RadiusMeters int
	MaxResults   int
}
