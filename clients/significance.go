/*
# Module: clients/significance.go
Heuristic category mapping and significance scoring for provider results.

## Linked Modules
- [types/poi](../types/poi.go) - POI categories and metadata

## Tags
poi, scoring, heuristics

## Exports
(none - package internal helpers)

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/significance.go" ;
    code:description "Heuristic category mapping and significance scoring for provider results" ;
    code:linksTo [
        code:name "types/poi" ;
        code:path "../types/poi.go" ;
        code:relationship "POI categories and metadata"
    ] ;
    code:tags "poi", "scoring", "heuristics" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"math"
	"sort"

	"location-stories/types"
)

var categoryBaseScore = map[types.POICategory]float64{
	types.CategoryHistorical:    0.6,
	types.CategoryReligious:     0.5,
	types.CategoryCultural:      0.5,
	types.CategoryArchitectural: 0.45,
	types.CategoryNatural:       0.4,
	types.CategoryGeographical:  0.35,
	types.CategoryEntertainment: 0.3,
	types.CategoryCommercial:    0.1,
	types.CategoryOther:         0.15,
}

// Priority order matters: the first matching Google type decides the category
var googleTypeCategories = []struct {
	placeType string
	category  types.POICategory
}{
	{"museum", types.CategoryCultural},
	{"art_gallery", types.CategoryCultural},
	{"library", types.CategoryCultural},
	{"university", types.CategoryCultural},
	{"cemetery", types.CategoryHistorical},
	{"church", types.CategoryReligious},
	{"mosque", types.CategoryReligious},
	{"synagogue", types.CategoryReligious},
	{"hindu_temple", types.CategoryReligious},
	{"place_of_worship", types.CategoryReligious},
	{"city_hall", types.CategoryArchitectural},
	{"courthouse", types.CategoryArchitectural},
	{"embassy", types.CategoryArchitectural},
	{"park", types.CategoryNatural},
	{"natural_feature", types.CategoryNatural},
	{"campground", types.CategoryNatural},
	{"zoo", types.CategoryEntertainment},
	{"aquarium", types.CategoryEntertainment},
	{"amusement_park", types.CategoryEntertainment},
	{"stadium", types.CategoryEntertainment},
	{"movie_theater", types.CategoryEntertainment},
	{"tourist_attraction", types.CategoryHistorical},
	{"locality", types.CategoryGeographical},
	{"neighborhood", types.CategoryGeographical},
	{"restaurant", types.CategoryCommercial},
	{"cafe", types.CategoryCommercial},
	{"bar", types.CategoryCommercial},
	{"store", types.CategoryCommercial},
	{"shopping_mall", types.CategoryCommercial},
}

// categoryFromGoogleTypes maps Google Places types to a POI category
func categoryFromGoogleTypes(placeTypes []string) types.POICategory {
	present := make(map[string]bool, len(placeTypes))
	for _, t := range placeTypes {
		present[t] = true
	}
	for _, m := range googleTypeCategories {
		if present[m.placeType] {
			return m.category
		}
	}
	return types.CategoryOther
}

// scoreGooglePlace combines the category base score with popularity signals
func scoreGooglePlace(category types.POICategory, placeTypes []string, rating float64, ratings int) (float64, []string) {
	score := categoryBaseScore[category]
	var tags []string

	for _, t := range placeTypes {
		if t == "tourist_attraction" {
			score += 0.15
			tags = append(tags, "tourist_attraction")
		}
	}
	if ratings > 0 {
		score += math.Min(0.2, math.Log10(1+float64(ratings))/25)
		if rating >= 4.5 && ratings >= 100 {
			score += 0.05
			tags = append(tags, "highly_rated")
		}
	}
	return clampScore(score), tags
}

// categoryFromOSMTags maps OpenStreetMap tags to a POI category
func categoryFromOSMTags(tags map[string]string) types.POICategory {
	switch {
	case tags["historic"] != "":
		return types.CategoryHistorical
	case tags["amenity"] == "place_of_worship":
		return types.CategoryReligious
	case tags["tourism"] == "museum" || tags["tourism"] == "gallery" || tags["amenity"] == "theatre" || tags["amenity"] == "arts_centre":
		return types.CategoryCultural
	case tags["building"] != "" && tags["architect"] != "":
		return types.CategoryArchitectural
	case tags["natural"] != "" || tags["leisure"] == "park" || tags["leisure"] == "nature_reserve":
		return types.CategoryNatural
	case tags["place"] != "":
		return types.CategoryGeographical
	case tags["tourism"] == "attraction" || tags["tourism"] == "viewpoint":
		return types.CategoryGeographical
	case tags["tourism"] == "theme_park" || tags["tourism"] == "zoo":
		return types.CategoryEntertainment
	case tags["shop"] != "" || tags["amenity"] == "restaurant" || tags["amenity"] == "cafe":
		return types.CategoryCommercial
	}
	return types.CategoryOther
}

// scoreOSMElement rewards heritage markers and encyclopedia links
func scoreOSMElement(category types.POICategory, tags map[string]string) (float64, []string) {
	score := categoryBaseScore[category]
	var sigTags []string

	add := func(key string, bonus float64) {
		if tags[key] != "" {
			score += bonus
			sigTags = append(sigTags, key)
		}
	}
	add("wikipedia", 0.2)
	add("wikidata", 0.1)
	add("heritage", 0.15)
	add("start_date", 0.05)
	if tags["tourism"] == "attraction" {
		score += 0.1
		sigTags = append(sigTags, "attraction")
	}
	sort.Strings(sigTags)
	return clampScore(score), sigTags
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return math.Round(score*1000) / 1000
}
