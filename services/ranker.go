/*
# Module: services/ranker.go
Significance ranking that narrows discovered POIs to a bounded candidate set.

## Linked Modules
- [types/poi](../types/poi.go) - POI data structures

## Tags
business-logic, ranking, poi

## Exports
RankPOIs, SelectCandidates, DefaultSignificanceThreshold, DefaultMaxCandidates

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/ranker.go" ;
    code:description "Significance ranking that narrows discovered POIs to a bounded candidate set" ;
    code:linksTo [
        code:name "types/poi" ;
        code:path "../types/poi.go" ;
        code:relationship "POI data structures"
    ] ;
    code:exports :RankPOIs, :SelectCandidates ;
    code:tags "business-logic", "ranking", "poi" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"sort"

	"location-stories/types"
)

const (
	DefaultSignificanceThreshold = 0.3
	DefaultMaxCandidates         = 3
)

// RankPOIs keeps POIs scoring strictly above threshold, orders them by score
// descending and returns at most limit. Equal scores keep their input order.
func RankPOIs(pois []types.PointOfInterest, threshold float64, limit int) []types.PointOfInterest {
	ranked := make([]types.PointOfInterest, 0, len(pois))
	for _, p := range pois {
		if p.Significance() > threshold {
			ranked = append(ranked, p)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Significance() > ranked[j].Significance()
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SelectCandidates ranks pois and, when nothing clears the threshold, falls back
// to the single highest-scoring POI. Returns nil only for empty input.
func SelectCandidates(pois []types.PointOfInterest, threshold float64, limit int) []types.PointOfInterest {
	if len(pois) == 0 {
		return nil
	}
	if ranked := RankPOIs(pois, threshold, limit); len(ranked) > 0 {
		return ranked
	}
	best, _ := mostSignificant(pois)
	return []types.PointOfInterest{best}
}

// mostSignificant returns the first POI with the highest score
func mostSignificant(pois []types.PointOfInterest) (types.PointOfInterest, bool) {
	if len(pois) == 0 {
		return types.PointOfInterest{}, false
	}
	best := pois[0]
	for _, p := range pois[1:] {
		if p.Significance() > best.Significance() {
			best = p
		}
	}
	return best, true
}
