/*
# Module: storage/similarity.go
Similarity fingerprints and scoring between content inputs.

## Linked Modules
- [types/content](../types/content.go) - Content input union

## Tags
storage, cache, similarity

## Exports
Similarity, Fingerprint, NormalizeText, DefaultSimilarityThreshold, DefaultMatchRadiusMeters

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/similarity.go" ;
    code:description "Similarity fingerprints and scoring between content inputs" ;
    code:linksTo [
        code:name "types/content" ;
        code:path "../types/content.go" ;
        code:relationship "Content input union"
    ] ;
    code:exports :Similarity, :Fingerprint, :NormalizeText ;
    code:tags "storage", "cache", "similarity" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"strings"
	"unicode"

	"location-stories/types"
)

const (
	// DefaultSimilarityThreshold is the minimum score for a cache hit
	DefaultSimilarityThreshold = 0.8

	// DefaultMatchRadiusMeters is how close two structured inputs must be to match
	DefaultMatchRadiusMeters = 100.0
)

// NormalizeText lower-cases, drops punctuation and collapses whitespace
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		default:
			space = true
		}
	}
	return b.String()
}

// Fingerprint is the exact-match key of an input. Two description inputs with the
// same normalized text share a fingerprint; structured inputs key on category and name.
func Fingerprint(input types.ContentInput) string {
	if poi, ok := input.POI(); ok {
		return "poi:" + string(poi.Category) + ":" + NormalizeText(poi.Name)
	}
	return "text:" + NormalizeText(input.Description())
}

// Similarity scores two inputs in [0, 1].
//
// Descriptions: 1.0 for equal normalized text, otherwise the Jaccard overlap of
// their word sets. Structured POIs: 0 unless the categories and normalized names
// match and the locations are within radiusMeters, then 1 - 0.2*d/radius.
// Mixed variants score 0.
func Similarity(a, b types.ContentInput, radiusMeters float64) float64 {
	poiA, aIsPOI := a.POI()
	poiB, bIsPOI := b.POI()

	switch {
	case aIsPOI && bIsPOI:
		if poiA.Category != poiB.Category {
			return 0
		}
		name := NormalizeText(poiA.Name)
		if name == "" || name != NormalizeText(poiB.Name) {
			return 0
		}
		d := haversineMeters(poiA.Location.Latitude, poiA.Location.Longitude,
			poiB.Location.Latitude, poiB.Location.Longitude)
		if d > radiusMeters {
			return 0
		}
		return 1 - 0.2*d/radiusMeters
	case !aIsPOI && !bIsPOI:
		return textSimilarity(NormalizeText(a.Description()), NormalizeText(b.Description()))
	default:
		return 0
	}
}

func textSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return jaccard(tokenSet(a), tokenSet(b))
}

func tokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(normalized) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}
