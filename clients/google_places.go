/*
# Module: clients/google_places.go
Google Places API client for nearby point of interest discovery.

## Linked Modules
- [types/poi](../types/poi.go) - POI data structures
- [types/api_types](../types/api_types.go) - Google Places response types
- [clients/significance](./significance.go) - Category mapping and scoring

## Tags
api-client, google, places, geolocation, poi

## Exports
GooglePlacesClient, NewGooglePlacesClient, DiscoverPOIs

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/google_places.go" ;
    code:description "Google Places API client for nearby point of interest discovery" ;
    code:linksTo [
        code:name "types/poi" ;
        code:path "../types/poi.go" ;
        code:relationship "POI data structures"
    ], [
        code:name "types/api_types" ;
        code:path "../types/api_types.go" ;
        code:relationship "Google Places response types"
    ], [
        code:name "clients/significance" ;
        code:path "./significance.go" ;
        code:relationship "Category mapping and scoring"
    ] ;
    code:exports :GooglePlacesClient, :NewGooglePlacesClient, :DiscoverPOIs ;
    code:tags "api-client", "google", "places", "geolocation", "poi" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"location-stories/types"
)

const googlePlacesURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// GooglePlacesClient handles Google Places API requests
type GooglePlacesClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGooglePlacesClient creates a new Google Places API client limited to
// requestsPerSecond outbound calls
func NewGooglePlacesClient(apiKey string, requestsPerSecond float64) *GooglePlacesClient {
	return &GooglePlacesClient{
		apiKey:     apiKey,
		baseURL:    googlePlacesURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    newLimiter(requestsPerSecond),
	}
}

// DiscoverPOIs finds points of interest near the given location
func (c *GooglePlacesClient) DiscoverPOIs(ctx context.Context, loc types.Location, opts types.SearchOptions) ([]types.PointOfInterest, error) {
	if c.apiKey == "" {
		log.Println("⚠️  Google Maps API key not set, skipping POI search")
		return []types.PointOfInterest{}, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for Google Places rate limit: %w", err)
	}

	params := url.Values{}
	params.Add("location", fmt.Sprintf("%.6f,%.6f", loc.Latitude, loc.Longitude))
	params.Add("radius", fmt.Sprintf("%d", opts.RadiusMeters))
	params.Add("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Google Places API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("Google Places API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result types.GooglePlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse Google Places response: %w", err)
	}
	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("Google Places API status %s: %s", result.Status, result.ErrorMessage)
	}

	pois := make([]types.PointOfInterest, 0, len(result.Results))
	for _, place := range result.Results {
		if opts.MaxResults > 0 && len(pois) >= opts.MaxResults {
			break
		}
		category := categoryFromGoogleTypes(place.Types)
		score, tags := scoreGooglePlace(category, place.Types, place.Rating, place.UserRatingsTotal)

		address := place.FormattedAddress
		if address == "" {
			address = place.Vicinity
		}
		pois = append(pois, types.PointOfInterest{
			ID:       place.PlaceID,
			Name:     place.Name,
			Category: category,
			Location: types.Location{
				Latitude:  place.Geometry.Location.Lat,
				Longitude: place.Geometry.Location.Lng,
			},
			Description: address,
			Metadata: types.POIMetadata{
				Significance:     score,
				SignificanceTags: tags,
				Extra:            map[string]string{"source": "google_places", "address": address},
			},
		})
	}

	log.Printf("🏛️  Found %d places near location (%s)", len(pois), loc)
	return pois, nil
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
}
