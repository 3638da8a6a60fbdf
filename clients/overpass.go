/*
# Module: clients/overpass.go
OpenStreetMap Overpass API client for keyless point of interest discovery.

## Linked Modules
- [types/poi](../types/poi.go) - POI data structures
- [types/api_types](../types/api_types.go) - Overpass response types
- [clients/significance](./significance.go) - Category mapping and scoring

## Tags
api-client, openstreetmap, overpass, geolocation, poi

## Exports
OverpassClient, NewOverpassClient, DiscoverPOIs

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/overpass.go" ;
    code:description "OpenStreetMap Overpass API client for keyless point of interest discovery" ;
    code:linksTo [
        code:name "types/poi" ;
        code:path "../types/poi.go" ;
        code:relationship "POI data structures"
    ], [
        code:name "types/api_types" ;
        code:path "../types/api_types.go" ;
        code:relationship "Overpass response types"
    ], [
        code:name "clients/significance" ;
        code:path "./significance.go" ;
        code:relationship "Category mapping and scoring"
    ] ;
    code:exports :OverpassClient, :NewOverpassClient, :DiscoverPOIs ;
    code:tags "api-client", "openstreetmap", "overpass", "geolocation", "poi" .
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
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"location-stories/types"
)

const overpassURL = "https://overpass-api.de/api/interpreter"

// OverpassClient queries OpenStreetMap for named, notable nodes
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOverpassClient creates a new Overpass API client. The public instance asks
// for no more than one request per second.
func NewOverpassClient(baseURL string, requestsPerSecond float64) *OverpassClient {
	if baseURL == "" {
		baseURL = overpassURL
	}
	return &OverpassClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 25 * time.Second},
		limiter:    newLimiter(requestsPerSecond),
	}
}

func buildOverpassQuery(loc types.Location, radius int) string {
	around := fmt.Sprintf("(around:%d,%.6f,%.6f)", radius, loc.Latitude, loc.Longitude)
	filters := []string{
		`node["historic"]["name"]`,
		`node["tourism"~"museum|attraction|gallery|viewpoint"]["name"]`,
		`node["amenity"="place_of_worship"]["name"]`,
		`node["natural"]["name"]`,
		`node["place"~"square|neighbourhood|quarter"]["name"]`,
	}
	var b strings.Builder
	b.WriteString("[out:json][timeout:20];(")
	for _, f := range filters {
		b.WriteString(f)
		b.WriteString(around)
		b.WriteString(";")
	}
	b.WriteString(");out body;")
	return b.String()
}

// DiscoverPOIs finds notable OpenStreetMap nodes near the given location,
// highest significance first
func (c *OverpassClient) DiscoverPOIs(ctx context.Context, loc types.Location, opts types.SearchOptions) ([]types.PointOfInterest, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for Overpass rate limit: %w", err)
	}

	form := url.Values{}
	form.Set("data", buildOverpassQuery(loc, opts.RadiusMeters))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Overpass API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("Overpass API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result types.OverpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse Overpass response: %w", err)
	}

	pois := make([]types.PointOfInterest, 0, len(result.Elements))
	for _, el := range result.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		category := categoryFromOSMTags(el.Tags)
		score, sigTags := scoreOSMElement(category, el.Tags)
		pois = append(pois, types.PointOfInterest{
			ID:          fmt.Sprintf("osm:%s/%d", el.Type, el.ID),
			Name:        name,
			Category:    category,
			Location:    types.Location{Latitude: el.Lat, Longitude: el.Lon},
			Description: el.Tags["description"],
			Metadata: types.POIMetadata{
				Significance:     score,
				SignificanceTags: sigTags,
				Extra:            map[string]string{"source": "overpass", "wikipedia": el.Tags["wikipedia"]},
			},
		})
	}

	sort.SliceStable(pois, func(i, j int) bool {
		return pois[i].Metadata.Significance > pois[j].Metadata.Significance
	})
	if opts.MaxResults > 0 && len(pois) > opts.MaxResults {
		pois = pois[:opts.MaxResults]
	}

	log.Printf("🏛️  Found %d OpenStreetMap POIs near location (%s)", len(pois), loc)
	return pois, nil
}
