/*
# Module: types/api_types.go
External API request and response data structures.

## Linked Modules
(None - types package has no dependencies)

## Tags
data-types, api-client

## Exports
PerplexityRequest, PerplexityMessage, PerplexityResponse, GooglePlacesResponse, OverpassResponse, OverpassElement

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/api_types.go" ;
    code:description "External API request and response data structures" ;
    code:exports :PerplexityRequest, :PerplexityMessage, :PerplexityResponse, :GooglePlacesResponse, :OverpassResponse, :OverpassElement ;
    code:tags "data-types", "api-client" .
<!-- End LinkedDoc RDF -->
*/
package types

// PerplexityRequest represents a request to Perplexity API
type PerplexityRequest struct {
	Model    string              `json:"model"`
	Messages []PerplexityMessage `json:"messages"`
}

// PerplexityMessage represents a message in Perplexity API format
type PerplexityMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PerplexityResponse represents response from Perplexity API
type PerplexityResponse struct {
	Choices []struct {
		Message PerplexityMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations,omitempty"`
	Error     *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GooglePlacesResponse represents Google Maps nearby search results
type GooglePlacesResponse struct {
	Results []struct {
		Name             string   `json:"name"`
		Types            []string `json:"types"`
		PlaceID          string   `json:"place_id"`
		Vicinity         string   `json:"vicinity"`
		FormattedAddress string   `json:"formatted_address"`
		Rating           float64  `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// OverpassElement is a node returned by an Overpass QL query
type OverpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// OverpassResponse represents an Overpass API JSON response
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}
