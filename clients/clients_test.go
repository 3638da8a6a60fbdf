package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"location-stories/types"
)

func TestGooglePlacesDiscoverPOIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("radius"); got != "5000" {
			t.Errorf("radius = %q, want 5000", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q", got)
		}
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"name": "City Museum", "types": ["museum", "point_of_interest"], "place_id": "p1",
				 "vicinity": "1 Main St", "rating": 4.7, "user_ratings_total": 2500,
				 "geometry": {"location": {"lat": 40.71, "lng": -74.0}}},
				{"name": "Corner Cafe", "types": ["cafe"], "place_id": "p2",
				 "geometry": {"location": {"lat": 40.72, "lng": -74.01}}},
				{"name": "Third", "types": ["park"], "place_id": "p3",
				 "geometry": {"location": {"lat": 40.73, "lng": -74.02}}}
			]
		}`))
	}))
	defer srv.Close()

	c := NewGooglePlacesClient("test-key", 0)
	c.baseURL = srv.URL

	pois, err := c.DiscoverPOIs(context.Background(), types.Location{Latitude: 40.71, Longitude: -74.0},
		types.SearchOptions{RadiusMeters: 5000, MaxResults: 2})
	if err != nil {
		t.Fatalf("DiscoverPOIs: %v", err)
	}
	if len(pois) != 2 {
		t.Fatalf("got %d POIs, want 2 (max results)", len(pois))
	}

	museum := pois[0]
	if museum.Category != types.CategoryCultural || museum.ID != "p1" || museum.Description != "1 Main St" {
		t.Errorf("unexpected museum: %+v", museum)
	}
	cafe := pois[1]
	if cafe.Category != types.CategoryCommercial {
		t.Errorf("cafe category = %q", cafe.Category)
	}
	if museum.Significance() <= cafe.Significance() {
		t.Errorf("museum (%v) should outscore cafe (%v)", museum.Significance(), cafe.Significance())
	}
	if museum.Significance() <= 0.3 || cafe.Significance() > 0.3 {
		t.Errorf("scores straddle the default threshold unexpectedly: %v / %v", museum.Significance(), cafe.Significance())
	}
}

func TestGooglePlacesWithoutKeyReturnsEmpty(t *testing.T) {
	c := NewGooglePlacesClient("", 0)
	pois, err := c.DiscoverPOIs(context.Background(), types.Location{}, types.SearchOptions{RadiusMeters: 100})
	if err != nil || len(pois) != 0 {
		t.Errorf("expected empty result, got %v, %v", pois, err)
	}
}

func TestGooglePlacesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`))
	}))
	defer srv.Close()

	c := NewGooglePlacesClient("k", 0)
	c.baseURL = srv.URL
	if _, err := c.DiscoverPOIs(context.Background(), types.Location{}, types.SearchOptions{}); err == nil {
		t.Error("expected error for REQUEST_DENIED")
	}
}

func TestOverpassDiscoverPOIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		if !strings.Contains(form.Get("data"), "around:5000,48.856600,2.352200") {
			t.Errorf("query missing around filter: %s", form.Get("data"))
		}
		w.Write([]byte(`{"elements": [
			{"type": "node", "id": 1, "lat": 48.8566, "lon": 2.3522, "tags": {"name": "Fountain"}},
			{"type": "node", "id": 2, "lat": 48.853, "lon": 2.3499, "tags": {"name": "Notre-Dame", "amenity": "place_of_worship", "wikipedia": "fr:Notre-Dame", "heritage": "1"}},
			{"type": "node", "id": 3, "lat": 48.86, "lon": 2.34, "tags": {"historic": "memorial"}}
		]}`))
	}))
	defer srv.Close()

	c := NewOverpassClient(srv.URL, 0)
	pois, err := c.DiscoverPOIs(context.Background(), types.Location{Latitude: 48.8566, Longitude: 2.3522},
		types.SearchOptions{RadiusMeters: 5000, MaxResults: 10})
	if err != nil {
		t.Fatalf("DiscoverPOIs: %v", err)
	}
	if len(pois) != 2 {
		t.Fatalf("got %d POIs, want 2 (unnamed node dropped)", len(pois))
	}
	if pois[0].Name != "Notre-Dame" || pois[0].Category != types.CategoryReligious {
		t.Errorf("expected Notre-Dame first, got %+v", pois[0])
	}
	if pois[0].ID != "osm:node/2" {
		t.Errorf("id = %q", pois[0].ID)
	}
}

func TestOpenAINarrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer token")
		}
		var req OpenAIRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "  Once upon a time\n"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test")
	c.url = srv.URL
	n, err := c.Narrate(context.Background(), "gpt-4o-mini", "narrator", "tell me")
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	if n.Text != "Once upon a time" {
		t.Errorf("text = %q", n.Text)
	}
	if len(n.Sources) != 1 || n.Sources[0] != "OpenAI gpt-4o-mini" {
		t.Errorf("sources = %v", n.Sources)
	}
}

func TestOpenAINarrateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error status", http.StatusTooManyRequests, `{"error": "rate limited"}`, "429"},
		{"no choices", http.StatusOK, `{"choices": []}`, "no choices"},
		{"blank answer", http.StatusOK, `{"choices": [{"message": {"content": "   "}}]}`, "empty narration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewOpenAIClient("sk-test")
			c.url = srv.URL
			if _, err := c.Narrate(context.Background(), "m", "s", "p"); err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestPerplexityNarrate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.PerplexityRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "sonar" || len(req.Messages) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "The square dates to 1605."}}],
			"citations": ["https://example.org/place-des-vosges", "", "https://example.org/place-des-vosges"]}`))
	}))
	defer srv.Close()

	c := NewPerplexityClient("pplx-test")
	c.url = srv.URL
	n, err := c.Narrate(context.Background(), "sonar", "narrator", "q")
	if err != nil {
		t.Fatalf("Narrate: %v", err)
	}
	want := []string{"Perplexity sonar", "https://example.org/place-des-vosges"}
	if n.Text != "The square dates to 1605." || strings.Join(n.Sources, "|") != strings.Join(want, "|") {
		t.Errorf("unexpected result: %q %v", n.Text, n.Sources)
	}
}

func TestPerplexityWithoutKey(t *testing.T) {
	c := NewPerplexityClient("")
	if _, err := c.Narrate(context.Background(), "sonar", "s", "p"); err == nil {
		t.Error("expected error without api key")
	}
}
