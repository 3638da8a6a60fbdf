package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"location-stories/config"
	"location-stories/services"
	"location-stories/storage"
	"location-stories/types"
)

type stubProvider struct {
	pois []types.PointOfInterest
}

func (s stubProvider) DiscoverPOIs(context.Context, types.Location, types.SearchOptions) ([]types.PointOfInterest, error) {
	return s.pois, nil
}

type brokenGenerator struct{}

func (brokenGenerator) GenerateFullStory(context.Context, types.StoryRequest) (*types.FullStory, error) {
	return nil, errors.New("upstream 503")
}

func newTestServer(t *testing.T, pois []types.PointOfInterest, storyGen services.StoryGenerator) (*httptest.Server, *storage.RecipeStore) {
	t.Helper()
	llm, err := services.NewLLM(config.LLMConfig{Provider: config.LLMProviderMock})
	if err != nil {
		t.Fatal(err)
	}
	cache := storage.NewContentCache(storage.CacheOptions{})
	recipes := storage.NewRecipeStore()
	generator := services.NewContentGenerator(llm, cache, services.GeneratorOptions{})
	if storyGen == nil {
		storyGen = generator
	}
	orchestrator := services.NewSeedOrchestrator(stubProvider{pois: pois}, generator, recipes, services.OrchestratorOptions{})
	materializer := services.NewStoryMaterializer(cache, recipes, storyGen, 0)
	journey := services.NewJourneyService(orchestrator, materializer, generator, cache, recipes, storage.NewVisitMemoryRepository())

	srv := httptest.NewServer(New(journey).Routes())
	t.Cleanup(srv.Close)
	return srv, recipes
}

func museum() types.PointOfInterest {
	return types.PointOfInterest{
		ID:       "m1",
		Name:     "Harbor Museum",
		Category: types.CategoryCultural,
		Location: types.Location{Latitude: 51.5, Longitude: -0.12},
		Metadata: types.POIMetadata{Significance: 0.7},
	}
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]interface{}
	decode(t, resp, &body)
	if body["status"] != "healthy" || body["stories"] != float64(0) {
		t.Errorf("body = %v", body)
	}
}

func TestLocationThenStory(t *testing.T) {
	srv, _ := newTestServer(t, []types.PointOfInterest{museum()}, nil)

	resp := postJSON(t, srv.URL+"/api/location", `{"latitude": 51.5, "longitude": -0.12, "accuracy": 12}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var seeds types.SeedResponse
	decode(t, resp, &seeds)
	if len(seeds.Seeds) != 1 || !strings.Contains(seeds.Seeds[0].Title, "Harbor Museum") {
		t.Fatalf("seeds = %+v", seeds.Seeds)
	}

	resp, err := http.Get(srv.URL + "/api/story/" + seeds.Seeds[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("story status = %d", resp.StatusCode)
	}
	var story map[string]interface{}
	decode(t, resp, &story)
	if story["story_id"] != seeds.Seeds[0].ID || story["status"] != "ready" || story["content_style"] != "cultural" {
		t.Errorf("story = %v", story)
	}
	if d, _ := story["duration"].(float64); d <= 0 {
		t.Errorf("duration = %v", story["duration"])
	}
}

func TestLocationValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"latitude":`},
		{"missing longitude", `{"latitude": 10}`},
		{"latitude out of range", `{"latitude": 90.0001, "longitude": 0}`},
		{"longitude out of range", `{"latitude": 0, "longitude": 181}`},
		{"negative accuracy", `{"latitude": 0, "longitude": 0, "accuracy": -3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/location", tt.body)
			var body map[string]string
			decode(t, resp, &body)
			if resp.StatusCode != http.StatusBadRequest || body["error"] == "" {
				t.Errorf("status = %d body = %v", resp.StatusCode, body)
			}
		})
	}
}

func TestStoryErrors(t *testing.T) {
	srv, recipes := newTestServer(t, []types.PointOfInterest{museum()}, brokenGenerator{})

	resp, _ := http.Get(srv.URL + "/api/story/unknown")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: status = %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/api/location", `{"latitude": 51.5, "longitude": -0.12}`)
	var seeds types.SeedResponse
	decode(t, resp, &seeds)

	resp, _ = http.Get(srv.URL + "/api/story/" + seeds.Seeds[0].ID)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("generation failure: status = %d, want 502", resp.StatusCode)
	}

	recipes.Put(types.SeedRecipe{Seed: types.StorySeed{ID: "corrupt"}})
	resp, _ = http.Get(srv.URL + "/api/story/corrupt")
	resp.Body.Close()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("corrupt recipe: status = %d, want 500", resp.StatusCode)
	}
}

func TestContentAndCacheEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	body := `{"input": {"poi": {"name": "Tower Bridge", "category": "architectural",
		"location": {"latitude": 51.5055, "longitude": -0.0754}}}, "style": "architectural", "duration": 60}`
	resp := postJSON(t, srv.URL+"/api/content", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("content status = %d", resp.StatusCode)
	}
	var first types.FullStory
	decode(t, resp, &first)
	if first.HasSource(types.CachedContentSource) {
		t.Error("first generation should not be cached")
	}

	resp = postJSON(t, srv.URL+"/api/content", body)
	var second types.FullStory
	decode(t, resp, &second)
	if !second.HasSource(types.CachedContentSource) || second.ID != first.ID {
		t.Errorf("second = %s %v", second.ID, second.Sources)
	}

	resp, _ = http.Get(srv.URL + "/api/cache/stats")
	var stats types.CacheStats
	decode(t, resp, &stats)
	if stats.Total != 1 || stats.TotalAccesses != 1 {
		t.Errorf("stats = %+v", stats)
	}

	resp, _ = http.Get(srv.URL + "/api/cache/nearby?lat=51.505&lng=-0.075&radius_km=1")
	var nearby struct {
		Count int `json:"count"`
	}
	decode(t, resp, &nearby)
	if resp.StatusCode != http.StatusOK || nearby.Count != 1 {
		t.Errorf("nearby: status %d count %d", resp.StatusCode, nearby.Count)
	}

	for _, path := range []string{"/api/cache/popular", "/api/cache/recent?limit=5"} {
		resp, _ = http.Get(srv.URL + path)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status = %d", path, resp.StatusCode)
		}
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/cache/"+first.ID, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete: status = %d", resp.StatusCode)
	}
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete: status = %d", resp.StatusCode)
	}

	resp, _ = http.Get(srv.URL + "/api/cache/stats")
	decode(t, resp, &stats)
	if stats.Total != 0 {
		t.Errorf("total after delete = %d", stats.Total)
	}

	resp, _ = http.Get(srv.URL + "/api/cache/popular")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("empty popular: status = %d", resp.StatusCode)
	}
}

func TestContentValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"both variants", `{"input": {"description": "a pier", "poi": {"name": "Pier"}}}`},
		{"no input", `{"style": "nature"}`},
		{"blank description", `{"input": {"description": "   "}}`},
		{"unknown style", `{"input": {"description": "a pier"}, "style": "gothic"}`},
		{"negative duration", `{"input": {"description": "a pier"}, "duration": -5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/content", tt.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestCacheQueryValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	for _, q := range []string{
		"/api/cache/nearby?lat=10",
		"/api/cache/nearby?lat=abc&lng=1",
		"/api/cache/nearby?lat=95&lng=1",
		"/api/cache/nearby?lat=1&lng=1&radius_km=-2",
		"/api/cache/popular?limit=0",
		"/api/visits?limit=x",
	} {
		resp, err := http.Get(srv.URL + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestVisitsAndClear(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	for i := 0; i < 3; i++ {
		resp := postJSON(t, srv.URL+"/api/location", fmt.Sprintf(`{"latitude": %d, "longitude": 0}`, i))
		resp.Body.Close()
	}

	resp, _ := http.Get(srv.URL + "/api/visits?limit=2")
	var visits struct {
		Visits []types.Visit `json:"visits"`
		Count  int           `json:"count"`
	}
	decode(t, resp, &visits)
	if visits.Count != 2 || visits.Visits[0].Latitude != 2 || !visits.Visits[0].Fallback {
		t.Errorf("visits = %+v", visits)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/cache", nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("clear: status = %d", resp.StatusCode)
	}
}

// lockedBuffer collects log output written from server goroutines
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCacheDeleteAndClearLogOnce(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	resp := postJSON(t, srv.URL+"/api/content", `{"input": {"description": "the lock keeper's cottage"}}`)
	var story types.FullStory
	decode(t, resp, &story)

	var buf lockedBuffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/cache/"+story.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/cache", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	out := buf.String()
	if n := strings.Count(out, "Deleted cached story"); n != 1 {
		t.Errorf("delete logged %d times:\n%s", n, out)
	}
	if n := strings.Count(out, "Cleared content cache"); n != 1 {
		t.Errorf("clear logged %d times:\n%s", n, out)
	}
}
