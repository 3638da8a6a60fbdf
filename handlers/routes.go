/*
# Module: handlers/routes.go
HTTP handler set and route table for the story API.

## Linked Modules
- [services/journey](../services/journey.go) - Journey service
- [middleware/logging](../middleware/logging.go) - Access logging and recovery

## Tags
http, api, routing

## Exports
Handler, New

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/routes.go" ;
    code:description "HTTP handler set and route table for the story API" ;
    code:linksTo [
        code:name "services/journey" ;
        code:path "../services/journey.go" ;
        code:relationship "Journey service"
    ], [
        code:name "middleware/logging" ;
        code:path "../middleware/logging.go" ;
        code:relationship "Access logging and recovery"
    ] ;
    code:exports :Handler, :New ;
    code:tags "http", "api", "routing" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"net/http"

	"location-stories/middleware"
	"location-stories/services"
)

// Handler serves the story API on top of a journey service
type Handler struct {
	journey *services.JourneyService
}

// New creates the API handlers
func New(journey *services.JourneyService) *Handler {
	return &Handler{journey: journey}
}

// Routes builds the API mux wrapped in access logging and panic recovery
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.HandleHealth)

	mux.HandleFunc("POST /api/location", h.HandleLocation)
	mux.HandleFunc("GET /api/story/{id}", h.HandleStory)
	mux.HandleFunc("POST /api/content", h.HandleContent)

	mux.HandleFunc("GET /api/cache/stats", h.HandleCacheStats)
	mux.HandleFunc("GET /api/cache/nearby", h.HandleCacheNearby)
	mux.HandleFunc("GET /api/cache/popular", h.HandleCachePopular)
	mux.HandleFunc("GET /api/cache/recent", h.HandleCacheRecent)
	mux.HandleFunc("DELETE /api/cache/{id}", h.HandleCacheDelete)
	mux.HandleFunc("DELETE /api/cache", h.HandleCacheClear)

	mux.HandleFunc("GET /api/visits", h.HandleVisits)

	return middleware.Recover(middleware.Logging(mux))
}
