/*
# Module: handlers/cache.go
Content cache inspection and maintenance endpoints.

## Linked Modules
- [storage/content_cache](../storage/content_cache.go) - Content cache

## Tags
http, api, cache

## Exports
Handler.HandleCacheStats, Handler.HandleCacheNearby, Handler.HandleCachePopular, Handler.HandleCacheRecent, Handler.HandleCacheDelete, Handler.HandleCacheClear

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/cache.go" ;
    code:description "Content cache inspection and maintenance endpoints" ;
    code:linksTo [
        code:name "storage/content_cache" ;
        code:path "../storage/content_cache.go" ;
        code:relationship "Content cache"
    ] ;
    code:exports :HandleCacheStats, :HandleCacheNearby, :HandleCachePopular, :HandleCacheRecent, :HandleCacheDelete, :HandleCacheClear ;
    code:tags "http", "api", "cache" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"net/http"

	"location-stories/types"
)

const defaultNearbyRadiusKm = 1.0

// HandleCacheStats handles GET /api/cache/stats
func (h *Handler) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.journey.Cache().Stats())
}

// HandleCacheNearby handles GET /api/cache/nearby?lat=&lng=&radius_km=&limit=
func (h *Handler) HandleCacheNearby(w http.ResponseWriter, r *http.Request) {
	lat, okLat, errLat := queryFloat(r, "lat")
	lng, okLng, errLng := queryFloat(r, "lng")
	switch {
	case errLat != nil:
		writeError(w, http.StatusBadRequest, errLat.Error())
		return
	case errLng != nil:
		writeError(w, http.StatusBadRequest, errLng.Error())
		return
	case !okLat || !okLng:
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if _, err := types.NewLocation(lat, lng, nil, nil); err != nil {
		writeServiceError(w, err)
		return
	}

	radius, ok, err := queryFloat(r, "radius_km")
	if err != nil || (ok && radius <= 0) {
		writeError(w, http.StatusBadRequest, "radius_km must be a positive number")
		return
	}
	if !ok {
		radius = defaultNearbyRadiusKm
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeStoryList(w, h.journey.Cache().FindByLocation(lat, lng, radius, limit))
}

// HandleCachePopular handles GET /api/cache/popular?limit=
func (h *Handler) HandleCachePopular(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeStoryList(w, h.journey.Cache().MostPopular(limit))
}

// HandleCacheRecent handles GET /api/cache/recent?limit=
func (h *Handler) HandleCacheRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeStoryList(w, h.journey.Cache().RecentlyAccessed(limit))
}

// HandleCacheDelete handles DELETE /api/cache/{id}
func (h *Handler) HandleCacheDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.journey.Cache().Delete(id) {
		writeError(w, http.StatusNotFound, "story not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleCacheClear handles DELETE /api/cache
func (h *Handler) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	h.journey.Cache().Clear()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// writeStoryList answers 404 for an empty result, matching single-story lookups
func writeStoryList(w http.ResponseWriter, stories []types.FullStory) {
	if len(stories) == 0 {
		writeError(w, http.StatusNotFound, "no stories found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stories": stories,
		"count":   len(stories),
	})
}
