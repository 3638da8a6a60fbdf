/*
# Module: handlers/respond.go
JSON response helpers and the mapping from service errors to HTTP status codes.

## Linked Modules
- [services/materializer](../services/materializer.go) - Story lookup errors
- [types/location](../types/location.go) - Validation errors

## Tags
http, api, errors

## Exports
(none - package internal helpers)

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/respond.go" ;
    code:description "JSON response helpers and the mapping from service errors to HTTP status codes" ;
    code:linksTo [
        code:name "services/materializer" ;
        code:path "../services/materializer.go" ;
        code:relationship "Story lookup errors"
    ], [
        code:name "types/location" ;
        code:path "../types/location.go" ;
        code:relationship "Validation errors"
    ] ;
    code:tags "http", "api", "errors" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"location-stories/services"
	"location-stories/types"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️  Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps a service error onto its HTTP status
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ Request failed: %v", err)
	}
	writeError(w, status, err.Error())
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidLocation),
		errors.Is(err, types.ErrInvalidContentInput),
		errors.Is(err, services.ErrMissingStoryID):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrStoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// queryLimit reads ?limit=, clamped to [1, maxListLimit]
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > maxListLimit {
		n = maxListLimit
	}
	return n, nil
}

func queryFloat(r *http.Request, key string) (float64, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, errors.New(key + " must be a number")
	}
	return v, true, nil
}
