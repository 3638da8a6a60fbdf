/*
# Module: handlers/location.go
Location endpoint turning a coordinate into story seeds.

## Linked Modules
- [services/journey](../services/journey.go) - Location processing

## Tags
http, api, location, seeds

## Exports
Handler.HandleLocation, LocationRequest

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/location.go" ;
    code:description "Location endpoint turning a coordinate into story seeds" ;
    code:linksTo [
        code:name "services/journey" ;
        code:path "../services/journey.go" ;
        code:relationship "Location processing"
    ] ;
    code:exports :HandleLocation, :LocationRequest ;
    code:tags "http", "api", "location", "seeds" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// LocationRequest is the body of POST /api/location
type LocationRequest struct {
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
}

// HandleLocation handles POST /api/location
func (h *Handler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid location data")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	resp, err := h.journey.ProcessLocation(r.Context(), *req.Latitude, *req.Longitude, req.Timestamp, req.Accuracy)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
