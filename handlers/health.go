/*
# Module: handlers/health.go
Health check endpoint handler.

## Linked Modules
- [services/journey](../services/journey.go) - Health summary

## Tags
http, health, api

## Exports
Handler.HandleHealth

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/health.go" ;
    code:description "Health check endpoint handler" ;
    code:linksTo [
        code:name "services/journey" ;
        code:path "../services/journey.go" ;
        code:relationship "Health summary"
    ] ;
    code:exports :HandleHealth ;
    code:tags "http", "health", "api" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"net/http"
)

// HandleHealth handles GET /api/health
// Returns the service status and the number of stories that can be materialized
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.journey.GetHealth())
}
