/*
# Module: handlers/visits.go
Visit log endpoint listing recently processed locations.

## Linked Modules
- [storage/repository](../storage/repository.go) - Visit repository

## Tags
http, api, visits

## Exports
Handler.HandleVisits

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/visits.go" ;
    code:description "Visit log endpoint listing recently processed locations" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "../storage/repository.go" ;
        code:relationship "Visit repository"
    ] ;
    code:exports :HandleVisits ;
    code:tags "http", "api", "visits" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"net/http"
)

// HandleVisits handles GET /api/visits?limit=
func (h *Handler) HandleVisits(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	visits, err := h.journey.RecentVisits(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"visits": visits,
		"count":  len(visits),
	})
}
