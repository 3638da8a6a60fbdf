/*
# Module: handlers/story.go
Story endpoints: materializing a seed and generating content directly from an input.

## Linked Modules
- [services/journey](../services/journey.go) - Story lookup and generation
- [types/content](../types/content.go) - Content input variants

## Tags
http, api, stories, generation

## Exports
Handler.HandleStory, Handler.HandleContent, ContentRequest

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "handlers/story.go" ;
    code:description "Story endpoints: materializing a seed and generating content directly from an input" ;
    code:linksTo [
        code:name "services/journey" ;
        code:path "../services/journey.go" ;
        code:relationship "Story lookup and generation"
    ], [
        code:name "types/content" ;
        code:path "../types/content.go" ;
        code:relationship "Content input variants"
    ] ;
    code:exports :HandleStory, :HandleContent, :ContentRequest ;
    code:tags "http", "api", "stories", "generation" .
<!-- End LinkedDoc RDF -->
*/
package handlers

import (
	"encoding/json"
	"net/http"

	"location-stories/types"
)

// ContentRequest is the body of POST /api/content
type ContentRequest struct {
	Input    types.ContentInput `json:"input"`
	Style    types.ContentStyle `json:"style,omitempty"`
	Duration int                `json:"duration,omitempty"`
}

// HandleStory handles GET /api/story/{id}
func (h *Handler) HandleStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.journey.GetFullStory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, story)
}

// HandleContent handles POST /api/content
func (h *Handler) HandleContent(w http.ResponseWriter, r *http.Request) {
	var req ContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid content request: "+err.Error())
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "duration must not be negative")
		return
	}

	story, err := h.journey.GenerateContent(r.Context(), req.Input, req.Style, req.Duration)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, story)
}
