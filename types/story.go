/*
# Module: types/story.go
Story seed, seed recipe, full story and cache statistics data structures.

## Linked Modules
- [types/location](./location.go) - Location value type
- [types/content](./content.go) - Content input union and styles

## Tags
data-types, story, cache

## Exports
StorySeed, SeedRecipe, FullStory, StoryRequest, SeedResponse, CacheStats, StoryStatusReady, CachedContentSource

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/story.go" ;
    code:description "Story seed, seed recipe, full story and cache statistics data structures" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location value type"
    ], [
        code:name "types/content" ;
        code:path "./content.go" ;
        code:relationship "Content input union and styles"
    ] ;
    code:exports :StorySeed, :SeedRecipe, :FullStory, :StoryRequest, :SeedResponse, :CacheStats ;
    code:tags "data-types", "story", "cache" .
<!-- End LinkedDoc RDF -->
*/
package types

import "time"

const (
	// StoryStatusReady marks a story whose narrative text is available
	StoryStatusReady = "ready"

	// CachedContentSource is appended to Sources when a story is served from the cache
	CachedContentSource = "Cached Content"
)

// StorySeed is a lightweight story candidate. It never carries narrative text.
type StorySeed struct {
	ID        string       `json:"story_id"`
	Title     string       `json:"title"`
	Summary   string       `json:"summary"`
	Location  Location     `json:"location"`
	CreatedAt time.Time    `json:"created_at"`
	Style     ContentStyle `json:"style"`

	// Input is the originating content, kept server-side only
	Input *ContentInput `json:"-"`
}

// SeedRecipe is everything needed to regenerate a seed's full story later.
// Input is nil for synthesized fallback seeds.
type SeedRecipe struct {
	Seed  StorySeed
	Input *ContentInput
	Style ContentStyle
}

// FullStory is a complete narrated story plus provenance and cache bookkeeping
type FullStory struct {
	ID              string       `json:"story_id"`
	Title           string       `json:"title"`
	Summary         string       `json:"summary,omitempty"`
	Content         string       `json:"content"`
	DurationSeconds int          `json:"duration"`
	PromptUsed      string       `json:"prompt_used,omitempty"`
	GeneratedAt     time.Time    `json:"generated_at"`
	Sources         []string     `json:"sources"`
	Style           ContentStyle `json:"content_style"`
	Status          string       `json:"status"`
	Location        *Location    `json:"location,omitempty"`
	AccessCount     int          `json:"access_count"`
	LastAccessed    time.Time    `json:"last_accessed"`
}

// Clone returns a deep copy so callers never share slices with the cache
func (s FullStory) Clone() FullStory {
	c := s
	c.Sources = append([]string(nil), s.Sources...)
	if s.Location != nil {
		loc := *s.Location
		c.Location = &loc
	}
	return c
}

// HasSource reports whether src appears in the provenance list
func (s FullStory) HasSource(src string) bool {
	for _, existing := range s.Sources {
		if existing == src {
			return true
		}
	}
	return false
}

// StoryRequest asks the content generator for a full story
type StoryRequest struct {
	Input          ContentInput
	TargetDuration int
	Style          ContentStyle
	Seed           *StorySeed
}

// SeedResponse is the result of processing a location
type SeedResponse struct {
	Seeds     []StorySeed `json:"seeds"`
	Location  Location    `json:"location"`
	Timestamp time.Time   `json:"timestamp"`
}

// CacheStats summarizes the content cache
type CacheStats struct {
	Total            int     `json:"total"`
	TotalContentSize int     `json:"total_content_size"`
	AverageSize      float64 `json:"average_content_size"`
	MostAccessedID   string  `json:"most_accessed_id,omitempty"`
	TotalAccesses    int     `json:"total_accesses"`
}
