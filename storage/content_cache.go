/*
# Module: storage/content_cache.go
In-memory content cache for generated stories with similarity, location, recency and popularity lookups.

## Linked Modules
- [storage/similarity](./similarity.go) - Similarity scoring
- [types/story](../types/story.go) - Full story data structures
- [types/content](../types/content.go) - Content input union

## Tags
storage, cache, in-memory, concurrency

## Exports
ContentCache, NewContentCache, CacheOptions

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/content_cache.go" ;
    code:description "In-memory content cache for generated stories with similarity, location, recency and popularity lookups" ;
    code:linksTo [
        code:name "storage/similarity" ;
        code:path "./similarity.go" ;
        code:relationship "Similarity scoring"
    ], [
        code:name "types/story" ;
        code:path "../types/story.go" ;
        code:relationship "Full story data structures"
    ], [
        code:name "types/content" ;
        code:path "../types/content.go" ;
        code:relationship "Content input union"
    ] ;
    code:exports :ContentCache, :NewContentCache, :CacheOptions ;
    code:tags "storage", "cache", "in-memory", "concurrency" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"log"
	"sort"
	"sync"
	"time"

	"location-stories/types"
)

// CacheOptions tunes cache-hit decisions. Zero values fall back to the defaults.
type CacheOptions struct {
	SimilarityThreshold float64
	MatchRadiusMeters   float64
}

type cacheEntry struct {
	story       types.FullStory
	promptUsed  string
	input       *types.ContentInput
	fingerprint string
	location    *types.Location
}

// ContentCache stores fully generated stories for the lifetime of the process.
// Entries are never evicted; only Delete and Clear remove data.
type ContentCache struct {
	mu            sync.RWMutex
	entries       map[string]*cacheEntry
	byFingerprint map[string]map[string]struct{}

	threshold    float64
	radiusMeters float64
	now          func() time.Time
}

// NewContentCache creates an empty cache
func NewContentCache(opts CacheOptions) *ContentCache {
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if opts.MatchRadiusMeters <= 0 {
		opts.MatchRadiusMeters = DefaultMatchRadiusMeters
	}
	return &ContentCache{
		entries:       make(map[string]*cacheEntry),
		byFingerprint: make(map[string]map[string]struct{}),
		threshold:     opts.SimilarityThreshold,
		radiusMeters:  opts.MatchRadiusMeters,
		now:           time.Now,
	}
}

// Store inserts or overwrites a story. input may be nil when the story has no
// originating content, in which case it is only reachable by id and location.
func (c *ContentCache) Store(story types.FullStory, promptUsed string, input *types.ContentInput) {
	entry := &cacheEntry{
		story:      story.Clone(),
		promptUsed: promptUsed,
	}
	if promptUsed != "" && entry.story.PromptUsed == "" {
		entry.story.PromptUsed = promptUsed
	}
	if input != nil && !input.IsZero() {
		in := *input
		entry.input = &in
		entry.fingerprint = Fingerprint(in)
		if loc, ok := in.Location(); ok {
			entry.location = &loc
		}
	}
	if entry.location == nil && story.Location != nil {
		loc := *story.Location
		entry.location = &loc
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[story.ID]; ok {
		c.unindexLocked(story.ID, old)
	}
	c.entries[story.ID] = entry
	if entry.fingerprint != "" {
		ids, ok := c.byFingerprint[entry.fingerprint]
		if !ok {
			ids = make(map[string]struct{})
			c.byFingerprint[entry.fingerprint] = ids
		}
		ids[story.ID] = struct{}{}
	}

	log.Printf("💾 Cached story %s (%d chars, %d entries total)", story.ID, len(story.Content), len(c.entries))
}

// Retrieve returns a copy of the story and records the access
func (c *ContentCache) Retrieve(id string) (*types.FullStory, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	entry.story.AccessCount++
	entry.story.LastAccessed = c.now()

	story := entry.story.Clone()
	return &story, true
}

// Peek returns a copy of the story without touching access bookkeeping
func (c *ContentCache) Peek(id string) (*types.FullStory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	story := entry.story.Clone()
	return &story, true
}

type scoredStory struct {
	story types.FullStory
	score float64
}

// FindSimilar returns up to limit stories whose originating input scores at or
// above the similarity threshold against input, most similar first.
func (c *ContentCache) FindSimilar(input types.ContentInput, limit int) []types.FullStory {
	if input.IsZero() || limit <= 0 {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var matches []scoredStory
	seen := make(map[string]struct{})

	// exact fingerprint hits are free and always score 1
	if ids, ok := c.byFingerprint[Fingerprint(input)]; ok && input.IsDescription() {
		for id := range ids {
			matches = append(matches, scoredStory{story: c.entries[id].story, score: 1})
			seen[id] = struct{}{}
		}
	}

	for id, entry := range c.entries {
		if entry.input == nil {
			continue
		}
		if _, done := seen[id]; done {
			continue
		}
		score := Similarity(input, *entry.input, c.radiusMeters)
		if score >= c.threshold {
			matches = append(matches, scoredStory{story: entry.story, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if !matches[i].story.GeneratedAt.Equal(matches[j].story.GeneratedAt) {
			return matches[i].story.GeneratedAt.Before(matches[j].story.GeneratedAt)
		}
		return matches[i].story.ID < matches[j].story.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	stories := make([]types.FullStory, 0, len(matches))
	for _, m := range matches {
		stories = append(stories, m.story.Clone())
	}
	return stories
}

type distancedStory struct {
	story  types.FullStory
	meters float64
}

// FindByLocation returns stories whose location lies within radiusKm, nearest first
func (c *ContentCache) FindByLocation(lat, lng, radiusKm float64, limit int) []types.FullStory {
	if limit <= 0 || radiusKm < 0 {
		return nil
	}
	radiusMeters := radiusKm * 1000

	c.mu.RLock()
	defer c.mu.RUnlock()

	var hits []distancedStory
	for _, entry := range c.entries {
		if entry.location == nil {
			continue
		}
		d := haversineMeters(lat, lng, entry.location.Latitude, entry.location.Longitude)
		if d <= radiusMeters {
			hits = append(hits, distancedStory{story: entry.story, meters: d})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].meters != hits[j].meters {
			return hits[i].meters < hits[j].meters
		}
		return hits[i].story.ID < hits[j].story.ID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	stories := make([]types.FullStory, 0, len(hits))
	for _, h := range hits {
		stories = append(stories, h.story.Clone())
	}
	return stories
}

// RecentlyAccessed returns stories ordered by last access, newest first.
// Stories that were never retrieved are left out.
func (c *ContentCache) RecentlyAccessed(limit int) []types.FullStory {
	stories := c.snapshot(func(s types.FullStory) bool { return !s.LastAccessed.IsZero() })
	sort.Slice(stories, func(i, j int) bool {
		if !stories[i].LastAccessed.Equal(stories[j].LastAccessed) {
			return stories[i].LastAccessed.After(stories[j].LastAccessed)
		}
		return stories[i].ID < stories[j].ID
	})
	return truncate(stories, limit)
}

// MostPopular returns stories ordered by access count, highest first
func (c *ContentCache) MostPopular(limit int) []types.FullStory {
	stories := c.snapshot(func(types.FullStory) bool { return true })
	sort.Slice(stories, func(i, j int) bool {
		if stories[i].AccessCount != stories[j].AccessCount {
			return stories[i].AccessCount > stories[j].AccessCount
		}
		return stories[i].ID < stories[j].ID
	})
	return truncate(stories, limit)
}

// Stats aggregates entry counts, content sizes and accesses
func (c *ContentCache) Stats() types.CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var stats types.CacheStats
	mostAccessed := 0
	for id, entry := range c.entries {
		stats.Total++
		stats.TotalContentSize += len(entry.story.Content)
		stats.TotalAccesses += entry.story.AccessCount
		count := entry.story.AccessCount
		if count > mostAccessed || (count == mostAccessed && count > 0 && id < stats.MostAccessedID) {
			mostAccessed = count
			stats.MostAccessedID = id
		}
	}
	if stats.Total > 0 {
		stats.AverageSize = float64(stats.TotalContentSize) / float64(stats.Total)
	}
	return stats
}

// Len returns the number of cached stories
func (c *ContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Delete removes a story and reports whether it existed
func (c *ContentCache) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	if !ok {
		return false
	}
	c.unindexLocked(id, entry)
	delete(c.entries, id)
	log.Printf("🗑️  Deleted cached story %s", id)
	return true
}

// Clear drops every entry and index
func (c *ContentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*cacheEntry)
	c.byFingerprint = make(map[string]map[string]struct{})
	log.Printf("🗑️  Cleared content cache (%d entries)", n)
}

func (c *ContentCache) unindexLocked(id string, entry *cacheEntry) {
	if entry.fingerprint == "" {
		return
	}
	ids := c.byFingerprint[entry.fingerprint]
	delete(ids, id)
	if len(ids) == 0 {
		delete(c.byFingerprint, entry.fingerprint)
	}
}

func (c *ContentCache) snapshot(keep func(types.FullStory) bool) []types.FullStory {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stories := make([]types.FullStory, 0, len(c.entries))
	for _, entry := range c.entries {
		if keep(entry.story) {
			stories = append(stories, entry.story.Clone())
		}
	}
	return stories
}

func truncate(stories []types.FullStory, limit int) []types.FullStory {
	if limit <= 0 {
		return []types.FullStory{}
	}
	if len(stories) > limit {
		return stories[:limit]
	}
	return stories
}
