/*
# Module: services/generator.go
Content generator that produces story seeds and full stories, deduplicated through the content cache.

## Linked Modules
- [services/llm](./llm.go) - Language-model capability
- [storage/content_cache](../storage/content_cache.go) - Content cache
- [types/story](../types/story.go) - Story data structures

## Tags
business-logic, generation, llm, cache

## Exports
ContentGenerator, NewContentGenerator, GeneratorOptions

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/generator.go" ;
    code:description "Content generator that produces story seeds and full stories, deduplicated through the content cache" ;
    code:linksTo [
        code:name "services/llm" ;
        code:path "./llm.go" ;
        code:relationship "Language-model capability"
    ], [
        code:name "storage/content_cache" ;
        code:path "../storage/content_cache.go" ;
        code:relationship "Content cache"
    ], [
        code:name "types/story" ;
        code:path "../types/story.go" ;
        code:relationship "Story data structures"
    ] ;
    code:exports :ContentGenerator, :NewContentGenerator, :GeneratorOptions ;
    code:tags "business-logic", "generation", "llm", "cache" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"location-stories/storage"
	"location-stories/types"
)

const (
	DefaultTargetDuration    = 180
	DefaultSeedsPerInput     = 1
	DefaultGenerationTimeout = 60 * time.Second

	seedFormatMarker = "Format each idea EXACTLY like this"

	// reuseCandidates bounds how many similar stories are checked for a seed match
	reuseCandidates = 10
)

var errNoSeeds = errors.New("no story seeds in model response")

// GeneratorOptions tunes the content generator. Zero values use the defaults.
type GeneratorOptions struct {
	SeedsPerInput int
	Timeout       time.Duration
}

// ContentGenerator turns content inputs into seeds and full stories
type ContentGenerator struct {
	llm   LLM
	cache *storage.ContentCache
	opts  GeneratorOptions
	now   func() time.Time
	newID func() string
}

// NewContentGenerator creates a generator writing fresh stories into cache
func NewContentGenerator(llm LLM, cache *storage.ContentCache, opts GeneratorOptions) *ContentGenerator {
	if opts.SeedsPerInput <= 0 {
		opts.SeedsPerInput = DefaultSeedsPerInput
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultGenerationTimeout
	}
	return &ContentGenerator{
		llm:   llm,
		cache: cache,
		opts:  opts,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

func buildSeedPrompt(input types.ContentInput, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest %d short story ideas a local guide could narrate about the place below.\n\n", count)
	fmt.Fprintf(&b, "Ideas: %d\n", count)
	writeSubject(&b, input)
	b.WriteString("\n" + seedFormatMarker + ", one block per idea:\n")
	b.WriteString("TITLE: <title, max 60 characters>\n")
	b.WriteString("SUMMARY: <one sentence teaser, max 160 characters>\n")
	return b.String()
}

type seedDraft struct {
	title   string
	summary string
}

// parseSeedResponse reads TITLE:/SUMMARY: blocks, tolerating bullets and blank lines
func parseSeedResponse(text string) []seedDraft {
	var drafts []seedDraft
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "TITLE:"):
			title := strings.Trim(strings.TrimSpace(line[len("TITLE:"):]), `"`)
			if title != "" {
				drafts = append(drafts, seedDraft{title: title})
			}
		case strings.HasPrefix(strings.ToUpper(line), "SUMMARY:"):
			if len(drafts) > 0 && drafts[len(drafts)-1].summary == "" {
				drafts[len(drafts)-1].summary = strings.TrimSpace(line[len("SUMMARY:"):])
			}
		}
	}
	return drafts
}

// GenerateStorySeeds asks the model for lightweight story candidates about input
func (g *ContentGenerator) GenerateStorySeeds(ctx context.Context, input types.ContentInput) ([]types.StorySeed, error) {
	if input.IsZero() {
		return nil, fmt.Errorf("%w: empty input", types.ErrInvalidContentInput)
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	gen, err := g.llm.GenerateContent(ctx, buildSeedPrompt(input, g.opts.SeedsPerInput))
	if err != nil {
		return nil, fmt.Errorf("generating seeds for %q: %w", input.Label(), err)
	}

	drafts := parseSeedResponse(gen.Text)
	if len(drafts) == 0 {
		return nil, fmt.Errorf("generating seeds for %q: %w", input.Label(), errNoSeeds)
	}
	if len(drafts) > g.opts.SeedsPerInput {
		drafts = drafts[:g.opts.SeedsPerInput]
	}

	style := types.StyleMixed
	var loc types.Location
	if poi, ok := input.POI(); ok {
		style = types.StyleForCategory(poi.Category)
		loc = poi.Location
	}

	created := g.now()
	seeds := make([]types.StorySeed, 0, len(drafts))
	for _, d := range drafts {
		in := input
		summary := d.summary
		if summary == "" {
			summary = "A story about " + input.Label()
		}
		seeds = append(seeds, types.StorySeed{
			ID:        g.newID(),
			Title:     d.title,
			Summary:   summary,
			Location:  loc,
			CreatedAt: created,
			Style:     style,
			Input:     &in,
		})
	}

	log.Printf("🌱 Generated %d seed(s) for %q", len(seeds), input.Label())
	return seeds, nil
}

// GenerateFullStory returns a narrated story for req. A similar cached story is
// reused (marked with the cached-content source) instead of calling the model.
// For a seed request the reused story must also carry the seed's title.
func (g *ContentGenerator) GenerateFullStory(ctx context.Context, req types.StoryRequest) (*types.FullStory, error) {
	if req.Input.IsZero() {
		return nil, fmt.Errorf("%w: empty input", types.ErrInvalidContentInput)
	}
	if req.TargetDuration <= 0 {
		req.TargetDuration = DefaultTargetDuration
	}
	if req.Style == "" {
		req.Style = types.StyleMixed
	}

	if hit, ok := g.reusable(req); ok {
		return g.fromCache(hit, req), nil
	}

	prompt := withSeedAngle(g.llm.GeneratePrompt(req.Input, req.Style, req.TargetDuration), req.Seed)

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	gen, err := g.llm.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generating story for %q: %w", req.Input.Label(), err)
	}
	if strings.TrimSpace(gen.Text) == "" {
		return nil, fmt.Errorf("generating story for %q: empty narrative", req.Input.Label())
	}

	story := types.FullStory{
		ID:              g.newID(),
		Title:           titleForInput(req.Input),
		Content:         gen.Text,
		DurationSeconds: estimateDuration(gen.Text),
		PromptUsed:      prompt,
		GeneratedAt:     g.now(),
		Sources:         append([]string(nil), gen.Sources...),
		Style:           req.Style,
		Status:          types.StoryStatusReady,
	}
	if loc, ok := req.Input.Location(); ok {
		story.Location = &loc
	}
	applySeed(&story, req.Seed)

	g.cache.Store(story, prompt, &req.Input)
	log.Printf("📖 Generated story %s for %q (%ds)", story.ID, req.Input.Label(), story.DurationSeconds)
	return &story, nil
}

// GetContent returns an already generated story by id
func (g *ContentGenerator) GetContent(id string) (*types.FullStory, bool) {
	return g.cache.Retrieve(id)
}

func (g *ContentGenerator) reusable(req types.StoryRequest) (types.FullStory, bool) {
	if req.Seed == nil {
		hits := g.cache.FindSimilar(req.Input, 1)
		if len(hits) == 0 {
			return types.FullStory{}, false
		}
		return hits[0], true
	}

	title := storage.NormalizeText(req.Seed.Title)
	for _, hit := range g.cache.FindSimilar(req.Input, reuseCandidates) {
		if storage.NormalizeText(hit.Title) == title {
			return hit, true
		}
	}
	return types.FullStory{}, false
}

// withSeedAngle points the narration at the seed the listener picked
func withSeedAngle(prompt string, seed *types.StorySeed) string {
	if seed == nil || seed.Title == "" {
		return prompt
	}
	var b strings.Builder
	b.WriteString(prompt)
	fmt.Fprintf(&b, "\nAngle: %s\n", seed.Title)
	if seed.Summary != "" {
		fmt.Fprintf(&b, "Premise: %s\n", seed.Summary)
	}
	return b.String()
}

func (g *ContentGenerator) fromCache(hit types.FullStory, req types.StoryRequest) *types.FullStory {
	// record the hit against the original entry
	g.cache.Retrieve(hit.ID)

	story := hit.Clone()
	story.AccessCount = 0
	story.LastAccessed = time.Time{}
	if !story.HasSource(types.CachedContentSource) {
		story.Sources = append(story.Sources, types.CachedContentSource)
	}
	if req.Seed != nil {
		story.Style = req.Style
	}
	applySeed(&story, req.Seed)

	log.Printf("💾 Cache hit for %q: reusing story %s", req.Input.Label(), hit.ID)
	return &story
}

// applySeed stamps a seed's identity onto a story
func applySeed(story *types.FullStory, seed *types.StorySeed) {
	if seed == nil {
		return
	}
	story.ID = seed.ID
	story.Title = seed.Title
	story.Summary = seed.Summary
	loc := seed.Location
	story.Location = &loc
}

func titleForInput(input types.ContentInput) string {
	if poi, ok := input.POI(); ok {
		return "The Story of " + poi.Name
	}
	return "A Story of " + input.Label()
}

// estimateDuration converts narration length into seconds, never below one
func estimateDuration(text string) int {
	words := len(strings.Fields(text))
	seconds := int(math.Round(float64(words) / wordsPerSecond))
	if seconds < 1 {
		return 1
	}
	return seconds
}
