/*
# Module: services/orchestrator.go
Seed orchestration from discovered POIs, with retry and generic fallback seeds.

## Linked Modules
- [services/ranker](./ranker.go) - Significance ranking
- [services/generator](./generator.go) - Seed generation
- [storage/recipe_store](../storage/recipe_store.go) - Seed recipe store
- [types/story](../types/story.go) - Story seed data structures

## Tags
business-logic, orchestration, seeds, fallback

## Exports
SeedOrchestrator, NewSeedOrchestrator, OrchestratorOptions, SeedResult, POIProvider, SeedGenerator

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/orchestrator.go" ;
    code:description "Seed orchestration from discovered POIs, with retry and generic fallback seeds" ;
    code:linksTo [
        code:name "services/ranker" ;
        code:path "./ranker.go" ;
        code:relationship "Significance ranking"
    ], [
        code:name "services/generator" ;
        code:path "./generator.go" ;
        code:relationship "Seed generation"
    ], [
        code:name "storage/recipe_store" ;
        code:path "../storage/recipe_store.go" ;
        code:relationship "Seed recipe store"
    ], [
        code:name "types/story" ;
        code:path "../types/story.go" ;
        code:relationship "Story seed data structures"
    ] ;
    code:exports :SeedOrchestrator, :NewSeedOrchestrator, :OrchestratorOptions, :SeedResult, :POIProvider, :SeedGenerator ;
    code:tags "business-logic", "orchestration", "seeds", "fallback" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"location-stories/storage"
	"location-stories/types"
)

const (
	DefaultSearchRadiusMeters = 5000
	DefaultMaxPOIResults      = 10
	DefaultSeedConcurrency    = 3

	FallbackSeedTitle   = "Discover Your Surroundings"
	FallbackSeedSummary = "Only general location information is available for this area. Listen for an overview of the geography around you."
)

// POIProvider discovers points of interest around a location
type POIProvider interface {
	DiscoverPOIs(ctx context.Context, loc types.Location, opts types.SearchOptions) ([]types.PointOfInterest, error)
}

// SeedGenerator produces story seeds for a content input
type SeedGenerator interface {
	GenerateStorySeeds(ctx context.Context, input types.ContentInput) ([]types.StorySeed, error)
}

// OrchestratorOptions bounds discovery and ranking. Zero values use the defaults.
type OrchestratorOptions struct {
	RadiusMeters          int
	MaxResults            int
	SignificanceThreshold float64
	MaxCandidates         int
	Concurrency           int
}

// SeedResult is the response plus what happened while building it
type SeedResult struct {
	Response types.SeedResponse
	POICount int
	Fallback bool
}

// SeedOrchestrator turns a location into story seeds and remembers how to expand them
type SeedOrchestrator struct {
	provider  POIProvider
	generator SeedGenerator
	recipes   *storage.RecipeStore
	opts      OrchestratorOptions
	now       func() time.Time
}

// NewSeedOrchestrator creates an orchestrator recording recipes into recipes
func NewSeedOrchestrator(provider POIProvider, generator SeedGenerator, recipes *storage.RecipeStore, opts OrchestratorOptions) *SeedOrchestrator {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = DefaultSearchRadiusMeters
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxPOIResults
	}
	if opts.SignificanceThreshold <= 0 {
		opts.SignificanceThreshold = DefaultSignificanceThreshold
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultSeedConcurrency
	}
	return &SeedOrchestrator{
		provider:  provider,
		generator: generator,
		recipes:   recipes,
		opts:      opts,
		now:       time.Now,
	}
}

// SeedsForLocation discovers POIs around loc and returns at least one seed.
// Upstream failures are logged and degrade to a single fallback seed.
func (o *SeedOrchestrator) SeedsForLocation(ctx context.Context, loc types.Location) *SeedResult {
	result := &SeedResult{Response: types.SeedResponse{Location: loc}}

	pois, err := o.provider.DiscoverPOIs(ctx, loc, types.SearchOptions{
		RadiusMeters: o.opts.RadiusMeters,
		MaxResults:   o.opts.MaxResults,
	})
	if err != nil {
		log.Printf("⚠️  POI discovery failed at (%s): %v", loc, err)
		pois = nil
	}
	result.POICount = len(pois)

	var seeds []types.StorySeed
	if len(pois) > 0 {
		candidates := SelectCandidates(pois, o.opts.SignificanceThreshold, o.opts.MaxCandidates)
		seeds = o.seedsForPOIs(ctx, candidates)

		if len(seeds) == 0 {
			best, _ := mostSignificant(pois)
			log.Printf("🔁 No seeds from %d candidate(s), retrying with %q", len(candidates), best.Name)
			seeds = o.seedsForPOIs(ctx, []types.PointOfInterest{best})
		}
	}

	if len(seeds) == 0 {
		seeds = []types.StorySeed{o.fallbackSeed(loc)}
		result.Fallback = true
		log.Printf("🧭 Using fallback seed for (%s)", loc)
	}

	for _, seed := range seeds {
		o.recipes.Put(types.SeedRecipe{Seed: seed, Input: seed.Input, Style: seed.Style})
	}

	result.Response.Seeds = seeds
	result.Response.Timestamp = o.now()
	log.Printf("🌱 Returning %d seed(s) for (%s)", len(seeds), loc)
	return result
}

// seedsForPOIs fans out one generation call per POI. Failures are logged per POI
// and never cancel the others; results keep the candidates' rank order.
func (o *SeedOrchestrator) seedsForPOIs(ctx context.Context, pois []types.PointOfInterest) []types.StorySeed {
	perPOI := make([][]types.StorySeed, len(pois))

	var g errgroup.Group
	g.SetLimit(o.opts.Concurrency)
	for i, poi := range pois {
		i, poi := i, poi
		g.Go(func() error {
			input, err := types.InputFromPOI(poi)
			if err != nil {
				log.Printf("⚠️  Skipping POI %q: %v", poi.Name, err)
				return nil
			}
			seeds, err := o.generator.GenerateStorySeeds(ctx, input)
			if err != nil {
				log.Printf("⚠️  Seed generation failed for POI %q: %v", poi.Name, err)
				return nil
			}
			for j := range seeds {
				if seeds[j].ID == "" {
					seeds[j].ID = uuid.New().String()
				}
				if seeds[j].Input == nil {
					in := input
					seeds[j].Input = &in
				}
				if seeds[j].Style == "" {
					seeds[j].Style = types.StyleForCategory(poi.Category)
				}
			}
			perPOI[i] = seeds
			return nil
		})
	}
	g.Wait()

	var all []types.StorySeed
	for _, seeds := range perPOI {
		all = append(all, seeds...)
	}
	return all
}

func (o *SeedOrchestrator) fallbackSeed(loc types.Location) types.StorySeed {
	return types.StorySeed{
		ID:        uuid.New().String(),
		Title:     FallbackSeedTitle,
		Summary:   FallbackSeedSummary,
		Location:  loc,
		CreatedAt: o.now(),
		Style:     types.StyleGeographical,
	}
}
