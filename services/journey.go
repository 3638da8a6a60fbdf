/*
# Module: services/journey.go
Journey service exposing location processing, story lookup and health to the HTTP and CLI layers.

## Linked Modules
- [services/orchestrator](./orchestrator.go) - Seed orchestration
- [services/materializer](./materializer.go) - Full story materialization
- [services/generator](./generator.go) - Direct content generation
- [storage/repository](../storage/repository.go) - Visit log repository

## Tags
business-logic, api, journey

## Exports
JourneyService, NewJourneyService, Health, ErrMissingStoryID

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/journey.go" ;
    code:description "Journey service exposing location processing, story lookup and health to the HTTP and CLI layers" ;
    code:linksTo [
        code:name "services/orchestrator" ;
        code:path "./orchestrator.go" ;
        code:relationship "Seed orchestration"
    ], [
        code:name "services/materializer" ;
        code:path "./materializer.go" ;
        code:relationship "Full story materialization"
    ], [
        code:name "services/generator" ;
        code:path "./generator.go" ;
        code:relationship "Direct content generation"
    ], [
        code:name "storage/repository" ;
        code:path "../storage/repository.go" ;
        code:relationship "Visit log repository"
    ] ;
    code:exports :JourneyService, :NewJourneyService, :Health, :ErrMissingStoryID ;
    code:tags "business-logic", "api", "journey" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"location-stories/storage"
	"location-stories/types"
)

// ErrMissingStoryID is returned when a story lookup has no identifier
var ErrMissingStoryID = errors.New("story id is required")

// Health is the service health summary
type Health struct {
	Status  string `json:"status"`
	Stories int    `json:"stories"`
}

// JourneyService is the inbound surface of the story core
type JourneyService struct {
	orchestrator *SeedOrchestrator
	materializer *StoryMaterializer
	generator    *ContentGenerator
	cache        *storage.ContentCache
	recipes      *storage.RecipeStore
	visits       storage.VisitRepository
}

// NewJourneyService wires the core components together. visits may be nil.
func NewJourneyService(
	orchestrator *SeedOrchestrator,
	materializer *StoryMaterializer,
	generator *ContentGenerator,
	cache *storage.ContentCache,
	recipes *storage.RecipeStore,
	visits storage.VisitRepository,
) *JourneyService {
	return &JourneyService{
		orchestrator: orchestrator,
		materializer: materializer,
		generator:    generator,
		cache:        cache,
		recipes:      recipes,
		visits:       visits,
	}
}

// ProcessLocation validates the coordinate and returns story seeds for it.
// Only invalid coordinates produce an error.
func (s *JourneyService) ProcessLocation(ctx context.Context, lat, lng float64, timestamp *time.Time, accuracy *float64) (*types.SeedResponse, error) {
	loc, err := types.NewLocation(lat, lng, timestamp, accuracy)
	if err != nil {
		return nil, err
	}

	log.Printf("📍 Processing location (%s)", loc)
	result := s.orchestrator.SeedsForLocation(ctx, loc)
	s.recordVisit(ctx, result)
	return &result.Response, nil
}

// GetFullStory resolves a seed or story id to its full story
func (s *JourneyService) GetFullStory(ctx context.Context, id string) (*types.FullStory, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingStoryID
	}
	return s.materializer.GetFullStory(ctx, id)
}

// GenerateContent produces a story directly from a content input, bypassing seeds
func (s *JourneyService) GenerateContent(ctx context.Context, input types.ContentInput, style types.ContentStyle, targetDuration int) (*types.FullStory, error) {
	if style != "" && !style.Valid() {
		return nil, fmt.Errorf("%w: unknown style %q", types.ErrInvalidContentInput, style)
	}
	story, err := s.generator.GenerateFullStory(ctx, types.StoryRequest{
		Input:          input,
		TargetDuration: targetDuration,
		Style:          style,
	})
	if err != nil {
		if errors.Is(err, types.ErrInvalidContentInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return story, nil
}

// GetHealth reports status and the number of retained seed recipes
func (s *JourneyService) GetHealth() Health {
	return Health{Status: "healthy", Stories: s.recipes.Len()}
}

// Cache exposes the content cache for inspection endpoints
func (s *JourneyService) Cache() *storage.ContentCache {
	return s.cache
}

// RecentVisits returns the latest processed locations
func (s *JourneyService) RecentVisits(ctx context.Context, limit int) ([]types.Visit, error) {
	if s.visits == nil {
		return []types.Visit{}, nil
	}
	return s.visits.GetRecent(ctx, limit)
}

func (s *JourneyService) recordVisit(ctx context.Context, result *SeedResult) {
	if s.visits == nil {
		return
	}
	ids := make([]string, 0, len(result.Response.Seeds))
	for _, seed := range result.Response.Seeds {
		ids = append(ids, seed.ID)
	}
	visit := types.Visit{
		VisitID:   uuid.New().String(),
		Latitude:  result.Response.Location.Latitude,
		Longitude: result.Response.Location.Longitude,
		Timestamp: result.Response.Timestamp,
		SeedIDs:   ids,
		POICount:  result.POICount,
		Fallback:  result.Fallback,
	}
	if err := s.visits.Save(ctx, visit); err != nil {
		log.Printf("⚠️  Failed to record visit: %v", err)
	}
}
