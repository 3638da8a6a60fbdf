/*
# Module: services/materializer.go
Full-story materialization: cached story first, regeneration from the seed recipe second.

## Linked Modules
- [storage/content_cache](../storage/content_cache.go) - Content cache
- [storage/recipe_store](../storage/recipe_store.go) - Seed recipe store
- [services/generator](./generator.go) - Full story generation

## Tags
business-logic, cache, materialization

## Exports
StoryMaterializer, NewStoryMaterializer, StoryGenerator, ErrStoryNotFound, ErrGenerationFailed, ErrCorruptRecipe

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/materializer.go" ;
    code:description "Full-story materialization: cached story first, regeneration from the seed recipe second" ;
    code:linksTo [
        code:name "storage/content_cache" ;
        code:path "../storage/content_cache.go" ;
        code:relationship "Content cache"
    ], [
        code:name "storage/recipe_store" ;
        code:path "../storage/recipe_store.go" ;
        code:relationship "Seed recipe store"
    ], [
        code:name "services/generator" ;
        code:path "./generator.go" ;
        code:relationship "Full story generation"
    ] ;
    code:exports :StoryMaterializer, :NewStoryMaterializer, :StoryGenerator, :ErrStoryNotFound, :ErrGenerationFailed, :ErrCorruptRecipe ;
    code:tags "business-logic", "cache", "materialization" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"location-stories/storage"
	"location-stories/types"
)

var (
	ErrStoryNotFound    = errors.New("story not found")
	ErrGenerationFailed = errors.New("story generation failed")
	ErrCorruptRecipe    = errors.New("corrupt seed recipe")
)

// StoryGenerator produces full stories
type StoryGenerator interface {
	GenerateFullStory(ctx context.Context, req types.StoryRequest) (*types.FullStory, error)
}

// StoryMaterializer resolves story ids to full stories
type StoryMaterializer struct {
	cache          *storage.ContentCache
	recipes        *storage.RecipeStore
	generator      StoryGenerator
	targetDuration int
	inflight       singleflight.Group
}

// NewStoryMaterializer creates a materializer. targetDuration <= 0 means the default.
func NewStoryMaterializer(cache *storage.ContentCache, recipes *storage.RecipeStore, generator StoryGenerator, targetDuration int) *StoryMaterializer {
	if targetDuration <= 0 {
		targetDuration = DefaultTargetDuration
	}
	return &StoryMaterializer{
		cache:          cache,
		recipes:        recipes,
		generator:      generator,
		targetDuration: targetDuration,
	}
}

// GetFullStory returns the cached story for id, or regenerates it from the
// seed recipe recorded when the seed was handed out.
func (m *StoryMaterializer) GetFullStory(ctx context.Context, id string) (*types.FullStory, error) {
	if story, ok := m.cache.Retrieve(id); ok {
		return story, nil
	}

	recipe, ok := m.recipes.Get(id)
	if !ok {
		return nil, ErrStoryNotFound
	}
	if recipe.Seed.ID != id || recipe.Seed.Title == "" {
		log.Printf("❌ Recipe for %s is malformed (seed id %q)", id, recipe.Seed.ID)
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecipe, id)
	}

	// concurrent requests for the same seed share one generation, which runs
	// detached from any single caller and is bounded by the generator's timeout
	shared := context.WithoutCancel(ctx)
	ch := m.inflight.DoChan(id, func() (interface{}, error) {
		if story, ok := m.cache.Peek(id); ok {
			return story, nil
		}
		return m.regenerate(shared, recipe)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		story := res.Val.(*types.FullStory).Clone()
		return &story, nil
	}
}

func (m *StoryMaterializer) regenerate(ctx context.Context, recipe types.SeedRecipe) (*types.FullStory, error) {
	seed := recipe.Seed

	input, err := recipeInput(recipe)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecipe, seed.ID, err)
	}
	style := recipe.Style
	if style == "" {
		style = types.StyleMixed
	}

	story, err := m.generator.GenerateFullStory(ctx, types.StoryRequest{
		Input:          input,
		TargetDuration: m.targetDuration,
		Style:          style,
		Seed:           &seed,
	})
	if err != nil {
		log.Printf("❌ Regenerating story %s failed: %v", seed.ID, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrGenerationFailed, seed.ID, err)
	}

	story.ID = seed.ID
	story.Title = seed.Title
	story.Summary = seed.Summary
	loc := seed.Location
	story.Location = &loc
	story.Status = types.StoryStatusReady

	m.cache.Store(*story, story.PromptUsed, &input)
	log.Printf("📖 Materialized story %s from seed recipe", seed.ID)
	return story, nil
}

// recipeInput returns the recorded input, or a geographical input anchored at the
// seed's location for fallback seeds that never had one. Anchoring on location
// keeps fallback stories for distant places from matching each other in the cache.
func recipeInput(recipe types.SeedRecipe) (types.ContentInput, error) {
	if recipe.Input != nil && !recipe.Input.IsZero() {
		return *recipe.Input, nil
	}
	seed := recipe.Seed
	return types.NewStructuredInput(types.StructuredPOI{
		Name:     fmt.Sprintf("The area around %s", seed.Location),
		Category: types.CategoryGeographical,
		Location: seed.Location,
		Context:  seed.Summary,
	})
}
