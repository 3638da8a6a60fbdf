/*
# Module: storage/recipe_store.go
Seed recipe store that remembers how to regenerate each seed's full story.

## Linked Modules
- [types/story](../types/story.go) - Seed recipe data structures

## Tags
storage, in-memory, seeds

## Exports
RecipeStore, NewRecipeStore

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/recipe_store.go" ;
    code:description "Seed recipe store that remembers how to regenerate each seed's full story" ;
    code:linksTo [
        code:name "types/story" ;
        code:path "../types/story.go" ;
        code:relationship "Seed recipe data structures"
    ] ;
    code:exports :RecipeStore, :NewRecipeStore ;
    code:tags "storage", "in-memory", "seeds" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"sync"

	"location-stories/types"
)

// RecipeStore maps seed ids to the recipe used to materialize them
type RecipeStore struct {
	mu      sync.RWMutex
	recipes map[string]types.SeedRecipe
}

// NewRecipeStore creates an empty recipe store
func NewRecipeStore() *RecipeStore {
	return &RecipeStore{recipes: make(map[string]types.SeedRecipe)}
}

// Put records a recipe under its seed id. A later Put for the same id wins.
func (s *RecipeStore) Put(recipe types.SeedRecipe) {
	if recipe.Input != nil {
		in := *recipe.Input
		recipe.Input = &in
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[recipe.Seed.ID] = recipe
}

// Get returns the recipe for a seed id
func (s *RecipeStore) Get(id string) (types.SeedRecipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recipe, ok := s.recipes[id]
	return recipe, ok
}

// Len returns the number of retained recipes
func (s *RecipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}
