package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"location-stories/clients"
	"location-stories/config"
	"location-stories/services"
	"location-stories/storage"
)

// buildJourney wires the story core from configuration
func buildJourney(ctx context.Context, cfg *config.Config) (*services.JourneyService, error) {
	llm, err := services.NewLLM(cfg.LLM)
	if err != nil {
		return nil, err
	}

	provider, err := newPOIProvider(cfg.POI)
	if err != nil {
		return nil, err
	}

	visits, err := newVisitRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	cache := storage.NewContentCache(storage.CacheOptions{
		SimilarityThreshold: cfg.Cache.SimilarityThreshold,
		MatchRadiusMeters:   cfg.Cache.MatchRadiusMeters,
	})
	recipes := storage.NewRecipeStore()

	generator := services.NewContentGenerator(llm, cache, services.GeneratorOptions{
		SeedsPerInput: cfg.Story.SeedsPerPOI,
		Timeout:       cfg.GenerationTimeoutDuration(),
	})
	orchestrator := services.NewSeedOrchestrator(provider, generator, recipes, services.OrchestratorOptions{
		RadiusMeters:          cfg.POI.RadiusMeters,
		MaxResults:            cfg.POI.MaxResults,
		SignificanceThreshold: cfg.Story.SignificanceThreshold,
		MaxCandidates:         cfg.Story.MaxCandidates,
		Concurrency:           cfg.Story.Concurrency,
	})
	materializer := services.NewStoryMaterializer(cache, recipes, generator, cfg.Story.TargetDuration)

	return services.NewJourneyService(orchestrator, materializer, generator, cache, recipes, visits), nil
}

func newPOIProvider(poi config.POIConfig) (services.POIProvider, error) {
	switch poi.Provider {
	case config.POIProviderGoogle:
		if poi.GoogleAPIKey == "" {
			log.Printf("⚠️  GOOGLE_MAPS_API_KEY not set, locations will get fallback seeds only")
		}
		return clients.NewGooglePlacesClient(poi.GoogleAPIKey, poi.RequestsPerSecond), nil
	case config.POIProviderOverpass:
		log.Printf("🏛️  Using Overpass POI provider at %s", poi.OverpassURL)
		return clients.NewOverpassClient(poi.OverpassURL, poi.RequestsPerSecond), nil
	default:
		return nil, fmt.Errorf("unknown POI provider: %q", poi.Provider)
	}
}

func newVisitRepository(ctx context.Context, st config.StorageConfig) (storage.VisitRepository, error) {
	if st.VisitsTable == "" {
		return storage.NewVisitMemoryRepository(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := storage.NewDynamoDBClient(ctx, st.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	log.Printf("💾 Recording visits to DynamoDB table %s (%s)", st.VisitsTable, st.Region)
	return storage.NewVisitDynamoDBRepository(client, st.VisitsTable), nil
}
