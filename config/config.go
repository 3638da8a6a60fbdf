/*
# Module: config/config.go
Service configuration loaded from YAML with environment overrides.

## Linked Modules
(None - leaf package)

## Tags
config, yaml, environment

## Exports
Config, ServerConfig, LLMConfig, POIConfig, StoryConfig, CacheConfig, StorageConfig, Load, DefaultConfigPath, Defaults

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "config/config.go" ;
    code:description "Service configuration loaded from YAML with environment overrides" ;
    code:exports :Config, :ServerConfig, :LLMConfig, :POIConfig, :StoryConfig, :CacheConfig, :StorageConfig, :Load, :DefaultConfigPath, :Defaults ;
    code:tags "config", "yaml", "environment" .
<!-- End LinkedDoc RDF -->
*/
package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	LLMProviderOpenAI     = "openai"
	LLMProviderPerplexity = "perplexity"
	LLMProviderMock       = "mock"

	POIProviderGoogle   = "google"
	POIProviderOverpass = "overpass"
)

var defaultModels = map[string]string{
	LLMProviderOpenAI:     "gpt-4o-mini",
	LLMProviderPerplexity: "sonar",
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai", "perplexity" or "mock"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

type POIConfig struct {
	Provider          string  `yaml:"provider"` // "google" or "overpass"
	RadiusMeters      int     `yaml:"radius_meters"`
	MaxResults        int     `yaml:"max_results"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	GoogleAPIKey      string  `yaml:"google_api_key"`
	OverpassURL       string  `yaml:"overpass_url"`
}

type StoryConfig struct {
	SignificanceThreshold float64 `yaml:"significance_threshold"`
	MaxCandidates         int     `yaml:"max_candidates"`
	SeedsPerPOI           int     `yaml:"seeds_per_poi"`
	TargetDuration        int     `yaml:"target_duration"`
	GenerationTimeout     string  `yaml:"generation_timeout"`
	Concurrency           int     `yaml:"concurrency"`
}

type CacheConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MatchRadiusMeters   float64 `yaml:"match_radius_meters"`
}

type StorageConfig struct {
	// VisitsTable enables the DynamoDB visit log when set
	VisitsTable string `yaml:"visits_table"`
	Region      string `yaml:"region"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	POI     POIConfig     `yaml:"poi"`
	Story   StoryConfig   `yaml:"story"`
	Cache   CacheConfig   `yaml:"cache"`
	Storage StorageConfig `yaml:"storage"`
}

// GenerationTimeoutDuration parses the generation timeout, defaulting to 60s
func (c *Config) GenerationTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Story.GenerationTimeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "location-stories", "config.yaml")
}

// Defaults returns the built-in configuration without file or environment input
func Defaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads path (or the XDG default when empty) over the built-in defaults,
// applies environment overrides and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// built-in defaults only
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(cfg)
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case LLMProviderOpenAI:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case LLMProviderPerplexity:
			cfg.LLM.APIKey = os.Getenv("PERPLEXITY_API_KEY")
		}
	}
	if v := os.Getenv("POI_PROVIDER"); v != "" {
		cfg.POI.Provider = v
	}
	if v := os.Getenv("GOOGLE_MAPS_API_KEY"); v != "" {
		cfg.POI.GoogleAPIKey = v
	}
	if v := os.Getenv("VISITS_TABLE"); v != "" {
		cfg.Storage.VisitsTable = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Storage.Region = v
	}
}

// Validate checks enum values and numeric ranges
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch c.LLM.Provider {
	case LLMProviderOpenAI, LLMProviderPerplexity, LLMProviderMock:
	default:
		return fmt.Errorf("llm.provider: unknown provider %q (valid: openai, perplexity, mock)", c.LLM.Provider)
	}

	switch c.POI.Provider {
	case POIProviderGoogle:
	case POIProviderOverpass:
		u, err := url.Parse(c.POI.OverpassURL)
		if err != nil {
			return fmt.Errorf("poi.overpass_url: invalid url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("poi.overpass_url: scheme must be http or https, got %q", u.Scheme)
		}
	default:
		return fmt.Errorf("poi.provider: unknown provider %q (valid: google, overpass)", c.POI.Provider)
	}
	if c.POI.RadiusMeters <= 0 || c.POI.RadiusMeters > 50000 {
		return fmt.Errorf("poi.radius_meters must be in (0, 50000], got %d", c.POI.RadiusMeters)
	}
	if c.POI.MaxResults <= 0 {
		return fmt.Errorf("poi.max_results must be positive, got %d", c.POI.MaxResults)
	}

	if c.Story.SignificanceThreshold < 0 || c.Story.SignificanceThreshold >= 1 {
		return fmt.Errorf("story.significance_threshold must be in [0, 1), got %v", c.Story.SignificanceThreshold)
	}
	if c.Story.MaxCandidates <= 0 || c.Story.SeedsPerPOI <= 0 || c.Story.Concurrency <= 0 {
		return fmt.Errorf("story.max_candidates, seeds_per_poi and concurrency must be positive")
	}
	if c.Story.TargetDuration <= 0 {
		return fmt.Errorf("story.target_duration must be positive, got %d", c.Story.TargetDuration)
	}
	if c.Story.GenerationTimeout != "" {
		if _, err := time.ParseDuration(c.Story.GenerationTimeout); err != nil {
			return fmt.Errorf("story.generation_timeout: %w", err)
		}
	}

	if c.Cache.SimilarityThreshold <= 0 || c.Cache.SimilarityThreshold > 1 {
		return fmt.Errorf("cache.similarity_threshold must be in (0, 1], got %v", c.Cache.SimilarityThreshold)
	}
	if c.Cache.MatchRadiusMeters <= 0 {
		return fmt.Errorf("cache.match_radius_meters must be positive, got %v", c.Cache.MatchRadiusMeters)
	}
	return nil
}
