package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "LLM_PROVIDER", "OPENAI_API_KEY", "PERPLEXITY_API_KEY",
		"POI_PROVIDER", "GOOGLE_MAPS_API_KEY", "VISITS_TABLE", "AWS_REGION"} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Story.SignificanceThreshold != 0.3 || cfg.Story.MaxCandidates != 3 || cfg.Story.TargetDuration != 180 {
		t.Errorf("unexpected story defaults: %+v", cfg.Story)
	}
	if cfg.Cache.SimilarityThreshold != 0.8 || cfg.Cache.MatchRadiusMeters != 100 {
		t.Errorf("unexpected cache defaults: %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != LLMProviderMock || cfg.POI.Provider != POIProviderGoogle {
		t.Errorf("unexpected providers: %q %q", cfg.LLM.Provider, cfg.POI.Provider)
	}
	if cfg.GenerationTimeoutDuration() != 60*time.Second {
		t.Errorf("timeout = %v", cfg.GenerationTimeoutDuration())
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
llm:
  provider: perplexity
  api_key: file-key
poi:
  provider: overpass
story:
  seeds_per_poi: 2
  generation_timeout: 15s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != LLMProviderPerplexity || cfg.LLM.APIKey != "file-key" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.LLM.Model != "sonar" {
		t.Errorf("model = %q, want provider default", cfg.LLM.Model)
	}
	if cfg.Story.SeedsPerPOI != 2 || cfg.Story.MaxCandidates != 3 {
		t.Errorf("story = %+v", cfg.Story)
	}
	if cfg.GenerationTimeoutDuration() != 15*time.Second {
		t.Errorf("timeout = %v", cfg.GenerationTimeoutDuration())
	}
	if cfg.POI.OverpassURL == "" {
		t.Error("overpass url default lost")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("VISITS_TABLE", "visits")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.LLM.Provider != LLMProviderOpenAI || cfg.LLM.APIKey != "env-key" || cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.POI.GoogleAPIKey != "maps-key" {
		t.Errorf("google key = %q", cfg.POI.GoogleAPIKey)
	}
	if cfg.Storage.VisitsTable != "visits" || cfg.Storage.Region != "eu-west-1" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("server: [unclosed"), 0o644)

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown llm", func(c *Config) { c.LLM.Provider = "bard" }, "llm.provider"},
		{"unknown poi", func(c *Config) { c.POI.Provider = "yelp" }, "poi.provider"},
		{"bad overpass url", func(c *Config) {
			c.POI.Provider = POIProviderOverpass
			c.POI.OverpassURL = "ftp://example.com"
		}, "poi.overpass_url"},
		{"radius too large", func(c *Config) { c.POI.RadiusMeters = 60000 }, "poi.radius_meters"},
		{"threshold out of range", func(c *Config) { c.Story.SignificanceThreshold = 1 }, "significance_threshold"},
		{"bad timeout", func(c *Config) { c.Story.GenerationTimeout = "soon" }, "generation_timeout"},
		{"zero similarity", func(c *Config) { c.Cache.SimilarityThreshold = 0 }, "similarity_threshold"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}
}
