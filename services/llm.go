/*
# Module: services/llm.go
Language-model capability with OpenAI, Perplexity and deterministic mock variants.

## Linked Modules
- [clients/openai](../clients/openai.go) - OpenAI chat client
- [clients/perplexity](../clients/perplexity.go) - Perplexity chat client
- [config/config](../config/config.go) - LLM configuration

## Tags
business-logic, llm, ai, prompts

## Exports
LLM, Generation, NewLLM

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "services/llm.go" ;
    code:description "Language-model capability with OpenAI, Perplexity and deterministic mock variants" ;
    code:linksTo [
        code:name "clients/openai" ;
        code:path "../clients/openai.go" ;
        code:relationship "OpenAI chat client"
    ], [
        code:name "clients/perplexity" ;
        code:path "../clients/perplexity.go" ;
        code:relationship "Perplexity chat client"
    ], [
        code:name "config/config" ;
        code:path "../config/config.go" ;
        code:relationship "LLM configuration"
    ] ;
    code:exports :LLM, :Generation, :NewLLM ;
    code:tags "business-logic", "llm", "ai", "prompts" .
<!-- End LinkedDoc RDF -->
*/
package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"location-stories/clients"
	"location-stories/config"
	"location-stories/types"
)

// wordsPerSecond is the narration pace used to size prompts and estimate durations
const wordsPerSecond = 2.5

const systemPrompt = "You are a warm, knowledgeable local storyteller who narrates short audio stories about places."

// Generation is the raw output of one LLM call
type Generation struct {
	Text    string
	Sources []string
}

// LLM turns prompts into narrative text. The variant is chosen once in NewLLM.
type LLM interface {
	GenerateContent(ctx context.Context, prompt string) (Generation, error)
	GeneratePrompt(input types.ContentInput, style types.ContentStyle, targetSeconds int) string
}

// NewLLM picks the backend: a real provider when its credential is present,
// otherwise the deterministic mock
func NewLLM(cfg config.LLMConfig) (LLM, error) {
	switch cfg.Provider {
	case config.LLMProviderOpenAI, config.LLMProviderPerplexity:
		if cfg.APIKey == "" {
			log.Printf("⚠️  No API key for LLM provider %q, using mock narrator", cfg.Provider)
			return &mockLLM{}, nil
		}
	case config.LLMProviderMock, "":
		return &mockLLM{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q (valid: openai, perplexity, mock)", cfg.Provider)
	}

	if cfg.Provider == config.LLMProviderPerplexity {
		log.Printf("🤖 Using Perplexity narrator (model %s)", cfg.Model)
		return &perplexityLLM{client: clients.NewPerplexityClient(cfg.APIKey), model: cfg.Model}, nil
	}
	log.Printf("🤖 Using OpenAI narrator (model %s)", cfg.Model)
	return &openAILLM{client: clients.NewOpenAIClient(cfg.APIKey), model: cfg.Model}, nil
}

// buildStoryPrompt is shared by every variant so prompts are cache-comparable
func buildStoryPrompt(input types.ContentInput, style types.ContentStyle, targetSeconds int) string {
	words := int(float64(targetSeconds) * wordsPerSecond)

	var b strings.Builder
	b.WriteString("Narrate an audio story for someone standing at this place.\n\n")
	fmt.Fprintf(&b, "Style: %s\n", style)
	fmt.Fprintf(&b, "Target words: %d\n", words)
	writeSubject(&b, input)
	b.WriteString("\nWrite flowing spoken narration only. No headings, lists or stage directions.")
	return b.String()
}

func writeSubject(b *strings.Builder, input types.ContentInput) {
	if poi, ok := input.POI(); ok {
		fmt.Fprintf(b, "Subject: %s\n", poi.Name)
		fmt.Fprintf(b, "Category: %s\n", poi.Category)
		fmt.Fprintf(b, "Location: %s\n", poi.Location)
		if poi.Description != "" {
			fmt.Fprintf(b, "Details: %s\n", poi.Description)
		}
		if poi.Context != "" {
			fmt.Fprintf(b, "Context: %s\n", poi.Context)
		}
		return
	}
	fmt.Fprintf(b, "Subject: %s\n", input.Description())
}

// --- OpenAI variant ---

type openAILLM struct {
	client *clients.OpenAIClient
	model  string
}

func (o *openAILLM) GeneratePrompt(input types.ContentInput, style types.ContentStyle, targetSeconds int) string {
	return buildStoryPrompt(input, style, targetSeconds)
}

func (o *openAILLM) GenerateContent(ctx context.Context, prompt string) (Generation, error) {
	n, err := o.client.Narrate(ctx, o.model, systemPrompt, prompt)
	if err != nil {
		return Generation{}, err
	}
	return Generation{Text: n.Text, Sources: n.Sources}, nil
}

// --- Perplexity variant ---

type perplexityLLM struct {
	client *clients.PerplexityClient
	model  string
}

func (p *perplexityLLM) GeneratePrompt(input types.ContentInput, style types.ContentStyle, targetSeconds int) string {
	return buildStoryPrompt(input, style, targetSeconds)
}

func (p *perplexityLLM) GenerateContent(ctx context.Context, prompt string) (Generation, error) {
	n, err := p.client.Narrate(ctx, p.model, systemPrompt, prompt)
	if err != nil {
		return Generation{}, err
	}
	return Generation{Text: n.Text, Sources: n.Sources}, nil
}

// --- Mock variant ---

// mockLLM answers from templates so the service works without credentials
type mockLLM struct{}

func (m *mockLLM) GeneratePrompt(input types.ContentInput, style types.ContentStyle, targetSeconds int) string {
	return buildStoryPrompt(input, style, targetSeconds)
}

func (m *mockLLM) GenerateContent(_ context.Context, prompt string) (Generation, error) {
	fields := promptFields(prompt)
	subject := fields["Subject"]
	if subject == "" {
		subject = "this place"
	}

	if strings.Contains(prompt, seedFormatMarker) {
		n, err := strconv.Atoi(fields["Ideas"])
		if err != nil || n < 1 {
			n = 1
		}
		var b strings.Builder
		for i := 0; i < n; i++ {
			title := "The Story of " + subject
			if i > 0 {
				title = fmt.Sprintf("%s: Chapter %d", title, i+1)
			}
			fmt.Fprintf(&b, "TITLE: %s\nSUMMARY: Discover what makes %s worth a closer look.\n\n", title, subject)
		}
		return Generation{Text: b.String(), Sources: []string{"Mock Narrative Generator"}}, nil
	}

	style := fields["Style"]
	if style == "" {
		style = string(types.StyleMixed)
	}
	text := fmt.Sprintf(
		"Welcome to %[1]s. Take a moment to look around, because this spot has more to it than first meets the eye. "+
			"Told in a %[2]s voice, the story of %[1]s begins long before today, with the people and landscapes that shaped it. "+
			"Generations have passed through here, each leaving a small mark on the streets, the stones and the stories locals still tell. "+
			"As you stand here, imagine the sounds and routines of earlier days, and notice how much of that past still lingers. "+
			"That is the quiet magic of %[1]s: an ordinary moment that turns out to be part of a much longer tale.",
		subject, style)
	if angle := fields["Angle"]; angle != "" {
		text = angle + ". " + text
	}
	return Generation{Text: text, Sources: []string{"Mock Narrative Generator"}}, nil
}

// promptFields extracts "Key: value" lines from a prompt
func promptFields(prompt string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(prompt, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || (strings.Contains(key, " ") && key != "Target words") {
			continue
		}
		if _, seen := fields[key]; !seen {
			fields[key] = strings.TrimSpace(value)
		}
	}
	return fields
}
