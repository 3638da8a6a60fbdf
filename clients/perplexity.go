/*
# Module: clients/perplexity.go
Perplexity chat client that narrates stories and keeps the model's web citations as sources.

## Linked Modules
- [clients/narration](./narration.go) - Shared chat transport
- [types/api_types](../types/api_types.go) - Perplexity wire types

## Tags
api-client, perplexity, ai, llm

## Exports
PerplexityClient, NewPerplexityClient

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/perplexity.go" ;
    code:description "Perplexity chat client that narrates stories and keeps the model's web citations as sources" ;
    code:linksTo [
        code:name "clients/narration" ;
        code:path "./narration.go" ;
        code:relationship "Shared chat transport"
    ], [
        code:name "types/api_types" ;
        code:path "../types/api_types.go" ;
        code:relationship "Perplexity wire types"
    ] ;
    code:exports :PerplexityClient, :NewPerplexityClient ;
    code:tags "api-client", "perplexity", "ai", "llm" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"context"
	"fmt"
	"strings"

	"location-stories/types"
)

const perplexityURL = "https://api.perplexity.ai/chat/completions"

// PerplexityClient narrates through the Perplexity chat API
type PerplexityClient struct {
	chatEndpoint
}

func NewPerplexityClient(apiKey string) *PerplexityClient {
	return &PerplexityClient{chatEndpoint: newChatEndpoint("Perplexity", apiKey, perplexityURL)}
}

// Narrate sends the storyteller system prompt and the story prompt to model.
// Sources are the model name followed by its distinct citations in order.
func (c *PerplexityClient) Narrate(ctx context.Context, model, system, prompt string) (Narration, error) {
	var resp types.PerplexityResponse
	err := c.post(ctx, types.PerplexityRequest{
		Model: model,
		Messages: []types.PerplexityMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}, &resp)
	if err != nil {
		return Narration{}, err
	}
	if resp.Error != nil {
		return Narration{}, fmt.Errorf("Perplexity API error: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return Narration{}, fmt.Errorf("no choices from Perplexity")
	}

	sources := []string{"Perplexity " + model}
	seen := make(map[string]bool)
	for _, cite := range resp.Citations {
		cite = strings.TrimSpace(cite)
		if cite == "" || seen[cite] {
			continue
		}
		seen[cite] = true
		sources = append(sources, cite)
	}
	return c.narration(resp.Choices[0].Message.Content, sources...)
}
