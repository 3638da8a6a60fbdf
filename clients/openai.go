/*
# Module: clients/openai.go
OpenAI chat client that narrates stories from a system and a user prompt.

## Linked Modules
- [clients/narration](./narration.go) - Shared chat transport

## Tags
api-client, openai, ai, llm

## Exports
OpenAIClient, NewOpenAIClient, OpenAIMessage, OpenAIRequest, OpenAIResponse

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/openai.go" ;
    code:description "OpenAI chat client that narrates stories from a system and a user prompt" ;
    code:linksTo [
        code:name "clients/narration" ;
        code:path "./narration.go" ;
        code:relationship "Shared chat transport"
    ] ;
    code:exports :OpenAIClient, :NewOpenAIClient, :OpenAIMessage, :OpenAIRequest, :OpenAIResponse ;
    code:tags "api-client", "openai", "ai", "llm" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"context"
	"fmt"
)

const (
	openAIURL            = "https://api.openai.com/v1/chat/completions"
	narrationTemperature = 0.8
)

type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message      OpenAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

// OpenAIClient narrates through the OpenAI chat completions API
type OpenAIClient struct {
	chatEndpoint
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{chatEndpoint: newChatEndpoint("OpenAI", apiKey, openAIURL)}
}

// Narrate sends the storyteller system prompt and the story prompt to model.
// The narration's single source names the model.
func (c *OpenAIClient) Narrate(ctx context.Context, model, system, prompt string) (Narration, error) {
	var resp OpenAIResponse
	err := c.post(ctx, OpenAIRequest{
		Model: model,
		Messages: []OpenAIMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: narrationTemperature,
	}, &resp)
	if err != nil {
		return Narration{}, err
	}
	if len(resp.Choices) == 0 {
		return Narration{}, fmt.Errorf("no choices from OpenAI")
	}
	return c.narration(resp.Choices[0].Message.Content, "OpenAI "+model)
}
