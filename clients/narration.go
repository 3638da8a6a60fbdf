/*
# Module: clients/narration.go
Shared chat-completion transport and the narration result returned by LLM clients.

## Linked Modules
- [clients/openai](./openai.go) - OpenAI narrator
- [clients/perplexity](./perplexity.go) - Perplexity narrator

## Tags
api-client, llm, narration

## Exports
Narration

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "clients/narration.go" ;
    code:description "Shared chat-completion transport and the narration result returned by LLM clients" ;
    code:linksTo [
        code:name "clients/openai" ;
        code:path "./openai.go" ;
        code:relationship "OpenAI narrator"
    ], [
        code:name "clients/perplexity" ;
        code:path "./perplexity.go" ;
        code:relationship "Perplexity narrator"
    ] ;
    code:exports :Narration ;
    code:tags "api-client", "llm", "narration" .
<!-- End LinkedDoc RDF -->
*/
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const chatTimeout = 60 * time.Second

// Narration is the trimmed text of one model answer plus where it came from
type Narration struct {
	Text    string
	Sources []string
}

// chatEndpoint posts chat-completion bodies to one provider
type chatEndpoint struct {
	provider   string
	apiKey     string
	url        string
	httpClient *http.Client
}

func newChatEndpoint(provider, apiKey, url string) chatEndpoint {
	return chatEndpoint{
		provider:   provider,
		apiKey:     apiKey,
		url:        url,
		httpClient: &http.Client{Timeout: chatTimeout},
	}
}

// post sends body and decodes a 200 response into out
func (e chatEndpoint) post(ctx context.Context, body, out interface{}) error {
	if e.apiKey == "" {
		return fmt.Errorf("%s API key not configured", e.provider)
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", e.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", e.provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s API: %w", e.provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", e.provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s API error (status %d): %s", e.provider, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", e.provider, err)
	}
	return nil
}

// narration trims the answer and rejects empty ones
func (e chatEndpoint) narration(text string, sources ...string) (Narration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Narration{}, fmt.Errorf("empty narration from %s", e.provider)
	}
	return Narration{Text: text, Sources: sources}, nil
}
