package factcheck

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// Generator abstracts the reasoning collaborator: one prompt in, free text
// out. The response carries a JSON verdict somewhere inside it, with no
// schema guarantee.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CohereGenerator implements Generator using the Cohere Chat API.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator builds the Cohere client. A missing API key is the only
// fatal construction error in the pipeline.
func NewCohereGenerator(apiKey, model string) (*CohereGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("cohere API key is required; set COHERE_API_KEY")
	}
	if model == "" {
		model = "command-r-08-2024"
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the Cohere edge.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	return &CohereGenerator{client: client, model: model}, nil
}

// Generate sends the prompt and returns the raw model text.
func (g *CohereGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &g.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}
