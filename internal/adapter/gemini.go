package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const (
	GeminiDefaultModel = "gemini-2.0-flash"
	jsonMIMEType       = "application/json"
)

// GeminiConfig holds what is needed to build a GeminiAdapter.
type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty means the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiAdapter calls the Gemini API through the genai SDK.
// One adapter wraps one long-lived client and is shared across requests.
type GeminiAdapter struct {
	client *genai.Client
	model  string
	apiKey string
}

// NewGeminiAdapter builds the SDK client. An empty API key is rejected here
// rather than falling back to ambient Google credentials.
func NewGeminiAdapter(ctx context.Context, cfg GeminiConfig) (*GeminiAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = GeminiDefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1beta", BaseURL: cfg.BaseURL},
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &GeminiAdapter{client: client, model: model, apiKey: cfg.APIKey}, nil
}

func (g *GeminiAdapter) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

// Model returns the model identifier sent with every request.
func (g *GeminiAdapter) Model() string { return g.model }

func (g *GeminiAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini: empty response content")
	}
	return text, nil
}

func (g *GeminiAdapter) Available() bool {
	return g.client != nil && g.apiKey != ""
}
