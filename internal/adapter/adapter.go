package adapter

import "context"

// LLMAdapter defines the contract for model backends.
// Generate must ask the backend for a JSON-typed reply and return its text as-is.
type LLMAdapter interface {
	Name() string
	Model() string
	Generate(ctx context.Context, prompt string) (string, error)
	Available() bool
}

// ModelInfo is exposed via GET /api/models.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Info describes an adapter for GET /api/models.
func Info(a LLMAdapter) ModelInfo {
	provider := "custom"
	switch a.(type) {
	case *GeminiAdapter:
		provider = "gemini"
	case *MockAdapter:
		provider = "mock"
	}
	return ModelInfo{ID: a.Model(), Name: a.Name(), Provider: provider}
}
