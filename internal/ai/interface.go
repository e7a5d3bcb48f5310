package ai

import (
	"context"
	"encoding/json"
)

// Provider defines the contract for calling a generative model.
// Implementations return the generated text value exactly as the model produced it: a JSON
// string in the common case, or a structured JSON value when the backend already decoded it.
type Provider interface {
	// GenerateContent sends req using apiKey and returns the first candidate's text value.
	// A non-success response from the model API is reported as *ProviderError.
	GenerateContent(ctx context.Context, apiKey string, req GenerateRequest) (json.RawMessage, error)
}
