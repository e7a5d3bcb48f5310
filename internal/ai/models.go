package ai

import (
	"errors"
	"fmt"
)

// ErrMalformedEnvelope is returned when the model API answers 2xx with a body that is not
// a generateContent JSON envelope.
var ErrMalformedEnvelope = errors.New("malformed gemini response envelope")

// GenerateRequest describes one generateContent call.
type GenerateRequest struct {
	// Model is the model identifier, e.g. "gemini-1.5-pro".
	Model string

	// Parts are sent in order, each as its own user-role content.
	Parts []string

	Temperature float32

	// ResponseMIMEType asks the model to constrain its output, e.g. "application/json".
	ResponseMIMEType string
}

// ProviderError carries a non-success answer from the model API.
// Body is the raw response body, relayed to callers unchanged.
type ProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("gemini status %d: %s", e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error { return e.Err }
