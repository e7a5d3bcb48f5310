package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiSDKClient implements Provider using Google's official Gemini SDK.
// It is used by the command-line tools; the HTTP server uses GeminiClient so that
// provider error bodies can be relayed verbatim.
type GeminiSDKClient struct {
	opts []option.ClientOption
}

// NewGeminiSDKClient returns an SDK-backed provider. Extra options (endpoint, HTTP client)
// are appended after the per-call API key.
func NewGeminiSDKClient(opts ...option.ClientOption) *GeminiSDKClient {
	return &GeminiSDKClient{opts: opts}
}

func (p *GeminiSDKClient) GenerateContent(ctx context.Context, apiKey string, req GenerateRequest) (json.RawMessage, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, p.opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(req.Model)
	model.ResponseMIMEType = req.ResponseMIMEType
	model.SetTemperature(req.Temperature)

	parts := make([]genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		parts = append(parts, genai.Text(p))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, providerErrorFrom(err)
	}

	text, ok := responseText(resp)
	if !ok {
		return nil, nil
	}
	out, err := json.Marshal(text)
	if err != nil {
		return nil, fmt.Errorf("gemini: encode text: %w", err)
	}
	return out, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	var b strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
			found = true
		}
	}
	return b.String(), found
}

// providerErrorFrom maps SDK API errors onto *ProviderError so callers see one error shape.
func providerErrorFrom(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ProviderError{StatusCode: gerr.Code, Body: gerr.Body, Err: err}
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}
