package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// DefaultBaseURL is the public Gemini REST endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiClient implements Provider over the Gemini REST API.
// It keeps the raw error body of failed calls, which the SDK client does not expose reliably.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient returns a client for baseURL (DefaultBaseURL when empty).
// timeout bounds each call; 0 means no client-side limit. Caller cancellation is honoured
// only through ctx.
func NewGeminiClient(baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float32 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

// generateContentResponse keeps the text as raw JSON so both string and structured
// values survive decoding.
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text json.RawMessage `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent sends req to {baseURL}/models/{model}:generateContent.
func (c *GeminiClient) GenerateContent(ctx context.Context, apiKey string, req GenerateRequest) (json.RawMessage, error) {
	body := generateContentRequest{
		Contents: make([]content, 0, len(req.Parts)),
		GenerationConfig: generationConfig{
			Temperature:      req.Temperature,
			ResponseMIMEType: req.ResponseMIMEType,
		},
	}
	for _, p := range req.Parts {
		body.Contents = append(body.Contents, content{Role: "user", Parts: []part{{Text: p}}})
	}
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(req.Model), url.QueryEscape(apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// url.Error embeds the full URL, which carries the key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return nil, fmt.Errorf("gemini: do request: %w", uerr.Err)
		}
		return nil, fmt.Errorf("gemini: do request: %w", err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		perr := &ProviderError{StatusCode: resp.StatusCode, Err: err}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			perr.Body = gerr.Body
		}
		return nil, perr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: read response: %w", err)
	}
	return firstCandidateText(raw)
}

// firstCandidateText extracts candidates[0].content.parts[0].text.
// A missing path yields a nil value rather than an error.
func firstCandidateText(raw []byte) (json.RawMessage, error) {
	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
