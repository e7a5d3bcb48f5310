package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"items":`), genai.Text(`[]}`)}},
		}},
	}
	text, ok := responseText(resp)
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, text)
}

func TestResponseText_Empty(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil":           nil,
		"no candidates": {},
		"no content":    {Candidates: []*genai.Candidate{{}}},
		"no text parts": {Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}}}},
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := responseText(resp)
			assert.False(t, ok)
		})
	}
}

func TestProviderErrorFrom(t *testing.T) {
	apiErr := &googleapi.Error{Code: http.StatusForbidden, Body: `{"error":"denied"}`}
	err := providerErrorFrom(apiErr)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusForbidden, perr.StatusCode)
	assert.Equal(t, `{"error":"denied"}`, perr.Body)

	plain := providerErrorFrom(errors.New("dial failed"))
	assert.False(t, errors.As(plain, &perr))
	assert.Contains(t, plain.Error(), "dial failed")
}

func TestGeminiSDKClient_MissingKey(t *testing.T) {
	_, err := NewGeminiSDKClient().GenerateContent(context.Background(), " ", GenerateRequest{Model: "m"})
	require.Error(t, err)
}
