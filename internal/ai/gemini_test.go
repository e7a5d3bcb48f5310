package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *GeminiClient {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewGeminiClient(server.URL+"/v1beta", 5*time.Second)
}

func TestGeminiClient_SendsContentsAndConfig(t *testing.T) {
	var got generateContentRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-1.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "secret key", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"items\":[]}"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "secret key", GenerateRequest{
		Model:            "gemini-1.5-pro",
		Parts:            []string{"instruction", `{"text":"x"}`},
		Temperature:      0.2,
		ResponseMIMEType: "application/json",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `"{\"items\":[]}"`, string(text))

	require.Len(t, got.Contents, 2)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "instruction", got.Contents[0].Parts[0].Text)
	assert.Equal(t, `{"text":"x"}`, got.Contents[1].Parts[0].Text)
	assert.InDelta(t, 0.2, got.GenerationConfig.Temperature, 1e-6)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMIMEType)
}

func TestGeminiClient_StructuredTextPassesThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":{"items":[{"id":"1"}]}}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "k", GenerateRequest{Model: "m"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":"1"}]}`, string(text))
}

func TestGeminiClient_NonSuccessKeepsStatusAndBody(t *testing.T) {
	const body = `{"error":{"code":429,"message":"Resource has been exhausted","status":"RESOURCE_EXHAUSTED"}}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(body))
	})

	_, err := client.GenerateContent(context.Background(), "k", GenerateRequest{Model: "m"})
	var perr *ProviderError
	require.True(t, errors.As(err, &perr), "expected *ProviderError, got %T", err)
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
	assert.Equal(t, body, perr.Body)
}

func TestGeminiClient_NonSuccessPlainBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	_, err := client.GenerateContent(context.Background(), "k", GenerateRequest{Model: "m"})
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, "upstream down", perr.Body)
}

func TestGeminiClient_MalformedEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.GenerateContent(context.Background(), "k", GenerateRequest{Model: "m"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedEnvelope))
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	text, err := client.GenerateContent(context.Background(), "k", GenerateRequest{Model: "m"})
	require.NoError(t, err)
	assert.Nil(t, text)
}

func TestNewGeminiClient_ZeroTimeoutIsUnbounded(t *testing.T) {
	client := NewGeminiClient("", 0)
	assert.Zero(t, client.httpClient.Timeout)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestGeminiClient_TransportErrorHidesKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewGeminiClient(baseURL, time.Second)
	_, err := client.GenerateContent(context.Background(), "very-secret", GenerateRequest{Model: "m"})
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "very-secret"), "error leaked api key: %v", err)
	var perr *ProviderError
	assert.False(t, errors.As(err, &perr))
}
