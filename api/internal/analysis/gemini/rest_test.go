package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
)

func restRequest() analysis.GenerateRequest {
	return analysis.GenerateRequest{
		Prompt:   "analyze",
		Image:    []byte{0xFF, 0xD8, 0xFF},
		MIMEType: "image/jpeg",
		Params:   analysis.DefaultGenerationParams,
	}
}

func TestRESTEngine_Success(t *testing.T) {
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"`+"```json"+`"},{"text":"{\"a\":1}"}]}}]}`)
	}))
	defer srv.Close()

	e := NewREST("secret", "test-model", srv.URL+"/", srv.Client())
	txt, err := e.Generate(context.Background(), restRequest())
	require.NoError(t, err)
	assert.Equal(t, "```json{\"a\":1}", txt)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "analyze", got.Contents[0].Parts[0].Text)
	assert.Equal(t, "image/jpeg", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "/9j/", got.Contents[0].Parts[1].InlineData.Data)
	assert.Equal(t, restGenerationConfig{Temperature: 0.4, TopK: 32, TopP: 1, MaxOutputTokens: 2048}, got.GenerationConfig)
}

func TestRESTEngine_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	_, err := NewREST("bad", "m", srv.URL, nil).Generate(context.Background(), restRequest())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindUpstream))

	e, _ := apperr.As(err)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", e.Message)
	assert.Equal(t, http.StatusBadRequest, e.Details["status"])
	assert.NotNil(t, e.Details["details"])
}

func TestRESTEngine_UpstreamErrorWithoutJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewREST("k", "m", srv.URL, nil).Generate(context.Background(), restRequest())
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "unknown error", e.Message)
	assert.Equal(t, "bad gateway\n", e.Details["details"])
}

func TestRESTEngine_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`)
	}))
	defer srv.Close()

	_, err := NewREST("k", "m", srv.URL, nil).Generate(context.Background(), restRequest())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInvalidUpstreamResponse))

	e, _ := apperr.As(err)
	raw, _ := e.Details["rawData"].(map[string]any)
	assert.Contains(t, raw, "promptFeedback")
}

func TestRESTEngine_NotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer srv.Close()

	_, err := NewREST("k", "m", srv.URL, nil).Generate(context.Background(), restRequest())
	assert.True(t, apperr.Is(err, apperr.KindInvalidUpstreamResponse))
}

func TestRESTEngine_TransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewREST("very-secret", "m", url, nil).Generate(context.Background(), restRequest())
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "very-secret"))
	_, classified := apperr.As(err)
	assert.False(t, classified, "transport errors are classified by the service")
}

func TestRESTEngine_NoKey(t *testing.T) {
	_, err := NewREST("", "m", "http://127.0.0.1:1", nil).Generate(context.Background(), restRequest())
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
}

func TestNewREST_Defaults(t *testing.T) {
	e := NewREST(" k ", "", "", nil)
	assert.Equal(t, "k", e.APIKey)
	assert.Equal(t, DefaultModel, e.GetModel())
	assert.Equal(t, DefaultBaseURL, e.BaseURL)
	assert.Equal(t, "gemini-rest", e.Name())
}
