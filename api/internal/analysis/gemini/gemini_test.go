package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
	"ergo-proxy/api/internal/config"
)

func TestFirstText(t *testing.T) {
	assert.Empty(t, firstText(nil))
	assert.Empty(t, firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("```json\n"), genai.Text("{}\n```")}}},
		},
	}
	assert.Equal(t, "```json\n{}\n```", firstText(resp))
}

func TestGenerationConfig(t *testing.T) {
	gc := generationConfig(analysis.DefaultGenerationParams)
	require.NotNil(t, gc.Temperature)
	assert.Equal(t, float32(0.4), *gc.Temperature)
	assert.Equal(t, int32(32), *gc.TopK)
	assert.Equal(t, float32(1), *gc.TopP)
	assert.Equal(t, int32(2048), *gc.MaxOutputTokens)
}

func TestClassify_GoogleAPIError(t *testing.T) {
	src := &googleapi.Error{Code: http.StatusTooManyRequests, Message: "Resource has been exhausted"}
	err := classify(fmt.Errorf("generate: %w", src))

	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindUpstream, e.Kind)
	assert.Equal(t, "Resource has been exhausted", e.Message)
	assert.Equal(t, http.StatusTooManyRequests, e.Details["status"])
}

func TestClassify_Blocked(t *testing.T) {
	err := classify(&genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}})
	assert.True(t, apperr.Is(err, apperr.KindInvalidUpstreamResponse))
}

func TestClassify_PassThrough(t *testing.T) {
	src := errors.New("dial tcp: connection refused")
	assert.Same(t, src, classify(src))
}

func TestEngine_NoKey(t *testing.T) {
	_, err := New("", "").Generate(context.Background(), analysis.GenerateRequest{})
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
	assert.Equal(t, DefaultModel, New("", "").GetModel())
}

func TestFromConfig(t *testing.T) {
	sdk := FromConfig(&config.Config{GeminiAPIKey: "k", GeminiTransport: config.TransportSDK})
	assert.Equal(t, "gemini", sdk.Name())
	assert.Equal(t, DefaultModel, sdk.GetModel())

	rest := FromConfig(&config.Config{GeminiModel: "gemini-1.5-pro", GeminiTransport: config.TransportREST})
	assert.Equal(t, "gemini-rest", rest.Name())
	assert.Equal(t, "gemini-1.5-pro", rest.GetModel())
}
