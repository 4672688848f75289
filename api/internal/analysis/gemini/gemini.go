package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
)

const DefaultModel = "gemini-2.0-flash-exp"

// Engine calls Gemini through the genai SDK.
type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  model,
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Generate sends prompt + image as one user turn and returns the reply text.
func (e *Engine) Generate(ctx context.Context, in analysis.GenerateRequest) (string, error) {
	if e.APIKey == "" {
		return "", apperr.Configuration("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", apperr.Internal("gemini: create client", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", apperr.Internal("gemini: model is nil", nil)
	}
	m.GenerationConfig = generationConfig(in.Params)

	parts := []genai.Part{
		genai.Text(in.Prompt),
		&genai.Blob{MIMEType: in.MIMEType, Data: in.Image},
	}

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		return "", classify(err)
	}
	txt := firstText(resp)
	if txt == "" {
		log.WithField("candidates", candidateCount(resp)).Warn("gemini: reply has no text")
		return "", apperr.InvalidUpstreamResponse("no candidate with text in gemini response", summarize(resp))
	}
	return txt, nil
}

func generationConfig(p analysis.GenerationParams) genai.GenerationConfig {
	return genai.GenerationConfig{
		Temperature:     ptrFloat32(p.Temperature),
		TopK:            ptrInt32(p.TopK),
		TopP:            ptrFloat32(p.TopP),
		MaxOutputTokens: ptrInt32(p.MaxOutputTokens),
	}
}

// classify maps SDK errors onto the apperr taxonomy.
func classify(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return apperr.InvalidUpstreamResponse("gemini blocked the request: "+blocked.Error(), blockedDetails(blocked))
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := gerr.Message
		if msg == "" {
			msg = http.StatusText(gerr.Code)
		}
		e := apperr.Upstream(gerr.Code, msg, err)
		if gerr.Body != "" {
			e.With("details", gerr.Body)
		}
		return e
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		code := aerr.HTTPCode()
		if code < 0 {
			code = 0
		}
		e := apperr.Upstream(code, aerr.Error(), err)
		if r := aerr.Reason(); r != "" {
			e.With("reason", r)
		}
		return e
	}

	return err
}

func blockedDetails(b *genai.BlockedError) map[string]any {
	out := map[string]any{}
	if b.PromptFeedback != nil {
		out["blockReason"] = b.PromptFeedback.BlockReason.String()
	}
	if b.Candidate != nil {
		out["finishReason"] = b.Candidate.FinishReason.String()
	}
	return out
}

// firstText joins the text parts of the first candidate that has content.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if s := b.String(); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func candidateCount(resp *genai.GenerateContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Candidates)
}

func summarize(resp *genai.GenerateContentResponse) map[string]any {
	out := map[string]any{"candidates": candidateCount(resp)}
	if resp == nil {
		return out
	}
	reasons := make([]string, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		if c != nil {
			reasons = append(reasons, c.FinishReason.String())
		}
	}
	out["finishReasons"] = reasons
	if resp.PromptFeedback != nil {
		out["blockReason"] = resp.PromptFeedback.BlockReason.String()
	}
	return out
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
