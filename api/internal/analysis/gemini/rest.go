package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// RESTEngine calls the generateContent endpoint directly.
type RESTEngine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

// NewREST builds a REST engine. httpc may be nil; the request context bounds
// the call.
func NewREST(apiKey, model, baseURL string, httpc *http.Client) *RESTEngine {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultModel
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &RESTEngine{
		APIKey:  strings.TrimSpace(apiKey),
		Model:   model,
		BaseURL: baseURL,
		httpc:   httpc,
	}
}

func (e *RESTEngine) Name() string     { return "gemini-rest" }
func (e *RESTEngine) GetModel() string { return e.Model }

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type restGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int32   `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int32   `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig restGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (e *RESTEngine) Generate(ctx context.Context, in analysis.GenerateRequest) (string, error) {
	if e.APIKey == "" {
		return "", apperr.Configuration("GEMINI_API_KEY is empty")
	}

	body := geminiRequest{
		Contents: []content{{
			Parts: []part{
				{Text: in.Prompt},
				{InlineData: &inlineData{
					MimeType: in.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(in.Image),
				}},
			},
		}},
		GenerationConfig: restGenerationConfig{
			Temperature:     in.Params.Temperature,
			TopK:            in.Params.TopK,
			TopP:            in.Params.TopP,
			MaxOutputTokens: in.Params.MaxOutputTokens,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", apperr.Internal("gemini-rest: encode request", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		e.BaseURL, url.PathEscape(e.Model), url.QueryEscape(e.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", apperr.Internal("gemini-rest: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		// url.Error carries the key in the URL; keep only the cause.
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return "", fmt.Errorf("gemini-rest: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("gemini-rest: read body: %w", err)
	}

	var parsed geminiResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "unknown error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		upErr := apperr.Upstream(resp.StatusCode, msg, nil)
		var details any
		if json.Unmarshal(raw, &details) == nil {
			upErr.With("details", details)
		} else if len(raw) > 0 {
			upErr.With("details", string(raw))
		}
		return "", upErr
	}
	if decodeErr != nil {
		return "", apperr.InvalidUpstreamResponse("gemini response is not JSON: "+decodeErr.Error(), string(raw))
	}

	txt := parsed.firstText()
	if txt == "" {
		var rawData any
		_ = json.Unmarshal(raw, &rawData)
		return "", apperr.InvalidUpstreamResponse("no candidate with text in gemini response", rawData)
	}
	return txt, nil
}

func (r *geminiResponse) firstText() string {
	for _, c := range r.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			b.WriteString(p.Text)
		}
		if s := b.String(); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
