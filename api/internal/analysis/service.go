package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"ergo-proxy/api/internal/apperr"
	"ergo-proxy/api/internal/prompt"
	"ergo-proxy/api/internal/util"
)

type Options struct {
	// APIKey is only checked for presence; the Generator owns the credential.
	APIKey string
	Params GenerationParams
	// Lenient keeps the shallow key-presence check and skips value checks.
	Lenient  bool
	Preparer ImagePreparer
	Now      func() time.Time
}

// Service turns an image into a validated ergonomic assessment. It keeps no
// per-request state and is safe for concurrent use.
type Service struct {
	gen  Generator
	opts Options
}

func NewService(gen Generator, opts Options) *Service {
	if opts.Params == (GenerationParams{}) {
		opts.Params = DefaultGenerationParams
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{gen: gen, opts: opts}
}

func (s *Service) Model() string {
	if s.gen == nil {
		return ""
	}
	return s.gen.GetModel()
}

func (s *Service) APIKeyConfigured() bool {
	return strings.TrimSpace(s.opts.APIKey) != ""
}

// Analyze runs one request through prompt selection, the upstream call,
// fence stripping, JSON parsing and schema validation.
func (s *Service) Analyze(ctx context.Context, req Request) (Response, error) {
	lang := ParseLanguage(string(req.Language))

	if !s.APIKeyConfigured() || s.gen == nil {
		return Response{}, apperr.Configuration("GEMINI_API_KEY is not configured").
			With("instructions", "Visit https://aistudio.google.com/app/apikey to get your API key")
	}
	if len(req.Image) == 0 {
		return Response{}, apperr.InvalidInput("imageData is required in base64 format", nil)
	}

	img, mime := req.Image, strings.TrimSpace(req.MIMEType)
	if s.opts.Preparer != nil {
		var err error
		img, mime, err = s.opts.Preparer.Prepare(img, mime)
		if err != nil {
			return Response{}, apperr.InvalidInput("image payload could not be prepared", err)
		}
	}
	if mime == "" {
		mime = util.PickMIME("", "", img)
	}

	entry := log.WithFields(log.Fields{
		"engine":   s.gen.Name(),
		"model":    s.gen.GetModel(),
		"language": lang,
		"mime":     mime,
		"bytes":    len(img),
	})
	entry.Debug("sending image to model")

	started := s.opts.Now()
	text, err := s.gen.Generate(ctx, GenerateRequest{
		Prompt:   prompt.For(string(lang)),
		Image:    img,
		MIMEType: mime,
		Params:   s.opts.Params,
	})
	if err != nil {
		return Response{}, classifyUpstream(err)
	}
	if strings.TrimSpace(text) == "" {
		return Response{}, apperr.InvalidUpstreamResponse("model reply has no text", text)
	}
	entry.WithField("elapsed_ms", s.opts.Now().Sub(started).Milliseconds()).
		WithField("preview", util.Truncate(text, 100)).
		Debug("model reply received")

	cleaned := util.StripCodeFences(text)

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return Response{}, apperr.MalformedAnalysis(cleaned, err)
	}
	if doc == nil {
		return Response{}, apperr.MalformedAnalysis(cleaned, errors.New("top-level JSON value is not an object"))
	}

	codec := CodecFor(lang)
	if missing := codec.MissingKeys(doc); len(missing) > 0 {
		return Response{}, apperr.IncompleteAnalysis(doc, codec.RequiredKeys(), missing)
	}

	result, violations := codec.Decode(doc)
	if len(violations) > 0 {
		if !s.opts.Lenient {
			return Response{}, apperr.InvalidAnalysis(doc, violations)
		}
		entry.WithField("violations", violations).Warn("accepting analysis with invalid values")
	}

	return Response{
		Analysis:  doc,
		Result:    result,
		Language:  lang,
		Model:     s.gen.GetModel(),
		Timestamp: s.opts.Now().UTC(),
	}, nil
}

// classifyUpstream keeps already classified errors and turns transport
// failures into upstream errors.
func classifyUpstream(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Upstream(http.StatusGatewayTimeout, "upstream request timed out", err)
	case errors.Is(err, context.Canceled):
		return apperr.Upstream(0, "upstream request cancelled", err)
	default:
		return apperr.Upstream(0, err.Error(), err)
	}
}
