package analysis

import "context"

// GenerationParams are the fixed sampling settings sent upstream.
type GenerationParams struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultGenerationParams keep the model close to deterministic so that it
// sticks to the JSON shape in the prompt.
var DefaultGenerationParams = GenerationParams{
	Temperature:     0.4,
	TopK:            32,
	TopP:            1,
	MaxOutputTokens: 2048,
}

type GenerateRequest struct {
	Prompt   string
	Image    []byte
	MIMEType string
	Params   GenerationParams
}

// Generator is a vision-capable text generation backend. Implementations
// return the reply text of the first candidate and classify failures as
// apperr.Upstream / apperr.InvalidUpstreamResponse.
type Generator interface {
	Name() string
	GetModel() string
	Generate(ctx context.Context, in GenerateRequest) (string, error)
}

// ImagePreparer may re-encode an image before it is sent upstream.
type ImagePreparer interface {
	Prepare(data []byte, mime string) ([]byte, string, error)
}
