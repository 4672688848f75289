package gemini

import (
	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/config"
)

// FromConfig picks the engine for GEMINI_TRANSPORT.
func FromConfig(cfg *config.Config) analysis.Generator {
	if cfg.GeminiTransport == config.TransportREST {
		return NewREST(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL, nil)
	}
	return New(cfg.GeminiAPIKey, cfg.GeminiModel)
}
