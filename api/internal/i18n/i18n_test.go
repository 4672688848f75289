package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "Ergonomic Score", Lookup("en").Results.Score)
	assert.Equal(t, "Puntuación Ergonómica", Lookup("es").Results.Score)
	assert.Equal(t, Lookup("es"), Lookup("pt"))
	assert.True(t, Supported("en"))
	assert.False(t, Supported("pt"))
}

func TestRiskLabel(t *testing.T) {
	es := Lookup("es")
	assert.Equal(t, "ALTO", es.RiskLabel("high"))
	assert.Equal(t, "MEDIO", es.RiskLabel("medium"))
	assert.Equal(t, "BAJO", es.RiskLabel("low"))
	assert.Equal(t, "HIGH", Lookup("en").RiskLabel("high"))
	assert.Equal(t, "severe", es.RiskLabel("severe"))
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := map[string]string{
		"":                        "es",
		"en-US,en;q=0.9":          "en",
		"es-MX,es;q=0.9,en;q=0.8": "es",
		"de-DE":                   "es",
		"fr-FR,en;q=0.5":          "en",
		"garbage;;;":              "es",
	}
	for header, want := range tests {
		assert.Equal(t, want, FromAcceptLanguage(header), "header %q", header)
	}
}
