package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"es":    Spanish,
		"en":    English,
		" EN ":  English,
		"en-US": English,
		"es_MX": Spanish,
		"":      Spanish,
		"fr":    Spanish,
		"-en":   Spanish,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLanguage(in), "input %q", in)
	}
}

func TestCodec_RequiredKeys(t *testing.T) {
	assert.Equal(t,
		[]string{"postura_general", "riesgos", "recomendaciones", "puntuacion_ergonomica"},
		CodecFor(Spanish).RequiredKeys())
	assert.Equal(t,
		[]string{"posture_general", "risks", "recommendations", "ergonomic_score"},
		CodecFor(English).RequiredKeys())
	assert.Equal(t, CodecFor(Spanish), CodecFor("de"))
}

func TestCodec_MissingKeysNullCountsAsPresent(t *testing.T) {
	doc := map[string]any{"posture_general": nil, "risks": []any{}}
	assert.Equal(t, []string{"recommendations", "ergonomic_score"}, CodecFor(English).MissingKeys(doc))
}

func TestCodec_LevelWord(t *testing.T) {
	es := CodecFor(Spanish)
	assert.Equal(t, "alto", es.LevelWord(LevelHigh))
	assert.Equal(t, "medio", es.LevelWord(LevelMedium))
	assert.Equal(t, "bajo", es.LevelWord(LevelLow))
	assert.Equal(t, "low", CodecFor(English).LevelWord(LevelLow))
}

func decodeDoc(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestCodec_DecodeValid(t *testing.T) {
	res, violations := CodecFor(English).Decode(decodeDoc(t, englishReply))
	require.Empty(t, violations)
	assert.Equal(t, Result{
		PostureGeneral:  "Neck bent forward",
		Risks:           []Risk{{Zone: "Neck", Level: LevelHigh, Description: "40 degree flexion"}},
		Recommendations: []string{"Raise the monitor"},
		ErgonomicScore:  62,
	}, res)
}

func TestCodec_DecodeViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"score fraction", `{"posture_general":"p","risks":[],"recommendations":[],"ergonomic_score":55.5}`, 1},
		{"score negative", `{"posture_general":"p","risks":[],"recommendations":[],"ergonomic_score":-1}`, 1},
		{"score string", `{"posture_general":"p","risks":[],"recommendations":[],"ergonomic_score":"80"}`, 1},
		{"spanish level in english reply", `{"posture_general":"p","risks":[{"zone":"Neck","level":"alto","description":"d"}],"recommendations":[],"ergonomic_score":5}`, 1},
		{"risk not object", `{"posture_general":"p","risks":["neck"],"recommendations":[],"ergonomic_score":5}`, 1},
		{"empty zone and missing description", `{"posture_general":"p","risks":[{"zone":" ","level":"low"}],"recommendations":[],"ergonomic_score":5}`, 2},
		{"wrong container types", `{"posture_general":3,"risks":{},"recommendations":"a","ergonomic_score":null}`, 4},
		{"non-string recommendation", `{"posture_general":"p","risks":[],"recommendations":["a",2],"ergonomic_score":0}`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, violations := CodecFor(English).Decode(decodeDoc(t, tt.doc))
			assert.Len(t, violations, tt.want, "%v", violations)
		})
	}
}

func TestCodec_DecodeBoundaryScores(t *testing.T) {
	for _, score := range []string{"0", "100", "100.0"} {
		doc := decodeDoc(t, `{"posture_general":"p","risks":[],"recommendations":[],"ergonomic_score":`+score+`}`)
		_, violations := CodecFor(English).Decode(doc)
		assert.Empty(t, violations, score)
	}
}
