package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Codec maps the canonical Result onto one language's JSON field names and
// risk-level words.
type Codec struct {
	Language Language

	Posture         string
	Risks           string
	Zone            string
	Level           string
	Description     string
	Recommendations string
	Score           string

	levels map[string]Level
}

var codecs = map[Language]Codec{
	Spanish: {
		Language:        Spanish,
		Posture:         "postura_general",
		Risks:           "riesgos",
		Zone:            "zona",
		Level:           "nivel",
		Description:     "descripcion",
		Recommendations: "recomendaciones",
		Score:           "puntuacion_ergonomica",
		levels:          map[string]Level{"alto": LevelHigh, "medio": LevelMedium, "bajo": LevelLow},
	},
	English: {
		Language:        English,
		Posture:         "posture_general",
		Risks:           "risks",
		Zone:            "zone",
		Level:           "level",
		Description:     "description",
		Recommendations: "recommendations",
		Score:           "ergonomic_score",
		levels:          map[string]Level{"high": LevelHigh, "medium": LevelMedium, "low": LevelLow},
	},
}

// CodecFor returns the codec for lang, Spanish for unsupported tags.
func CodecFor(lang Language) Codec {
	if c, ok := codecs[lang]; ok {
		return c
	}
	return codecs[DefaultLanguage]
}

// RequiredKeys lists the top-level keys a reply must carry, in display order.
func (c Codec) RequiredKeys() []string {
	return []string{c.Posture, c.Risks, c.Recommendations, c.Score}
}

// MissingKeys returns the required keys absent from doc. A key present with
// a null value counts as present.
func (c Codec) MissingKeys(doc map[string]any) []string {
	var missing []string
	for _, k := range c.RequiredKeys() {
		if _, ok := doc[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// LevelWord returns the language's word for a canonical level.
func (c Codec) LevelWord(l Level) string {
	for w, lv := range c.levels {
		if lv == l {
			return w
		}
	}
	return string(l)
}

// Decode maps doc onto a Result. Every value that does not fit the schema
// (types, score range, level enum) is reported as a violation; decoding
// continues past violations so all of them are listed.
func (c Codec) Decode(doc map[string]any) (Result, []string) {
	var (
		res        Result
		violations []string
	)
	bad := func(format string, args ...any) {
		violations = append(violations, fmt.Sprintf(format, args...))
	}

	if s, ok := doc[c.Posture].(string); ok {
		res.PostureGeneral = s
	} else {
		bad("%s: must be a string", c.Posture)
	}

	if items, ok := doc[c.Risks].([]any); ok {
		res.Risks = make([]Risk, 0, len(items))
		for i, it := range items {
			obj, ok := it.(map[string]any)
			if !ok {
				bad("%s[%d]: must be an object", c.Risks, i)
				continue
			}
			var r Risk
			if s, ok := obj[c.Zone].(string); ok && strings.TrimSpace(s) != "" {
				r.Zone = s
			} else {
				bad("%s[%d].%s: must be a non-empty string", c.Risks, i, c.Zone)
			}
			if s, ok := obj[c.Level].(string); ok {
				if lv, ok := c.levels[strings.ToLower(strings.TrimSpace(s))]; ok {
					r.Level = lv
				} else {
					bad("%s[%d].%s: %q is not one of %s", c.Risks, i, c.Level, s, c.levelList())
				}
			} else {
				bad("%s[%d].%s: must be a string", c.Risks, i, c.Level)
			}
			if s, ok := obj[c.Description].(string); ok {
				r.Description = s
			} else {
				bad("%s[%d].%s: must be a string", c.Risks, i, c.Description)
			}
			res.Risks = append(res.Risks, r)
		}
	} else {
		bad("%s: must be an array", c.Risks)
	}

	if items, ok := doc[c.Recommendations].([]any); ok {
		res.Recommendations = make([]string, 0, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				bad("%s[%d]: must be a string", c.Recommendations, i)
				continue
			}
			res.Recommendations = append(res.Recommendations, s)
		}
	} else {
		bad("%s: must be an array", c.Recommendations)
	}

	switch v := doc[c.Score].(type) {
	case float64:
		switch {
		case v != math.Trunc(v):
			bad("%s: %v is not an integer", c.Score, v)
		case v < 0 || v > 100:
			bad("%s: %v is outside 0-100", c.Score, v)
		default:
			res.ErgonomicScore = int(v)
		}
	default:
		bad("%s: must be an integer", c.Score)
	}

	return res, violations
}

func (c Codec) levelList() string {
	words := []string{c.LevelWord(LevelHigh), c.LevelWord(LevelMedium), c.LevelWord(LevelLow)}
	return strings.Join(words, "|")
}
