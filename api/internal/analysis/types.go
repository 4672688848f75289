package analysis

import (
	"strings"
	"time"
)

// Language is a supported response/prompt language tag.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"

	DefaultLanguage = Spanish
)

// ParseLanguage normalizes a tag ("EN", "es-MX", " en ") and falls back to
// DefaultLanguage for anything unsupported.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	switch Language(s) {
	case Spanish, English:
		return Language(s)
	default:
		return DefaultLanguage
	}
}

func (l Language) String() string { return string(l) }

// Level is the canonical risk level, independent of the reply language.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

type Risk struct {
	Zone        string `json:"zone"`
	Level       Level  `json:"level"`
	Description string `json:"description"`
}

// Result is the canonical ergonomic assessment. Language-specific field
// names live in Codec.
type Result struct {
	PostureGeneral  string   `json:"posture_general"`
	Risks           []Risk   `json:"risks"`
	Recommendations []string `json:"recommendations"`
	ErgonomicScore  int      `json:"ergonomic_score"`
}

// Request is a single analysis job.
type Request struct {
	Image    []byte
	MIMEType string // optional; sniffed when empty
	Language Language
}

// Response is a validated analysis.
type Response struct {
	// Analysis is the reply document as parsed, keyed in Language.
	Analysis  map[string]any
	Result    Result
	Language  Language
	Model     string
	Timestamp time.Time
}
