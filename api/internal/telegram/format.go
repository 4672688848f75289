package telegram

import (
	"fmt"
	"strings"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
	"ergo-proxy/api/internal/i18n"
	"ergo-proxy/api/internal/util"
)

const maxMessageRunes = 3900

// FormatResult renders an analysis the way the web results panel does.
func FormatResult(lang analysis.Language, res analysis.Result, model string) string {
	s := i18n.Lookup(string(lang))

	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s: %d/100 %s\n", s.Results.Score, res.ErgonomicScore, scoreBadge(res.ErgonomicScore))
	fmt.Fprintf(&b, "%s %s\n", s.Results.AnalyzedBy, model)

	if p := strings.TrimSpace(res.PostureGeneral); p != "" {
		fmt.Fprintf(&b, "\n🧍 %s\n%s\n", s.Results.PostureObserved, p)
	}

	if len(res.Risks) > 0 {
		fmt.Fprintf(&b, "\n⚠️ %s\n", s.Results.RisksIdentified)
		for _, r := range res.Risks {
			fmt.Fprintf(&b, "%s %s [%s]: %s\n", levelIcon(r.Level), r.Zone, s.RiskLabel(string(r.Level)), r.Description)
		}
	}

	if len(res.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n✅ %s\n", s.Results.Recommendations)
		for i, rec := range res.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	return util.Truncate(strings.TrimRight(b.String(), "\n"), maxMessageRunes)
}

// FormatError picks the localized text for an analysis failure.
func FormatError(lang analysis.Language, err error) string {
	s := i18n.Lookup(string(lang))
	switch apperr.KindOf(err) {
	case apperr.KindConfiguration:
		return s.Errors.APIKeyMissing
	case apperr.KindInvalidInput:
		return "❌ " + s.Errors.Title + ": " + s.Errors.InvalidFormat
	default:
		return "❌ " + s.Errors.Title + ": " + s.Errors.General
	}
}

func scoreBadge(score int) string {
	switch {
	case score >= 80:
		return "🟢"
	case score >= 50:
		return "🟡"
	default:
		return "🔴"
	}
}

func levelIcon(l analysis.Level) string {
	switch l {
	case analysis.LevelHigh:
		return "🔴"
	case analysis.LevelMedium:
		return "🟠"
	default:
		return "🟢"
	}
}
