package telegram

import (
	"sync"

	"ergo-proxy/api/internal/analysis"
)

var chatLang sync.Map // chatID -> analysis.Language

func setLang(chatID int64, lang analysis.Language) { chatLang.Store(chatID, lang) }

// getLang falls back to the Telegram client language, then to Spanish.
func getLang(chatID int64, clientLang string) analysis.Language {
	if v, ok := chatLang.Load(chatID); ok {
		if l, _ := v.(analysis.Language); l != "" {
			return l
		}
	}
	return analysis.ParseLanguage(clientLang)
}
