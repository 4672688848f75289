package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ergo-proxy/api/internal/analysis"
)

// Bot is the subset of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (analysis.Response, error)
	Model() string
	APIKeyConfigured() bool
}

type Router struct {
	Bot      Bot
	Analyzer Analyzer
	// Timeout bounds one download + analysis.
	Timeout time.Duration
	// MaxDownload caps the photo size in bytes; 0 means no cap.
	MaxDownload int64
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	if msg.IsCommand() {
		r.HandleCommand(msg)
		return
	}
	if len(msg.Photo) > 0 || isImageDocument(msg.Document) {
		r.acceptPhoto(ctx, msg)
		return
	}
	if msg.Document != nil {
		r.send(msg.Chat.ID, textsFor(r.lang(msg)).NotAnImage)
		return
	}
	if msg.Text != "" {
		r.send(msg.Chat.ID, textsFor(r.lang(msg)).Help)
	}
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	lang := r.lang(msg)
	t := textsFor(lang)

	switch msg.Command() {
	case "start", "help":
		r.send(cid, t.Help)
	case "lang":
		arg := strings.ToLower(strings.TrimSpace(msg.CommandArguments()))
		switch arg {
		case string(analysis.Spanish), string(analysis.English):
			setLang(cid, analysis.Language(arg))
			r.send(cid, textsFor(analysis.Language(arg)).LangSet)
		default:
			r.send(cid, fmt.Sprintf(t.LangUsage, lang))
		}
	case "health":
		if !r.Analyzer.APIKeyConfigured() {
			r.send(cid, t.KeyMissing)
			return
		}
		r.send(cid, fmt.Sprintf(t.HealthOK, r.Analyzer.Model()))
	default:
		r.send(cid, t.Unknown)
	}
}

func (r *Router) lang(msg *tgbotapi.Message) analysis.Language {
	var clientLang string
	if msg.From != nil {
		clientLang = msg.From.LanguageCode
	}
	return getLang(msg.Chat.ID, clientLang)
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("telegram: send failed")
	}
}
