package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
)

type fakeBot struct {
	fileURL string
	sent    []string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) GetFileDirectURL(string) (string, error) {
	if b.fileURL == "" {
		return "", errors.New("no file")
	}
	return b.fileURL, nil
}

type fakeAnalyzer struct {
	resp analysis.Response
	err  error
	got  analysis.Request
}

func (a *fakeAnalyzer) Analyze(_ context.Context, req analysis.Request) (analysis.Response, error) {
	a.got = req
	return a.resp, a.err
}
func (a *fakeAnalyzer) Model() string          { return "gemini-2.0-flash-exp" }
func (a *fakeAnalyzer) APIKeyConfigured() bool { return true }

var sampleResult = analysis.Result{
	PostureGeneral: "Neck bent forward",
	Risks: []analysis.Risk{
		{Zone: "Neck", Level: analysis.LevelHigh, Description: "40 degree flexion"},
		{Zone: "Wrists", Level: analysis.LevelLow, Description: "neutral"},
	},
	Recommendations: []string{"Raise the monitor", "Take breaks"},
	ErgonomicScore:  62,
}

func command(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
	}}
}

func photo(chatID int64, lang string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: chatID},
		From:  &tgbotapi.User{LanguageCode: lang},
		Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(analysis.English, sampleResult, "gemini-2.0-flash-exp")

	assert.Contains(t, out, "Ergonomic Score: 62/100")
	assert.Contains(t, out, "Observed Posture\nNeck bent forward")
	assert.Contains(t, out, "Neck [HIGH]: 40 degree flexion")
	assert.Contains(t, out, "Wrists [LOW]: neutral")
	assert.Contains(t, out, "1. Raise the monitor")
	assert.Contains(t, out, "2. Take breaks")

	es := FormatResult(analysis.Spanish, sampleResult, "m")
	assert.Contains(t, es, "Puntuación Ergonómica: 62/100")
	assert.Contains(t, es, "[ALTO]")
}

func TestFormatResult_Truncates(t *testing.T) {
	res := analysis.Result{PostureGeneral: strings.Repeat("x", 5000)}
	out := FormatResult(analysis.English, res, "m")
	assert.LessOrEqual(t, len([]rune(out)), maxMessageRunes+1)
}

func TestFormatError(t *testing.T) {
	assert.Contains(t, FormatError(analysis.English, apperr.Configuration("x")), "API Key not configured")
	assert.Contains(t, FormatError(analysis.Spanish, apperr.InvalidInput("x", nil)), "Formato no soportado")
	assert.Contains(t, FormatError(analysis.English, errors.New("boom")), "An error occurred during analysis")
}

func TestHandleCommand_Lang(t *testing.T) {
	bot := &fakeBot{}
	r := &Router{Bot: bot, Analyzer: &fakeAnalyzer{}}
	const chat = 1001

	r.HandleUpdate(context.Background(), command(chat, "/lang en"))
	assert.Equal(t, analysis.English, getLang(chat, ""))
	assert.Equal(t, "✅ Language: English", bot.sent[0])

	r.HandleUpdate(context.Background(), command(chat, "/lang fr"))
	assert.Contains(t, bot.sent[1], "current: en")

	r.HandleUpdate(context.Background(), command(chat, "/lang es"))
	assert.Equal(t, analysis.Spanish, getLang(chat, "en"))
}

func TestHandleCommand_HealthAndUnknown(t *testing.T) {
	bot := &fakeBot{}
	r := &Router{Bot: bot, Analyzer: &fakeAnalyzer{}}

	r.HandleUpdate(context.Background(), command(1002, "/health"))
	r.HandleUpdate(context.Background(), command(1002, "/nope"))
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0], "gemini-2.0-flash-exp")
	assert.Equal(t, texts[analysis.Spanish].Unknown, bot.sent[1])
}

func TestAcceptPhoto(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF})
	}))
	defer srv.Close()

	bot := &fakeBot{fileURL: srv.URL + "/photo.jpg"}
	an := &fakeAnalyzer{resp: analysis.Response{Result: sampleResult, Language: analysis.English, Model: "m"}}
	r := &Router{Bot: bot, Analyzer: an, Timeout: time.Second}

	r.HandleUpdate(context.Background(), photo(1003, "en-US"))

	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, []byte{0xFF, 0xD8, 0xFF}, an.got.Image)
	assert.Equal(t, analysis.English, an.got.Language)
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0], "analyzing")
	assert.Contains(t, bot.sent[1], "62/100")
}

func TestAcceptPhoto_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	bot := &fakeBot{fileURL: srv.URL}
	r := &Router{Bot: bot, Analyzer: &fakeAnalyzer{err: apperr.Upstream(500, "boom", nil)}, MaxDownload: 16}
	r.HandleUpdate(context.Background(), photo(1004, "es"))
	assert.Equal(t, []string{texts[analysis.Spanish].DownloadErr}, bot.sent)

	bot.sent = nil
	r.MaxDownload = 0
	r.HandleUpdate(context.Background(), photo(1004, "es"))
	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[1], "Ocurrió un error durante el análisis")
}

func TestRetryDelayFromError(t *testing.T) {
	assert.Zero(t, retryDelayFromError(nil))
	assert.Equal(t, 7*time.Second, retryDelayFromError(&tgbotapi.Error{
		Code: 429, Message: "Too Many Requests", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 7},
	}))
	assert.Equal(t, 12*time.Second, retryDelayFromError(errors.New("Too Many Requests: retry after 12")))
	assert.Equal(t, 3*time.Second, retryDelayFromError(errors.New("too many requests")))
	assert.Equal(t, time.Second, retryDelayFromError(errors.New("bad gateway")))
}

type fakePoller struct {
	calls   int
	offsets []int
	cancel  context.CancelFunc
}

func (p *fakePoller) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	p.calls++
	p.offsets = append(p.offsets, cfg.Offset)
	if p.calls == 1 {
		return []tgbotapi.Update{{UpdateID: 5}, {UpdateID: 6}}, nil
	}
	p.cancel()
	return nil, nil
}

func TestRunPolling_AdvancesOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &fakePoller{cancel: cancel}

	var handled []int
	RunPolling(ctx, p, func(u tgbotapi.Update) { handled = append(handled, u.UpdateID) })

	assert.Equal(t, []int{5, 6}, handled)
	assert.Equal(t, []int{0, 7}, p.offsets)
}
