package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/analysis/gemini"
	"ergo-proxy/api/internal/config"
	"ergo-proxy/api/internal/httpserver"
	"ergo-proxy/api/internal/imageprep"
	"ergo-proxy/api/internal/logging"
	"ergo-proxy/api/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsDevelopment())

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.WithError(err).Fatal("telegram")
	}
	bot.Debug = false

	gen := gemini.FromConfig(cfg)
	r := &telegram.Router{
		Bot: bot,
		Analyzer: analysis.NewService(gen, analysis.Options{
			APIKey:   cfg.GeminiAPIKey,
			Lenient:  cfg.LenientValidation,
			Preparer: imageprep.NewResizer(cfg.MaxImageSide),
		}),
		Timeout:     cfg.RequestTimeout,
		MaxDownload: cfg.MaxRequestBodySize,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := httpserver.HealthMux("ok")
	addr := cfg.ServerAddress()

	log.WithFields(log.Fields{
		"bot":   bot.Self.UserName,
		"model": gen.GetModel(),
	}).Info("bot started")

	if url := strings.TrimSpace(cfg.WebhookURL); url != "" {
		startWebhookMode(ctx, addr, mux, bot, r, url)
	} else {
		startPollingMode(ctx, addr, mux, bot, r)
	}
}

func startWebhookMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.WithError(err).Fatal("webhook")
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.WithError(err).Fatal("set webhook")
	}

	updates := make(chan tgbotapi.Update, bot.Buffer)
	mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			log.WithError(err).Warn("webhook: bad update")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updates <- *upd
	})

	go func() {
		for upd := range updates {
			r.HandleUpdate(ctx, upd)
		}
	}()

	log.WithField("path", path).Info("webhook registered")
	if err := httpserver.Serve(ctx, addr, mux); err != nil {
		log.WithError(err).Fatal("webhook server")
	}
	close(updates)
}

func startPollingMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router) {
	go func() {
		if err := httpserver.Serve(ctx, addr, mux); err != nil {
			log.WithError(err).Fatal("health server")
		}
	}()
	telegram.RunPolling(ctx, bot, func(upd tgbotapi.Update) {
		go r.HandleUpdate(ctx, upd)
	})
}

func shortHash(s string) string {
	// FNV-1a, stable per token
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
