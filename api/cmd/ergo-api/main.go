package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/analysis/gemini"
	"ergo-proxy/api/internal/config"
	"ergo-proxy/api/internal/handle"
	"ergo-proxy/api/internal/imageprep"
	"ergo-proxy/api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	logging.Setup(cfg.LogLevel, cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	gen := gemini.FromConfig(cfg)
	svc := analysis.NewService(gen, analysis.Options{
		APIKey:   cfg.GeminiAPIKey,
		Lenient:  cfg.LenientValidation,
		Preparer: imageprep.NewResizer(cfg.MaxImageSide),
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress(),
		Handler:           handle.New(svc, cfg).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		// the upstream call is bounded by REQUEST_TIMEOUT; leave room to write the reply
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}

	go func() {
		log.WithFields(log.Fields{
			"address":   cfg.ServerAddress(),
			"engine":    gen.Name(),
			"model":     gen.GetModel(),
			"timeout":   cfg.RequestTimeout.String(),
			"languages": []string{"es", "en"},
		}).Info("starting HTTP server")
		if !cfg.APIKeyConfigured() {
			log.Warn("GEMINI_API_KEY is not set; get one at https://aistudio.google.com/app/apikey")
		}

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("forced shutdown")
	}
	log.Info("server exited")
}
