package handle

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/apperr"
	"ergo-proxy/api/internal/util"
)

type AnalyzeRequest struct {
	ImageData string `json:"imageData"`
	Language  string `json:"language"`
	MIMEType  string `json:"mimeType"`
}

type AnalyzeResponse struct {
	Success   bool           `json:"success"`
	Analysis  map[string]any `json:"analysis"`
	Model     string         `json:"model"`
	Language  string         `json:"language"`
	Timestamp string         `json:"timestamp"`
}

func (h *Handle) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Payload too large",
				"message": "request body exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
			})
			return
		}
		writeError(c, apperr.InvalidInput("request body must be JSON", err))
		return
	}

	var img []byte
	mime := req.MIMEType
	if strings.TrimSpace(req.ImageData) != "" {
		b, hint, err := util.DecodeBase64MaybeDataURL(req.ImageData)
		// A missing credential is reported before a bad payload.
		if err != nil && h.svc.APIKeyConfigured() {
			writeError(c, apperr.InvalidInput("imageData is required in base64 format", err))
			return
		}
		img = b
		if strings.TrimSpace(mime) == "" {
			mime = hint
		}
	}

	lang := req.Language
	if strings.TrimSpace(lang) == "" {
		lang = string(analysis.DefaultLanguage)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.deadline(c.Request))
	defer cancel()

	entry := log.WithFields(log.Fields{
		"language": lang,
		"bytes":    len(img),
		"ip":       c.ClientIP(),
	})
	entry.Info("analysis requested")

	resp, err := h.svc.Analyze(ctx, analysis.Request{
		Image:    img,
		MIMEType: mime,
		Language: analysis.Language(lang),
	})
	if err != nil {
		entry.WithError(err).WithField("kind", apperr.KindOf(err)).Error("analysis failed")
		writeError(c, err)
		return
	}
	entry.WithField("score", resp.Result.ErgonomicScore).Info("analysis completed")

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success:   true,
		Analysis:  resp.Analysis,
		Model:     resp.Model,
		Language:  string(resp.Language),
		Timestamp: h.timestamp(resp.Timestamp),
	})
}

// deadline is REQUEST_TIMEOUT unless X-Request-Timeout (seconds) overrides it.
func (h *Handle) deadline(r *http.Request) time.Duration {
	d := h.cfg.RequestTimeout
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			d = time.Duration(v) * time.Second
		}
	}
	return d
}
