package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ergo-proxy/api/internal/analysis"
)

const defaultTimeout = 60 * time.Second

func isImageDocument(d *tgbotapi.Document) bool {
	return d != nil && strings.HasPrefix(strings.ToLower(d.MimeType), "image/")
}

func (r *Router) acceptPhoto(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	lang := r.lang(msg)
	t := textsFor(lang)

	fileID, mime := "", ""
	if len(msg.Photo) > 0 {
		// largest size is last
		fileID = msg.Photo[len(msg.Photo)-1].FileID
	} else {
		fileID, mime = msg.Document.FileID, msg.Document.MimeType
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entry := log.WithFields(log.Fields{"chat_id": cid, "language": lang})

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		entry.WithError(err).Warn("telegram: get file")
		r.send(cid, t.DownloadErr)
		return
	}
	img, err := download(ctx, url, r.MaxDownload)
	if err != nil {
		entry.WithError(err).Warn("telegram: download")
		r.send(cid, t.DownloadErr)
		return
	}

	r.send(cid, t.Accepted)

	resp, err := r.Analyzer.Analyze(ctx, analysis.Request{Image: img, MIMEType: mime, Language: lang})
	if err != nil {
		entry.WithError(err).Error("telegram: analysis failed")
		r.send(cid, FormatError(lang, err))
		return
	}
	entry.WithField("score", resp.Result.ErgonomicScore).Info("telegram: analysis sent")
	r.send(cid, FormatResult(resp.Language, resp.Result, resp.Model))
}

func download(ctx context.Context, url string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	var body io.Reader = resp.Body
	if limit > 0 {
		body = io.LimitReader(resp.Body, limit+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("file exceeds %d bytes", limit)
	}
	return b, nil
}

func httpClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
