package imageprep

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // webp decoder

	"ergo-proxy/api/internal/util"
)

var ErrNotImage = errors.New("payload is not an image")

// Resizer shrinks images whose long side exceeds MaxSide, re-encoding them as
// JPEG. Images it cannot decode (e.g. HEIC) are passed through untouched.
type Resizer struct {
	MaxSide int // 0 disables resizing
	Quality int
}

func NewResizer(maxSide int) *Resizer {
	return &Resizer{MaxSide: maxSide, Quality: 90}
}

// Prepare implements analysis.ImagePreparer.
func (r *Resizer) Prepare(data []byte, mime string) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", util.ErrEmptyPayload
	}
	if !util.SniffedImage(data) {
		return nil, "", ErrNotImage
	}
	mime = util.PickMIME(mime, "", data)
	if r == nil || r.MaxSide <= 0 {
		return data, mime, nil
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data, mime, nil
	}
	if cfg.Width <= r.MaxSide && cfg.Height <= r.MaxSide {
		return data, mime, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, mime, nil
	}
	img = imaging.Fit(img, r.MaxSide, r.MaxSide, imaging.Lanczos)

	quality := r.Quality
	if quality <= 0 {
		quality = 90
	}
	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), "image/jpeg", nil
}
