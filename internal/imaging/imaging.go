// package imaging downloads album covers and produces JPEG thumbnails
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/time/rate"

	"github.com/desertthunder/smrx/internal/shared"
)

// JPEGQuality is used for every encoded thumbnail.
const JPEGQuality = 90

// Fit scales width x height down to fit within maxWidth x maxHeight, keeping the aspect ratio.
// Images already inside the bounds are unchanged; a non-positive bound is ignored.
func Fit(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return width, height
	}
	if maxWidth <= 0 {
		maxWidth = width
	}
	if maxHeight <= 0 {
		maxHeight = height
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		width = max(1, int(float64(maxHeight)*ratio))
		height = maxHeight
	} else {
		height = max(1, int(float64(maxWidth)/ratio))
		width = maxWidth
	}
	return width, height
}

// Resize decodes a JPEG or PNG cover and returns it as a JPEG no larger than the bounds.
//
// Catmull-Rom is used for scaling. Covers already within bounds are still re-encoded
// so every thumbnail is a JPEG.
func Resize(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", shared.ErrInvalidInput, err)
	}

	bounds := img.Bounds()
	width, height := Fit(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	// JPEG has no alpha channel, so transparent covers are flattened onto white.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Downloader fetches remote covers through a shared rate limiter.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewDownloader creates a [Downloader]. A nil client gets a 30 second timeout;
// rps <= 0 disables throttling.
func NewDownloader(client *http.Client, rps float64) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Downloader{client: client, limiter: rate.NewLimiter(limit, 1)}
}

// Download retrieves the image at url.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidInput)
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRequest, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download image: %v", shared.ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to download image: status %d", shared.ErrRequest, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}
