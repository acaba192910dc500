package hyperspace

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next composited frame, intro
// surface included. The PNG is written to ScreenshotDir with a timestamped
// name. F12 queues one labeled "manual".
func (h *Host) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	defer func() { h.screenshotQueue = h.screenshotQueue[:0] }()

	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		logger.Printf("screenshot: mkdir %s: %v", h.ScreenshotDir, err)
		return
	}

	w, hgt := screen.Bounds().Dx(), screen.Bounds().Dy()
	pixels := make([]byte, 4*w*hgt)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, hgt)

	prefix := time.Now().Format("20060102_150405") + "_"
	for _, label := range h.screenshotQueue {
		path := filepath.Join(h.ScreenshotDir, prefix+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			logger.Printf("screenshot: %v", err)
			continue
		}
		logger.Printf("screenshot: wrote %s", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels read back from the GPU
// into a straight-alpha image. It is the inverse of premultiply.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix)) / 4
	for p := 0; p < n; p++ {
		px := pixels[p*4 : p*4+4]
		out := img.Pix[p*4 : p*4+4]
		a := px[3]
		out[3] = a
		for c := 0; c < 3; c++ {
			out[c] = straight(px[c], a)
		}
	}
	return img
}

// straight undoes alpha premultiplication for one channel.
func straight(v, a uint8) uint8 {
	if a == 0 || a == 255 {
		return v
	}
	return uint8(min(int(v)*255/int(a), 255))
}

// writePNG saves img at path.
func writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps letters, digits, '-' and '.', turning anything else
// into '_'. A blank label becomes "unlabeled".
func sanitizeLabel(label string) string {
	if label = strings.TrimSpace(label); label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || ('0' <= r && r <= '9') ||
			('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return r
		}
		return '_'
	}, label)
}
