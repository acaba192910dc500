package hyperspace

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // overlay formats
	_ "image/png"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

// pointerOutside is the contact point used while nothing touches the
// container, far enough away that no pixel is ever within the influence radius.
const pointerOutside = -9999

// revealMinStrength is the strength below which no warp is computed.
const revealMinStrength = 0.01

// Wave constants of the displacement kernel.
const (
	waveFreqX   = 0.08
	waveSpeedX  = 2
	waveFreqY   = 0.07
	waveSpeedY  = 1.8
	waveAmountX = 0.8
	waveAmountY = 0.1
)

// Reveal is the portrait reveal: a pixel-displacement field that shows a
// warped, alpha-windowed copy of an overlay image around the pointer. The
// base image is drawn by the caller; Reveal only draws the overlay on top.
//
// Reveal is inert until it has both a nonzero container size and a loaded
// overlay. The container rectangle is fed through SetBounds, by the caller
// or by a Host that installed the reveal with AddRevealLayout.
type Reveal struct {
	cfg Config

	bounds   Rect
	next     Rect
	w, h     int
	measured bool
	resize   *Debouncer

	pointerX, pointerY float64
	target             float64
	strength           float64
	time               float64

	overlay image.Image
	scaled  *image.NRGBA
	output  *image.NRGBA
	active  bool
	dirty   bool
	written int

	loads  chan overlayResult
	cancel context.CancelFunc

	surface *ImageSurface
	scratch []byte
}

type overlayResult struct {
	img image.Image
	err error
}

// NewReveal creates an inert reveal. Zero fields of cfg take their
// defaults; an invalid cfg is logged and replaced by DefaultConfig.
func NewReveal(cfg Config) *Reveal {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Printf("reveal: %v; using defaults", err)
		cfg = DefaultConfig()
	}
	return &Reveal{
		cfg:      cfg,
		resize:   NewDebouncer(cfg.RevealResizeDelay),
		pointerX: pointerOutside,
		pointerY: pointerOutside,
	}
}

// SetBounds reports the container rectangle in screen coordinates. The
// first nonzero size is measured on the next Update; later changes are
// debounced so a burst of resizes reallocates the buffers once.
func (r *Reveal) SetBounds(b Rect, now time.Time) {
	if b == r.next && (r.measured || r.resize.Pending()) {
		return
	}
	r.next = b
	if !r.measured {
		r.resize.Trigger(now.Add(-r.cfg.RevealResizeDelay))
		return
	}
	r.resize.Trigger(now)
}

// Bounds returns the container rectangle of the last measurement.
func (r *Reveal) Bounds() Rect {
	return r.bounds
}

// Size returns the measured buffer size, zero before the first measurement.
func (r *Reveal) Size() (int, int) {
	return r.w, r.h
}

// SetOverlay installs an already decoded overlay image.
func (r *Reveal) SetOverlay(img image.Image) {
	r.overlay = img
	r.rescale()
}

// Loaded reports whether an overlay image is available.
func (r *Reveal) Loaded() bool {
	return r.overlay != nil
}

// LoadOverlay runs load on its own goroutine and installs the result on a
// later Update. A failed load is logged and leaves the reveal inert. A
// second call cancels the first.
func (r *Reveal) LoadOverlay(ctx context.Context, load func() (image.Image, error)) {
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	loads := make(chan overlayResult, 1)
	r.loads = loads

	go func() {
		img, err := load()
		select {
		case <-ctx.Done():
		case loads <- overlayResult{img: img, err: err}:
		}
	}()
}

// LoadOverlayFile decodes a PNG or JPEG file asynchronously.
func (r *Reveal) LoadOverlayFile(ctx context.Context, path string) {
	r.LoadOverlay(ctx, func() (image.Image, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open overlay: %w", err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode overlay %s: %w", path, err)
		}
		return img, nil
	})
}

// PointerEnter starts the reveal at container-local (x, y).
func (r *Reveal) PointerEnter(x, y float64) {
	r.target = 1
	r.pointerX, r.pointerY = x, y
}

// PointerMove moves the contact point without changing the target strength.
func (r *Reveal) PointerMove(x, y float64) {
	r.pointerX, r.pointerY = x, y
}

// PointerLeave fades the reveal out and parks the contact point outside.
func (r *Reveal) PointerLeave() {
	r.target = 0
	r.pointerX, r.pointerY = pointerOutside, pointerOutside
}

// TouchStart is PointerEnter for a touch contact.
func (r *Reveal) TouchStart(x, y float64) { r.PointerEnter(x, y) }

// TouchMove is PointerMove for a touch contact.
func (r *Reveal) TouchMove(x, y float64) { r.PointerMove(x, y) }

// TouchEnd is PointerLeave for a touch contact.
func (r *Reveal) TouchEnd() { r.PointerLeave() }

// Pointer returns the current contact point in container-local coordinates.
func (r *Reveal) Pointer() (float64, float64) {
	return r.pointerX, r.pointerY
}

// Strength returns the smoothed reveal strength.
func (r *Reveal) Strength() float64 {
	return r.strength
}

// Target returns the strength the reveal is easing toward.
func (r *Reveal) Target() float64 {
	return r.target
}

// Time returns the wave phase accumulator.
func (r *Reveal) Time() float64 {
	return r.time
}

// Active reports whether the last Update produced visible overlay pixels.
func (r *Reveal) Active() bool {
	return r.active
}

// Output returns the straight-alpha output buffer, nil before the first
// measurement.
func (r *Reveal) Output() *image.NRGBA {
	return r.output
}

// Update advances the reveal by one tick.
func (r *Reveal) Update(now time.Time) {
	r.drainLoads()
	if r.resize.Ready(now) {
		r.measure(r.next)
	}
	if !r.measured {
		return
	}

	r.time += r.cfg.RevealTimeStep
	r.strength = SmoothStrength(r.strength, r.target, r.cfg.RevealSmoothing)

	wasActive := r.active
	if r.scaled != nil && r.strength > revealMinStrength {
		r.written = WarpPixels(r.output, r.scaled, r.pointerX, r.pointerY, r.strength, r.time, r.cfg)
		r.active = true
		r.dirty = true
		return
	}
	r.active = false
	r.written = 0
	if wasActive {
		clear(r.output.Pix)
		r.dirty = true
	}
}

// Draw composites the overlay onto dst at the container position.
func (r *Reveal) Draw(dst *ebiten.Image) {
	if !r.measured {
		return
	}
	if r.surface == nil {
		r.surface = NewImageSurface(r.w, r.h)
		r.dirty = true
	} else if sw, sh := r.surface.Size(); sw != r.w || sh != r.h {
		r.surface.Resize(r.w, r.h)
		r.dirty = true
	}
	if r.dirty {
		if r.active {
			r.scratch = r.surface.WritePixels(r.output.Pix, r.scratch)
		} else {
			r.surface.Clear()
		}
		r.dirty = false
	}
	if !r.active {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(r.bounds.X, r.bounds.Y)
	dst.DrawImage(r.surface.Image(), &op)
}

// Dispose cancels a pending load and releases GPU memory.
func (r *Reveal) Dispose() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.surface != nil {
		r.surface.Dispose()
		r.surface = nil
	}
}

func (r *Reveal) drainLoads() {
	if r.loads == nil {
		return
	}
	select {
	case res := <-r.loads:
		r.loads = nil
		if res.err != nil {
			logger.Printf("reveal: overlay load failed: %v", res.err)
			return
		}
		if res.img == nil {
			logger.Printf("reveal: overlay loader returned no image")
			return
		}
		r.SetOverlay(res.img)
	default:
	}
}

// measure applies a container rectangle. A zero size is skipped and retried
// on the next SetBounds.
func (r *Reveal) measure(b Rect) {
	w := int(math.Round(b.Width))
	h := int(math.Round(b.Height))
	if w <= 0 || h <= 0 {
		return
	}
	r.bounds = b
	if r.measured && w == r.w && h == r.h {
		return
	}
	r.w, r.h = w, h
	r.measured = true
	r.output = image.NewNRGBA(image.Rect(0, 0, w, h))
	r.active = false
	r.dirty = true
	r.rescale()
	logger.Printf("reveal: measured %dx%d", w, h)
}

// rescale stretches the overlay to the measured size.
func (r *Reveal) rescale() {
	if r.overlay == nil || !r.measured {
		r.scaled = nil
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.w, r.h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), r.overlay, r.overlay.Bounds(), xdraw.Src, nil)
	r.scaled = dst
}

// SmoothStrength moves strength a fraction k of the way toward target. For
// strength and target in [0, 1] and k in [0, 1] the result stays in [0, 1]
// and never overshoots.
func SmoothStrength(strength, target, k float64) float64 {
	return strength + (target-strength)*k
}

// InfluenceRadius returns the radius around the pointer affected at strength.
func InfluenceRadius(w, h int, strength float64, cfg Config) float64 {
	return float64(min(w, h)) * cfg.RevealRadiusFraction * strength
}

// Falloff is the raised-cosine window: 1 at the pointer, 0 at radius.
func Falloff(dist, radius float64) float64 {
	if radius <= 0 || dist > radius {
		return 0
	}
	return (1 + math.Cos(math.Pi*dist/radius)) / 2
}

// Displacement returns the sample offset for a pixel at dist from the
// pointer with window weight falloff, wave phase t and maximum horizontal
// displacement maxDisplace. The vertical offset is a tenth of the horizontal
// range.
func Displacement(dist, falloff, t, maxDisplace float64) (dx, dy int) {
	fx, fy := displacement(dist, falloff, t, maxDisplace)
	return roundHalfUp(fx), roundHalfUp(fy)
}

// displacement is Displacement before rounding. |fx| is at most
// 0.8·falloff·maxDisplace and |fy| at most 0.1·falloff·maxDisplace.
func displacement(dist, falloff, t, maxDisplace float64) (fx, fy float64) {
	wave := math.Sin(dist*waveFreqX-t*waveSpeedX) * falloff * waveAmountX
	fx = wave * maxDisplace
	fy = math.Cos(dist*waveFreqY-t*waveSpeedY) * maxDisplace * falloff * waveAmountY
	return fx, fy
}

// WarpPixels renders one frame of the displacement field into dst, sampling
// src. dst and src must have the same size. Pixels outside the influence
// radius are left transparent. It returns the number of pixels written.
func WarpPixels(dst, src *image.NRGBA, px, py, strength, t float64, cfg Config) int {
	clear(dst.Pix)

	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if src == nil || src.Rect.Dx() != w || src.Rect.Dy() != h {
		return 0
	}
	radius := InfluenceRadius(w, h, strength, cfg)
	if radius <= 0 {
		return 0
	}
	maxDisplace := cfg.RevealMaxDisplace * strength

	// Only the bounding box of the influence disk can be touched.
	x0 := max(0, int(math.Floor(px-radius)))
	x1 := min(w-1, int(math.Ceil(px+radius)))
	y0 := max(0, int(math.Floor(py-radius)))
	y1 := min(h-1, int(math.Ceil(py+radius)))

	written := 0
	for y := y0; y <= y1; y++ {
		dy := float64(y) - py
		for x := x0; x <= x1; x++ {
			dx := float64(x) - px
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > radius {
				continue
			}
			falloff := Falloff(dist, radius)
			offX, offY := Displacement(dist, falloff, t, maxDisplace)
			sx := min(w-1, max(0, x+offX))
			sy := min(h-1, max(0, y+offY))

			si := sy*src.Stride + sx*4
			di := y*dst.Stride + x*4
			dst.Pix[di] = src.Pix[si]
			dst.Pix[di+1] = src.Pix[si+1]
			dst.Pix[di+2] = src.Pix[si+2]
			dst.Pix[di+3] = uint8(min(max(roundHalfUp(float64(src.Pix[si+3])*falloff*strength), 0), 255))
			written++
		}
	}
	return written
}

// roundHalfUp rounds to the nearest integer with halves toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
