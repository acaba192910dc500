package hyperspace

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the 2D drawing target the intro renders into. Per-draw alpha
// is carried by Color.A. Whole-surface opacity is not part of the surface;
// the host applies it when compositing.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (w, h int)
	// Fill replaces every pixel with c.
	Fill(c Color)
	// FillRect blends a solid rectangle.
	FillRect(r Rect, c Color)
	// FillCircle blends a solid disk.
	FillCircle(cx, cy, radius float64, c Color)
	// StrokeLine blends a round-capped line segment.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// DrawRadialGradient blends g scaled to radius around (cx, cy).
	DrawRadialGradient(cx, cy, radius float64, g *Gradient)
}

// whiteSubImage is the 1x1 interior of a 3x3 white image, used as the
// source texture for stroke triangles so edge filtering never samples
// transparent pixels.
var whiteSubImage *ebiten.Image

func init() {
	img := ebiten.NewImage(3, 3)
	img.Fill(ColorWhite.toRGBA())
	whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ImageSurface is a persistent offscreen canvas backed by an *ebiten.Image.
// It is owned by the caller and is not recycled between frames.
type ImageSurface struct {
	image     *ebiten.Image
	w, h      int
	gradients map[*Gradient]*ebiten.Image
	vs        []ebiten.Vertex
	is        []uint16
}

// NewImageSurface creates a w×h surface.
func NewImageSurface(w, h int) *ImageSurface {
	return &ImageSurface{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for compositing.
func (s *ImageSurface) Image() *ebiten.Image {
	return s.image
}

// Size returns the surface size in pixels.
func (s *ImageSurface) Size() (int, int) {
	return s.w, s.h
}

// Clear fills the surface with transparent black.
func (s *ImageSurface) Clear() {
	s.image.Clear()
}

// Fill replaces every pixel with c.
func (s *ImageSurface) Fill(c Color) {
	s.image.Fill(c.toRGBA())
}

// FillRect blends a solid rectangle.
func (s *ImageSurface) FillRect(r Rect, c Color) {
	if c.A <= 0 || r.Empty() {
		return
	}
	vector.DrawFilledRect(s.image, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.toRGBA(), false)
}

// FillCircle blends a solid anti-aliased disk.
func (s *ImageSurface) FillCircle(cx, cy, radius float64, c Color) {
	if c.A <= 0 || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(s.image, float32(cx), float32(cy), float32(radius), c.toRGBA(), true)
}

// StrokeLine blends a round-capped, anti-aliased line segment.
func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	if c.A <= 0 || width <= 0 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))

	s.vs, s.is = path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width:   float32(width),
		LineCap: vector.LineCapRound,
	})

	a := float32(clamp01(c.A))
	r := float32(clamp01(c.R)) * a
	g := float32(clamp01(c.G)) * a
	b := float32(clamp01(c.B)) * a
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r
		s.vs[i].ColorG = g
		s.vs[i].ColorB = b
		s.vs[i].ColorA = a
	}

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	s.image.DrawTriangles(s.vs, s.is, whiteSubImage, &op)
}

// DrawRadialGradient blends g scaled so its outer stop lands on radius. The
// gradient texture is rendered once per surface and reused.
func (s *ImageSurface) DrawRadialGradient(cx, cy, radius float64, g *Gradient) {
	if g == nil || radius <= 0 {
		return
	}
	if s.gradients == nil {
		s.gradients = make(map[*Gradient]*ebiten.Image)
	}
	tex, ok := s.gradients[g]
	if !ok {
		tex = generateGradient(g, gradientTextureRadius)
		s.gradients[g] = tex
	}

	scale := radius / gradientTextureRadius
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-gradientTextureRadius, -gradientTextureRadius)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	s.image.DrawImage(tex, &op)
}

// WritePixels replaces the surface contents with straight-alpha RGBA
// pixels, premultiplying them on the way in. scratch is reused across calls
// and returned.
func (s *ImageSurface) WritePixels(pix []byte, scratch []byte) []byte {
	if len(pix) != 4*s.w*s.h {
		return scratch
	}
	if cap(scratch) < len(pix) {
		scratch = make([]byte, len(pix))
	}
	scratch = scratch[:len(pix)]
	premultiply(scratch, pix)
	s.image.WritePixels(scratch)
	return scratch
}

// Resize deallocates the old image and creates a new one at the given size.
func (s *ImageSurface) Resize(w, h int) {
	s.disposeImages()
	s.image = ebiten.NewImage(w, h)
	s.w = w
	s.h = h
}

// Dispose deallocates the underlying images. The surface must not be used
// afterwards.
func (s *ImageSurface) Dispose() {
	s.disposeImages()
	s.image = nil
}

func (s *ImageSurface) disposeImages() {
	if s.image != nil {
		s.image.Deallocate()
	}
	for _, tex := range s.gradients {
		tex.Deallocate()
	}
	s.gradients = nil
}

// premultiply converts straight-alpha RGBA in src to premultiplied RGBA in dst.
func premultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		a := uint32(src[i+3])
		switch a {
		case 0:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
		case 255:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i], src[i+1], src[i+2], 255
		default:
			dst[i] = uint8((uint32(src[i])*a + 127) / 255)
			dst[i+1] = uint8((uint32(src[i+1])*a + 127) / 255)
			dst[i+2] = uint8((uint32(src[i+2])*a + 127) / 255)
			dst[i+3] = uint8(a)
		}
	}
}

// gradientTextureRadius is the radius in pixels of cached gradient textures.
const gradientTextureRadius = 128

// GradientStop is one color stop of a radial gradient. Offset is in [0, 1]
// from the center to the outer radius.
type GradientStop struct {
	Offset float64
	Color  Color
}

// Gradient is a radial gradient defined by ascending stops. Colors outside
// the first and last stops are transparent.
type Gradient struct {
	Stops []GradientStop
}

// At returns the interpolated color at offset t.
func (g *Gradient) At(t float64) Color {
	n := len(g.Stops)
	if n == 0 || t < g.Stops[0].Offset || t > g.Stops[n-1].Offset {
		return Color{}
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			f := Ratio(t, a.Offset, b.Offset)
			return Color{
				R: lerp(a.Color.R, b.Color.R, f),
				G: lerp(a.Color.G, b.Color.G, f),
				B: lerp(a.Color.B, b.Color.B, f),
				A: lerp(a.Color.A, b.Color.A, f),
			}
		}
	}
	return g.Stops[n-1].Color
}

// generateGradient renders g into a square premultiplied texture with the
// given radius.
func generateGradient(g *Gradient, radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - radius
			dy := float64(y) + 0.5 - radius
			c := g.At(math.Sqrt(dx*dx+dy*dy) / radius)
			off := (y*size + x) * 4
			rgba := c.toRGBA()
			pix[off+0] = rgba.R
			pix[off+1] = rgba.G
			pix[off+2] = rgba.B
			pix[off+3] = rgba.A
		}
	}
	img.WritePixels(pix)
	return img
}
