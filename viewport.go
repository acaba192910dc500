package hyperspace

import "math"

// Viewport holds the scalars derived from the drawable size. It is a pure
// function of the size and the config, so measuring twice with the same
// size yields identical values.
type Viewport struct {
	Width, Height    float64
	CenterX, CenterY float64
	// MaxScreenDist is half the viewport diagonal.
	MaxScreenDist float64
	// PortalMaxRadius is the portal radius before the warp starts shrinking it.
	PortalMaxRadius float64
}

// NewViewport measures a w×h drawable.
func NewViewport(w, h int, cfg Config) Viewport {
	fw, fh := float64(w), float64(h)
	vp := Viewport{
		Width:         fw,
		Height:        fh,
		CenterX:       fw / 2,
		CenterY:       fh / 2,
		MaxScreenDist: math.Hypot(fw, fh) / 2,
	}
	if cfg.PortalFixedRadius > 0 {
		vp.PortalMaxRadius = cfg.PortalFixedRadius
	} else {
		vp.PortalMaxRadius = cfg.PortalRadiusFraction * math.Min(fw, fh)
	}
	return vp
}

// MinStarDistance is the exclusion radius around the center used when
// placing stars.
func (vp Viewport) MinStarDistance(cfg Config) float64 {
	if cfg.MinDistance > 0 {
		return cfg.MinDistance
	}
	return vp.PortalMaxRadius * cfg.MinDistanceFactor
}

// DistanceFromCenter returns the distance of (x, y) from the viewport center.
func (vp Viewport) DistanceFromCenter(x, y float64) float64 {
	return math.Hypot(x-vp.CenterX, y-vp.CenterY)
}
