package hyperspace

// haloGradient fades from transparent at the portal center to a faint
// blue-white ring and back to transparent at the halo edge. The inner part
// is covered by the opaque disk.
var haloGradient = &Gradient{Stops: []GradientStop{
	{Offset: 0, Color: ColorHalo.WithAlpha(0)},
	{Offset: 0.7, Color: ColorHalo},
	{Offset: 1, Color: ColorHalo.WithAlpha(0)},
}}

// PortalRadius returns the rendered portal radius: the full radius during
// the drift, shrinking linearly to zero across the warp, and zero afterwards.
func PortalRadius(maxRadius float64, phase Phase, p float64) float64 {
	switch phase {
	case PhaseDrift:
		return maxRadius
	case PhaseWarp:
		return maxRadius * (1 - clamp01(p))
	default:
		return 0
	}
}

// drawPortal draws the halo and the opaque disk centered on vp. Nothing is
// drawn for a non-positive radius.
func drawPortal(surf Surface, vp Viewport, radius, haloScale float64) {
	if radius <= 0 {
		return
	}
	surf.DrawRadialGradient(vp.CenterX, vp.CenterY, radius*haloScale, haloGradient)
	surf.FillCircle(vp.CenterX, vp.CenterY, radius, ColorBlack)
}
