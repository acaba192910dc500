package hyperspace

import "math"

// Warp kinematics. Speeds are in pixels per frame: the effect is tied to the
// host tick rate rather than normalized by frame time, and the thresholds in
// Config were tuned at 60 TPS.
const (
	warpBaseSpeed      = 0.3  // floor that keeps stars moving at the drift/warp boundary
	warpSpeedGain      = 45   // added at full acceleration
	warpNearDistance   = 50   // distance floor for the distance factor
	warpMinDistFactor  = 0.3  // clamp for far stars
	warpMaxDistFactor  = 1.6  // clamp for near stars
	warpStretch        = 80   // streak elongation at full progress
	warpMinStreakRatio = 3    // streak is at least this many speeds long
	warpCullFactor     = 2    // stars beyond this many max distances are not drawn
	streakMinWidth     = 0.8
	streakBaseWidth    = 1.2
	streakWidthGain    = 1.2
	streakBaseAlpha    = 0.9
	streakAlphaGain    = 0.3
)

// DistanceFactor scales a star's speed by how far from the center it was
// placed, so outer stars cover fewer pixels and the expansion reads as even
// optical flow.
func DistanceFactor(maxScreenDist, distanceFromCenter float64) float64 {
	return Clamp(maxScreenDist/math.Max(distanceFromCenter, warpNearDistance), warpMinDistFactor, warpMaxDistFactor)
}

// WarpSpeed returns the per-frame speed of a star for acceleration accel.
func WarpSpeed(accel, maxScreenDist, distanceFromCenter float64) float64 {
	return (warpBaseSpeed + accel*warpSpeedGain) * DistanceFactor(maxScreenDist, distanceFromCenter)
}

// StreakLength returns the streak length for speed at warp progress p.
func StreakLength(speed, p float64) float64 {
	return math.Max(speed*(1+warpStretch*p), speed*warpMinStreakRatio)
}

// StreakAlpha returns the stroke alpha of a streak.
func StreakAlpha(opacity, accel float64) float64 {
	return math.Min(opacity*(streakBaseAlpha+streakAlphaGain*accel), 1)
}

// StreakWidth returns the stroke width of a streak.
func StreakWidth(accel float64) float64 {
	return math.Max(streakMinWidth, streakBaseWidth+streakWidthGain*accel)
}

// driftStep moves every star outward by the eased drift speed for drift
// progress t.
func driftStep(stars []Star, t, driftSpeed float64) {
	speed := driftSpeed * EaseInOutCubic(t)
	for i := range stars {
		s := &stars[i]
		s.X += math.Cos(s.Angle) * speed
		s.Y += math.Sin(s.Angle) * speed
		s.Visible = true
	}
}

// drawDrift draws every star as a dot of its own radius and opacity.
func drawDrift(surf Surface, stars []Star) {
	for i := range stars {
		s := &stars[i]
		surf.FillCircle(s.X, s.Y, s.Radius, ColorWhite.WithAlpha(s.Opacity))
	}
}

// warpStep advances every star for warp progress p and marks the ones
// swallowed by the portal or far off screen as not visible. Culled stars
// keep moving.
func warpStep(stars []Star, vp Viewport, p float64) {
	accel := EaseInQuart(p)
	portal := vp.PortalMaxRadius * (1 - p)
	farLimit := vp.MaxScreenDist * warpCullFactor

	for i := range stars {
		s := &stars[i]
		s.Speed = WarpSpeed(accel, vp.MaxScreenDist, s.DistanceFromCenter)

		dx, dy := math.Cos(s.Angle), math.Sin(s.Angle)
		s.X += dx * s.Speed
		s.Y += dy * s.Speed

		dist := vp.DistanceFromCenter(s.X, s.Y)
		if dist < portal || dist > farLimit {
			s.Visible = false
			continue
		}
		s.Visible = true

		length := StreakLength(s.Speed, p)
		s.TailX = s.X - dx*length
		s.TailY = s.Y - dy*length
	}
}

// drawStreaks strokes every visible star from its tail to its position.
func drawStreaks(surf Surface, stars []Star, p float64) {
	accel := EaseInQuart(p)
	width := StreakWidth(accel)
	for i := range stars {
		s := &stars[i]
		if !s.Visible {
			continue
		}
		surf.StrokeLine(s.TailX, s.TailY, s.X, s.Y, width, ColorStreak.WithAlpha(StreakAlpha(s.Opacity, accel)))
	}
}
