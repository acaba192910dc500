package hyperspace

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

// ErrInvalidConfig is wrapped by every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// MeasureMode selects when the intro takes its first viewport measurement
// and captures its start time.
type MeasureMode uint8

const (
	// MeasureOnFirstLayout starts on the first layout with a nonzero size.
	MeasureOnFirstLayout MeasureMode = iota
	// MeasureAfterFrames waits MeasureDelayFrames nonzero layouts before
	// measuring, letting the window settle.
	MeasureAfterFrames
)

// Config holds every tunable of the intro and the reveal. The zero value of
// a field means "use the default" (see DefaultConfig); booleans default to
// false.
type Config struct {
	// DriftEnd, WarpEnd, FlashEnd and FadeEnd are the phase thresholds,
	// measured from the intro start. They must satisfy
	// 0 < DriftEnd < WarpEnd < FlashEnd <= FadeEnd.
	DriftEnd time.Duration
	WarpEnd  time.Duration
	FlashEnd time.Duration
	FadeEnd  time.Duration

	// EntranceThreshold is the fade progress past which the entrance signal
	// fires.
	EntranceThreshold float64
	// FlashPeakAlpha is the white overlay alpha at WarpEnd.
	FlashPeakAlpha float64

	// StarCount is the fixed size of the star arena.
	StarCount int
	// MinDistanceFactor scales the portal max radius into the exclusion
	// radius used when placing stars.
	MinDistanceFactor float64
	// MinDistance, when positive, replaces the portal-derived exclusion radius.
	MinDistance float64
	// MaxSampleAttempts bounds the rejection sampling loop per star.
	MaxSampleAttempts int
	// DriftSpeed is the peak outward drift in pixels per frame.
	DriftSpeed float64
	// Seed seeds the star RNG. Zero seeds from the clock.
	Seed uint64
	// RegenerateOnResize rebuilds the star arena when the viewport changes
	// after the intro has started.
	RegenerateOnResize bool

	// PortalRadiusFraction is the portal max radius as a fraction of the
	// shorter viewport side.
	PortalRadiusFraction float64
	// PortalFixedRadius, when positive, replaces the viewport-derived radius.
	PortalFixedRadius float64
	// HaloScale is the halo gradient radius relative to the portal radius.
	HaloScale float64

	// Measure and MeasureDelayFrames control the first measurement.
	Measure            MeasureMode
	MeasureDelayFrames int

	// RevealResizeDelay coalesces bursts of container resizes.
	RevealResizeDelay time.Duration
	// RevealTimeStep is added to the wave phase each tick.
	RevealTimeStep float64
	// RevealSmoothing is the per-tick fraction of the remaining distance to
	// the target strength.
	RevealSmoothing float64
	// RevealRadiusFraction is the influence radius at full strength as a
	// fraction of the shorter container side.
	RevealRadiusFraction float64
	// RevealMaxDisplace is the horizontal displacement at full strength.
	RevealMaxDisplace float64
}

// DefaultConfig returns the canonical timing and tuning.
func DefaultConfig() Config {
	return Config{
		DriftEnd:             1200 * time.Millisecond,
		WarpEnd:              5500 * time.Millisecond,
		FlashEnd:             5580 * time.Millisecond,
		FadeEnd:              6300 * time.Millisecond,
		EntranceThreshold:    0.4,
		FlashPeakAlpha:       0.9,
		StarCount:            400,
		MinDistanceFactor:    1.5,
		MaxSampleAttempts:    64,
		DriftSpeed:           0.4,
		PortalRadiusFraction: 0.085,
		HaloScale:            1.4,
		Measure:              MeasureOnFirstLayout,
		MeasureDelayFrames:   2,
		RevealResizeDelay:    100 * time.Millisecond,
		RevealTimeStep:       0.025,
		RevealSmoothing:      0.06,
		RevealRadiusFraction: 0.45,
		RevealMaxDisplace:    4,
	}
}

// OriginalConfig is the first shipped tuning: a fixed 130px portal and a
// fixed 150px star exclusion radius.
func OriginalConfig() Config {
	cfg := DefaultConfig()
	cfg.PortalFixedRadius = 130
	cfg.MinDistance = 150
	return cfg
}

// FlashDuration is the length of the white flash window.
func (c Config) FlashDuration() time.Duration {
	return c.FlashEnd - c.WarpEnd
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DriftEnd == 0 {
		c.DriftEnd = d.DriftEnd
	}
	if c.WarpEnd == 0 {
		c.WarpEnd = d.WarpEnd
	}
	if c.FlashEnd == 0 {
		c.FlashEnd = d.FlashEnd
	}
	if c.FadeEnd == 0 {
		c.FadeEnd = d.FadeEnd
	}
	if c.EntranceThreshold == 0 {
		c.EntranceThreshold = d.EntranceThreshold
	}
	if c.FlashPeakAlpha == 0 {
		c.FlashPeakAlpha = d.FlashPeakAlpha
	}
	if c.StarCount <= 0 {
		c.StarCount = d.StarCount
	}
	if c.MinDistanceFactor == 0 {
		c.MinDistanceFactor = d.MinDistanceFactor
	}
	if c.MaxSampleAttempts <= 0 {
		c.MaxSampleAttempts = d.MaxSampleAttempts
	}
	if c.DriftSpeed == 0 {
		c.DriftSpeed = d.DriftSpeed
	}
	if c.PortalRadiusFraction == 0 {
		c.PortalRadiusFraction = d.PortalRadiusFraction
	}
	if c.HaloScale == 0 {
		c.HaloScale = d.HaloScale
	}
	if c.MeasureDelayFrames <= 0 {
		c.MeasureDelayFrames = d.MeasureDelayFrames
	}
	if c.RevealResizeDelay == 0 {
		c.RevealResizeDelay = d.RevealResizeDelay
	}
	if c.RevealTimeStep == 0 {
		c.RevealTimeStep = d.RevealTimeStep
	}
	if c.RevealSmoothing == 0 {
		c.RevealSmoothing = d.RevealSmoothing
	}
	if c.RevealRadiusFraction == 0 {
		c.RevealRadiusFraction = d.RevealRadiusFraction
	}
	if c.RevealMaxDisplace == 0 {
		c.RevealMaxDisplace = d.RevealMaxDisplace
	}
	return c
}

// Validate reports the first constraint the config violates. Zero fields
// are validated after defaults are applied.
func (c Config) Validate() error {
	c = c.withDefaults()
	switch {
	case c.DriftEnd <= 0:
		return fmt.Errorf("%w: drift end %v must be positive", ErrInvalidConfig, c.DriftEnd)
	case c.WarpEnd <= c.DriftEnd:
		return fmt.Errorf("%w: warp end %v must follow drift end %v", ErrInvalidConfig, c.WarpEnd, c.DriftEnd)
	case c.FlashEnd <= c.WarpEnd:
		return fmt.Errorf("%w: flash end %v must follow warp end %v", ErrInvalidConfig, c.FlashEnd, c.WarpEnd)
	case c.FadeEnd < c.FlashEnd:
		return fmt.Errorf("%w: fade end %v precedes flash end %v", ErrInvalidConfig, c.FadeEnd, c.FlashEnd)
	case c.EntranceThreshold < 0 || c.EntranceThreshold >= 1:
		return fmt.Errorf("%w: entrance threshold %v outside [0, 1)", ErrInvalidConfig, c.EntranceThreshold)
	case c.FlashPeakAlpha < 0 || c.FlashPeakAlpha > 1:
		return fmt.Errorf("%w: flash alpha %v outside [0, 1]", ErrInvalidConfig, c.FlashPeakAlpha)
	case c.MinDistanceFactor < 0 || c.MinDistance < 0:
		return fmt.Errorf("%w: negative star exclusion radius", ErrInvalidConfig)
	case c.PortalRadiusFraction < 0 || c.PortalRadiusFraction > 0.5:
		return fmt.Errorf("%w: portal fraction %v outside [0, 0.5]", ErrInvalidConfig, c.PortalRadiusFraction)
	case c.PortalFixedRadius < 0:
		return fmt.Errorf("%w: negative portal radius %v", ErrInvalidConfig, c.PortalFixedRadius)
	case c.HaloScale < 1:
		return fmt.Errorf("%w: halo scale %v below 1", ErrInvalidConfig, c.HaloScale)
	case c.Measure > MeasureAfterFrames:
		return fmt.Errorf("%w: unknown measure mode %d", ErrInvalidConfig, c.Measure)
	case c.RevealSmoothing < 0 || c.RevealSmoothing > 1:
		return fmt.Errorf("%w: reveal smoothing %v outside [0, 1]", ErrInvalidConfig, c.RevealSmoothing)
	case c.RevealTimeStep <= 0:
		return fmt.Errorf("%w: reveal time step %v must be positive", ErrInvalidConfig, c.RevealTimeStep)
	case c.RevealMaxDisplace < 0:
		return fmt.Errorf("%w: negative reveal displacement %v", ErrInvalidConfig, c.RevealMaxDisplace)
	case c.RevealRadiusFraction < 0:
		return fmt.Errorf("%w: negative reveal radius fraction", ErrInvalidConfig)
	case c.RevealResizeDelay < 0:
		return fmt.Errorf("%w: negative reveal resize delay", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads an INI config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg, err := configFromINI(f)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses INI data on top of DefaultConfig. Durations are in
// milliseconds:
//
//	[timeline]
//	drift_end = 1200
//	warp_end  = 5500
//
//	[portal]
//	radius_fraction = 0.09
func ParseConfig(data []byte) (Config, error) {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg, err := configFromINI(f)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// configFromINI overlays the keys present in f onto DefaultConfig. Unknown
// keys are ignored.
func configFromINI(f *ini.File) (Config, error) {
	cfg := DefaultConfig()
	r := iniReader{f: f}

	r.millis("timeline", "drift_end", &cfg.DriftEnd)
	r.millis("timeline", "warp_end", &cfg.WarpEnd)
	r.millis("timeline", "flash_end", &cfg.FlashEnd)
	r.millis("timeline", "fade_end", &cfg.FadeEnd)
	r.float("timeline", "entrance_threshold", &cfg.EntranceThreshold)
	r.float("timeline", "flash_alpha", &cfg.FlashPeakAlpha)
	r.measure("timeline", "measure", &cfg.Measure)
	r.int("timeline", "measure_delay_frames", &cfg.MeasureDelayFrames)

	r.int("stars", "count", &cfg.StarCount)
	r.float("stars", "min_distance_factor", &cfg.MinDistanceFactor)
	r.float("stars", "min_distance", &cfg.MinDistance)
	r.int("stars", "max_sample_attempts", &cfg.MaxSampleAttempts)
	r.float("stars", "drift_speed", &cfg.DriftSpeed)
	r.uint64("stars", "seed", &cfg.Seed)
	r.bool("stars", "regenerate_on_resize", &cfg.RegenerateOnResize)

	r.float("portal", "radius_fraction", &cfg.PortalRadiusFraction)
	r.float("portal", "fixed_radius", &cfg.PortalFixedRadius)
	r.float("portal", "halo_scale", &cfg.HaloScale)

	r.millis("reveal", "resize_delay", &cfg.RevealResizeDelay)
	r.float("reveal", "time_step", &cfg.RevealTimeStep)
	r.float("reveal", "smoothing", &cfg.RevealSmoothing)
	r.float("reveal", "radius_fraction", &cfg.RevealRadiusFraction)
	r.float("reveal", "max_displace", &cfg.RevealMaxDisplace)

	if r.err != nil {
		return Config{}, r.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// iniReader reads optional typed keys and keeps the first error.
type iniReader struct {
	f   *ini.File
	err error
}

func (r *iniReader) key(section, name string) *ini.Key {
	if r.err != nil {
		return nil
	}
	sec, err := r.f.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (r *iniReader) fail(section, name string, err error) {
	r.err = fmt.Errorf("[%s] %s: %w", section, name, err)
}

func (r *iniReader) float(section, name string, dst *float64) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Float64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) int(section, name string, dst *int) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Int()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) uint64(section, name string, dst *uint64) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Uint64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) bool(section, name string, dst *bool) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Bool()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = v
}

func (r *iniReader) millis(section, name string, dst *time.Duration) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	ms, err := k.Float64()
	if err != nil {
		r.fail(section, name, err)
		return
	}
	*dst = time.Duration(ms * float64(time.Millisecond))
}

func (r *iniReader) measure(section, name string, dst *MeasureMode) {
	k := r.key(section, name)
	if k == nil {
		return
	}
	switch k.String() {
	case "first_layout", "":
		*dst = MeasureOnFirstLayout
	case "after_frames":
		*dst = MeasureAfterFrames
	default:
		r.fail(section, name, fmt.Errorf("unknown measure mode %q", k.String()))
	}
}
