package hyperspace

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// TweenValue, TweenPair or TweenColor and call Update(dt) each frame; the
// group writes values straight into the fields.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue animates *field from its current value to `to`.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenPair animates two fields together, typically a position.
func TweenPair(x, y *float64, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(*x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(*y), float32(toY), duration, fn)
	g.fields[0] = x
	g.fields[1] = y
	return g
}

// TweenColor animates all four components of *c.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// EntranceTimeline starts tween groups and callbacks at fixed offsets from
// its own start, the way a page-entrance sequence staggers its elements.
// Groups are built when their offset is reached, so they tween from the
// values the fields hold at that moment.
//
// There is no global animation manager: call Update each frame.
type EntranceTimeline struct {
	entries []timelineEntry
	elapsed float32
}

type timelineEntry struct {
	at      float32
	build   func() *TweenGroup
	call    func()
	group   *TweenGroup
	started bool
}

// Add schedules a tween group built by build at `at` seconds.
func (t *EntranceTimeline) Add(at float32, build func() *TweenGroup) *EntranceTimeline {
	t.entries = append(t.entries, timelineEntry{at: at, build: build})
	return t
}

// Call schedules fn at `at` seconds.
func (t *EntranceTimeline) Call(at float32, fn func()) *EntranceTimeline {
	t.entries = append(t.entries, timelineEntry{at: at, call: fn})
	return t
}

// Update advances the timeline by dt seconds.
func (t *EntranceTimeline) Update(dt float32) {
	t.elapsed += dt
	for i := range t.entries {
		e := &t.entries[i]
		if !e.started {
			if t.elapsed < e.at {
				continue
			}
			e.started = true
			if e.call != nil {
				e.call()
				continue
			}
			e.group = e.build()
			// Carry the part of this frame past the start offset.
			e.group.Update(t.elapsed - e.at)
			continue
		}
		if e.group != nil {
			e.group.Update(dt)
		}
	}
}

// Done reports whether every entry has started and every group finished.
func (t *EntranceTimeline) Done() bool {
	for i := range t.entries {
		e := &t.entries[i]
		if !e.started || (e.group != nil && !e.group.Done) {
			return false
		}
	}
	return true
}
