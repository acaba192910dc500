package hyperspace

import "time"

// IntroEventType identifies a kind of intro lifecycle event.
type IntroEventType uint8

const (
	IntroStarted      IntroEventType = iota // first measurement taken, start time captured
	IntroPhaseChanged                       // the timeline entered a new phase
	IntroEntrance                           // the fade passed the entrance threshold
	IntroComplete                           // the intro reached FadeEnd and removed its surface
)

// String returns the event type name.
func (t IntroEventType) String() string {
	switch t {
	case IntroStarted:
		return "started"
	case IntroPhaseChanged:
		return "phase-changed"
	case IntroEntrance:
		return "entrance"
	case IntroComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// IntroEvent carries one intro lifecycle event.
type IntroEvent struct {
	Type    IntroEventType
	Phase   Phase
	Elapsed time.Duration
}

// EventSink receives intro lifecycle events. Set one on an Intro with
// SetEventSink to forward events into another system; see the ecs package
// for a Donburi adapter.
type EventSink interface {
	EmitEvent(event IntroEvent)
}
