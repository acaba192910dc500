package ecs

import (
	"github.com/phanxgames/hyperspace"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// IntroEventType is the Donburi event type for intro lifecycle events.
var IntroEventType = events.NewEventType[hyperspace.IntroEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to IntroEventType in
// world.
func NewDonburiSink(world donburi.World) hyperspace.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event hyperspace.IntroEvent) {
	IntroEventType.Publish(s.world, event)
}
