// Package ecs bridges hyperspace intro lifecycle events into a [Donburi]
// world.
//
// Usage:
//
//	intro.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.IntroEventType.Subscribe(world, func(w donburi.World, e hyperspace.IntroEvent) {
//		if e.Type == hyperspace.IntroEntrance {
//			// start page entrance animations
//		}
//	})
//
// Events are queued; call IntroEventType.ProcessEvents from a system.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
