// Package hyperspace is a one-shot hyperspace intro and a pointer-reactive
// portrait reveal for [Ebitengine].
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop around a [Host]:
//
//	host := hyperspace.NewHost()
//	host.SetIntro(hyperspace.NewIntro(hyperspace.DefaultConfig()))
//	hyperspace.Run(host, hyperspace.RunConfig{
//		Title: "Portfolio", Width: 1280, Height: 800,
//	})
//
// For full control, call [Host.Update], [Host.Draw] and [Host.Layout] from
// your own [ebiten.Game], or drive an [Intro] and a [Reveal] directly.
//
// # Intro
//
// An [Intro] plays once. A [StarField] drifts around a dark portal, then
// warps outward as streaks while the portal shrinks to nothing. A white
// flash follows and the whole surface fades out. The [Timeline] maps the
// elapsed time since the first measurement to a [Phase] and a local
// progress; the host supplies the clock, so the intro is deterministic
// under test.
//
//	intro.OnEntrance = func() { /* start page entrance animations */ }
//	intro.OnComplete = func() { /* intro surface is gone */ }
//
// Star motion is per tick, tuned for 60 TPS.
//
// # Reveal
//
// A [Reveal] blends a second image over a base picture around the pointer,
// with an animated wave displacement. Strength eases toward 1 while the
// pointer is inside and back to 0 when it leaves; pixels outside the
// influence radius stay transparent. The pixel kernel is [WarpPixels].
//
// # Configuration
//
// [Config] holds every timing threshold and tuning constant. [LoadConfig]
// reads an INI file; missing keys keep their defaults.
//
// # Events
//
// Lifecycle events go to an [EventSink]. The hyperspace/ecs package
// publishes them into a [Donburi] world.
//
// # Scripted runs
//
// [LoadTestScript] parses a JSON script of hover, touch, wait, resize and
// screenshot steps. Attach it with [Host.SetTestRunner].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package hyperspace
