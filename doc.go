// Package helios is a layered media compositor for [Ebitengine].
//
// A [Compositor] plays one active media source, cross-fades to new sources
// through a pair of interchangeable slots, and paints an ordered stack of
// effects (particle fields, gradients, images) on top, once per frame.
//
// # Quick start
//
// Media decoding is left to the host: implement [Media] for your decoder,
// hand two instances to [New], and drive the compositor from your game loop:
//
//	comp, err := helios.New(helios.Config{
//		Width: 1280, Height: 720,
//		A: playerA, B: playerB,
//		Resolver: helios.Resolver{Prefix: "video/", Extension: ".webm"},
//	})
//
//	func (g *Game) Update() error        { g.comp.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.comp.Draw(s) }
//
// Report decoder readiness with [Compositor.HandleMediaEvent]; fades and
// playback wait for [MediaCanPlayThrough].
//
// # Transitions
//
// A cross-fade is a transition. While one is in flight, LoadSource, Start,
// PlayVideo, StopVideo, Mute, Unmute, Reset, Destroy and CreateEffect are
// queued as [Command] values and replayed in order once the fade completes
// and a short settle delay has passed.
//
// # Effects
//
// Effects are created by name with [Compositor.CreateEffect] and painted in
// creation order. Names are unique; duplicates and unknown kinds raise a
// [Warning] and change nothing.
//
// Fades run on a [Timeline] of [gween] tweens. Lifecycle events can be
// published into a [Donburi] world with the adapter in helios/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package helios
