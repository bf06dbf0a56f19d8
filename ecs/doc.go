// Package ecs provides ECS adapters for helios lifecycle events.
//
// The primary adapter is [NewDonburiNotifier], which publishes compositor
// events (load, play, pause, ended, destroy, ...) into a [Donburi] world as
// typed events. Subscribe to [LifecycleEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	comp, _ := helios.New(helios.Config{
//		// ...
//		Notifier: ecs.NewDonburiNotifier(world),
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
