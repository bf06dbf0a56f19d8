package ecs

import (
	"github.com/phanxgames/helios"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for helios lifecycle events.
var LifecycleEventType = events.NewEventType[helios.Event]()

type donburiNotifier struct {
	world donburi.World
}

// NewDonburiNotifier creates a Notifier backed by a Donburi world. Events are
// published to LifecycleEventType and can be consumed with events.Subscribe
// and ProcessEvents.
func NewDonburiNotifier(world donburi.World) helios.Notifier {
	return &donburiNotifier{world: world}
}

func (n *donburiNotifier) EmitEvent(event helios.Event) {
	LifecycleEventType.Publish(n.world, event)
}
