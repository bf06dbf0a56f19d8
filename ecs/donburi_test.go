package ecs

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/helios"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiNotifier(t *testing.T) {
	world := donburi.NewWorld()
	n := NewDonburiNotifier(world)
	if n == nil {
		t.Fatal("NewDonburiNotifier returned nil")
	}
}

func TestDonburiNotifier_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	n := NewDonburiNotifier(world)

	var received []helios.Event
	LifecycleEventType.Subscribe(world, func(w donburi.World, e helios.Event) {
		received = append(received, e)
	})

	n.EmitEvent(helios.Event{Type: helios.EventCanPlayThrough, Slot: helios.SlotB})
	n.EmitEvent(helios.Event{Type: helios.EventDestroy})

	// Events are queued; process them.
	LifecycleEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != helios.EventCanPlayThrough || received[0].Slot != helios.SlotB {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != helios.EventDestroy || received[1].Slot != helios.SlotNone {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiNotifier_ImplementsNotifier(t *testing.T) {
	world := donburi.NewWorld()
	var n helios.Notifier = NewDonburiNotifier(world)
	_ = n // compile-time interface check
}

func TestDonburiNotifier_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	n := NewDonburiNotifier(world)

	var count1, count2 int
	LifecycleEventType.Subscribe(world, func(w donburi.World, e helios.Event) {
		count1++
	})
	LifecycleEventType.Subscribe(world, func(w donburi.World, e helios.Event) {
		count2++
	})

	n.EmitEvent(helios.Event{Type: helios.EventPlay})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

// nopMedia satisfies helios.Media without decoding anything.
type nopMedia struct{}

func (nopMedia) Load(string)             {}
func (nopMedia) Play()                   {}
func (nopMedia) Pause()                  {}
func (nopMedia) SetVolume(float64)       {}
func (nopMedia) SetMuted(bool)           {}
func (nopMedia) SetAttr(string, string)  {}
func (nopMedia) RemoveAttr(string)       {}
func (nopMedia) Frame() *ebiten.Image    { return nil }
func (nopMedia) Position() time.Duration { return 0 }
func (nopMedia) Duration() time.Duration { return 0 }

func TestDonburiNotifier_CompositorLifecycle(t *testing.T) {
	world := donburi.NewWorld()

	var got []helios.EventType
	LifecycleEventType.Subscribe(world, func(w donburi.World, e helios.Event) {
		got = append(got, e.Type)
	})

	comp, err := helios.New(helios.Config{
		Width: 64, Height: 36,
		A: nopMedia{}, B: nopMedia{},
		Notifier: NewDonburiNotifier(world),
	})
	if err != nil {
		t.Fatal(err)
	}

	comp.LoadSource(helios.LoadOptions{Source: "intro"})
	comp.HandleMediaEvent(helios.SlotA, helios.MediaCanPlayThrough)
	events.ProcessAllEvents(world)

	want := []helios.EventType{
		helios.EventLoad,
		helios.EventStart,
		helios.EventCanPlayThrough,
		helios.EventPlay,
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}
