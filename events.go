package helios

import "strings"

// EventType identifies a lifecycle notification broadcast to the Notifier.
type EventType uint8

const (
	EventLoad           EventType = iota // a source load was issued
	EventCanPlayThrough                  // a slot buffered enough to play through
	EventPlay                            // playback started
	EventPause                           // playback paused by PlayPause
	EventWaiting                         // a slot stalled waiting for data
	EventEnded                           // playback finished or was torn down
	EventStart                           // frame painting started
	EventReset                           // Reset ran
	EventDestroy                         // terminal: the compositor was destroyed
)

var eventTypeNames = [...]string{
	EventLoad:           "load",
	EventCanPlayThrough: "canplaythrough",
	EventPlay:           "play",
	EventPause:          "pause",
	EventWaiting:        "waiting",
	EventEnded:          "ended",
	EventStart:          "start",
	EventReset:          "reset",
	EventDestroy:        "destroy",
}

// String returns the lowercase event name, e.g. "canplaythrough".
func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is a lifecycle notification. Slot is SlotNone when the event has no
// slot payload.
type Event struct {
	Type EventType
	Slot SlotID
}

// Notifier is the broadcast bus lifecycle notifications are sent to.
type Notifier interface {
	EmitEvent(event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// EmitEvent calls f(event).
func (f NotifierFunc) EmitEvent(event Event) { f(event) }

// notify sends an event to the configured Notifier, if any.
func (c *Compositor) notify(typ EventType, slot SlotID) {
	if c.notifier == nil {
		return
	}
	c.notifier.EmitEvent(Event{Type: typ, Slot: slot})
}

// --- Local listeners ---

type listener struct {
	namespace string
	fn        func()
}

// listenerRegistry holds local callbacks keyed by event type. Types may carry
// a namespace suffix ("ended.ui") so groups of listeners can be removed together.
type listenerRegistry map[string][]listener

// splitEventSpec splits "type.namespace" into its parts.
func splitEventSpec(spec string) (typ, namespace string) {
	typ, namespace, _ = strings.Cut(spec, ".")
	return typ, namespace
}

func (r listenerRegistry) on(spec string, fn func()) {
	typ, ns := splitEventSpec(spec)
	r[typ] = append(r[typ], listener{namespace: ns, fn: fn})
}

func (r listenerRegistry) off(spec string) {
	typ, ns := splitEventSpec(spec)
	if ns == "" {
		delete(r, typ)
		return
	}
	for eventType, ls := range r {
		if typ != "*" && eventType != typ {
			continue
		}
		kept := ls[:0]
		for _, l := range ls {
			if l.namespace != ns {
				kept = append(kept, l)
			}
		}
		r[eventType] = kept
	}
}

func (r listenerRegistry) trigger(typ string) {
	ls := r[typ]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.fn != nil {
			l.fn()
		}
	}
}

// On registers fn for a local event. spec is "type" or "type.namespace".
// Local events are "ended" (StopVideo without override) and "reset".
func (c *Compositor) On(spec string, fn func()) {
	c.listeners.on(spec, fn)
}

// Off removes local listeners. "type" removes every listener of that type;
// "type.ns" removes the type's listeners in namespace ns; "*.ns" removes the
// namespace from every type.
func (c *Compositor) Off(spec string) {
	c.listeners.off(spec)
}
