package helios

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Media is a playable source owned by the host (a decoder, a player element).
// The compositor only drives it; decoding and buffering happen elsewhere.
// Readiness and completion are reported back through
// Compositor.HandleMediaEvent.
type Media interface {
	// Load points the media at locator and starts buffering. An empty locator
	// unloads it.
	Load(locator string)
	Play()
	Pause()
	SetVolume(v float64)
	SetMuted(muted bool)
	// SetAttr sets a player attribute such as "autoplay" or "loop".
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Frame returns the current video frame, or nil if none is decoded yet.
	Frame() *ebiten.Image
	Position() time.Duration
	Duration() time.Duration
}

// MediaEvent is a readiness callback raised by a Media collaborator.
type MediaEvent uint8

const (
	MediaCanPlayThrough MediaEvent = iota // buffered enough to play without stalling
	MediaEnded                            // playback reached the end
	MediaWaiting                          // playback stalled
	MediaSeeked                           // a seek completed
)

// AlphaMode names the layout of an alpha-channel source. The empty string
// (or "false") means the source has no alpha channel.
type AlphaMode string

const (
	AlphaNone  AlphaMode = ""
	AlphaSplit AlphaMode = "split" // mask stacked below the color frame
	AlphaSame  AlphaMode = "same"  // mask keyed from the color frame's luminance
)

// enabled reports whether an alpha channel is requested.
func (m AlphaMode) enabled() bool {
	return m != AlphaNone && m != "false"
}

// LoadOptions configures LoadSource.
type LoadOptions struct {
	// Source is the logical name passed to the Resolver. Required.
	Source string
	// Crossfade, when enabled, swaps slots and cross-fades over its duration.
	// A zero duration is a hard cut. Disabled means the new source replaces
	// the active slot without fading the old one out.
	Crossfade Fade
	// AlphaChannel selects the alpha-extraction layout, if any.
	AlphaChannel AlphaMode
	// Attrs are applied to the active media; an empty value removes the attribute.
	Attrs map[string]string
	// Entry makes the active slot's opacity track playback position.
	Entry bool
	// HideControls hides the host's playback controls (State.Controls).
	HideControls bool
	// ClickToPause is relayed to the host UI through State.
	ClickToPause bool
}

// --- Slots ---

// Slot is one of the two interchangeable media handles.
type Slot struct {
	id      SlotID
	media   Media
	opacity float64
	volume  float64
	source  string
	muted   bool
	ready   *Signal
	fade    fader
}

func newSlot(id SlotID, m Media) *Slot {
	return &Slot{id: id, media: m}
}

// ID returns the slot's identifier.
func (s *Slot) ID() SlotID { return s.id }

// Media returns the media handle, which may be nil for the unused slot in
// mobile mode.
func (s *Slot) Media() Media { return s.media }

// Opacity returns the slot's current opacity in [0, 1].
func (s *Slot) Opacity() float64 { return s.opacity }

// Volume returns the slot's current volume in [0, 1].
func (s *Slot) Volume() float64 { return s.volume }

// Source returns the resolved locator the slot is loaded with.
func (s *Slot) Source() string { return s.source }

// Fading reports whether an opacity/volume fade is in flight on the slot.
func (s *Slot) Fading() bool { return s.fade.active() }

func (s *Slot) setVolume(v float64) {
	s.volume = v
	if s.media != nil {
		s.media.SetVolume(v)
	}
}

func (s *Slot) setMuted(muted bool) {
	s.muted = muted
	if s.media != nil {
		s.media.SetMuted(muted)
	}
}

func (s *Slot) load(locator string) {
	s.source = locator
	if s.media != nil {
		s.media.Load(locator)
	}
}

func (s *Slot) play() {
	if s.media != nil {
		s.media.Play()
	}
}

func (s *Slot) pause() {
	if s.media != nil {
		s.media.Pause()
	}
}

func (s *Slot) frame() *ebiten.Image {
	if s.media == nil {
		return nil
	}
	return s.media.Frame()
}

// slotPair holds slots A and B and which of them is active.
type slotPair struct {
	a, b   *Slot
	active SlotID
}

func newSlotPair(a, b Media) slotPair {
	return slotPair{a: newSlot(SlotA, a), b: newSlot(SlotB, b), active: SlotA}
}

// swap exchanges the active/inactive designation. swap is its own inverse.
func (p *slotPair) swap() {
	if p.active == SlotA {
		p.active = SlotB
	} else {
		p.active = SlotA
	}
}

func (p *slotPair) Active() *Slot {
	if p.active == SlotA {
		return p.a
	}
	return p.b
}

func (p *slotPair) Inactive() *Slot {
	if p.active == SlotA {
		return p.b
	}
	return p.a
}

func (p *slotPair) slot(id SlotID) *Slot {
	switch id {
	case SlotA:
		return p.a
	case SlotB:
		return p.b
	default:
		return nil
	}
}

// --- Entry fade ---

// entryOpacity dims the entry video linearly to 0.2 over its length and
// fades it out completely during the last second.
func entryOpacity(pos, dur time.Duration) float64 {
	if dur <= 0 {
		return 1
	}
	remaining := dur - pos
	if remaining > time.Second {
		return 1 - 0.8*(float64(pos)/float64(dur))
	}
	if remaining < 0 {
		return 0
	}
	return 0.2 * remaining.Seconds()
}
