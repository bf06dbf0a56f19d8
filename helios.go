package helios

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Range is a general-purpose min/max range.
// Used by the particle effect for spawn positions and velocities.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	return r.randomWith(nil)
}

// randomWith draws from rng, or from the global source when rng is nil.
func (r Range) randomWith(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	if rng == nil {
		return r.Min + rand.Float64()*(r.Max-r.Min)
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Fade is an optional fade duration. The zero value means "no fade"; an
// enabled fade with a zero Duration is a hard cut.
type Fade struct {
	Duration time.Duration
	Enabled  bool
}

// NoFade disables fading for an operation.
var NoFade = Fade{}

// FadeOver returns an enabled fade lasting d.
func FadeOver(d time.Duration) Fade {
	return Fade{Duration: d, Enabled: true}
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
	BlendBelow                     // destination-over (draw behind existing content)
	BlendNone                      // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendBelow:
		return ebiten.BlendDestinationOver
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// CompositeMode is the paint hint derived from playback and effect state.
type CompositeMode uint8

const (
	CompositePaintOver   CompositeMode = iota // new content fully overwrites
	CompositeEraseUnder                       // content punches transparency into what's beneath
)

// String returns the canvas operation name for the mode.
func (m CompositeMode) String() string {
	if m == CompositeEraseUnder {
		return "destination-out"
	}
	return "source-over"
}

// BlendMode returns the BlendMode that realizes this composite mode.
func (m CompositeMode) BlendMode() BlendMode {
	if m == CompositeEraseUnder {
		return BlendErase
	}
	return BlendNormal
}

// compositeModeFor is "erase-under" iff playback is active and at least one
// effect is present.
func compositeModeFor(playing bool, effects int) CompositeMode {
	if playing && effects > 0 {
		return CompositeEraseUnder
	}
	return CompositePaintOver
}

// Mode is the current playback mode.
type Mode uint8

const (
	ModeNone  Mode = iota // nothing loaded, or destroyed
	ModeVideo             // a video source drives the base layer
)

// String returns a lowercase mode name.
func (m Mode) String() string {
	if m == ModeVideo {
		return "video"
	}
	return ""
}

// SlotID names one of the two media slots.
type SlotID uint8

const (
	SlotNone SlotID = iota // no slot (event payload is empty)
	SlotA
	SlotB
)

// String returns "A", "B", or "" for SlotNone.
func (id SlotID) String() string {
	switch id {
	case SlotA:
		return "A"
	case SlotB:
		return "B"
	default:
		return ""
	}
}

// Capabilities are device flags supplied by the host.
type Capabilities struct {
	// Mobile disables compositing, effects and cross-fades entirely. A single
	// fallback media element is played directly.
	Mobile bool
	// GPU enables the shader-assisted alpha-channel path.
	GPU bool
}

// Resolver turns a logical source name into a media locator.
type Resolver struct {
	Prefix    string
	Suffix    string
	Extension string
	// NoAlphaSuffix is appended to the logical name when an alpha channel is
	// requested but cannot be extracted (mobile, or no GPU).
	NoAlphaSuffix string
}

// Locate returns Prefix + name + Suffix + Extension.
func (r Resolver) Locate(name string) string {
	return r.Prefix + name + r.Suffix + r.Extension
}
