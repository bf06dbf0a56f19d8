package helios

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownEffectKind is returned by ParseEffectKind for unrecognized names.
var ErrUnknownEffectKind = errors.New("helios: unknown effect kind")

// EffectKind names an effect implementation.
type EffectKind string

const (
	KindParticle EffectKind = "particle"
	KindGradient EffectKind = "gradient"
	KindImage    EffectKind = "image"
)

// ParseEffectKind validates a kind name.
func ParseEffectKind(s string) (EffectKind, error) {
	switch k := EffectKind(s); k {
	case KindParticle, KindGradient, KindImage:
		return k, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownEffectKind, s)
}

const (
	defaultLayerWidth  = 640
	defaultLayerHeight = 360
)

// EffectOptions configures CreateEffect. Only the block matching the kind is read.
type EffectOptions struct {
	// FadeIn fades the effect from 0 to its opacity.
	FadeIn Fade
	// Opacity is the resting opacity. Zero means 1.
	Opacity float64
	// Width and Height size the effect's layer. Zero means 640x360. The layer
	// is scaled to the output surface when drawn.
	Width, Height int
	// BlendMode is used to paint the layer unless the compositor applies its
	// derived CompositeMode instead.
	BlendMode BlendMode

	Particle ParticleOptions
	Gradient GradientOptions
	Image    ImageOptions
}

// EffectSpec is one entry of a CreateEffects batch.
type EffectSpec struct {
	Name    string
	Kind    EffectKind
	Options EffectOptions
}

// Effect is a visual layer painted above the media.
type Effect interface {
	Name() string
	Kind() EffectKind
	// Opacity is the effect's current opacity in [0, 1].
	Opacity() float64
	// Ready reports whether any asynchronous asset has finished loading.
	Ready() bool
	// Update advances the effect by one frame and repaints its layer if needed.
	Update()
	// Layer returns the image drawn onto the output surface.
	Layer() *ebiten.Image
	BlendMode() BlendMode

	base() *effectBase
}

// effectBase carries the state every kind shares. Each effect owns its own
// layer image.
type effectBase struct {
	name    string
	kind    EffectKind
	opacity float64
	ready   bool
	layer   *ebiten.Image
	blend   BlendMode
	fade    fader
}

func newEffectBase(name string, kind EffectKind, opts EffectOptions) effectBase {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = defaultLayerWidth
	}
	if h <= 0 {
		h = defaultLayerHeight
	}
	opacity := opts.Opacity
	if opacity <= 0 {
		opacity = 1
	}
	return effectBase{
		name:    name,
		kind:    kind,
		opacity: opacity,
		layer:   ebiten.NewImage(w, h),
		blend:   opts.BlendMode,
	}
}

func (b *effectBase) Name() string         { return b.name }
func (b *effectBase) Kind() EffectKind     { return b.kind }
func (b *effectBase) Opacity() float64     { return b.opacity }
func (b *effectBase) Ready() bool          { return b.ready }
func (b *effectBase) Layer() *ebiten.Image { return b.layer }
func (b *effectBase) BlendMode() BlendMode { return b.blend }
func (b *effectBase) base() *effectBase    { return b }

func (b *effectBase) setOpacity(v float64) {
	b.opacity = v
}

// fadeIn animates opacity from 0 to the resting opacity.
func (b *effectBase) fadeIn(tl *Timeline, d Fade) {
	if !d.Enabled {
		return
	}
	target := b.opacity
	b.opacity = 0
	b.fade.start(tl, 0, target, d.Duration, b.setOpacity, nil)
}

// dispose cancels any fade and releases the layer's GPU memory.
func (b *effectBase) dispose() {
	b.fade.cancel()
	if b.layer != nil {
		b.layer.Deallocate()
		b.layer = nil
	}
}

// --- Stack ---

// CreateEffect adds a named effect on top of the stack. A duplicate name or
// unknown kind is a warning and leaves the stack unchanged.
func (c *Compositor) CreateEffect(name string, kind EffectKind, opts EffectOptions) {
	if c.caps.Mobile {
		return
	}
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpCreateEffect, Effect: EffectSpec{Name: name, Kind: kind, Options: opts}})
		return
	}
	if _, ok := c.lookup[name]; ok {
		c.warnf(WarnDuplicateEffect, name, "an effect named %q already exists", name)
		return
	}

	var e Effect
	switch kind {
	case KindParticle:
		e = newParticleEffect(name, opts, c.loader)
	case KindGradient:
		e = newGradientEffect(name, opts)
	case KindImage:
		if opts.Image.Source == "" {
			c.warnf(WarnMissingSource, name, "missing source for effect %q", name)
		}
		e = newImageEffect(name, opts, c.loader)
	default:
		c.warnf(WarnUnknownEffectKind, name, "no effect of type %q exists", kind)
		return
	}
	e.base().fadeIn(c.timeline, opts.FadeIn)

	c.effects = append(c.effects, e)
	c.lookup[name] = e
	c.setCompositeMode()
	c.clearCanvas = true

	c.Start()
}

// CreateEffects creates each effect in order.
func (c *Compositor) CreateEffects(specs []EffectSpec) {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpCreateEffects, Effects: slices.Clone(specs)})
		return
	}
	for _, s := range specs {
		c.CreateEffect(s.Name, s.Kind, s.Options)
	}
}

// RemoveEffect removes the named effect, fading its opacity to 0 first when
// fade is enabled. The relative order of the remaining effects is kept.
func (c *Compositor) RemoveEffect(name string, fade Fade) {
	e, ok := c.lookup[name]
	if !ok {
		c.warnf(WarnMissingEffect, name, "can't remove %q: no effect with that name exists", name)
		return
	}
	if !fade.Enabled {
		c.excise(e)
		return
	}
	b := e.base()
	b.fade.start(c.timeline, b.opacity, 0, fade.Duration, b.setOpacity, func() {
		c.excise(e)
	})
}

// RemoveAllEffects removes every effect present at call time using the same
// fade, then calls done. done runs once the removals are issued, not when
// the fades finish.
func (c *Compositor) RemoveAllEffects(fade Fade, done func()) {
	if c.caps.Mobile {
		return
	}
	names := make([]string, len(c.effects))
	for i, e := range c.effects {
		names[i] = e.Name()
	}
	for _, name := range names {
		c.RemoveEffect(name, fade)
	}
	if done != nil {
		done()
	}
}

// excise drops e from the stack and the index and releases it.
func (c *Compositor) excise(e Effect) {
	i := slices.Index(c.effects, e)
	if i < 0 {
		return
	}
	c.effects = slices.Delete(c.effects, i, i+1)
	if c.lookup[e.Name()] == e {
		delete(c.lookup, e.Name())
	}
	e.base().dispose()
	c.setCompositeMode()
	c.clearCanvas = true
}

// Effects returns the effect stack in paint order.
func (c *Compositor) Effects() []Effect {
	return slices.Clone(c.effects)
}

// Effect returns the named effect, or nil.
func (c *Compositor) Effect(name string) Effect {
	return c.lookup[name]
}
