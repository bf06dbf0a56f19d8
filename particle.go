package helios

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleOptions configures a particle effect.
type ParticleOptions struct {
	// Count is the number of particles. Zero means 8.
	Count int
	// Alpha is applied once to the whole group. Zero means 0.2.
	Alpha float64
	// MinVelocity and MaxVelocity bound each velocity component, drawn from
	// [-MinVelocity, MaxVelocity] in pixels per frame. Zero means 0.5 and 1.5.
	MinVelocity float64
	MaxVelocity float64
	// Sprite is the asset loaded through the compositor's Loader. Empty uses a
	// generated soft dot of DotRadius pixels.
	Sprite string
	// DotRadius sizes the generated dot. Zero means 32.
	DotRadius float64
	// Rand seeds spawn positions and velocities. Nil uses the global source.
	Rand *rand.Rand
}

func (o ParticleOptions) withDefaults() ParticleOptions {
	if o.Count <= 0 {
		o.Count = 8
	}
	if o.Alpha <= 0 {
		o.Alpha = 0.2
	}
	if o.MinVelocity <= 0 {
		o.MinVelocity = 0.5
	}
	if o.MaxVelocity <= 0 {
		o.MaxVelocity = 1.5
	}
	if o.DotRadius <= 0 {
		o.DotRadius = defaultDotRadius
	}
	return o
}

// particle is one point entity bouncing inside the layer.
type particle struct {
	x, y   float64
	vx, vy float64
}

// step integrates one frame and reflects off the layer edges: the velocity
// component is negated and the position clamped to the edge.
func (p *particle) step(w, h float64) {
	p.x += p.vx
	p.y += p.vy

	if p.x >= w {
		p.vx = -p.vx
		p.x = w
	} else if p.x <= 0 {
		p.vx = -p.vx
		p.x = 0
	}

	if p.y >= h {
		p.vy = -p.vy
		p.y = h
	} else if p.y <= 0 {
		p.vy = -p.vy
		p.y = 0
	}
}

// particleEffect is a fixed set of sprites drifting and bouncing inside the layer.
type particleEffect struct {
	effectBase
	opts      ParticleOptions
	particles []particle
	sprite    *ebiten.Image
	w, h      float64
	op        ebiten.DrawImageOptions
}

func newParticleEffect(name string, opts EffectOptions, loader Loader) *particleEffect {
	e := &particleEffect{
		effectBase: newEffectBase(name, KindParticle, opts),
		opts:       opts.Particle.withDefaults(),
	}
	b := e.layer.Bounds()
	e.w, e.h = float64(b.Dx()), float64(b.Dy())

	pos := [2]Range{{Min: 0, Max: e.w}, {Min: 0, Max: e.h}}
	vel := Range{Min: -e.opts.MinVelocity, Max: e.opts.MaxVelocity}
	rng := e.opts.Rand
	e.particles = make([]particle, e.opts.Count)
	for i := range e.particles {
		e.particles[i] = particle{
			x:  pos[0].randomWith(rng),
			y:  pos[1].randomWith(rng),
			vx: vel.randomWith(rng),
			vy: vel.randomWith(rng),
		}
	}

	if e.opts.Sprite == "" {
		e.sprite = softDot(e.opts.DotRadius)
		e.ready = true
		return e
	}
	loader.Load(e.opts.Sprite, func(img *ebiten.Image, err error) {
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[helios] effect %q: sprite: %v\n", name, err)
			return
		}
		if e.layer == nil {
			return
		}
		e.sprite = img
		e.ready = true
	})
	return e
}

// Update moves every particle one frame and repaints the layer. Until the
// sprite has loaded the layer stays empty.
func (e *particleEffect) Update() {
	if e.layer == nil {
		return
	}
	for i := len(e.particles) - 1; i >= 0; i-- {
		e.particles[i].step(e.w, e.h)
	}

	e.layer.Clear()
	if e.sprite == nil {
		return
	}
	sb := e.sprite.Bounds()
	hw, hh := float64(sb.Dx())/2, float64(sb.Dy())/2
	for i := range e.particles {
		p := &e.particles[i]
		e.op.GeoM.Reset()
		e.op.GeoM.Translate(p.x-hw, p.y-hh)
		e.op.ColorScale.Reset()
		e.op.ColorScale.ScaleAlpha(float32(e.opts.Alpha))
		e.layer.DrawImage(e.sprite, &e.op)
	}
}

const defaultDotRadius = 32

// dotAlpha is the soft dot's coverage at offset (dx, dy) from its centre:
// (1 - d²)² where d is the distance in radii, 0 outside the disc.
func dotAlpha(dx, dy, radius float64) float64 {
	k := 1 - (dx*dx+dy*dy)/(radius*radius)
	if k <= 0 {
		return 0
	}
	return k * k
}

// softDot renders a white premultiplied dot sampled at pixel centres.
func softDot(radius float64) *ebiten.Image {
	size := max(1, int(math.Ceil(2*radius)))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		dy := float64(y) + 0.5 - radius
		for x := range size {
			v := uint8(dotAlpha(float64(x)+0.5-radius, dy, radius)*255 + 0.5)
			if v > 0 {
				img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: v})
			}
		}
	}
	return ebiten.NewImageFromImage(img)
}
