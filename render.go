package helios

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Frame paints one frame onto the output surface: the inactive slot during a
// cross-fade, the active slot (through the alpha path when configured), then
// every effect in stack order. Frame only reads slot and effect state; it
// never starts or ends transitions. Nothing is painted until Start. Queued
// screenshots are taken once the frame is painted.
func (c *Compositor) Frame() {
	if !c.running || c.surface == nil {
		return
	}
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}
	st := frameStats{composite: c.composite, effects: c.stats.effects[:0]}

	if c.clearCanvas || c.alpha.ready() {
		c.surface.Clear()
		st.cleared = true
	}

	if c.load.Source != "" && c.ready && c.mode == ModeVideo {
		if c.crossfading {
			in := c.slots.Inactive()
			if frame := in.frame(); frame != nil {
				c.drawScaled(frame, in.opacity, BlendNormal)
				st.inactiveDrawn = true
			}
		}

		act := c.slots.Active()
		if frame := act.frame(); frame != nil {
			if c.load.AlphaChannel.enabled() && c.caps.GPU && c.alpha.ready() {
				c.drawScaled(c.alpha.render(frame), act.opacity, BlendNormal)
				st.alphaPath = true
			} else {
				c.drawScaled(frame, act.opacity, BlendNormal)
			}
			st.activeDrawn = true
		}
	}

	for _, e := range c.effects {
		e.Update()
		layer := e.Layer()
		if layer == nil {
			continue
		}
		blend := e.BlendMode()
		if c.useComposite {
			blend = c.composite.BlendMode()
		}
		c.drawScaled(layer, e.Opacity(), blend)
		st.effects = append(st.effects, e.Name())
	}

	if c.debug {
		st.drawTime = time.Since(t0)
	}
	c.stats = st
	c.debugLog(st)
	c.captureSurface()
}

// drawScaled draws img stretched over the whole surface.
func (c *Compositor) drawScaled(img *ebiten.Image, opacity float64, blend BlendMode) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &c.drawOp
	op.GeoM.Reset()
	op.GeoM.Scale(float64(c.w)/float64(b.Dx()), float64(c.h)/float64(b.Dy()))
	op.ColorScale.Reset()
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.Blend = blend.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	c.surface.DrawImage(img, op)
}

// Draw paints a frame and draws the surface onto screen, scaled to fit. Call
// it from ebiten.Game.Draw.
func (c *Compositor) Draw(screen *ebiten.Image) {
	c.Frame()
	if c.surface != nil && c.visible {
		sb, db := c.surface.Bounds(), screen.Bounds()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(c.surface, &op)
	}
	if c.debug && c.overlay != nil {
		c.overlay.draw(screen)
	}
}
