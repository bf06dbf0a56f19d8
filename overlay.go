package helios

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const overlayRefresh = 500 * time.Millisecond

// debugOverlay shows FPS, TPS and compositor state in the top-left corner.
// Its text is refreshed every ~0.5 seconds.
type debugOverlay struct {
	img     *ebiten.Image
	elapsed time.Duration
	op      ebiten.DrawImageOptions
}

func newDebugOverlay() *debugOverlay {
	// 220x80 fits five DebugPrint lines.
	return &debugOverlay{img: ebiten.NewImage(220, 80), elapsed: overlayRefresh}
}

func (o *debugOverlay) update(dt time.Duration, c *Compositor) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, overlayText(c.State(), c.stats, ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *debugOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, &o.op)
}

func overlayText(s State, st frameStats, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f TPS: %.1f\nslot: %s playing: %t\nmedia: %d alpha: %t\neffects: %d %s\ntransition: %t",
		fps, tps, s.Active, s.Playing, st.mediaLayers(), st.alphaPath, s.Effects, s.CompositeMode, s.Transitioning)
}
