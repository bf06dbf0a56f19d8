package helios

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageOptions configures an image effect.
type ImageOptions struct {
	// Source is the asset loaded through the compositor's Loader.
	Source string
}

// imageEffect draws one image, scaled to the layer, once it has loaded.
type imageEffect struct {
	effectBase
}

func newImageEffect(name string, opts EffectOptions, loader Loader) *imageEffect {
	e := &imageEffect{effectBase: newEffectBase(name, KindImage, opts)}
	if opts.Image.Source == "" {
		return e
	}
	loader.Load(opts.Image.Source, func(img *ebiten.Image, err error) {
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[helios] effect %q: %v\n", name, err)
			return
		}
		if e.layer == nil {
			return
		}
		e.paint(img)
	})
	return e
}

// paint scales img onto the layer and marks the effect ready.
func (e *imageEffect) paint(img *ebiten.Image) {
	lb, ib := e.layer.Bounds(), img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(lb.Dx())/float64(ib.Dx()), float64(lb.Dy())/float64(ib.Dy()))
	op.Filter = ebiten.FilterLinear
	e.layer.Clear()
	e.layer.DrawImage(img, &op)
	e.ready = true
}

// Update is a no-op; the image is painted once on load.
func (e *imageEffect) Update() {}
