package helios

// GradientDirection picks which way the ramp runs.
type GradientDirection string

const (
	// GradientDown ramps transparent to opaque, top to bottom.
	GradientDown GradientDirection = "down"
	// GradientUp ramps opaque to transparent, top to bottom.
	GradientUp GradientDirection = "up"
)

// GradientOptions configures a gradient effect. Start and End are fractions
// of the layer height.
type GradientOptions struct {
	Start float64
	// End of the ramp. Zero means 1.
	End float64
	// Direction defaults to GradientDown.
	Direction GradientDirection
}

// gradientEffect is a black vertical alpha ramp computed once at creation.
type gradientEffect struct {
	effectBase
}

func newGradientEffect(name string, opts EffectOptions) *gradientEffect {
	e := &gradientEffect{effectBase: newEffectBase(name, KindGradient, opts)}
	g := opts.Gradient
	if g.End <= 0 {
		g.End = 1
	}
	if g.Direction == "" {
		g.Direction = GradientDown
	}

	b := e.layer.Bounds()
	w, h := b.Dx(), b.Dy()
	rows := gradientAlpha(h, g.Start, g.End, g.Direction)
	pix := make([]byte, w*h*4)
	for y, a := range rows {
		// Black, premultiplied: only the alpha channel is non-zero.
		row := pix[y*w*4 : (y+1)*w*4]
		for x := 3; x < len(row); x += 4 {
			row[x] = a
		}
	}
	e.layer.WritePixels(pix)
	e.ready = true
	return e
}

// Update is a no-op; the ramp never changes.
func (e *gradientEffect) Update() {}

// gradientAlpha returns the alpha of each of h rows, sampled at row centres.
// The ramp spans [start, end] of the height. Outside it, the side the ramp
// runs toward is opaque and the other side transparent, so the layer always
// ends in a solid band.
func gradientAlpha(h int, start, end float64, dir GradientDirection) []uint8 {
	rows := make([]uint8, h)
	startY := float64(h) * start
	endY := float64(h) * end
	for y := range rows {
		yc := float64(y) + 0.5
		var t float64
		switch {
		case yc < startY:
			t = 0
		case yc >= endY:
			t = 1
		default:
			t = (yc - startY) / (endY - startY)
		}
		if dir == GradientUp {
			t = 1 - t
		}
		rows[y] = uint8(t*255 + 0.5)
	}
	return rows
}
