package helios

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Kage shader sources ---
// Both shaders use //kage:unit pixels. Video frames are opaque, so the color
// read from the frame needs no un-premultiply before the mask is applied.

// splitAlphaShaderSrc reads color from the top half of the frame and the
// mask from the same position in the bottom half.
const splitAlphaShaderSrc = `//kage:unit pixels
package main

var HalfHeight float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	m := imageSrc0At(src + vec2(0, HalfHeight))
	a := m.r
	return vec4(c.rgb*a, a) * color
}
`

// sameAlphaShaderSrc keys alpha from the frame's own luminance.
const sameAlphaShaderSrc = `//kage:unit pixels
package main

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	a := 0.299*c.r + 0.587*c.g + 0.114*c.b
	return vec4(min(c.rgb, vec3(a)), a) * color
}
`

var (
	splitAlphaShader *ebiten.Shader
	sameAlphaShader  *ebiten.Shader
)

func ensureSplitAlphaShader() *ebiten.Shader {
	if splitAlphaShader == nil {
		s, err := ebiten.NewShader([]byte(splitAlphaShaderSrc))
		if err != nil {
			panic("helios: failed to compile split alpha shader: " + err.Error())
		}
		splitAlphaShader = s
	}
	return splitAlphaShader
}

func ensureSameAlphaShader() *ebiten.Shader {
	if sameAlphaShader == nil {
		s, err := ebiten.NewShader([]byte(sameAlphaShaderSrc))
		if err != nil {
			panic("helios: failed to compile same alpha shader: " + err.Error())
		}
		sameAlphaShader = s
	}
	return sameAlphaShader
}

// alphaShaderFor returns the shader for mode, compiling it on first use.
func alphaShaderFor(mode AlphaMode) (*ebiten.Shader, bool) {
	switch mode {
	case AlphaSplit:
		return ensureSplitAlphaShader(), true
	case AlphaSame:
		return ensureSameAlphaShader(), true
	default:
		return nil, false
	}
}

// colorRegionHeight is the height of the part of a frame of height fh that
// carries color.
func colorRegionHeight(mode AlphaMode, fh int) int {
	if mode == AlphaSplit {
		return fh / 2
	}
	return fh
}

// alphaPath renders the active frame through the alpha shader into an
// offscreen target the size of the output surface.
type alphaPath struct {
	mode     AlphaMode
	shader   *ebiten.Shader
	target   *ebiten.Image
	uniforms map[string]any
	vertices [4]ebiten.Vertex
	indices  [6]uint16
	op       ebiten.DrawTrianglesShaderOptions
}

// setup prepares the path for mode. An unknown mode leaves the path off and
// the raw frame is drawn instead.
func (p *alphaPath) setup(c *Compositor, mode AlphaMode) {
	shader, ok := alphaShaderFor(mode)
	if !ok {
		c.warnf(WarnUnknownAlphaMode, c.load.Source, "no alpha shader for mode %q", mode)
		p.reset()
		return
	}
	p.mode = mode
	p.shader = shader
	if p.target == nil {
		p.target = ebiten.NewImage(c.w, c.h)
	}
	if p.uniforms == nil {
		p.uniforms = make(map[string]any, 1)
	}
	p.indices = [6]uint16{0, 1, 2, 1, 3, 2}
}

// reset turns the path off. The target is kept for the next setup.
func (p *alphaPath) reset() {
	p.mode = AlphaNone
	p.shader = nil
}

// ready reports whether frames can go through the shader.
func (p *alphaPath) ready() bool {
	return p.shader != nil
}

// render draws frame through the shader into the target and returns it.
func (p *alphaPath) render(frame *ebiten.Image) *ebiten.Image {
	fb := frame.Bounds()
	tb := p.target.Bounds()
	ch := colorRegionHeight(p.mode, fb.Dy())

	x0, y0 := float32(fb.Min.X), float32(fb.Min.Y)
	x1, y1 := x0+float32(fb.Dx()), y0+float32(ch)
	w, h := float32(tb.Dx()), float32(tb.Dy())
	p.vertices = [4]ebiten.Vertex{
		{DstX: 0, DstY: 0, SrcX: x0, SrcY: y0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: 0, SrcX: x1, SrcY: y0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: 0, DstY: h, SrcX: x0, SrcY: y1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: w, DstY: h, SrcX: x1, SrcY: y1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}

	if p.mode == AlphaSplit {
		p.uniforms["HalfHeight"] = float32(ch)
	}
	p.op.Uniforms = p.uniforms
	p.op.Images[0] = frame

	p.target.Clear()
	p.target.DrawTrianglesShader(p.vertices[:], p.indices[:], p.shader, &p.op)
	return p.target
}
