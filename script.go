package helios

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is one action in a presentation script. Durations are in
// milliseconds; an absent fade means "no fade", while 0 is a hard cut.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`

	// load / preload
	Source       string            `json:"source,omitempty"`
	Crossfade    *int              `json:"crossfade,omitempty"`
	AlphaChannel AlphaMode         `json:"alphaChannel,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	Entry        bool              `json:"entry,omitempty"`
	HideControls bool              `json:"hideControls,omitempty"`
	ClickToPause bool              `json:"clickToPause,omitempty"`

	// effect / remove / removeAll / reset / destroy
	Name        string            `json:"name,omitempty"`
	Kind        string            `json:"kind,omitempty"`
	Fade        *int              `json:"fade,omitempty"`
	FadeIn      *int              `json:"fadeIn,omitempty"`
	Opacity     float64           `json:"opacity,omitempty"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Count       int               `json:"count,omitempty"`
	Alpha       float64           `json:"alpha,omitempty"`
	MinVelocity float64           `json:"minVelocity,omitempty"`
	MaxVelocity float64           `json:"maxVelocity,omitempty"`
	Sprite      string            `json:"sprite,omitempty"`
	DotRadius   float64           `json:"dotRadius,omitempty"`
	Start       float64           `json:"start,omitempty"`
	End         float64           `json:"end,omitempty"`
	Direction   GradientDirection `json:"direction,omitempty"`
	Image       string            `json:"image,omitempty"`

	// playPause / stop
	Force    string `json:"force,omitempty"`
	Override bool   `json:"override,omitempty"`
}

// script is the top-level JSON structure of a presentation script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a presentation script against a Compositor, one step
// per Update. Attach it with SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	settling  bool
	done      bool
}

var scriptActions = map[string]bool{
	"load": true, "preload": true, "start": true, "play": true, "stop": true,
	"playPause": true, "mute": true, "unmute": true, "reset": true,
	"destroy": true, "effect": true, "remove": true, "removeAll": true,
	"wait": true, "settle": true, "screenshot": true,
}

// LoadScript parses a JSON presentation script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "effect" {
			if _, err := ParseEffectKind(st.Kind); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches r. Its steps run from Compositor.Update.
func (c *Compositor) SetScript(r *ScriptRunner) {
	c.script = r
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step runs at most one script step. "wait" holds for a number of frames
// and "settle" holds until no transition is in flight.
func (r *ScriptRunner) step(c *Compositor) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.settling {
		if c.InTransition() {
			return
		}
		r.settling = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.run(c, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.settling {
		r.done = true
	}
}

func (r *ScriptRunner) run(c *Compositor, st scriptStep) {
	switch st.Action {
	case "load":
		c.LoadSource(LoadOptions{
			Source:       st.Source,
			Crossfade:    fadeMillis(st.Crossfade),
			AlphaChannel: st.AlphaChannel,
			Attrs:        st.Attrs,
			Entry:        st.Entry,
			HideControls: st.HideControls,
			ClickToPause: st.ClickToPause,
		})
	case "preload":
		c.PreloadSource(st.Source)
	case "start":
		c.Start()
	case "play":
		c.PlayVideo()
	case "stop":
		c.StopVideo(st.Override)
	case "playPause":
		c.PlayPause(st.Force)
	case "mute":
		c.Mute()
	case "unmute":
		c.Unmute()
	case "reset":
		c.Reset(fadeMillis(st.Fade), nil)
	case "destroy":
		c.Destroy(fadeMillis(st.Fade))
	case "effect":
		c.CreateEffect(st.Name, EffectKind(st.Kind), st.effectOptions())
	case "remove":
		c.RemoveEffect(st.Name, fadeMillis(st.Fade))
	case "removeAll":
		c.RemoveAllEffects(fadeMillis(st.Fade), nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "settle":
		r.settling = true
	case "screenshot":
		c.Screenshot(st.Label)
	}
}

func (st scriptStep) effectOptions() EffectOptions {
	return EffectOptions{
		FadeIn:  fadeMillis(st.FadeIn),
		Opacity: st.Opacity,
		Width:   st.Width,
		Height:  st.Height,
		Particle: ParticleOptions{
			Count:       st.Count,
			Alpha:       st.Alpha,
			MinVelocity: st.MinVelocity,
			MaxVelocity: st.MaxVelocity,
			Sprite:      st.Sprite,
			DotRadius:   st.DotRadius,
		},
		Gradient: GradientOptions{Start: st.Start, End: st.End, Direction: st.Direction},
		Image:    ImageOptions{Source: st.Image},
	}
}

// fadeMillis converts an optional millisecond count to a Fade.
func fadeMillis(ms *int) Fade {
	if ms == nil {
		return NoFade
	}
	return FadeOver(time.Duration(*ms) * time.Millisecond)
}
