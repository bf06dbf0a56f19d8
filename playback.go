package helios

import (
	"maps"
	"strconv"
)

// defaultAttrs are merged under LoadOptions.Attrs on every load.
func (c *Compositor) defaultAttrs() map[string]string {
	return map[string]string{
		"width":    strconv.Itoa(c.w),
		"height":   strconv.Itoa(c.h),
		"autoplay": "true",
		"loop":     "",
		"poster":   "",
	}
}

// LoadSource points the active slot at a new source. With opts.Crossfade
// enabled the slots swap and the previous source fades out while the new one
// fades in. Fades, playback and the alpha path wait for the new source to
// report MediaCanPlayThrough.
func (c *Compositor) LoadSource(opts LoadOptions) {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpLoad, Load: opts})
		return
	}
	if opts.Source == "" {
		c.warnf(WarnMissingSource, "", "can't load video with no source")
		return
	}

	attrs := c.defaultAttrs()
	maps.Copy(attrs, opts.Attrs)
	opts.Attrs = attrs
	if opts.AlphaChannel == "false" {
		opts.AlphaChannel = AlphaNone
	}

	c.notify(EventLoad, SlotNone)
	c.mode = ModeVideo
	c.load = opts
	c.ready = false
	c.playerReady = false
	c.entry = false
	c.loadGen++
	gen := c.loadGen

	name := opts.Source

	if c.caps.Mobile {
		if opts.AlphaChannel.enabled() {
			name += c.resolver.NoAlphaSuffix
		}
		act := c.slots.Active()
		act.ready = NewSignal()
		act.ready.Wait(func() { c.onCanPlayThrough(gen) })
		act.load("")
		act.load(c.resolver.Locate(name))
		return
	}

	if c.caps.GPU {
		c.clearCanvas = opts.AlphaChannel.enabled()
	} else {
		if opts.AlphaChannel.enabled() {
			name += c.resolver.NoAlphaSuffix
		}
		c.clearCanvas = false
	}

	c.abandonPendingCrossfade()

	if opts.Crossfade.Enabled {
		c.slots.swap()
		c.fadePending = true
		out := c.slots.Inactive()
		out.fade.cancel()
		out.ready = nil
		out.opacity = 1
		if !c.muted {
			out.setVolume(1)
		}
	}

	act := c.slots.Active()
	act.fade.cancel()
	act.opacity = 0
	act.setVolume(0)

	if opts.Entry {
		act.opacity = 1
		act.setVolume(1)
		c.entry = true
	}

	act.ready = NewSignal()
	act.ready.Wait(func() { c.onCanPlayThrough(gen) })
	act.load(c.resolver.Locate(name))

	for k, v := range opts.Attrs {
		if v == "" || v == "false" {
			act.media.RemoveAttr(k)
		} else {
			act.media.SetAttr(k, v)
		}
	}

	c.setCompositeMode()
	c.Start()
}

// onCanPlayThrough runs once per load, when the active slot first reports it
// can play through. Loads superseded by a later LoadSource are ignored.
func (c *Compositor) onCanPlayThrough(gen uint64) {
	if gen != c.loadGen || c.ready {
		return
	}
	c.ready = true

	c.timeline.After(c.readyDelay, func() { c.beginFadeIn(gen) })

	c.PlayVideo()
	c.setCompositeMode()

	if c.load.AlphaChannel.enabled() && c.caps.GPU {
		c.alpha.setup(c, c.load.AlphaChannel)
	}
}

// beginFadeIn starts the fade-in of the active slot and, for a cross-fade,
// the fade-out of the inactive one. A cross-fade is a transition: commands
// issued while it runs are deferred until both fades complete and settle.
func (c *Compositor) beginFadeIn(gen uint64) {
	if gen != c.loadGen || c.load.Source == "" || c.mode != ModeVideo {
		return
	}
	act := c.slots.Active()
	fadeIn := func(v float64) {
		act.opacity = v
		if !c.muted {
			act.setVolume(v)
		}
	}

	if !c.load.Crossfade.Enabled || c.caps.Mobile {
		if !c.entry {
			fadeIn(1)
		}
		return
	}

	c.startTransition()
	c.crossfading = true
	c.fadePending = false
	d := c.load.Crossfade.Duration
	remaining := 2
	finish := func() {
		remaining--
		if remaining == 0 {
			c.endTransition()
		}
	}

	out := c.slots.Inactive()
	out.fade.start(c.timeline, out.opacity, 0, d, func(v float64) {
		out.opacity = v
		out.setVolume(v)
	}, func() {
		c.crossfading = false
		out.pause()
		finish()
	})

	if c.entry {
		finish()
		return
	}
	act.fade.start(c.timeline, act.opacity, 1, d, fadeIn, finish)
}

// abandonPendingCrossfade undoes a cross-fade swap whose fades never started.
// The outgoing slot is still the one on screen, so it becomes active again;
// the slot that was buffering the superseded source is paused and hidden.
func (c *Compositor) abandonPendingCrossfade() {
	if !c.fadePending {
		return
	}
	c.fadePending = false
	c.slots.swap()
	stale := c.slots.Inactive()
	stale.fade.cancel()
	stale.ready = nil
	stale.pause()
	stale.opacity = 0
	stale.setVolume(0)
}

// PreloadSource loads name into the inactive slot, silent and invisible, so a
// later cross-fade to it starts quickly.
func (c *Compositor) PreloadSource(name string) {
	in := c.slots.Inactive()
	if in.media == nil {
		return
	}
	in.media.RemoveAttr("autoplay")
	in.load(c.resolver.Locate(name))
	in.setVolume(0)
	in.opacity = 0
}

// SetVideoSuffix changes the resolver suffix (for example to switch
// resolution) and reloads the current source if the compositor is running.
func (c *Compositor) SetVideoSuffix(suffix string) {
	if c.resolver.Suffix == suffix {
		return
	}
	c.resolver.Suffix = suffix
	if c.running && c.load.Source != "" {
		c.LoadSource(c.load)
	}
}

// Start begins painting frames and plays the loaded video if it is not
// already playing.
func (c *Compositor) Start() {
	if c.visible {
		return
	}
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpStart})
		return
	}
	c.visible = true
	c.running = !c.caps.Mobile
	c.notify(EventStart, SlotNone)
	if !c.playing && c.mode == ModeVideo {
		c.PlayVideo()
	}
}

// PlayVideo plays the active slot. It does nothing until the loaded source
// is ready.
func (c *Compositor) PlayVideo() {
	if !c.ready {
		return
	}
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpPlay})
		return
	}
	c.setPlaying(true)
	c.slots.Active().play()
	c.Start()
	c.notify(EventPlay, SlotNone)
}

// StopVideo pauses the active slot. Unless override is set, the call is
// deferred during a transition and triggers local "ended" listeners.
func (c *Compositor) StopVideo(override bool) {
	if c.transition.inProgress && !override {
		c.deferCmd(Command{Op: OpStop, Override: override})
		return
	}
	c.setPlaying(false)
	c.slots.Active().pause()
	if !override {
		c.listeners.trigger("ended")
	}
}

// PlayPause toggles playback. force may be "play" or "pause" to pick the
// direction; any other value toggles. Ignored during a transition.
func (c *Compositor) PlayPause(force string) {
	if c.transition.inProgress {
		return
	}
	switch force {
	case "pause":
		c.setPlaying(true)
	case "play":
		c.setPlaying(false)
	}
	if c.mode != ModeVideo {
		return
	}
	if c.playing {
		c.setPlaying(false)
		c.slots.Active().pause()
		c.running = false
		c.notify(EventPause, SlotNone)
		return
	}
	c.running = !c.caps.Mobile
	c.PlayVideo()
}

// Mute silences both slots.
func (c *Compositor) Mute() {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpMute})
		return
	}
	c.muted = true
	for _, s := range []*Slot{c.slots.a, c.slots.b} {
		s.setMuted(true)
		s.setVolume(0)
	}
}

// Unmute restores sound on both slots and sets the active slot to full volume.
func (c *Compositor) Unmute() {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpUnmute})
		return
	}
	c.muted = false
	for _, s := range []*Slot{c.slots.a, c.slots.b} {
		if s.muted {
			s.setMuted(false)
		}
	}
	c.slots.Active().setVolume(1)
}

// Reset fades the active slot out (when fade is enabled), then removes every
// effect, stops playback and clears the source. done runs once the effect
// removals are issued.
func (c *Compositor) Reset(fade Fade, done func()) {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpReset, Fade: fade, Done: done})
		return
	}
	c.listeners.trigger("reset")
	c.notify(EventReset, SlotNone)
	c.loadGen++
	c.abandonPendingCrossfade()

	act := c.slots.Active()

	if c.caps.Mobile {
		act.load("")
		c.clearSource()
		if done != nil {
			done()
		}
		return
	}

	if fade.Enabled {
		act.fade.start(c.timeline, act.opacity, 0, fade.Duration, func(v float64) {
			act.opacity = v
			if !c.muted {
				act.setVolume(v)
			}
		}, func() { c.unloadAll(done) })
		return
	}
	c.unloadAll(done)
}

// unloadAll finishes a Reset: effects go, playback stops and both slots are
// emptied.
func (c *Compositor) unloadAll(done func()) {
	c.RemoveAllEffects(NoFade, done)
	c.StopVideo(true)
	c.slots.Active().load("")
	c.slots.Inactive().load("")
	c.clearSource()
}

// clearSource forgets the loaded source and the alpha path that served it.
func (c *Compositor) clearSource() {
	c.loadGen++
	c.fadePending = false
	c.load = LoadOptions{}
	c.ready = false
	c.entry = false
	c.alpha.reset()
}

// Destroy optionally fades the active slot out, then stops playback, clears
// the surface and broadcasts EventDestroy. Painting stops until Start is
// called again.
func (c *Compositor) Destroy(fade Fade) {
	if c.transition.inProgress {
		c.deferCmd(Command{Op: OpDestroy, Fade: fade})
		return
	}
	c.visible = false
	c.playerReady = false
	c.loadGen++
	c.abandonPendingCrossfade()

	act := c.slots.Active()
	teardown := func() {
		c.mode = ModeNone
		c.setPlaying(false)
		c.notify(EventEnded, SlotNone)
		c.notify(EventDestroy, SlotNone)

		act.opacity = 0
		act.setVolume(0)
		c.running = false
		c.entry = false

		c.StopVideo(true)

		if c.caps.Mobile {
			act.load("")
		} else {
			c.surface.Clear()
		}
		c.endTransition()
	}

	if !fade.Enabled {
		teardown()
		return
	}

	c.startTransition()
	from := act.opacity
	if from == 0 {
		from = 1
	}
	act.fade.start(c.timeline, from, 0, fade.Duration, func(v float64) {
		act.opacity = v
		act.setVolume(v)
	}, teardown)
}

// HandleMediaEvent is called by the host when the media in slot raises a
// readiness callback.
func (c *Compositor) HandleMediaEvent(slot SlotID, ev MediaEvent) {
	s := c.slots.slot(slot)
	if s == nil {
		return
	}
	switch ev {
	case MediaCanPlayThrough:
		c.notify(EventCanPlayThrough, slot)
		c.playerReady = true
		if s.ready != nil {
			s.ready.Fire()
		}
	case MediaEnded:
		c.notify(EventEnded, slot)
	case MediaWaiting:
		c.notify(EventWaiting, slot)
	case MediaSeeked:
		c.playerReady = true
	}
}
