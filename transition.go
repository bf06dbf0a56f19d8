package helios

// Op identifies a transition-sensitive command.
type Op uint8

const (
	OpLoad Op = iota + 1
	OpStart
	OpPlay
	OpStop
	OpMute
	OpUnmute
	OpReset
	OpDestroy
	OpCreateEffect
	OpCreateEffects
)

var opNames = [...]string{
	OpLoad:          "load",
	OpStart:         "start",
	OpPlay:          "play",
	OpStop:          "stop",
	OpMute:          "mute",
	OpUnmute:        "unmute",
	OpReset:         "reset",
	OpDestroy:       "destroy",
	OpCreateEffect:  "createEffect",
	OpCreateEffects: "createEffects",
}

// String returns the command name.
func (o Op) String() string {
	if int(o) < len(opNames) && opNames[o] != "" {
		return opNames[o]
	}
	return "unknown"
}

// Command is a deferred call to one of the compositor's transition-sensitive
// methods. Only the fields relevant to Op are set.
type Command struct {
	Op       Op
	Load     LoadOptions
	Fade     Fade
	Done     func()
	Override bool
	Effect   EffectSpec
	Effects  []EffectSpec
}

// transitionState serializes commands around fades. While inProgress is set,
// commands are appended to pending and replayed, in order, once the
// transition settles.
type transitionState struct {
	inProgress bool
	pending    []Command
	settle     *Timer
}

// deferCmd appends cmd unconditionally. Callers check inProgress first.
func (c *Compositor) deferCmd(cmd Command) {
	c.transition.pending = append(c.transition.pending, cmd)
}

// startTransition marks a fade in flight. A settle from an earlier transition
// that has not fired yet is cancelled; this transition's end drains the queue.
func (c *Compositor) startTransition() {
	c.transition.inProgress = true
	if c.transition.settle != nil {
		c.transition.settle.Cancel()
		c.transition.settle = nil
	}
}

// endTransition drains the queue after the settle delay so the fade that just
// completed can finish visually.
func (c *Compositor) endTransition() {
	if c.transition.settle != nil {
		c.transition.settle.Cancel()
	}
	c.transition.settle = c.timeline.After(c.settleDelay, c.drainDeferred)
}

// drainDeferred clears the flag and runs every queued command once, in FIFO
// order. Commands deferred again during the drain (because a replayed command
// started a new transition) wait for the next drain.
func (c *Compositor) drainDeferred() {
	c.transition.settle = nil
	c.transition.inProgress = false
	queued := c.transition.pending
	c.transition.pending = nil
	for _, cmd := range queued {
		c.exec(cmd)
	}
}

// exec replays a command through the public method it came from.
func (c *Compositor) exec(cmd Command) {
	switch cmd.Op {
	case OpLoad:
		c.LoadSource(cmd.Load)
	case OpStart:
		c.Start()
	case OpPlay:
		c.PlayVideo()
	case OpStop:
		c.StopVideo(cmd.Override)
	case OpMute:
		c.Mute()
	case OpUnmute:
		c.Unmute()
	case OpReset:
		c.Reset(cmd.Fade, cmd.Done)
	case OpDestroy:
		c.Destroy(cmd.Fade)
	case OpCreateEffect:
		c.CreateEffect(cmd.Effect.Name, cmd.Effect.Kind, cmd.Effect.Options)
	case OpCreateEffects:
		c.CreateEffects(cmd.Effects)
	}
}

// InTransition reports whether a fade is in flight and commands are being deferred.
func (c *Compositor) InTransition() bool {
	return c.transition.inProgress
}

// Pending returns a copy of the deferred commands in replay order.
func (c *Compositor) Pending() []Command {
	out := make([]Command, len(c.transition.pending))
	copy(out, c.transition.pending)
	return out
}
