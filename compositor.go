package helios

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultSettleDelay = 100 * time.Millisecond
	defaultReadyDelay  = 100 * time.Millisecond
	defaultScreenshots = "screenshots"
)

var (
	// ErrNoSurface is returned by New when neither a surface nor a size is configured.
	ErrNoSurface = errors.New("helios: no output surface")
	// ErrNoMedia is returned by New when slot A or B has no media.
	ErrNoMedia = errors.New("helios: media slots A and B are required")
	// ErrNoFallback is returned by New in mobile mode without a fallback media.
	ErrNoFallback = errors.New("helios: mobile mode requires a fallback media")
)

// Config controls how a Compositor is built. Zero values select defaults.
type Config struct {
	// Surface is the output image. When nil, one of Width x Height is created.
	Surface *ebiten.Image
	// Width and Height size the created surface. Ignored when Surface is set.
	Width, Height int
	// A and B are the two media slots. Required unless Capabilities.Mobile.
	A, B Media
	// Fallback is the single media played in mobile mode. It occupies slot A.
	Fallback Media
	// Resolver turns logical names into media locators.
	Resolver Resolver
	// Capabilities are the host's device flags.
	Capabilities Capabilities
	// SettleDelay is the pause between a fade completing and deferred
	// commands replaying. Defaults to 100ms.
	SettleDelay time.Duration
	// ReadyDelay is the pause between "can play through" and the fade-in
	// starting. Defaults to 100ms.
	ReadyDelay time.Duration
	// Timeline drives tweens and timers. When nil the compositor creates one
	// and advances it from Update/Advance; a caller-supplied timeline must be
	// advanced by the caller.
	Timeline *Timeline
	// Loader loads effect images. Defaults to a FileLoader on the working directory.
	Loader Loader
	// Notifier receives lifecycle notifications. Optional.
	Notifier Notifier
	// OnWarning receives usage warnings. Defaults to logging on stderr.
	OnWarning func(Warning)
	// UseCompositeMode applies the derived CompositeMode as the effect blend
	// mode instead of each effect's own BlendMode.
	UseCompositeMode bool
	// ScreenshotDir is where Screenshot writes PNGs. Defaults to "screenshots".
	ScreenshotDir string
}

// Compositor plays one active media source, cross-fades to new ones, and
// paints an ordered effect stack on top, once per frame.
//
// A Compositor is single-threaded: every method, including Update and Draw,
// must be called from the same goroutine (normally ebiten's game loop).
type Compositor struct {
	surface      *ebiten.Image
	w, h         int
	caps         Capabilities
	resolver     Resolver
	timeline     *Timeline
	ownsTimeline bool
	loader       Loader
	notifier     Notifier
	onWarning    func(Warning)
	settleDelay  time.Duration
	readyDelay   time.Duration
	useComposite bool

	listeners  listenerRegistry
	transition transitionState

	// Playback
	slots       slotPair
	load        LoadOptions
	loadGen     uint64
	mode        Mode
	ready       bool
	playing     bool
	running     bool
	visible     bool
	playerReady bool
	crossfading bool
	fadePending bool
	muted       bool
	entry       bool

	// Effects
	effects     []Effect
	lookup      map[string]Effect
	composite   CompositeMode
	clearCanvas bool
	alpha       alphaPath
	drawOp      ebiten.DrawImageOptions

	// Diagnostics
	debug           bool
	stats           frameStats
	overlay         *debugOverlay
	script          *ScriptRunner
	screenshotDir   string
	screenshotQueue []string
	captures        int
}

// New validates cfg and builds a Compositor.
func New(cfg Config) (*Compositor, error) {
	c := &Compositor{
		caps:          cfg.Capabilities,
		resolver:      cfg.Resolver,
		timeline:      cfg.Timeline,
		loader:        cfg.Loader,
		notifier:      cfg.Notifier,
		onWarning:     cfg.OnWarning,
		settleDelay:   cfg.SettleDelay,
		readyDelay:    cfg.ReadyDelay,
		useComposite:  cfg.UseCompositeMode,
		screenshotDir: cfg.ScreenshotDir,
		listeners:     make(listenerRegistry),
		lookup:        make(map[string]Effect),
	}

	if cfg.Capabilities.Mobile {
		if cfg.Fallback == nil {
			return nil, ErrNoFallback
		}
		c.slots = newSlotPair(cfg.Fallback, nil)
	} else {
		if cfg.A == nil || cfg.B == nil {
			return nil, ErrNoMedia
		}
		switch {
		case cfg.Surface != nil:
			c.surface = cfg.Surface
		case cfg.Width > 0 && cfg.Height > 0:
			c.surface = ebiten.NewImage(cfg.Width, cfg.Height)
		default:
			return nil, ErrNoSurface
		}
		b := c.surface.Bounds()
		c.w, c.h = b.Dx(), b.Dy()
		c.slots = newSlotPair(cfg.A, cfg.B)
	}

	if c.timeline == nil {
		c.timeline = NewTimeline()
		c.ownsTimeline = true
	}
	if c.loader == nil {
		c.loader = NewFileLoader(nil)
	}
	if c.onWarning == nil {
		c.onWarning = logWarning
	}
	if c.settleDelay <= 0 {
		c.settleDelay = defaultSettleDelay
	}
	if c.readyDelay <= 0 {
		c.readyDelay = defaultReadyDelay
	}
	if c.screenshotDir == "" {
		c.screenshotDir = defaultScreenshots
	}

	active, inactive := c.slots.Active(), c.slots.Inactive()
	active.opacity = 1
	active.setVolume(1)
	inactive.opacity = 0
	inactive.setVolume(0)

	return c, nil
}

// Surface returns the output image the compositor paints into. Nil in mobile mode.
func (c *Compositor) Surface() *ebiten.Image {
	return c.surface
}

// Timeline returns the timeline driving the compositor's fades.
func (c *Compositor) Timeline() *Timeline {
	return c.timeline
}

// Active returns the active slot.
func (c *Compositor) Active() *Slot {
	return c.slots.Active()
}

// Inactive returns the inactive slot.
func (c *Compositor) Inactive() *Slot {
	return c.slots.Inactive()
}

// CompositeMode returns the current derived composite mode.
func (c *Compositor) CompositeMode() CompositeMode {
	return c.composite
}

// setCompositeMode recomputes the composite mode. Call whenever the number of
// effects or the playing flag changes. Mobile mode never composites.
func (c *Compositor) setCompositeMode() {
	if c.caps.Mobile {
		c.composite = CompositePaintOver
		return
	}
	c.composite = compositeModeFor(c.playing, len(c.effects))
}

// setPlaying updates the playing flag and the composite mode with it.
func (c *Compositor) setPlaying(playing bool) {
	c.playing = playing
	c.setCompositeMode()
}

// State is a snapshot of playback state for UI collaborators.
type State struct {
	Mode          Mode
	Source        string
	Active        SlotID
	Playing       bool
	Ready         bool
	PlayerReady   bool
	Visible       bool
	Running       bool
	Crossfading   bool
	Transitioning bool
	Muted         bool
	Controls      bool
	ClickToPause  bool
	Effects       int
	CompositeMode CompositeMode
}

// State returns a snapshot of the current playback state.
func (c *Compositor) State() State {
	return State{
		Mode:          c.mode,
		Source:        c.load.Source,
		Active:        c.slots.active,
		Playing:       c.playing,
		Ready:         c.ready,
		PlayerReady:   c.playerReady,
		Visible:       c.visible,
		Running:       c.running,
		Crossfading:   c.crossfading,
		Transitioning: c.transition.inProgress,
		Muted:         c.muted,
		Controls:      c.load.Source != "" && !c.load.HideControls,
		ClickToPause:  c.load.ClickToPause,
		Effects:       len(c.effects),
		CompositeMode: c.composite,
	}
}

// Update advances the compositor by one tick at the current TPS. Call it from
// ebiten.Game.Update.
func (c *Compositor) Update() {
	c.Advance(time.Second / time.Duration(ebiten.TPS()))
}

// Advance delivers finished asset loads, advances the owned timeline by dt,
// applies the entry fade, and steps an attached script.
func (c *Compositor) Advance(dt time.Duration) {
	if p, ok := c.loader.(poller); ok {
		p.Poll()
	}
	if c.ownsTimeline {
		c.timeline.Update(dt)
	}
	if c.entry {
		act := c.slots.Active()
		if m := act.media; m != nil {
			act.opacity = entryOpacity(m.Position(), m.Duration())
		}
	}
	if c.debug && c.overlay != nil {
		c.overlay.update(dt, c)
	}
	if c.script != nil {
		c.script.step(c)
	}
}
