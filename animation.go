package helios

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween interpolates a single float64 from one value to another over a
// duration. Values are delivered through the onUpdate callback on every tick;
// onComplete fires once when the end value is reached. A cancelled tween
// stops writing and never completes.
type Tween struct {
	from, to   float64
	duration   time.Duration
	tween      *gween.Tween
	value      float64
	onUpdate   func(v float64)
	onComplete func()
	done       bool
	cancelled  bool
}

// From returns the start value.
func (t *Tween) From() float64 { return t.from }

// To returns the end value.
func (t *Tween) To() float64 { return t.to }

// Duration returns the configured duration.
func (t *Tween) Duration() time.Duration { return t.duration }

// Value returns the most recently computed value.
func (t *Tween) Value() float64 { return t.value }

// Done reports whether the tween reached its end value.
func (t *Tween) Done() bool { return t.done }

// Cancelled reports whether Cancel was called before completion.
func (t *Tween) Cancelled() bool { return t.cancelled }

// Cancel stops the tween. No further updates or completion callbacks occur.
func (t *Tween) Cancel() {
	if t.done {
		return
	}
	t.cancelled = true
}

// step advances the tween by dt and reports whether it is finished.
func (t *Tween) step(dt time.Duration) {
	finished := true
	if t.tween != nil {
		var v float32
		v, finished = t.tween.Update(float32(dt.Seconds()))
		t.value = float64(v)
	}
	if finished {
		t.value = t.to
	}
	if t.onUpdate != nil {
		t.onUpdate(t.value)
	}
	if finished && !t.cancelled {
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

// Timer runs a callback once after a delay.
type Timer struct {
	remaining time.Duration
	fn        func()
	fired     bool
	cancelled bool
}

// Cancel prevents the timer from firing.
func (t *Timer) Cancel() { t.cancelled = true }

// Fired reports whether the callback has run.
func (t *Timer) Fired() bool { return t.fired }

// Timeline drives tweens and timers. It is not safe for concurrent use; the
// host advances it from its update loop.
//
// Callbacks may register new tweens and timers; those are first advanced on
// the following Update.
type Timeline struct {
	tweens []*Tween
	timers []*Timer
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Tween registers an interpolation from -> to over d using fn (ease.Linear
// when nil). A non-positive duration jumps to the end value on the next Update.
func (tl *Timeline) Tween(from, to float64, d time.Duration, fn ease.TweenFunc, onUpdate func(float64), onComplete func()) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	t := &Tween{
		from:       from,
		to:         to,
		duration:   d,
		value:      from,
		onUpdate:   onUpdate,
		onComplete: onComplete,
	}
	if d > 0 {
		t.tween = gween.New(float32(from), float32(to), float32(d.Seconds()), fn)
	}
	tl.tweens = append(tl.tweens, t)
	return t
}

// After registers fn to run once d has elapsed.
func (tl *Timeline) After(d time.Duration, fn func()) *Timer {
	t := &Timer{remaining: d, fn: fn}
	tl.timers = append(tl.timers, t)
	return t
}

// Tweens returns the tweens still in flight. The returned slice MUST NOT be mutated.
func (tl *Timeline) Tweens() []*Tween {
	return tl.tweens
}

// Len returns the number of tweens still in flight.
func (tl *Timeline) Len() int {
	return len(tl.tweens)
}

// Update advances every tween and timer by dt.
func (tl *Timeline) Update(dt time.Duration) {
	n, nTimers := len(tl.tweens), len(tl.timers)
	for i := 0; i < n; i++ {
		t := tl.tweens[i]
		if t.cancelled || t.done {
			continue
		}
		t.step(dt)
	}
	tl.tweens = compactTweens(tl.tweens)

	for i := 0; i < nTimers; i++ {
		t := tl.timers[i]
		if t.cancelled || t.fired {
			continue
		}
		t.remaining -= dt
		if t.remaining <= 0 {
			t.fired = true
			t.fn()
		}
	}
	tl.timers = compactTimers(tl.timers)
}

func compactTweens(s []*Tween) []*Tween {
	j := 0
	for _, t := range s {
		if !t.done && !t.cancelled {
			s[j] = t
			j++
		}
	}
	clear(s[j:])
	return s[:j]
}

func compactTimers(s []*Timer) []*Timer {
	j := 0
	for _, t := range s {
		if !t.fired && !t.cancelled {
			s[j] = t
			j++
		}
	}
	clear(s[j:])
	return s[:j]
}

// fader owns the single in-flight tween animating one field. Starting a new
// fade cancels the previous one.
type fader struct {
	tween *Tween
}

// start cancels any running fade and registers a sinusoidal in-out tween.
func (f *fader) start(tl *Timeline, from, to float64, d time.Duration, onUpdate func(float64), onComplete func()) *Tween {
	f.cancel()
	var t *Tween
	t = tl.Tween(from, to, d, ease.InOutSine, onUpdate, func() {
		if f.tween == t {
			f.tween = nil
		}
		if onComplete != nil {
			onComplete()
		}
	})
	f.tween = t
	return t
}

// cancel stops the running fade, if any.
func (f *fader) cancel() {
	if f.tween != nil {
		f.tween.Cancel()
		f.tween = nil
	}
}

// active reports whether a fade is in flight.
func (f *fader) active() bool {
	return f.tween != nil
}
