package helios

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeMedia records what the compositor asks of it.
type fakeMedia struct {
	loads   []string
	playing bool
	plays   int
	pauses  int
	volume  float64
	muted   bool
	attrs   map[string]string
	frame   *ebiten.Image
	pos     time.Duration
	dur     time.Duration
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{attrs: map[string]string{}, frame: ebiten.NewImage(16, 9)}
}

func (m *fakeMedia) Play() {
	m.playing = true
	m.plays++
}

func (m *fakeMedia) Pause() {
	m.playing = false
	m.pauses++
}

func (m *fakeMedia) Load(locator string)        { m.loads = append(m.loads, locator) }
func (m *fakeMedia) SetVolume(v float64)        { m.volume = v }
func (m *fakeMedia) SetMuted(mu bool)           { m.muted = mu }
func (m *fakeMedia) SetAttr(name, value string) { m.attrs[name] = value }
func (m *fakeMedia) RemoveAttr(name string)     { delete(m.attrs, name) }
func (m *fakeMedia) Frame() *ebiten.Image       { return m.frame }
func (m *fakeMedia) Position() time.Duration    { return m.pos }
func (m *fakeMedia) Duration() time.Duration    { return m.dur }

// lastLoad returns the most recent locator, or "" if none.
func (m *fakeMedia) lastLoad() string {
	if len(m.loads) == 0 {
		return ""
	}
	return m.loads[len(m.loads)-1]
}

// countLoads returns how many times locator was loaded.
func (m *fakeMedia) countLoads(locator string) int {
	n := 0
	for _, l := range m.loads {
		if l == locator {
			n++
		}
	}
	return n
}

// fakeLoader holds load requests until the test resolves them.
type fakeLoader struct {
	pending map[string][]func(*ebiten.Image, error)
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{pending: map[string][]func(*ebiten.Image, error){}}
}

func (l *fakeLoader) Load(src string, done func(*ebiten.Image, error)) {
	l.pending[src] = append(l.pending[src], done)
}

func (l *fakeLoader) resolve(src string, img *ebiten.Image, err error) {
	for _, done := range l.pending[src] {
		done(img, err)
	}
	delete(l.pending, src)
}

// testRig bundles a compositor with its fakes.
type testRig struct {
	c        *Compositor
	a, b     *fakeMedia
	loader   *fakeLoader
	events   []Event
	warnings []Warning
}

func newRig(t *testing.T, mutate func(*Config)) *testRig {
	t.Helper()
	r := &testRig{a: newFakeMedia(), b: newFakeMedia(), loader: newFakeLoader()}
	cfg := Config{
		Width:     64,
		Height:    36,
		A:         r.a,
		B:         r.b,
		Loader:    r.loader,
		Resolver:  Resolver{Prefix: "video/", Suffix: "-hd", Extension: ".webm", NoAlphaSuffix: "-noalpha"},
		Notifier:  NotifierFunc(func(e Event) { r.events = append(r.events, e) }),
		OnWarning: func(w Warning) { r.warnings = append(r.warnings, w) },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.c = c
	return r
}

// media returns the fake behind slot id.
func (r *testRig) media(id SlotID) *fakeMedia {
	if id == SlotA {
		return r.a
	}
	return r.b
}

// ready reports can-play-through for the active slot.
func (r *testRig) ready() {
	r.c.HandleMediaEvent(r.c.Active().ID(), MediaCanPlayThrough)
}

// advance steps the compositor in 10ms ticks.
func (r *testRig) advance(d time.Duration) {
	const step = 10 * time.Millisecond
	for ; d > 0; d -= step {
		r.c.Advance(step)
	}
}

// loadAndSettle loads src with the given crossfade, makes it ready and runs
// the clock until any cross-fade has settled.
func (r *testRig) loadAndSettle(src string, crossfade Fade) {
	r.c.LoadSource(LoadOptions{Source: src, Crossfade: crossfade})
	r.ready()
	r.advance(crossfade.Duration + 500*time.Millisecond)
}

func (r *testRig) countEvents(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (r *testRig) hasWarning(kind WarningKind) bool {
	for _, w := range r.warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %f, want ~%f", name, got, want)
	}
}
