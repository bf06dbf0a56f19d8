package helios

import (
	"errors"
	"testing"
	"time"
)

func effectNames(c *Compositor) []string {
	var names []string
	for _, e := range c.Effects() {
		names = append(names, e.Name())
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCreateEffectAppendsInOrder(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("haze", KindGradient, EffectOptions{})
	r.c.CreateEffect("dust", KindParticle, EffectOptions{})
	r.c.CreateEffect("logo", KindImage, EffectOptions{Image: ImageOptions{Source: "logo.png"}})

	want := []string{"haze", "dust", "logo"}
	if got := effectNames(r.c); !equalNames(got, want) {
		t.Fatalf("effects = %v, want %v", got, want)
	}
	if r.c.Effect("dust").Kind() != KindParticle {
		t.Errorf("dust kind = %s", r.c.Effect("dust").Kind())
	}
	if !r.c.State().Visible {
		t.Error("CreateEffect should start the compositor")
	}
}

func TestCreateEffectDuplicateNameWarns(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("rain", KindParticle, EffectOptions{Particle: ParticleOptions{Count: 20}})
	first := r.c.Effect("rain")

	r.c.CreateEffect("rain", KindGradient, EffectOptions{})

	if n := len(r.c.Effects()); n != 1 {
		t.Fatalf("effects = %d, want 1", n)
	}
	if r.c.Effect("rain") != first {
		t.Error("duplicate create replaced the existing effect")
	}
	if r.c.Effect("rain").Kind() != KindParticle {
		t.Errorf("kind = %s, want particle", r.c.Effect("rain").Kind())
	}
	if pe := first.(*particleEffect); len(pe.particles) != 20 {
		t.Errorf("particles = %d, want 20", len(pe.particles))
	}
	if !r.hasWarning(WarnDuplicateEffect) {
		t.Error("expected a duplicate-effect warning")
	}
}

func TestCreateEffectUnknownKindWarns(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("smoke", EffectKind("smoke"), EffectOptions{})
	if len(r.c.Effects()) != 0 {
		t.Error("unknown kind should not be added")
	}
	if !r.hasWarning(WarnUnknownEffectKind) {
		t.Error("expected an unknown-effect-kind warning")
	}
}

func TestCreateImageEffectWithoutSourceWarns(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("logo", KindImage, EffectOptions{})
	if r.c.Effect("logo") == nil {
		t.Fatal("image effect without a source should still be created")
	}
	if r.c.Effect("logo").Ready() {
		t.Error("image effect without a source should never be ready")
	}
	if !r.hasWarning(WarnMissingSource) {
		t.Error("expected a missing-source warning")
	}
}

func TestImageEffectReadyAfterLoad(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("logo", KindImage, EffectOptions{Width: 32, Height: 32, Image: ImageOptions{Source: "logo.png"}})
	e := r.c.Effect("logo")
	if e.Ready() {
		t.Fatal("ready before load completed")
	}
	r.loader.resolve("logo.png", newFakeMedia().frame, nil)
	if !e.Ready() {
		t.Error("not ready after load completed")
	}
}

func TestImageEffectLoadErrorStaysNotReady(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("logo", KindImage, EffectOptions{Image: ImageOptions{Source: "missing.png"}})
	r.loader.resolve("missing.png", nil, errors.New("not found"))
	if r.c.Effect("logo").Ready() {
		t.Error("effect should not be ready after a failed load")
	}
}

func TestLoadCompletingAfterRemovalIsIgnored(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("logo", KindImage, EffectOptions{Image: ImageOptions{Source: "logo.png"}})
	e := r.c.Effect("logo")
	r.c.RemoveEffect("logo", NoFade)
	r.loader.resolve("logo.png", newFakeMedia().frame, nil)
	if e.Ready() || e.Layer() != nil {
		t.Error("removed effect should stay released")
	}
}

func TestRemoveMissingEffectWarns(t *testing.T) {
	r := newRig(t, nil)
	r.c.RemoveEffect("ghost", NoFade)
	if !r.hasWarning(WarnMissingEffect) {
		t.Error("expected a missing-effect warning")
	}
}

func TestRemoveEffectKeepsOrder(t *testing.T) {
	r := newRig(t, nil)
	for _, name := range []string{"a", "b", "c", "d"} {
		r.c.CreateEffect(name, KindGradient, EffectOptions{Width: 8, Height: 8})
	}
	b := r.c.Effect("b")

	r.c.RemoveEffect("b", NoFade)

	if got, want := effectNames(r.c), []string{"a", "c", "d"}; !equalNames(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
	if r.c.Effect("b") != nil {
		t.Error("lookup still holds the removed effect")
	}
	if b.Layer() != nil {
		t.Error("removed effect layer was not released")
	}
}

func TestRemoveEffectWithFade(t *testing.T) {
	r := newRig(t, nil)
	for _, name := range []string{"a", "b", "c"} {
		r.c.CreateEffect(name, KindGradient, EffectOptions{Width: 8, Height: 8})
	}
	b := r.c.Effect("b")

	r.c.RemoveEffect("b", FadeOver(300*time.Millisecond))
	if len(r.c.Effects()) != 3 {
		t.Fatal("effect removed before its fade finished")
	}
	r.advance(150 * time.Millisecond)
	if op := b.Opacity(); op <= 0 || op >= 1 {
		t.Errorf("mid-fade opacity = %f, want in (0, 1)", op)
	}
	r.advance(200 * time.Millisecond)
	if got, want := effectNames(r.c), []string{"a", "c"}; !equalNames(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestRemoveAllEffectsWithFade(t *testing.T) {
	r := newRig(t, nil)
	for _, name := range []string{"a", "b", "c"} {
		r.c.CreateEffect(name, KindGradient, EffectOptions{Width: 8, Height: 8})
	}
	before := r.c.Timeline().Len()

	called := false
	r.c.RemoveAllEffects(FadeOver(500*time.Millisecond), func() { called = true })

	if !called {
		t.Error("done should run once the removals are issued")
	}
	if got := r.c.Timeline().Len(); got != before+3 {
		t.Fatalf("tweens = %d, want %d", got, before+3)
	}
	for _, tw := range r.c.Timeline().Tweens() {
		if tw.To() != 0 || tw.Duration() != 500*time.Millisecond {
			t.Errorf("tween to=%f over %s, want 0 over 500ms", tw.To(), tw.Duration())
		}
	}
	if len(r.c.Effects()) != 3 {
		t.Error("effects removed before their fades finished")
	}

	r.advance(600 * time.Millisecond)
	if n := len(r.c.Effects()); n != 0 {
		t.Errorf("effects = %d after fades, want 0", n)
	}
}

func TestRemoveAllEffectsIgnoresEffectsAddedAfterCall(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("a", KindGradient, EffectOptions{Width: 8, Height: 8})
	r.c.RemoveAllEffects(FadeOver(100*time.Millisecond), nil)
	r.c.CreateEffect("b", KindGradient, EffectOptions{Width: 8, Height: 8})
	r.advance(200 * time.Millisecond)
	if got, want := effectNames(r.c), []string{"b"}; !equalNames(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestEffectFadeIn(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffect("haze", KindGradient, EffectOptions{
		Width: 8, Height: 8,
		Opacity: 0.6,
		FadeIn:  FadeOver(200 * time.Millisecond),
	})
	e := r.c.Effect("haze")
	if e.Opacity() != 0 {
		t.Errorf("opacity at creation = %f, want 0", e.Opacity())
	}
	r.advance(300 * time.Millisecond)
	assertNear(t, "opacity", e.Opacity(), 0.6, 1e-6)
}

func TestCompositeModeFollowsEffectsAndPlayback(t *testing.T) {
	tests := []struct {
		playing bool
		effects int
		want    CompositeMode
	}{
		{false, 0, CompositePaintOver},
		{true, 0, CompositePaintOver},
		{false, 2, CompositePaintOver},
		{true, 1, CompositeEraseUnder},
	}
	for _, tt := range tests {
		if got := compositeModeFor(tt.playing, tt.effects); got != tt.want {
			t.Errorf("compositeModeFor(%v, %d) = %s, want %s", tt.playing, tt.effects, got, tt.want)
		}
	}

	r := newRig(t, nil)
	r.loadAndSettle("intro", NoFade)
	if got := r.c.CompositeMode(); got != CompositePaintOver {
		t.Errorf("playing without effects = %s, want source-over", got)
	}
	r.c.CreateEffect("haze", KindGradient, EffectOptions{Width: 8, Height: 8})
	if got := r.c.CompositeMode(); got != CompositeEraseUnder {
		t.Errorf("playing with effects = %s, want destination-out", got)
	}
	r.c.StopVideo(true)
	if got := r.c.CompositeMode(); got != CompositePaintOver {
		t.Errorf("stopped with effects = %s, want source-over", got)
	}
	r.c.PlayVideo()
	r.c.RemoveEffect("haze", NoFade)
	if got := r.c.CompositeMode(); got != CompositePaintOver {
		t.Errorf("after removal = %s, want source-over", got)
	}
}

func TestCreateEffectsBatch(t *testing.T) {
	r := newRig(t, nil)
	r.c.CreateEffects([]EffectSpec{
		{Name: "haze", Kind: KindGradient, Options: EffectOptions{Width: 8, Height: 8}},
		{Name: "dust", Kind: KindParticle, Options: EffectOptions{Width: 8, Height: 8}},
	})
	if got, want := effectNames(r.c), []string{"haze", "dust"}; !equalNames(got, want) {
		t.Errorf("effects = %v, want %v", got, want)
	}
}

func TestEffectsIgnoredInMobileMode(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.Capabilities.Mobile = true
		cfg.Fallback = newFakeMedia()
	})
	r.c.CreateEffect("haze", KindGradient, EffectOptions{})
	if len(r.c.Effects()) != 0 {
		t.Error("effects should be ignored in mobile mode")
	}
	called := false
	r.c.RemoveAllEffects(NoFade, func() { called = true })
	if called {
		t.Error("RemoveAllEffects should return early in mobile mode")
	}
}

func TestParseEffectKind(t *testing.T) {
	for _, s := range []string{"particle", "gradient", "image"} {
		k, err := ParseEffectKind(s)
		if err != nil || string(k) != s {
			t.Errorf("ParseEffectKind(%q) = %q, %v", s, k, err)
		}
	}
	if _, err := ParseEffectKind("smoke"); !errors.Is(err, ErrUnknownEffectKind) {
		t.Errorf("ParseEffectKind(smoke) error = %v, want ErrUnknownEffectKind", err)
	}
}
