package helios

import (
	"testing"
	"time"
)

func TestSlotPairSwapIsInvolution(t *testing.T) {
	p := newSlotPair(newFakeMedia(), newFakeMedia())
	a, b := p.Active(), p.Inactive()
	if a.ID() != SlotA || b.ID() != SlotB {
		t.Fatalf("initial active = %s, want A", a.ID())
	}
	p.swap()
	if p.Active() != b || p.Inactive() != a {
		t.Error("swap did not exchange slots")
	}
	p.swap()
	if p.Active() != a || p.Inactive() != b {
		t.Error("swap twice should restore the original pairing")
	}
}

func TestSlotNilMediaIsSafe(t *testing.T) {
	s := newSlot(SlotB, nil)
	s.load("x")
	s.play()
	s.pause()
	s.setVolume(0.5)
	s.setMuted(true)
	if s.frame() != nil || s.Source() != "x" || s.Volume() != 0.5 {
		t.Error("nil-media slot should still track its own state")
	}
}

func TestEntryOpacity(t *testing.T) {
	dur := 10 * time.Second
	tests := []struct {
		pos  time.Duration
		want float64
	}{
		{0, 1},
		{5 * time.Second, 0.6},
		{9 * time.Second, 0.2},
		{9500 * time.Millisecond, 0.1},
		{10 * time.Second, 0},
		{11 * time.Second, 0},
	}
	for _, tt := range tests {
		assertNear(t, tt.pos.String(), entryOpacity(tt.pos, dur), tt.want, 1e-9)
	}
	if entryOpacity(time.Second, 0) != 1 {
		t.Error("unknown duration should leave opacity at 1")
	}
}

func TestAlphaModeEnabled(t *testing.T) {
	tests := map[AlphaMode]bool{AlphaNone: false, "false": false, AlphaSplit: true, AlphaSame: true}
	for m, want := range tests {
		if got := m.enabled(); got != want {
			t.Errorf("%q.enabled() = %v, want %v", m, got, want)
		}
	}
}

func TestResolverLocate(t *testing.T) {
	r := Resolver{Prefix: "video/", Suffix: "-720", Extension: ".mp4"}
	if got := r.Locate("intro"); got != "video/intro-720.mp4" {
		t.Errorf("Locate = %q", got)
	}
}
