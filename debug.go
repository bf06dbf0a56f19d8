package helios

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// frameStats records what the last Frame painted. Always recorded; printed
// only in debug mode.
type frameStats struct {
	cleared       bool
	inactiveDrawn bool
	activeDrawn   bool
	alphaPath     bool
	effects       []string
	composite     CompositeMode
	drawTime      time.Duration
}

// mediaLayers counts the media draws of the frame.
func (s frameStats) mediaLayers() int {
	n := 0
	if s.inactiveDrawn {
		n++
	}
	if s.activeDrawn {
		n++
	}
	return n
}

// SetDebugMode enables per-frame stats on stderr and the on-screen overlay.
func (c *Compositor) SetDebugMode(on bool) {
	c.debug = on
	if on && c.overlay == nil {
		c.overlay = newDebugOverlay()
	}
}

// debugLog prints frame stats to stderr.
func (c *Compositor) debugLog(st frameStats) {
	if !c.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[helios] draw: %v | cleared: %t | media: %d | alpha: %t | composite: %s\n",
		st.drawTime, st.cleared, st.mediaLayers(), st.alphaPath, st.composite)
	if len(st.effects) > 0 {
		_, _ = fmt.Fprintf(os.Stderr, "[helios] effects: %s\n", strings.Join(st.effects, ", "))
	}
}
