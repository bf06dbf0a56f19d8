package helios

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot queues a labeled capture of the composited surface. It is taken
// at the end of the next painted frame, so the debug overlay never appears in
// it. Files go to Config.ScreenshotDir.
func (c *Compositor) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// captureSurface writes one PNG per queued label from a single readback of
// the surface.
func (c *Compositor) captureSurface() {
	if len(c.screenshotQueue) == 0 || c.surface == nil {
		return
	}
	labels := c.screenshotQueue
	c.screenshotQueue = nil

	img := image.NewNRGBA(c.surface.Bounds())
	c.surface.ReadPixels(img.Pix)
	straightenAlpha(img.Pix)

	stamp := time.Now().Format("20060102_150405")
	var errs []error
	if err := os.MkdirAll(c.screenshotDir, 0o755); err != nil {
		errs = append(errs, err)
	} else {
		for i, label := range labels {
			path := filepath.Join(c.screenshotDir, captureName(stamp, c.captures+i, label))
			errs = append(errs, savePNG(path, img))
		}
		c.captures += len(labels)
	}
	if err := errors.Join(errs...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[helios] screenshot: %v\n", err)
	}
}

// captureName numbers captures so labels reused within one second do not
// overwrite each other.
func captureName(stamp string, seq int, label string) string {
	return fmt.Sprintf("%s_%03d_%s.png", stamp, seq, sanitizeLabel(label))
}

// straightenAlpha converts premultiplied RGBA to straight alpha in place.
func straightenAlpha(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		a := int(pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for j := i; j < i+3; j++ {
			pix[j] = uint8(min(int(pix[j])*255/a, 255))
		}
	}
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', replaces anything
// else with '_', and names empty labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
