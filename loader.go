package helios

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"

	// Registered decoders for effect images and particle sprites.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Loader loads images for effects. done must be called on the compositor's
// goroutine, from Load itself or from Compositor.Update.
type Loader interface {
	Load(src string, done func(*ebiten.Image, error))
}

// poller is implemented by loaders that finish work in the background and
// deliver results when polled. Compositor.Advance polls once per tick.
type poller interface {
	Poll()
}

type loadResult struct {
	src  string
	img  image.Image
	err  error
	done func(*ebiten.Image, error)
}

// FileLoader decodes PNG, JPEG, BMP and WebP images from a file system in
// background goroutines. Concurrent loads of the same path share one decode.
// Decoded images are uploaded and cached on the next Poll.
type FileLoader struct {
	// MaxDim, when positive, downscales decoded images whose width or height
	// exceeds it before upload.
	MaxDim int

	fsys  fs.FS
	group singleflight.Group
	cache map[string]*ebiten.Image

	mu       sync.Mutex
	finished []loadResult
}

// NewFileLoader returns a loader reading from fsys, or from the working
// directory when fsys is nil.
func NewFileLoader(fsys fs.FS) *FileLoader {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	return &FileLoader{fsys: fsys, cache: make(map[string]*ebiten.Image)}
}

// Load calls done immediately for cached images. Otherwise it decodes src in
// the background and calls done from a later Poll.
func (l *FileLoader) Load(src string, done func(*ebiten.Image, error)) {
	if img, ok := l.cache[src]; ok {
		done(img, nil)
		return
	}
	go func() {
		v, err, _ := l.group.Do(src, func() (any, error) {
			return l.decode(src)
		})
		var img image.Image
		if err == nil {
			img = v.(image.Image)
		}
		l.mu.Lock()
		l.finished = append(l.finished, loadResult{src: src, img: img, err: err, done: done})
		l.mu.Unlock()
	}()
}

// Poll uploads finished decodes and runs their callbacks.
func (l *FileLoader) Poll() {
	l.mu.Lock()
	finished := l.finished
	l.finished = nil
	l.mu.Unlock()

	for _, r := range finished {
		if r.err != nil {
			r.done(nil, r.err)
			continue
		}
		img, ok := l.cache[r.src]
		if !ok {
			img = ebiten.NewImageFromImage(r.img)
			l.cache[r.src] = img
		}
		r.done(img, nil)
	}
}

func (l *FileLoader) decode(src string) (image.Image, error) {
	f, err := l.fsys.Open(src)
	if err != nil {
		return nil, fmt.Errorf("helios: load %s: %w", src, err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("helios: decode %s: %w", src, err)
	}
	return fitWithin(img, l.MaxDim), nil
}

// fitWithin scales img down, keeping its aspect ratio, so neither side
// exceeds maxDim. Non-positive maxDim leaves img untouched.
func fitWithin(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
