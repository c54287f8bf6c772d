package lime

import (
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// deallocator is the part of *ebiten.Image the disposal queue needs.
type deallocator interface {
	Deallocate()
}

// Texture owns a GPU image. Dispose (or the garbage collector, through a
// finalizer) does not free the image immediately: it schedules it on a
// pending-deletion list that the render thread drains at the next frame
// boundary with DeleteScheduledTextures. Finalizers run on their own
// goroutine, so the list is the only state in lime guarded by a mutex.
type Texture struct {
	image *ebiten.Image
	w, h  int
}

// NewTexture allocates a w x h texture.
func NewTexture(w, h int) *Texture {
	return wrapTexture(ebiten.NewImage(w, h))
}

// NewTextureFromImage takes ownership of img.
func NewTextureFromImage(img *ebiten.Image) *Texture {
	return wrapTexture(img)
}

func wrapTexture(img *ebiten.Image) *Texture {
	b := img.Bounds()
	t := &Texture{image: img, w: b.Dx(), h: b.Dy()}
	runtime.SetFinalizer(t, (*Texture).Dispose)
	return t
}

// Image returns the underlying image, or nil after Dispose.
func (t *Texture) Image() *ebiten.Image {
	return t.image
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.w
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.h
}

// Fill fills the entire texture with the given color.
func (t *Texture) Fill(c Color) {
	if t.image != nil {
		t.image.Fill(c.toRGBA())
	}
}

// Dispose schedules the image for deletion. Safe to call more than once.
func (t *Texture) Dispose() {
	if t.image == nil {
		return
	}
	scheduleDeletion(t.image)
	t.image = nil
	runtime.SetFinalizer(t, nil)
}

var pendingDeletion struct {
	mu    sync.Mutex
	items []deallocator
}

func scheduleDeletion(d deallocator) {
	pendingDeletion.mu.Lock()
	pendingDeletion.items = append(pendingDeletion.items, d)
	pendingDeletion.mu.Unlock()
}

// DeleteScheduledTextures frees every image scheduled by Texture.Dispose and
// returns how many were freed. Call it from the render thread between frames.
func DeleteScheduledTextures() int {
	pendingDeletion.mu.Lock()
	items := pendingDeletion.items
	pendingDeletion.items = nil
	pendingDeletion.mu.Unlock()

	for _, d := range items {
		d.Deallocate()
	}
	if len(items) > 0 {
		logger.Debug("deleted scheduled textures", zap.Int("count", len(items)))
	}
	return len(items)
}

// ScheduledTextureCount returns the number of images waiting for deletion.
func ScheduledTextureCount() int {
	pendingDeletion.mu.Lock()
	defer pendingDeletion.mu.Unlock()
	return len(pendingDeletion.items)
}
