package lime

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunConfig holds window options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	TPS           int
}

// Window adapts ebiten's game loop to lifecycle events. Handlers for each
// event are called in subscription order.
//
// Closing handlers act as a veto aggregator: every handler is called, and the
// window closes only if none of them returns false.
type Window struct {
	activated   []func()
	deactivated []func()
	closing     []func() bool
	closed      []func()
	moved       []func(x, y int)
	resized     []func(w, h int)
	updating    []func(dt float64) error
	rendering   []func(screen *ebiten.Image)

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string
	screenshots   []string

	focused        bool
	x, y           int
	w, h           int
	tps            int
	closeRequested bool
	isClosed       bool
}

// NewWindow creates a window that has not been shown yet.
func NewWindow() *Window {
	return &Window{focused: true}
}

// OnActivated subscribes fn to focus gain.
func (w *Window) OnActivated(fn func()) { w.activated = append(w.activated, fn) }

// OnDeactivated subscribes fn to focus loss.
func (w *Window) OnDeactivated(fn func()) { w.deactivated = append(w.deactivated, fn) }

// OnClosing subscribes fn to close requests. Returning false vetoes the close.
func (w *Window) OnClosing(fn func() bool) { w.closing = append(w.closing, fn) }

// OnClosed subscribes fn to the final close.
func (w *Window) OnClosed(fn func()) { w.closed = append(w.closed, fn) }

// OnMoved subscribes fn to window position changes.
func (w *Window) OnMoved(fn func(x, y int)) { w.moved = append(w.moved, fn) }

// OnResized subscribes fn to layout size changes.
func (w *Window) OnResized(fn func(w, h int)) { w.resized = append(w.resized, fn) }

// OnUpdating subscribes fn to the fixed-rate update tick. A non-nil error
// stops the game loop.
func (w *Window) OnUpdating(fn func(dt float64) error) { w.updating = append(w.updating, fn) }

// OnRendering subscribes fn to the draw pass.
func (w *Window) OnRendering(fn func(screen *ebiten.Image)) { w.rendering = append(w.rendering, fn) }

// Close asks the window to close at the next update. Closing handlers may veto.
func (w *Window) Close() {
	w.closeRequested = true
}

// IsClosed reports whether the window has closed.
func (w *Window) IsClosed() bool {
	return w.isClosed
}

func (w *Window) raiseFocus(focused bool) {
	if focused == w.focused {
		return
	}
	w.focused = focused
	handlers := w.deactivated
	if focused {
		handlers = w.activated
	}
	for _, fn := range handlers {
		fn()
	}
}

func (w *Window) raiseMoved(x, y int) {
	if x == w.x && y == w.y {
		return
	}
	w.x, w.y = x, y
	for _, fn := range w.moved {
		fn(x, y)
	}
}

func (w *Window) raiseResized(width, height int) {
	if width == w.w && height == w.h {
		return
	}
	w.w, w.h = width, height
	for _, fn := range w.resized {
		fn(width, height)
	}
}

// raiseClosing returns true if the close may proceed.
func (w *Window) raiseClosing() bool {
	allow := true
	for _, fn := range w.closing {
		if !fn() {
			allow = false
		}
	}
	return allow
}

func (w *Window) raiseClosed() {
	w.isClosed = true
	for _, fn := range w.closed {
		fn()
	}
}

func (w *Window) raiseUpdating(dt float64) error {
	for _, fn := range w.updating {
		if err := fn(dt); err != nil {
			return err
		}
	}
	return nil
}

// tryClose runs the closing handlers and reports whether the window closed.
func (w *Window) tryClose() bool {
	w.closeRequested = false
	if !w.raiseClosing() {
		logger.Debug("close vetoed")
		return false
	}
	w.raiseClosed()
	return true
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	w.raiseFocus(ebiten.IsFocused())
	w.raiseMoved(ebiten.WindowPosition())
	if ebiten.IsWindowBeingClosed() || w.closeRequested {
		if w.tryClose() {
			return ebiten.Termination
		}
	}
	tps := w.tps
	if tps <= 0 {
		tps = ebiten.TPS()
	}
	return w.raiseUpdating(1 / float64(tps))
}

// Draw implements ebiten.Game. Textures disposed since the previous frame
// are freed before any rendering handler runs.
func (w *Window) Draw(screen *ebiten.Image) {
	DeleteScheduledTextures()
	for _, fn := range w.rendering {
		fn(screen)
	}
	w.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical size follows the window size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.raiseResized(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(w *Window, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
		w.tps = cfg.TPS
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	logger.Info("window starting", zap.String("title", cfg.Title), zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
