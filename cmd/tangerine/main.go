// Tangerine is a minimal editor shell around the animation document core.
//
// It opens the sample document (twenty images with prepared keyframes) and
// previews it. Optionally a script is replayed into the document one step per
// tick.
//
// Keys:
//   - Space: play or pause.
//   - Left / Right: previous or next frame (Shift: jump 10).
//   - Home: frame 0.
//   - Up / Down: move the row selection.
//   - Left click: select the row of the image under the cursor.
//   - Enter: expand or collapse the selected node.
//   - K: key the selected property at the current frame.
//   - Delete: remove keys inside the selected grid spans.
//   - Ctrl+Z / Ctrl+Y: undo / redo.
//   - F12: save a screenshot.
//   - Escape: close (asks twice when the document has unsaved edits).
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/ecs"
	"github.com/phanxgames/lime/tangerine/config"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/phanxgames/lime/tangerine/script"
	"github.com/phanxgames/lime/tangerine/timeline"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	scriptPath := flag.String("script", "", "script to replay into the sample document")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	lime.SetLogger(logger)
	lime.SetDebugMode(cfg.Debug)

	ed, err := newEditor(cfg, logger)
	if err != nil {
		logger.Fatal("editor", zap.Error(err))
	}
	err = lime.Run(ed.window, lime.RunConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    cfg.Window.TPS,
	})
	if err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}

type editor struct {
	cfg       *config.Config
	log       *zap.Logger
	workspace *core.Workspace
	window    *lime.Window
	renderer  *lime.Renderer
	world     donburi.World
	sink      *ecs.DonburiSink
	runner    *script.Runner

	playing    bool
	elapsed    float64
	cursor     int
	closeAsked bool
	status     string
	flash      float64
	flashTween *lime.TweenGroup
}

func newEditor(cfg *config.Config, logger *zap.Logger) (*editor, error) {
	e := &editor{
		cfg:       cfg,
		log:       logger.Named("editor"),
		workspace: core.NewWorkspace(logger),
		window:    lime.NewWindow(),
		renderer:  lime.NewRenderer(),
		world:     donburi.NewWorld(),
		playing:   cfg.Playback.Autoplay,
	}
	e.renderer.ClearColor = lime.Color{R: 0.12, G: 0.12, B: 0.14, A: 1}

	doc := core.NewSampleDocument(
		core.WithSettings(cfg.Document),
		core.WithLogger(logger),
		core.WithDebug(cfg.Debug),
	)
	e.workspace.Open(doc)

	e.sink = ecs.NewDonburiSink(e.world)
	doc.Subscribe(e.sink)
	ecs.DocumentEventType.Subscribe(e.world, e.onDocumentEvent)

	if cfg.Script != "" {
		r, err := script.LoadFile(cfg.Script)
		if err != nil {
			return nil, err
		}
		r.SetLogger(logger)
		e.runner = r
	}

	e.window.ScreenshotDir = cfg.Window.ScreenshotDir
	e.window.OnUpdating(e.update)
	e.window.OnRendering(e.draw)
	e.window.OnClosing(e.closing)
	e.window.OnClosed(func() { e.log.Info("closed") })
	e.window.OnResized(func(w, h int) { e.log.Debug("resized", zap.Int("width", w), zap.Int("height", h)) })
	return e, nil
}

func (e *editor) doc() *core.Document {
	return e.workspace.Current()
}

func (e *editor) onDocumentEvent(_ donburi.World, ev core.Event) {
	switch ev.Kind {
	case core.EventUndone, core.EventRedone:
		e.flash = 1
		e.flashTween = lime.TweenValue(&e.flash, 0, 0.4, ease.OutQuad)
	case core.EventFrameChanged, core.EventRowsRebuilt:
		return
	}
	e.status = ev.Kind.String()
}

func (e *editor) closing() bool {
	if !e.workspace.HasModified() || e.closeAsked {
		return true
	}
	e.closeAsked = true
	e.status = "unsaved edits, press Escape again to quit"
	return false
}

func (e *editor) update(dt float64) error {
	doc := e.doc()
	e.handleKeys(doc)

	if e.playing {
		e.elapsed += dt
		step := 1 / float64(doc.Settings().AnimationFPS)
		for e.elapsed >= step {
			e.elapsed -= step
			next := doc.CurrentFrame() + 1
			if next >= doc.Settings().FrameCount {
				if !e.cfg.Playback.Loop {
					e.playing = false
					break
				}
				next = 0
			}
			doc.SetCurrentFrame(next)
		}
	}

	if e.runner != nil && !e.runner.Done() {
		if err := e.runner.Step(doc); err != nil {
			e.log.Warn("script", zap.Error(err))
			e.status = err.Error()
		}
	}

	if e.flashTween != nil {
		e.flashTween.Update(float32(dt))
		if e.flashTween.Done {
			e.flashTween = nil
		}
	}

	ecs.DocumentEventType.ProcessEvents(e.world)
	return nil
}

func (e *editor) handleKeys(doc *core.Document) {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	jump := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		jump = 10
	}
	h := doc.History()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.window.Close()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		h.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyY):
		h.Redo()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		e.playing = !e.playing
		e.elapsed = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		doc.SetCurrentFrame(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		doc.SetCurrentFrame(doc.CurrentFrame() - jump)
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		doc.SetCurrentFrame(doc.CurrentFrame() + jump)
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		e.moveCursor(doc, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		e.moveCursor(doc, 1)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		e.pick(doc, x, y)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if r := doc.Row(e.cursor); r != nil && !r.IsPropertyRow() {
			core.PerformExpandNode(doc, r.Node, !core.IsExpanded(r.Node))
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		e.keySelection(doc)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		e.window.Screenshot(fmt.Sprintf("frame-%03d", doc.CurrentFrame()))
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		if n := timeline.DeleteSelectedKeys(doc); n > 0 {
			e.status = fmt.Sprintf("deleted %d keys", n)
		}
	}
}

func (e *editor) moveCursor(doc *core.Document, delta int) {
	rows := doc.Rows()
	if len(rows) == 0 {
		return
	}
	e.selectRow(doc, max(0, min(len(rows)-1, e.cursor+delta)))
}

// pick selects the row of the image node under the screen point. Transforms
// come from the last drawn frame.
func (e *editor) pick(doc *core.Document, x, y int) {
	n := lime.NodeAt(doc.Root(), float64(x), float64(y))
	if n == nil {
		return
	}
	doc.Rows()
	if r := doc.RowFor(n, ""); r.Index() >= 0 {
		e.selectRow(doc, r.Index())
	}
}

// selectRow moves the cursor to row and selects a one-frame span on it at
// the current frame, as one undo unit.
func (e *editor) selectRow(doc *core.Document, row int) {
	e.cursor = row
	frame := doc.CurrentFrame()
	doc.History().Transaction(func() {
		core.PerformClearRowSelection(doc)
		timeline.PerformClearGridSpans(doc)
		timeline.PerformSelectGridSpan(doc, e.cursor, timeline.NewGridSpan(frame, frame+1))
	})
}

// keySelection writes the current value of every selected property row as a
// keyframe at the current frame.
func (e *editor) keySelection(doc *core.Document) {
	rows := doc.SelectedRows()
	if len(rows) == 0 {
		return
	}
	doc.History().Transaction(func() {
		for _, r := range rows {
			if !r.IsPropertyRow() {
				continue
			}
			v := r.Node.Get(r.Property)
			core.PerformSetKeyframe(doc, r.Node, r.Property, doc.CurrentFrame(), v, doc.Settings().DefaultEasing)
		}
	})
}

func (e *editor) draw(screen *ebiten.Image) {
	doc := e.doc()
	e.renderer.Draw(screen, doc.Root(), doc.CurrentFrame())
	if e.flash > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Repeat("*", int(e.flash*20)), 0, screen.Bounds().Dy()-16)
	}

	state := e.sink.State()
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d/%d", state.Frame, doc.Settings().FrameCount)
	if e.playing {
		b.WriteString(" (playing)")
	}
	if state.Modified {
		b.WriteString(" *")
	}
	fmt.Fprintf(&b, "\nundo %v  redo %v  events %d\n", state.CanUndo, state.CanRedo, state.Events)
	if r := doc.Row(e.cursor); r != nil {
		fmt.Fprintf(&b, "row %d: %s %v\n", e.cursor, r.Caption(), timeline.Spans(r))
	}
	if e.status != "" {
		b.WriteString(e.status)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
