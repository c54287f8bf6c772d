package core

import (
	"github.com/phanxgames/lime"
	"go.uber.org/zap"
)

// Document is an open scene: one root node, its history and settings, and
// the editor state built on top of them (timeline rows, row selection,
// current frame).
type Document struct {
	path     string
	root     *lime.Node
	history  *History
	settings Settings
	readOnly bool
	debug    bool
	frame    int

	rows      []*Row
	rowCache  map[rowKey]*Row
	rowsDirty bool
	selected  []rowKey

	sinks    []sinkEntry
	nextSink int
	log      *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithPath sets the document path.
func WithPath(path string) Option {
	return func(d *Document) { d.path = path }
}

// WithRoot uses root instead of a new empty frame.
func WithRoot(root *lime.Node) Option {
	return func(d *Document) { d.root = root }
}

// WithSettings replaces DefaultSettings.
func WithSettings(s Settings) Option {
	return func(d *Document) { d.settings = s }
}

// WithLogger sets the logger for the document and its history.
func WithLogger(l *zap.Logger) Option {
	return func(d *Document) { d.log = l }
}

// WithDebug enables the structural check after every undo. Defaults to
// lime.DebugMode().
func WithDebug(enabled bool) Option {
	return func(d *Document) { d.debug = enabled }
}

// ReadOnly makes every Perform on the document panic.
func ReadOnly() Option {
	return func(d *Document) { d.readOnly = true }
}

// NewDocument creates a document. Without WithRoot the root is an empty
// frame sized from the settings.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		settings:  DefaultSettings(),
		debug:     lime.DebugMode(),
		rowCache:  make(map[rowKey]*Row),
		rowsDirty: true,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.root == nil {
		d.root = lime.NewFrame("Root")
		d.root.Size = lime.Vec2{X: d.settings.SceneWidth, Y: d.settings.SceneHeight}
	}
	d.log = d.log.Named("document")
	if d.path != "" {
		d.log = d.log.With(zap.String("path", d.path))
	}
	d.history = newHistory(d, d.log.Named("history"))
	return d
}

// NullDocument returns an empty read-only document. The workspace hands it
// out when no document is open so callers never see nil.
func NullDocument() *Document {
	return NewDocument(ReadOnly(), WithRoot(lime.NewFrame("Null")))
}

// Root returns the root node.
func (d *Document) Root() *lime.Node { return d.root }

// History returns the document history.
func (d *Document) History() *History { return d.history }

// Settings returns a copy of the document settings.
func (d *Document) Settings() Settings { return d.settings }

// SetSettings validates and replaces the settings. Settings are editor
// preferences and are not part of the undo history.
func (d *Document) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	d.settings = s
	return nil
}

// Path returns the document path, empty for unsaved documents.
func (d *Document) Path() string { return d.path }

// SetPath changes the document path.
func (d *Document) SetPath(path string) { d.path = path }

// IsReadOnly reports whether the document rejects operations.
func (d *Document) IsReadOnly() bool { return d.readOnly }

// IsModified reports whether the document has unsaved changes.
func (d *Document) IsModified() bool { return d.history.IsDocumentModified() }

// CurrentFrame returns the timeline cursor.
func (d *Document) CurrentFrame() int { return d.frame }

// SetCurrentFrame moves the timeline cursor. Negative frames clamp to 0.
func (d *Document) SetCurrentFrame(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame == d.frame {
		return
	}
	d.frame = frame
	d.publish(Event{Kind: EventFrameChanged})
}

// Subscribe adds a sink for document events and returns a function that
// removes it.
func (d *Document) Subscribe(s EventSink) (unsubscribe func()) {
	d.nextSink++
	id := d.nextSink
	d.sinks = append(d.sinks, sinkEntry{id: id, sink: s})
	return func() {
		for i, x := range d.sinks {
			if x.id == id {
				d.sinks = append(d.sinks[:i], d.sinks[i+1:]...)
				return
			}
		}
	}
}

func (d *Document) publish(e Event) {
	e.Document = d
	e.Frame = d.frame
	e.Modified = d.history.IsDocumentModified()
	for _, s := range d.sinks {
		s.sink.Publish(e)
	}
}

type sinkEntry struct {
	id   int
	sink EventSink
}
