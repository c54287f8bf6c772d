package core

import "go.uber.org/zap"

// Workspace tracks the open documents and which one is current. When nothing
// is open, Current returns a read-only null document rather than nil.
type Workspace struct {
	docs    []*Document
	current *Document
	null    *Document
	log     *zap.Logger
}

// NewWorkspace creates an empty workspace. A nil logger disables logging.
func NewWorkspace(log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	null := NullDocument()
	return &Workspace{current: null, null: null, log: log.Named("workspace")}
}

// Open adds doc to the workspace and makes it current. Opening a document
// that is already open only makes it current.
func (w *Workspace) Open(doc *Document) {
	if w.indexOf(doc) < 0 {
		w.docs = append(w.docs, doc)
		w.log.Info("document opened", zap.String("path", doc.Path()), zap.Int("open", len(w.docs)))
	}
	w.current = doc
}

// Close removes doc. If it was current, the most recently opened remaining
// document becomes current, or the null document if none is left.
// Closing a document that is not open is a no-op.
func (w *Workspace) Close(doc *Document) {
	i := w.indexOf(doc)
	if i < 0 {
		return
	}
	w.docs = append(w.docs[:i], w.docs[i+1:]...)
	w.log.Info("document closed", zap.String("path", doc.Path()), zap.Bool("modified", doc.IsModified()))
	if w.current == doc {
		w.current = w.null
		if n := len(w.docs); n > 0 {
			w.current = w.docs[n-1]
		}
	}
}

// SetCurrent makes an open document current. Panics if doc is not open.
func (w *Workspace) SetCurrent(doc *Document) {
	if w.indexOf(doc) < 0 {
		panic("tangerine: SetCurrent on a document that is not open")
	}
	w.current = doc
}

// Current returns the current document, never nil.
func (w *Workspace) Current() *Document {
	return w.current
}

// Documents returns the open documents in opening order.
func (w *Workspace) Documents() []*Document {
	return append([]*Document(nil), w.docs...)
}

// HasModified reports whether any open document has unsaved changes.
func (w *Workspace) HasModified() bool {
	for _, d := range w.docs {
		if d.IsModified() {
			return true
		}
	}
	return false
}

func (w *Workspace) indexOf(doc *Document) int {
	for i, d := range w.docs {
		if d == doc {
			return i
		}
	}
	return -1
}
