package core

import (
	"fmt"

	"go.uber.org/zap"
)

// unit is one committed transaction.
type unit struct {
	ops []Operation
	// before is the structural snapshot of the document taken when the unit
	// started. Only recorded in debug mode.
	before string
}

func (u *unit) changesDocument() bool {
	for _, op := range u.ops {
		if op.IsChangingDocument() {
			return true
		}
	}
	return false
}

// History is the transactional undo/redo log of a document. Units before the
// cursor are done; units at or after it can be redone. Performing a new unit
// discards the redo tail.
//
// History is not safe for concurrent use.
type History struct {
	doc    *Document
	units  []*unit
	cursor int

	depth   int
	pending *unit

	// saved is the cursor position at the last MarkSaved, or -1 when that
	// state has been discarded from the log.
	saved int

	log *zap.Logger
}

func newHistory(doc *Document, log *zap.Logger) *History {
	return &History{doc: doc, log: log}
}

// Perform applies op and records it. Outside a transaction op forms a unit
// of its own; inside one it joins the pending unit.
// Panics if the document is read-only or op has no processor.
func (h *History) Perform(op Operation) {
	if h.doc.readOnly {
		panic("tangerine: perform on read-only document")
	}
	p := processorFor(op)
	if h.depth == 0 {
		h.BeginTransaction()
		defer h.EndTransaction()
	}
	p.redo(h.doc, op)
	h.pending.ops = append(h.pending.ops, op)
	if h.log.Core().Enabled(zap.DebugLevel) {
		h.log.Debug("perform", zap.String("op", p.name), zap.Int("depth", h.depth))
	}
}

// BeginTransaction opens a transaction. Transactions nest; only the
// outermost EndTransaction commits.
func (h *History) BeginTransaction() {
	if h.depth == 0 {
		h.pending = &unit{}
		if h.doc.debug {
			h.pending.before = Snapshot(h.doc)
		}
	}
	h.depth++
}

// EndTransaction closes the innermost transaction. Closing the outermost one
// commits the pending operations as a single unit; an empty transaction
// commits nothing. Panics without a matching BeginTransaction.
func (h *History) EndTransaction() {
	if h.depth == 0 {
		panic("tangerine: EndTransaction without BeginTransaction")
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	u := h.pending
	h.pending = nil
	if len(u.ops) == 0 {
		return
	}
	h.commit(u)
}

func (h *History) commit(u *unit) {
	if h.saved > h.cursor {
		h.saved = -1
	}
	for i := h.cursor; i < len(h.units); i++ {
		h.units[i] = nil
	}
	h.units = append(h.units[:h.cursor], u)
	h.cursor++
	h.log.Debug("commit", zap.Int("ops", len(u.ops)), zap.Int("cursor", h.cursor))
	h.doc.publish(Event{Kind: EventCommitted, Ops: len(u.ops)})
}

// Transaction runs fn inside BeginTransaction/EndTransaction. The
// transaction is closed even if fn panics.
func (h *History) Transaction(fn func()) {
	h.BeginTransaction()
	defer h.EndTransaction()
	fn()
}

// InTransaction reports whether a transaction is open.
func (h *History) InTransaction() bool {
	return h.depth > 0
}

// CanUndo reports whether there is a unit to undo.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is a unit to redo.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.units)
}

// Undo reverts the unit before the cursor, operations in reverse order.
// No-op at the start of history. Panics inside an open transaction.
func (h *History) Undo() {
	if h.depth > 0 {
		panic("tangerine: Undo inside a transaction")
	}
	if h.cursor == 0 {
		return
	}
	h.cursor--
	u := h.units[h.cursor]
	for i := len(u.ops) - 1; i >= 0; i-- {
		processorFor(u.ops[i]).undo(h.doc, u.ops[i])
	}
	if h.doc.debug && u.before != "" {
		if after := Snapshot(h.doc); after != u.before {
			panic(fmt.Sprintf("tangerine debug: undo did not restore document state\n%s", diffSnapshots(u.before, after)))
		}
	}
	h.log.Debug("undo", zap.Int("ops", len(u.ops)), zap.Int("cursor", h.cursor))
	h.doc.publish(Event{Kind: EventUndone, Ops: len(u.ops)})
}

// Redo reapplies the unit at the cursor, operations in forward order.
// No-op at the end of history. Panics inside an open transaction.
func (h *History) Redo() {
	if h.depth > 0 {
		panic("tangerine: Redo inside a transaction")
	}
	if h.cursor == len(h.units) {
		return
	}
	u := h.units[h.cursor]
	for _, op := range u.ops {
		processorFor(op).redo(h.doc, op)
	}
	h.cursor++
	h.log.Debug("redo", zap.Int("ops", len(u.ops)), zap.Int("cursor", h.cursor))
	h.doc.publish(Event{Kind: EventRedone, Ops: len(u.ops)})
}

// Len returns the number of committed units, including undone ones.
func (h *History) Len() int {
	return len(h.units)
}

// Cursor returns the number of units currently applied.
func (h *History) Cursor() int {
	return h.cursor
}

// Clear drops every unit. The current state becomes the saved state.
// Panics inside an open transaction.
func (h *History) Clear() {
	if h.depth > 0 {
		panic("tangerine: Clear inside a transaction")
	}
	h.units = nil
	h.cursor = 0
	h.saved = 0
	h.doc.publish(Event{Kind: EventHistoryCleared})
}

// MarkSaved records the current position as the saved state.
func (h *History) MarkSaved() {
	h.saved = h.cursor
	h.doc.publish(Event{Kind: EventSaved})
}

// IsDocumentModified reports whether the document differs from its saved
// state. Units that only change editor state (selection, expansion) do not
// count.
func (h *History) IsDocumentModified() bool {
	if h.saved < 0 {
		return true
	}
	lo, hi := h.saved, h.cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, u := range h.units[lo:hi] {
		if u.changesDocument() {
			return true
		}
	}
	return false
}
