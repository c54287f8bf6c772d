package core

// EventKind identifies what happened to a document.
type EventKind uint8

const (
	// EventCommitted fires when a unit of operations is committed.
	EventCommitted EventKind = iota
	EventUndone
	EventRedone
	// EventSaved fires when the current history position is marked saved.
	EventSaved
	EventHistoryCleared
	EventFrameChanged
	EventRowsRebuilt
)

var eventKindNames = [...]string{
	EventCommitted:      "committed",
	EventUndone:         "undone",
	EventRedone:         "redone",
	EventSaved:          "saved",
	EventHistoryCleared: "historyCleared",
	EventFrameChanged:   "frameChanged",
	EventRowsRebuilt:    "rowsRebuilt",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is delivered to every EventSink subscribed to a document.
type Event struct {
	Kind     EventKind
	Document *Document
	// Ops is the number of operations in the affected unit, if any.
	Ops int
	// Modified is the document's modified flag after the event.
	Modified bool
	Frame    int
}

// EventSink receives document events. Sinks run synchronously on the editor
// goroutine and must not perform operations on the document.
type EventSink interface {
	Publish(e Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(e Event)

// Publish calls f(e).
func (f SinkFunc) Publish(e Event) { f(e) }
