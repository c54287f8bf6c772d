package core

import (
	"fmt"
	"reflect"
)

// Operation is a reversible edit. Values capture what changes; the matching
// processor, looked up by the operation's concrete type, applies and reverts
// it. Operations are created through New... constructors and submitted with
// History.Perform, or built and submitted in one call by the Perform...
// helpers.
type Operation interface {
	// IsChangingDocument reports whether the operation modifies persisted
	// document state. Selection and expansion changes do not.
	IsChangingDocument() bool
}

type processor struct {
	name string
	redo func(*Document, Operation)
	undo func(*Document, Operation)
}

var processors = map[reflect.Type]processor{}

// RegisterProcessor binds redo and undo handlers to the operation type T.
// Call it from an init function of the package that declares T.
// Panics if T already has a processor.
func RegisterProcessor[T Operation](redo, undo func(doc *Document, op T)) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := processors[key]; ok {
		panic(fmt.Sprintf("tangerine: processor for %v already registered", key))
	}
	processors[key] = processor{
		name: key.String(),
		redo: func(d *Document, op Operation) { redo(d, op.(T)) },
		undo: func(d *Document, op Operation) { undo(d, op.(T)) },
	}
}

func processorFor(op Operation) processor {
	if op == nil {
		panic("tangerine: nil operation")
	}
	p, ok := processors[reflect.TypeOf(op)]
	if !ok {
		panic(fmt.Sprintf("tangerine: no processor registered for %T", op))
	}
	return p
}

// HasProcessor reports whether op's type has a registered processor.
func HasProcessor(op Operation) bool {
	_, ok := processors[reflect.TypeOf(op)]
	return ok
}
