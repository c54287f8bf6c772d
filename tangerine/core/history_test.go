package core

import (
	"strings"
	"testing"

	"github.com/phanxgames/lime"
)

func newTestDoc(t *testing.T) *Document {
	t.Helper()
	return NewSampleDocument(WithDebug(true))
}

// assertRoundTrip performs as one unit, undoes and redoes, checking that
// undo restores the exact prior state and redo the exact post state.
func assertRoundTrip(t *testing.T, doc *Document, perform func()) {
	t.Helper()
	before := Snapshot(doc)
	doc.History().Transaction(perform)
	after := Snapshot(doc)

	doc.History().Undo()
	if got := Snapshot(doc); got != before {
		t.Fatalf("undo did not restore state:\n%s", diffSnapshots(before, got))
	}
	doc.History().Redo()
	if got := Snapshot(doc); got != after {
		t.Fatalf("redo did not reproduce state:\n%s", diffSnapshots(after, got))
	}
}

// --- Round trips ---

func TestRoundTripSetProperty(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 03")
	assertRoundTrip(t, doc, func() {
		PerformSetProperty(doc, n, lime.PropOpacity, 0.25)
	})
	if n.Opacity != 0.25 {
		t.Errorf("Opacity = %v, want 0.25", n.Opacity)
	}
}

func TestRoundTripSetKeyframeReplace(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	assertRoundTrip(t, doc, func() {
		PerformSetKeyframe(doc, n, lime.PropPosition, 10, lime.Vec2{X: 7}, lime.EaseOutQuad)
	})
}

func TestRoundTripSetKeyframeCreatesAnimator(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	assertRoundTrip(t, doc, func() {
		PerformSetKeyframe(doc, n, lime.PropOpacity, 4, 0.5, lime.EaseLinear)
	})
	doc.History().Undo()
	if _, ok := n.Animators.Get(lime.PropOpacity); ok {
		t.Error("undo should detach the animator created by SetKeyframe")
	}
}

func TestRoundTripRemoveKeyframe(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 01")
	assertRoundTrip(t, doc, func() {
		PerformRemoveKeyframe(doc, n, lime.PropPosition, 12)
	})
	a, _ := n.Animators.Get(lime.PropPosition)
	if a.HasKey(12) {
		t.Error("key at 12 should be removed")
	}
}

func TestRemoveAbsentKeyframeIsNoOp(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 01")
	assertRoundTrip(t, doc, func() {
		PerformRemoveKeyframe(doc, n, lime.PropPosition, 999)
		PerformRemoveKeyframe(doc, n, lime.PropColor, 0)
	})
}

func TestRoundTripInsertNodeMove(t *testing.T) {
	doc := newTestDoc(t)
	root := doc.Root()
	n := root.Find("Image 05")
	assertRoundTrip(t, doc, func() {
		PerformInsertNode(doc, root, 0, n)
	})
	if root.ChildAt(0) != n {
		t.Error("node should be first after move")
	}
}

func TestRoundTripInsertNewNode(t *testing.T) {
	doc := newTestDoc(t)
	parent := doc.Root().Find("Image 02")
	assertRoundTrip(t, doc, func() {
		PerformInsertNode(doc, parent, 0, lime.NewWidget("child"))
	})
}

func TestRoundTripUnlinkNode(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 07")
	assertRoundTrip(t, doc, func() {
		PerformUnlinkNode(doc, n)
	})
	if n.Parent != nil {
		t.Error("node should be unlinked after redo")
	}
}

func TestRoundTripSelectionAndExpansion(t *testing.T) {
	doc := newTestDoc(t)
	assertRoundTrip(t, doc, func() {
		PerformSelectRow(doc, doc.Row(1), true)
		PerformSelectRow(doc, doc.Row(3), true)
		PerformSelectRow(doc, doc.Row(1), false)
		PerformExpandNode(doc, doc.Row(0).Node, true)
		PerformClearRowSelection(doc)
		PerformSelectRow(doc, doc.Row(2), true)
	})
}

func TestRoundTripDeselectMiddle(t *testing.T) {
	doc := newTestDoc(t)
	for _, i := range []int{4, 5, 6} {
		PerformSelectRow(doc, doc.Row(i), true)
	}
	assertRoundTrip(t, doc, func() {
		PerformSelectRow(doc, doc.Row(5), false)
	})
	got := doc.SelectedRows()
	if len(got) != 2 || got[0].Index() != 4 || got[1].Index() != 6 {
		t.Errorf("selection after redo = %v, want rows 4 and 6", rowIndices(got))
	}
}

func rowIndices(rows []*Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index()
	}
	return out
}

// --- Redo / truncation ---

func TestRedoAfterMultipleUndos(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	h := doc.History()

	PerformSetProperty(doc, n, lime.PropRotation, 1.0)
	PerformSetProperty(doc, n, lime.PropRotation, 2.0)
	PerformSetProperty(doc, n, lime.PropRotation, 3.0)
	final := Snapshot(doc)

	h.Undo()
	h.Undo()
	h.Undo()
	if n.Rotation != 0 {
		t.Fatalf("Rotation = %v, want 0", n.Rotation)
	}
	h.Redo()
	h.Redo()
	h.Redo()
	if got := Snapshot(doc); got != final {
		t.Fatalf("redo chain mismatch:\n%s", diffSnapshots(final, got))
	}
}

func TestUndoRedoAtEndsAreNoOps(t *testing.T) {
	doc := newTestDoc(t)
	h := doc.History()
	h.Undo()
	h.Redo()
	if h.Len() != 0 || h.Cursor() != 0 {
		t.Errorf("Len, Cursor = %d, %d, want 0, 0", h.Len(), h.Cursor())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history can neither undo nor redo")
	}
}

func TestNewEditTruncatesRedo(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	h := doc.History()

	PerformSetProperty(doc, n, lime.PropRotation, 1.0)
	PerformSetProperty(doc, n, lime.PropRotation, 2.0)
	h.Undo()
	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	PerformSetProperty(doc, n, lime.PropRotation, 5.0)

	if h.CanRedo() {
		t.Error("new edit should discard the redo tail")
	}
	if h.Len() != 2 || h.Cursor() != 2 {
		t.Errorf("Len, Cursor = %d, %d, want 2, 2", h.Len(), h.Cursor())
	}
	h.Redo()
	if n.Rotation != 5 {
		t.Errorf("Rotation = %v, want 5", n.Rotation)
	}
}

// --- Transactions ---

func TestTransactionIsOneUnit(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	h := doc.History()
	before := Snapshot(doc)

	h.BeginTransaction()
	PerformSetProperty(doc, n, lime.PropRotation, 1.0)
	h.BeginTransaction()
	PerformSetProperty(doc, n, lime.PropOpacity, 0.5)
	PerformSetKeyframe(doc, n, lime.PropOpacity, 3, 0.5, lime.EaseLinear)
	h.EndTransaction()
	if h.Len() != 0 {
		t.Fatal("inner EndTransaction should not commit")
	}
	h.EndTransaction()

	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	h.Undo()
	if got := Snapshot(doc); got != before {
		t.Fatalf("undo of transaction did not restore state:\n%s", diffSnapshots(before, got))
	}
}

func TestEmptyTransactionCommitsNothing(t *testing.T) {
	doc := newTestDoc(t)
	h := doc.History()
	h.Transaction(func() {})
	if h.Len() != 0 {
		t.Errorf("Len = %d, want 0", h.Len())
	}
}

func TestEndTransactionWithoutBeginPanics(t *testing.T) {
	doc := newTestDoc(t)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unbalanced EndTransaction")
		}
	}()
	doc.History().EndTransaction()
}

func TestUndoInsideTransactionPanics(t *testing.T) {
	doc := newTestDoc(t)
	h := doc.History()
	h.BeginTransaction()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for Undo inside a transaction")
		}
	}()
	h.Undo()
}

// --- Modified flag ---

func TestModifiedFlag(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	h := doc.History()

	if doc.IsModified() {
		t.Fatal("new document should not be modified")
	}
	PerformSelectRow(doc, doc.Row(0), true)
	if doc.IsModified() {
		t.Error("selection should not mark the document modified")
	}
	PerformSetProperty(doc, n, lime.PropRotation, 1.0)
	if !doc.IsModified() {
		t.Error("property change should mark the document modified")
	}
	h.MarkSaved()
	if doc.IsModified() {
		t.Error("MarkSaved should clear the modified flag")
	}
	h.Undo()
	if !doc.IsModified() {
		t.Error("undo past the saved point should mark modified")
	}
	h.Redo()
	if doc.IsModified() {
		t.Error("redo back to the saved point should clear modified")
	}
}

func TestModifiedWhenSavedStateTruncated(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	h := doc.History()

	PerformSetProperty(doc, n, lime.PropRotation, 1.0)
	h.MarkSaved()
	h.Undo()
	PerformSetProperty(doc, n, lime.PropRotation, 1.0)

	if !doc.IsModified() {
		t.Error("document should stay modified once the saved state is gone")
	}
}

func TestClearResetsHistory(t *testing.T) {
	doc := newTestDoc(t)
	PerformSetProperty(doc, doc.Root().Find("Image 00"), lime.PropRotation, 1.0)
	doc.History().Clear()
	if doc.History().Len() != 0 || doc.IsModified() {
		t.Error("Clear should drop units and reset the saved state")
	}
}

// --- Events ---

func TestEventsPublished(t *testing.T) {
	doc := newTestDoc(t)
	var kinds []EventKind
	unsubscribe := doc.Subscribe(SinkFunc(func(e Event) {
		if e.Kind != EventRowsRebuilt {
			kinds = append(kinds, e.Kind)
		}
	}))

	PerformSetProperty(doc, doc.Root().Find("Image 00"), lime.PropRotation, 1.0)
	doc.History().Undo()
	doc.History().Redo()
	unsubscribe()
	doc.History().Undo()

	want := []EventKind{EventCommitted, EventUndone, EventRedone}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

// --- Dispatch errors ---

type unregisteredOp struct{}

func (unregisteredOp) IsChangingDocument() bool { return true }

func TestPerformWithoutProcessorPanics(t *testing.T) {
	doc := newTestDoc(t)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for missing processor")
		}
		if doc.History().InTransaction() {
			t.Error("failed dispatch should not leave a transaction open")
		}
	}()
	doc.History().Perform(unregisteredOp{})
}

func TestRegisterProcessorTwicePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for duplicate processor")
		}
	}()
	RegisterProcessor(func(*Document, *SetProperty) {}, func(*Document, *SetProperty) {})
}

func TestReadOnlyDocumentPanics(t *testing.T) {
	doc := NullDocument()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic performing on a read-only document")
		}
	}()
	PerformSetProperty(doc, doc.Root(), lime.PropRotation, 1.0)
}

func TestNewSetPropertyWrongTypePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for mismatched value type")
		}
	}()
	NewSetProperty(lime.NewWidget("n"), lime.PropRotation, 1)
}

// --- Debug structural check ---

// leakyOp changes opacity on redo and forgets to restore it on undo.
type leakyOp struct {
	node *lime.Node
}

func (*leakyOp) IsChangingDocument() bool { return true }

func init() {
	RegisterProcessor(
		func(doc *Document, op *leakyOp) { op.node.Opacity -= 0.5 },
		func(doc *Document, op *leakyOp) {},
	)
}

func TestDebugCheckCatchesBrokenUndo(t *testing.T) {
	doc := newTestDoc(t)
	doc.History().Perform(&leakyOp{node: doc.Root().Find("Image 00")})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected debug panic for broken undo")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "Opacity") {
			t.Errorf("panic should show the diff, got %v", r)
		}
	}()
	doc.History().Undo()
}

func TestDebugCheckOffByDefault(t *testing.T) {
	doc := NewSampleDocument()
	doc.History().Perform(&leakyOp{node: doc.Root().Find("Image 00")})
	doc.History().Undo()
}

func TestDebugCheckIgnoresAnimatorEvaluation(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 03")

	doc.Root().ApplyAnimators(0)
	PerformSetProperty(doc, n, lime.PropOpacity, 0.5)
	doc.Root().ApplyAnimators(20)
	doc.History().Undo()

	if n.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1", n.Opacity)
	}
}

func TestUndoCreatedAnimatorRestoresValue(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 03")

	PerformSetKeyframe(doc, n, lime.PropOpacity, 0, 0.2, lime.EaseLinear)
	doc.Root().ApplyAnimators(0)
	if n.Opacity != 0.2 {
		t.Fatalf("Opacity = %v, want 0.2 after evaluation", n.Opacity)
	}
	doc.History().Undo()

	if n.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1 after undo", n.Opacity)
	}
	if _, ok := n.Animators.Get(lime.PropOpacity); ok {
		t.Error("undo should remove the created animator")
	}
}

// --- Failed operations ---

// failingOp panics in its redo processor.
type failingOp struct{}

func (failingOp) IsChangingDocument() bool { return true }

func init() {
	RegisterProcessor(
		func(doc *Document, op failingOp) { panic("failingOp") },
		func(doc *Document, op failingOp) {},
	)
}

func TestPanickingOperationLeavesHistoryUsable(t *testing.T) {
	doc := newTestDoc(t)
	n := doc.Root().Find("Image 00")
	PerformSetProperty(doc, n, lime.PropOpacity, 0.5)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected panic from failing operation")
			}
		}()
		doc.History().Perform(failingOp{})
	}()

	h := doc.History()
	if h.InTransaction() {
		t.Fatal("failed Perform should not leave a transaction open")
	}
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	h.Undo()
	if n.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1 after undo", n.Opacity)
	}
}
