package script

import (
	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/phanxgames/lime/tangerine/timeline"
	"github.com/phanxgames/lime/tangerine/ui"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Runner replays a script against a document, one step per frame. Wait steps
// hold the runner for a number of frames, so a script can be watched in the
// editor shell as it plays.
type Runner struct {
	steps     []Step
	cursor    int
	waitCount int
	done      bool
	log       *zap.Logger
}

// NewRunner creates a runner for s.
func NewRunner(s *Script) *Runner {
	return &Runner{steps: s.Steps, log: zap.NewNop()}
}

// SetLogger sets the logger used to trace executed steps.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.log = l.Named("script")
}

// Done reports whether all steps have been executed.
func (r *Runner) Done() bool {
	return r.done
}

// Cursor returns the index of the next step.
func (r *Runner) Cursor() int {
	return r.cursor
}

// Step advances the runner by one frame. Errors describe bad script input;
// the failing step is skipped and the document is left as it was before it.
func (r *Runner) Step(doc *core.Document) error {
	if r.done {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		return r.finish(doc)
	}

	i := r.cursor
	st := r.steps[i]
	r.cursor++
	r.log.Debug("step", zap.Int("index", i), zap.String("action", st.Action), zap.String("label", st.Label))
	if err := r.exec(doc, st); err != nil {
		return errors.Wrapf(err, "step %d (%s)", i, st.Action)
	}
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		return r.finish(doc)
	}
	return nil
}

// Run executes every remaining step, ignoring waits, and stops at the first
// error.
func (r *Runner) Run(doc *core.Document) error {
	for !r.done {
		r.waitCount = 0
		if err := r.Step(doc); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) finish(doc *core.Document) error {
	r.done = true
	h := doc.History()
	if !h.InTransaction() {
		return nil
	}
	for h.InTransaction() {
		h.EndTransaction()
	}
	return errors.New("script ended inside a transaction")
}

func (r *Runner) exec(doc *core.Document, st Step) error {
	if doc.IsReadOnly() && st.Action != "wait" && st.Action != "frame" {
		return errors.New("document is read-only")
	}
	h := doc.History()
	switch st.Action {
	case "selectSpan":
		if _, err := row(doc, st.Row); err != nil {
			return err
		}
		timeline.PerformSelectGridSpan(doc, st.Row, timeline.NewGridSpan(st.From, st.To))
	case "deselectSpan":
		if _, err := row(doc, st.Row); err != nil {
			return err
		}
		timeline.PerformDeselectGridSpan(doc, st.Row, timeline.NewGridSpan(st.From, st.To))
	case "clearSpans":
		timeline.PerformClearGridSpans(doc)
	case "deleteKeys":
		timeline.DeleteSelectedKeys(doc)
	case "shiftKeys":
		timeline.ShiftSelectedKeys(doc, st.Delta)
	case "setProperty":
		n, value, err := nodeValue(doc, st)
		if err != nil {
			return err
		}
		core.PerformSetProperty(doc, n, st.Property, value)
	case "setKeyframe":
		n, value, err := nodeValue(doc, st)
		if err != nil {
			return err
		}
		if p, _ := lime.LookupProperty(st.Property); !p.Animatable() {
			return errors.Errorf("property %s is not animatable", st.Property)
		}
		easing := lime.EaseLinear
		if st.Easing != "" {
			if easing, err = lime.ParseEasing(st.Easing); err != nil {
				return err
			}
		}
		core.PerformSetKeyframe(doc, n, st.Property, st.Frame, value, easing)
	case "removeKeyframe":
		n, err := node(doc, st.Node)
		if err != nil {
			return err
		}
		core.PerformRemoveKeyframe(doc, n, st.Property, st.Frame)
	case "selectRow", "deselectRow":
		rw, err := row(doc, st.Row)
		if err != nil {
			return err
		}
		core.PerformSelectRow(doc, rw, st.Action == "selectRow")
	case "clearSelection":
		core.PerformClearRowSelection(doc)
	case "expand", "collapse":
		n, err := node(doc, st.Node)
		if err != nil {
			return err
		}
		core.PerformExpandNode(doc, n, st.Action == "expand")
	case "frame":
		doc.SetCurrentFrame(st.Frame)
	case "begin":
		h.BeginTransaction()
	case "end":
		if !h.InTransaction() {
			return errors.New("end without begin")
		}
		h.EndTransaction()
	case "undo", "redo":
		if h.InTransaction() {
			return errors.Errorf("%s inside a transaction", st.Action)
		}
		if st.Action == "undo" {
			h.Undo()
		} else {
			h.Redo()
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	default:
		return errors.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func row(doc *core.Document, index int) (*core.Row, error) {
	r := doc.Row(index)
	if r == nil {
		return nil, errors.Errorf("row %d out of range [0,%d)", index, len(doc.Rows()))
	}
	return r, nil
}

func node(doc *core.Document, id string) (*lime.Node, error) {
	if id == "" {
		return nil, errors.New("missing node")
	}
	n := doc.Root().Find(id)
	if n == nil {
		return nil, errors.Errorf("no node %q", id)
	}
	return n, nil
}

func nodeValue(doc *core.Document, st Step) (*lime.Node, any, error) {
	n, err := node(doc, st.Node)
	if err != nil {
		return nil, nil, err
	}
	p, ok := lime.LookupProperty(st.Property)
	if !ok {
		return nil, nil, errors.Errorf("unknown property %q", st.Property)
	}
	v, err := convertValue(p, st.Value)
	if err != nil {
		return nil, nil, err
	}
	if err := ui.ValidateValue(st.Property, v); err != nil {
		return nil, nil, err
	}
	return n, v, nil
}
