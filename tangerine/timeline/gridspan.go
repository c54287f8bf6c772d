package timeline

import "fmt"

// GridSpan is a horizontal run of timeline cells on one row, covering frames
// A through B-1.
type GridSpan struct {
	A, B int
}

// NewGridSpan returns the span between frames a and b in either order.
func NewGridSpan(a, b int) GridSpan {
	if b < a {
		a, b = b, a
	}
	return GridSpan{A: a, B: b}
}

// Contains reports whether frame lies inside the span.
func (s GridSpan) Contains(frame int) bool {
	return frame >= s.A && frame < s.B
}

// Len returns the number of frames covered.
func (s GridSpan) Len() int {
	return s.B - s.A
}

func (s GridSpan) String() string {
	return fmt.Sprintf("[%d,%d)", s.A, s.B)
}

// GridSpanList is the row component holding a row's selected spans, in
// selection order. Spans may overlap.
type GridSpanList struct {
	Spans []GridSpan
}

// Contains reports whether any span covers frame.
func (l *GridSpanList) Contains(frame int) bool {
	for _, s := range l.Spans {
		if s.Contains(frame) {
			return true
		}
	}
	return false
}

func (l *GridSpanList) indexOf(span GridSpan) int {
	for i, s := range l.Spans {
		if s == span {
			return i
		}
	}
	return -1
}

func (l *GridSpanList) lastIndexOf(span GridSpan) int {
	for i := len(l.Spans) - 1; i >= 0; i-- {
		if l.Spans[i] == span {
			return i
		}
	}
	return -1
}

func (l *GridSpanList) removeAt(i int) {
	l.Spans = append(l.Spans[:i], l.Spans[i+1:]...)
}

func (l *GridSpanList) insertAt(i int, span GridSpan) {
	l.Spans = append(l.Spans, GridSpan{})
	copy(l.Spans[i+1:], l.Spans[i:])
	l.Spans[i] = span
}
