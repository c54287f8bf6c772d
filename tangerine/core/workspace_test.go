package core

import "testing"

func TestWorkspaceNullDocument(t *testing.T) {
	w := NewWorkspace(nil)
	doc := w.Current()
	if doc == nil || !doc.IsReadOnly() {
		t.Fatal("empty workspace should return a read-only null document")
	}
	if doc.Root().Id != "Null" {
		t.Errorf("null root = %q, want Null", doc.Root().Id)
	}
}

func TestWorkspaceOpenClose(t *testing.T) {
	w := NewWorkspace(nil)
	a := NewDocument(WithPath("a"))
	b := NewDocument(WithPath("b"))

	w.Open(a)
	w.Open(b)
	if w.Current() != b {
		t.Fatal("last opened document should be current")
	}
	w.Open(a)
	if w.Current() != a || len(w.Documents()) != 2 {
		t.Fatal("reopening should only switch the current document")
	}

	w.Close(a)
	if w.Current() != b {
		t.Error("closing current should fall back to the remaining document")
	}
	w.Close(b)
	if !w.Current().IsReadOnly() {
		t.Error("closing everything should leave the null document current")
	}
	w.Close(b)
}

func TestWorkspaceSetCurrentNotOpenPanics(t *testing.T) {
	w := NewWorkspace(nil)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for document that is not open")
		}
	}()
	w.SetCurrent(NewDocument())
}

func TestWorkspaceHasModified(t *testing.T) {
	w := NewWorkspace(nil)
	doc := NewSampleDocument()
	w.Open(doc)
	if w.HasModified() {
		t.Fatal("fresh document should not be modified")
	}
	PerformUnlinkNode(doc, doc.Row(0).Node)
	if !w.HasModified() {
		t.Error("workspace should report the modified document")
	}
}
