package labelfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type memoryDoc struct {
	values map[string][]string
	writes int
}

func newMemoryDoc(seed map[string][]string) *memoryDoc {
	if seed == nil {
		seed = make(map[string][]string)
	}
	return &memoryDoc{values: seed}
}

func (d *memoryDoc) Tokens(path string) []string {
	return d.values[path]
}

func (d *memoryDoc) SetTokens(path string, tokens []string) {
	d.writes++
	d.values[path] = tokens
}

func TestEditor_RoundTripWithExternalValue(t *testing.T) {
	doc := newMemoryDoc(map[string][]string{"spec.labels": {"a", "b"}})
	ed := New(doc, Options{Path: "spec.labels"})

	view := ed.View()
	want := []Chip{{Index: 0, Label: "a"}, {Index: 1, Label: "b"}}
	if diff := cmp.Diff(want, view.Chips); diff != "" {
		t.Fatalf("chips mismatch (-want +got):\n%s", diff)
	}

	ed.Delete("a")
	if diff := cmp.Diff([]string{"b"}, doc.values["spec.labels"]); diff != "" {
		t.Fatalf("delete mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_IdempotentCommit(t *testing.T) {
	doc := newMemoryDoc(nil)
	ed := New(doc, Options{Path: "targets"})

	ed.Type("10.0.0.1 ")
	ed.Type("10.0.0.1 ")

	if diff := cmp.Diff([]string{"10.0.0.1"}, ed.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if doc.writes != 1 {
		t.Fatalf("duplicate commit should not write, got %d writes", doc.writes)
	}
}

func TestEditor_KeyValueErrorAndHelperText(t *testing.T) {
	doc := newMemoryDoc(nil)
	ed := New(doc, Options{Path: "attr", IsKV: true, HelperText: "ignored in kv mode"})

	if got := ed.HelperText(); got != KVHelperText {
		t.Fatalf("helper: got %q", got)
	}

	ed.Type("hello ")
	if ed.Error() != MessageInvalidKV {
		t.Fatalf("expected kv error, got %q", ed.Error())
	}
	view := ed.View()
	if !view.Error || view.HelperText != MessageInvalidKV {
		t.Fatalf("view should surface error, got %+v", view)
	}
	if len(ed.Tokens()) != 0 {
		t.Fatalf("rejected token committed")
	}

	ed.Type("ino:1")
	if ed.Error() != "" {
		t.Fatalf("typing should dismiss error")
	}
	ed.Commit()
	if diff := cmp.Diff([]string{"ino:1"}, ed.Tokens()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_ExternalErrorText(t *testing.T) {
	ed := New(newMemoryDoc(nil), Options{Path: "p", ErrorText: "server says no", HelperText: "help"})
	if ed.Error() != "server says no" {
		t.Fatalf("mount should apply error text, got %q", ed.Error())
	}

	ed.Type("a")
	if ed.HelperText() != "help" {
		t.Fatalf("keystroke should dismiss error, helper %q", ed.HelperText())
	}

	ed.SetErrorText("server says no")
	if ed.Error() != "" {
		t.Fatalf("unchanged error text must not reapply")
	}
	ed.SetErrorText("still no")
	if ed.Error() != "still no" {
		t.Fatalf("changed error text should apply, got %q", ed.Error())
	}
}

func TestEditor_BackspaceAndClear(t *testing.T) {
	doc := newMemoryDoc(map[string][]string{"p": {"x", "y"}})
	ed := New(doc, Options{Path: "p"})

	ed.Backspace()
	if diff := cmp.Diff([]string{"x"}, doc.values["p"]); diff != "" {
		t.Fatalf("backspace mismatch (-want +got):\n%s", diff)
	}

	doc.values["p"] = []string{"a", "b", "c"}
	ed.Clear()
	if diff := cmp.Diff([]string{}, doc.values["p"]); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestEditor_LeadingSpace(t *testing.T) {
	doc := newMemoryDoc(nil)
	ed := New(doc, Options{Path: "p"})
	ed.Type(" ")
	if ed.State() != (State{}) || doc.writes != 0 {
		t.Fatalf("leading space should be swallowed, state %+v writes %d", ed.State(), doc.writes)
	}
}

func TestAccessorFuncs(t *testing.T) {
	store := map[string][]string{}
	acc := AccessorFuncs{
		Get: func(path string) []string { return store[path] },
		Set: func(path string, tokens []string) { store[path] = tokens },
	}
	ed := New(acc, Options{Path: "clock_ids"})
	ed.Type("CLOCK_REALTIME CLOCK_MONOTONIC ")
	if diff := cmp.Diff([]string{"CLOCK_REALTIME", "CLOCK_MONOTONIC"}, store["clock_ids"]); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
}
