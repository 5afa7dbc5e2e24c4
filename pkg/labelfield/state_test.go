package labelfield

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func run(isKV bool, tokens []string, events ...Event) (State, []string) {
	var state State
	for _, ev := range events {
		state, tokens, _ = Step(state, tokens, ev, isKV)
	}
	return state, tokens
}

func typed(text string) []Event {
	events := make([]Event, 0, len(text))
	for _, r := range text {
		events = append(events, Rune(r))
	}
	return events
}

func TestStep_CommitsPreserveOrder(t *testing.T) {
	state, tokens := run(false, nil, typed("alpha beta gamma ")...)

	if diff := cmp.Diff([]string{"alpha", "beta", "gamma"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if state.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %s", state.Phase())
	}
}

func TestStep_DuplicateIsSilent(t *testing.T) {
	state, tokens := run(false, nil, typed("web web ")...)

	if diff := cmp.Diff([]string{"web"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if state.Error != "" || state.Buffer != "" {
		t.Fatalf("duplicate should clear buffer without error, got %+v", state)
	}
}

func TestStep_KeyValueMode(t *testing.T) {
	state, tokens := run(true, nil, typed("env:prod ")...)
	if diff := cmp.Diff([]string{"env:prod"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if state.Error != "" {
		t.Fatalf("unexpected error %q", state.Error)
	}

	state, tokens = run(true, []string{"env:prod"}, typed("hello ")...)
	if state.Error != MessageInvalidKV {
		t.Fatalf("expected %q, got %q", MessageInvalidKV, state.Error)
	}
	if state.Buffer != "" {
		t.Fatalf("buffer should be cleared after rejection, got %q", state.Buffer)
	}
	if state.Phase() != PhaseError {
		t.Fatalf("expected error phase, got %s", state.Phase())
	}
	if diff := cmp.Diff([]string{"env:prod"}, tokens); diff != "" {
		t.Fatalf("tokens should be unchanged (-want +got):\n%s", diff)
	}
}

func TestStep_KeyValuePatternEdges(t *testing.T) {
	cases := map[string]bool{
		"app:web":       true,
		"kube-zone:a_1": true,
		"a:b:c":         false,
		":value":        false,
		"key:":          false,
		"key.name:v":    false,
	}
	for text, want := range cases {
		if got := ValidToken(text, true); got != want {
			t.Errorf("ValidToken(%q): want %v, got %v", text, want, got)
		}
	}
	if ValidToken("", false) {
		t.Errorf("empty token must never be valid")
	}
}

func TestStep_ErrorClearedOnNextKeystroke(t *testing.T) {
	state, _ := run(true, nil, typed("bad ")...)
	if state.Error == "" {
		t.Fatalf("expected error")
	}
	state, _, _ = Step(state, nil, Rune('x'), true)
	if state.Error != "" {
		t.Fatalf("keystroke should clear error, got %q", state.Error)
	}
	if state.Buffer != "x" {
		t.Fatalf("buffer: got %q", state.Buffer)
	}
}

func TestStep_OtherKeysDismissError(t *testing.T) {
	state, tokens, changed := Step(State{Error: MessageInvalidKV}, []string{"a"}, Key(), true)
	if changed || state.Error != "" {
		t.Fatalf("key press should only dismiss the error, got %+v changed=%v", state, changed)
	}
	if diff := cmp.Diff([]string{"a"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestStep_AnyWhitespaceSeparates(t *testing.T) {
	state, tokens := run(false, nil, typed("a\tb\nc ")...)
	if diff := cmp.Diff([]string{"a", "b", "c"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if state.Buffer != "" {
		t.Fatalf("buffer: got %q", state.Buffer)
	}

	raw := Event{Type: EventRune, Rune: '\t'}
	_, tokens = run(false, nil, append(typed("x"), raw)...)
	if diff := cmp.Diff([]string{"x"}, tokens); diff != "" {
		t.Fatalf("raw tab should commit (-want +got):\n%s", diff)
	}
}

func TestStep_ChipActionsKeepError(t *testing.T) {
	state := State{Error: "upstream"}
	state, tokens, changed := Step(state, []string{"a"}, Delete("a"), false)
	if !changed || len(tokens) != 0 {
		t.Fatalf("expected delete, got %v", tokens)
	}
	if state.Error != "upstream" {
		t.Fatalf("chip delete should not dismiss error")
	}
}

func TestStep_BackspacePops(t *testing.T) {
	_, tokens := run(false, []string{"x", "y"}, Backspace())
	if diff := cmp.Diff([]string{"x"}, tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	state, tokens := run(false, []string{"x"}, append(typed("ab"), Backspace())...)
	if state.Buffer != "a" {
		t.Fatalf("backspace with text should edit buffer, got %q", state.Buffer)
	}
	if diff := cmp.Diff([]string{"x"}, tokens); diff != "" {
		t.Fatalf("tokens should be untouched (-want +got):\n%s", diff)
	}

	_, tokens, changed := Step(State{}, []string{}, Backspace(), false)
	if changed || len(tokens) != 0 {
		t.Fatalf("backspace on empty list should be a no-op")
	}
}

func TestStep_LeadingSpaceSwallowed(t *testing.T) {
	state, tokens, changed := Step(State{}, nil, Rune(' '), true)
	if changed || len(tokens) != 0 {
		t.Fatalf("leading space must not commit")
	}
	if state != (State{}) {
		t.Fatalf("leading space must leave state idle, got %+v", state)
	}
}

func TestStep_DeleteAndClear(t *testing.T) {
	_, tokens := run(false, []string{"a", "b", "c"}, Delete("b"))
	if diff := cmp.Diff([]string{"a", "c"}, tokens); diff != "" {
		t.Fatalf("delete mismatch (-want +got):\n%s", diff)
	}

	_, tokens = run(false, []string{"a", "b", "c"}, Clear())
	if diff := cmp.Diff([]string{}, tokens); diff != "" {
		t.Fatalf("clear mismatch (-want +got):\n%s", diff)
	}
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b"}
	_, _, _ = Step(State{}, in, Backspace(), false)
	_, _, _ = Step(State{}, in, Delete("a"), false)
	if diff := cmp.Diff([]string{"a", "b"}, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestStep_MultibyteBackspace(t *testing.T) {
	state, _ := run(false, nil, append(typed("zoné"), Backspace())...)
	if state.Buffer != "zon" {
		t.Fatalf("expected rune-aware backspace, got %q", state.Buffer)
	}
}
