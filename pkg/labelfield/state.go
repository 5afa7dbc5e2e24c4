package labelfield

import (
	"regexp"
	"strings"
	"unicode"
)

// KVPattern is the shape every token must match in key:value mode.
const KVPattern = `^[\w-]+:[\w-]+$`

const (
	// MessageInvalidKV is reported when a key:value token fails KVPattern.
	MessageInvalidKV = "Invalid key:value format"
	// KVHelperText is shown under key:value fields when no error is set.
	KVHelperText = "Use key:value format, end each entry with a space"
)

var kvPattern = regexp.MustCompile(KVPattern)

// Phase names the observable state of the editor.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// EventType enumerates the inputs the editor reacts to.
type EventType int

const (
	EventRune EventType = iota
	EventSpace
	EventBackspace
	EventDelete
	EventClear
	// EventKey is any other key press. It only dismisses the error.
	EventKey
)

func (t EventType) keystroke() bool {
	return t == EventRune || t == EventSpace || t == EventBackspace || t == EventKey
}

// Event is a single keystroke or chip action.
type Event struct {
	Type  EventType
	Rune  rune
	Token string
}

// Rune builds a character event. Any whitespace rune is the separator.
func Rune(r rune) Event {
	if unicode.IsSpace(r) {
		return Space()
	}
	return Event{Type: EventRune, Rune: r}
}

// Space builds the separator event.
func Space() Event { return Event{Type: EventSpace} }

// Backspace builds a delete-backward event.
func Backspace() Event { return Event{Type: EventBackspace} }

// Delete builds a chip removal event for token.
func Delete(token string) Event { return Event{Type: EventDelete, Token: token} }

// Clear builds the clear-all event.
func Clear() Event { return Event{Type: EventClear} }

// Key builds an event for a key press with no editing effect.
func Key() Event { return Event{Type: EventKey} }

// State is the editor-owned part of the widget: the pending buffer and the
// transient error message.
type State struct {
	Buffer string
	Error  string
}

// Phase derives the observable phase from the state.
func (s State) Phase() Phase {
	switch {
	case s.Error != "":
		return PhaseError
	case s.Buffer != "":
		return PhaseTyping
	default:
		return PhaseIdle
	}
}

// ValidToken reports whether text may be committed. Outside key:value mode
// any non-empty text is accepted.
func ValidToken(text string, isKV bool) bool {
	if text == "" {
		return false
	}
	if isKV {
		return kvPattern.MatchString(text)
	}
	return true
}

// Step applies ev and returns the next state and token list. The input slice
// is never modified; changed reports whether the returned list differs.
func Step(state State, tokens []string, ev Event, isKV bool) (next State, out []string, changed bool) {
	next = state
	out = tokens
	if ev.Type.keystroke() {
		// errors are transient feedback: the next keystroke dismisses them
		next.Error = ""
	}

	switch ev.Type {
	case EventRune:
		if unicode.IsSpace(ev.Rune) {
			return Step(state, tokens, Space(), isKV)
		}
		next.Buffer += string(ev.Rune)

	case EventSpace:
		if next.Buffer == "" {
			return next, out, false
		}
		text := strings.TrimSpace(next.Buffer)
		next.Buffer = ""
		if text == "" {
			return next, out, false
		}
		if isKV && !kvPattern.MatchString(text) {
			next.Error = MessageInvalidKV
			return next, out, false
		}
		if contains(tokens, text) {
			return next, out, false
		}
		out = appendToken(tokens, text)
		changed = true

	case EventBackspace:
		if next.Buffer != "" {
			next.Buffer = dropLastRune(next.Buffer)
			return next, out, false
		}
		if len(tokens) == 0 {
			return next, out, false
		}
		out = append([]string(nil), tokens[:len(tokens)-1]...)
		changed = true

	case EventDelete:
		if !contains(tokens, ev.Token) {
			return next, out, false
		}
		out = make([]string, 0, len(tokens)-1)
		for _, token := range tokens {
			if token != ev.Token {
				out = append(out, token)
			}
		}
		changed = true

	case EventClear:
		if len(tokens) == 0 {
			return next, out, false
		}
		out = []string{}
		changed = true
	}

	return next, out, changed
}

func contains(tokens []string, text string) bool {
	for _, token := range tokens {
		if token == text {
			return true
		}
	}
	return false
}

func appendToken(tokens []string, text string) []string {
	out := make([]string, len(tokens), len(tokens)+1)
	copy(out, tokens)
	return append(out, text)
}

func dropLastRune(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
