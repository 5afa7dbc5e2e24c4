// Package labelfield implements the keystroke-driven label/tag editor used by
// label fields. Typed characters accumulate in a pending buffer; a space
// commits the trimmed buffer as a token, backspace on an empty buffer pops
// the last token, and tokens can be deleted individually or cleared.
//
// Transitions are pure functions of (State, tokens, Event) so they can be
// exercised without a rendering environment. Editor binds those transitions
// to an Accessor that owns the token list; the editor itself only keeps the
// pending buffer and the transient error message.
package labelfield
