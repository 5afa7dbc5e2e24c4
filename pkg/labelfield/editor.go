package labelfield

import "strings"

// Accessor reads and replaces the token list stored at a path of the host
// document. The host document remains the source of truth.
type Accessor interface {
	Tokens(path string) []string
	SetTokens(path string, tokens []string)
}

// AccessorFuncs adapts a getter/setter pair into an Accessor.
type AccessorFuncs struct {
	Get func(path string) []string
	Set func(path string, tokens []string)
}

// Tokens implements Accessor.
func (a AccessorFuncs) Tokens(path string) []string {
	if a.Get == nil {
		return nil
	}
	return a.Get(path)
}

// SetTokens implements Accessor.
func (a AccessorFuncs) SetTokens(path string, tokens []string) {
	if a.Set != nil {
		a.Set(path, tokens)
	}
}

// Options configures an Editor.
type Options struct {
	Path        string
	IsKV        bool
	ErrorText   string
	Label       string
	Placeholder string
	HelperText  string
}

// Chip is one rendered token.
type Chip struct {
	Index int
	Label string
}

// View is everything a rendering primitive needs to draw the widget.
type View struct {
	Label       string
	Placeholder string
	Chips       []Chip
	Input       string
	HelperText  string
	Error       bool
}

// Editor binds the token transitions to an Accessor. It is not safe for
// concurrent use; events must be delivered in order from a single goroutine.
type Editor struct {
	acc       Accessor
	opts      Options
	state     State
	errorText string
}

// New mounts an editor on acc. A non-empty Options.ErrorText is shown
// immediately.
func New(acc Accessor, opts Options) *Editor {
	e := &Editor{acc: acc, opts: opts}
	e.SetErrorText(opts.ErrorText)
	return e
}

// Path returns the document path the editor is bound to.
func (e *Editor) Path() string {
	return e.opts.Path
}

// Options returns the configuration the editor was mounted with.
func (e *Editor) Options() Options {
	return e.opts
}

// Handle applies a single event.
func (e *Editor) Handle(ev Event) {
	tokens := e.Tokens()
	next, out, changed := Step(e.state, tokens, ev, e.opts.IsKV)
	e.state = next
	if changed {
		e.write(out)
	}
}

// Type feeds every rune of text as a keystroke, spaces included.
func (e *Editor) Type(text string) {
	for _, r := range text {
		e.Handle(Rune(r))
	}
}

// Commit flushes the pending buffer as if a space had been typed.
func (e *Editor) Commit() {
	e.Handle(Space())
}

// Backspace applies a delete-backward keystroke.
func (e *Editor) Backspace() {
	e.Handle(Backspace())
}

// Delete removes token from the list.
func (e *Editor) Delete(token string) {
	e.Handle(Delete(token))
}

// Clear empties the token list.
func (e *Editor) Clear() {
	e.Handle(Clear())
}

// Dismiss records a key press that edits nothing, clearing the error.
func (e *Editor) Dismiss() {
	e.Handle(Key())
}

// SetErrorText shows an externally supplied error. It only takes effect
// when msg is non-empty and differs from the last value supplied, so a
// parent re-sending the same message does not resurrect a dismissed error.
func (e *Editor) SetErrorText(msg string) {
	if msg == e.errorText {
		return
	}
	e.errorText = msg
	if strings.TrimSpace(msg) != "" {
		e.state.Error = msg
	}
}

// Tokens returns a copy of the current token list.
func (e *Editor) Tokens() []string {
	if e.acc == nil {
		return nil
	}
	return append([]string(nil), e.acc.Tokens(e.opts.Path)...)
}

// State returns the editor-owned state.
func (e *Editor) State() State {
	return e.state
}

// Error returns the message currently displayed, if any.
func (e *Editor) Error() string {
	return e.state.Error
}

// HelperText resolves the line displayed under the control: the error when
// one is set, the key:value hint in key:value mode, or the configured help.
func (e *Editor) HelperText() string {
	if e.state.Error != "" {
		return e.state.Error
	}
	if e.opts.IsKV {
		return KVHelperText
	}
	return e.opts.HelperText
}

// View snapshots the data needed to render the widget.
func (e *Editor) View() View {
	tokens := e.Tokens()
	chips := make([]Chip, len(tokens))
	for i, token := range tokens {
		chips[i] = Chip{Index: i, Label: token}
	}
	return View{
		Label:       e.opts.Label,
		Placeholder: e.opts.Placeholder,
		Chips:       chips,
		Input:       e.state.Buffer,
		HelperText:  e.HelperText(),
		Error:       e.state.Error != "",
	}
}

func (e *Editor) write(tokens []string) {
	if e.acc == nil {
		return
	}
	e.acc.SetTokens(e.opts.Path, tokens)
}
