package bubble

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-chaosform/pkg/labelfield"
)

const hints = "space commit  |  ←/→ select chip  |  del remove  |  ctrl+u clear  |  enter done"

// LabelInput is a bubbletea model drawing a labelfield.Editor as a row of
// chips followed by the input buffer.
type LabelInput struct {
	editor   *labelfield.Editor
	selected int
	width    int
	done     bool
	aborted  bool
}

var _ tea.Model = (*LabelInput)(nil)

// NewLabelInput mounts an editor on acc and wraps it in a model.
func NewLabelInput(acc labelfield.Accessor, opts labelfield.Options) *LabelInput {
	return &LabelInput{
		editor:   labelfield.New(acc, opts),
		selected: -1,
	}
}

// Editor exposes the wrapped editor.
func (m *LabelInput) Editor() *labelfield.Editor {
	return m.editor
}

// Done reports whether the user finished editing.
func (m *LabelInput) Done() bool { return m.done }

// Aborted reports whether the user left with ctrl+c.
func (m *LabelInput) Aborted() bool { return m.aborted }

// Selected returns the index of the highlighted chip, or -1.
func (m *LabelInput) Selected() int { return m.selected }

// Init implements tea.Model.
func (m *LabelInput) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *LabelInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.HandleKey(msg) {
			return m, tea.Quit
		}
	}
	return m, nil
}

// HandleKey applies a key press and reports whether the model is finished.
func (m *LabelInput) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case msg.Type == tea.KeyRunes:
		m.selected = -1
		for _, r := range msg.Runes {
			m.editor.Handle(labelfield.Rune(r))
		}
	case isKey(msg, "ctrl+c"):
		m.aborted = true
		m.done = true
	case isKey(msg, "enter", "esc"):
		if m.editor.State().Buffer != "" {
			m.editor.Commit()
		}
		m.done = m.editor.Error() == ""
	case isKey(msg, " "):
		m.selected = -1
		m.editor.Commit()
	case isKey(msg, "left"):
		m.editor.Dismiss()
		m.moveSelection(-1)
	case isKey(msg, "right"):
		m.editor.Dismiss()
		m.moveSelection(1)
	case isKey(msg, "backspace"):
		m.editor.Dismiss()
		if !m.deleteSelected() {
			m.editor.Backspace()
		}
	case isKey(msg, "delete"):
		m.editor.Dismiss()
		m.deleteSelected()
	case isKey(msg, "ctrl+u"):
		m.editor.Dismiss()
		m.selected = -1
		m.editor.Clear()
	}
	return m.done
}

// moveSelection walks the chip highlight. Selection only starts from an
// empty buffer so typing is never interrupted.
func (m *LabelInput) moveSelection(delta int) {
	count := len(m.editor.Tokens())
	if count == 0 || m.editor.State().Buffer != "" {
		m.selected = -1
		return
	}
	if m.selected < 0 {
		if delta < 0 {
			m.selected = count - 1
		}
		return
	}
	next := m.selected + delta
	switch {
	case next < 0:
		m.selected = 0
	case next >= count:
		m.selected = -1
	default:
		m.selected = next
	}
}

func (m *LabelInput) deleteSelected() bool {
	tokens := m.editor.Tokens()
	if m.selected < 0 || m.selected >= len(tokens) {
		return false
	}
	m.editor.Delete(tokens[m.selected])
	if m.selected >= len(tokens)-1 {
		m.selected = len(tokens) - 2
	}
	return true
}

// View implements tea.Model.
func (m *LabelInput) View() string {
	view := m.editor.View()

	var row strings.Builder
	for _, chip := range view.Chips {
		style := chipStyle
		if chip.Index == m.selected {
			style = selectedChipStyle
		}
		row.WriteString(style.Render(chip.Label))
	}
	switch {
	case view.Input != "":
		row.WriteString(inputStyle.Render(view.Input))
	case len(view.Chips) == 0 && view.Placeholder != "":
		row.WriteString(mutedStyle.Render(view.Placeholder))
	}
	row.WriteString(cursorStyle.Render("█"))

	helper := mutedStyle.Render(view.HelperText)
	if view.Error {
		helper = errorStyle.Render(view.HelperText)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(view.Label),
		row.String(),
		helper,
	)
	box := boxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	return box.Render(body) + "\n" + mutedStyle.Render(hints) + "\n"
}

// Run drives a LabelInput on the terminal until the user finishes. The
// returned tokens are read back through the accessor.
func Run(acc labelfield.Accessor, opts labelfield.Options, programOpts ...tea.ProgramOption) ([]string, error) {
	model := NewLabelInput(acc, opts)
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		return nil, err
	}
	if model.Aborted() {
		return nil, ErrAborted
	}
	return model.Editor().Tokens(), nil
}

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}
