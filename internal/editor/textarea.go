package editor

import (
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

var errNotCreated = errors.New("editor: not created")

// Textarea edits markdown inline with bubbles/textarea.
type Textarea struct {
	area *textarea.Model
}

func NewTextarea() *Textarea {
	return &Textarea{}
}

func (t *Textarea) Create(cfg Config, _ ContentSink, ready ReadyFunc) tea.Cmd {
	ta := textarea.New()
	ta.Placeholder = cfg.Placeholder
	ta.CharLimit = 0
	// Zero lifts the 99 line cap; SetValue drops lines past it.
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	if v, ok := cfg.Options["show_line_numbers"].(bool); ok {
		ta.ShowLineNumbers = v
	}
	if v, ok := cfg.Options["char_limit"].(float64); ok && v > 0 {
		ta.CharLimit = int(v)
	}
	ta.SetWidth(cfg.Width)
	ta.SetHeight(cfg.Height)
	t.area = &ta

	return func() tea.Msg { return ready(nil) }
}

func (t *Textarea) SetContent(content string) {
	if t.area == nil {
		return
	}
	t.area.SetValue(content)
}

func (t *Textarea) Content() string {
	if t.area == nil {
		return ""
	}
	return t.area.Value()
}

func (t *Textarea) Destroy() error {
	if t.area == nil {
		return errNotCreated
	}
	t.area.Blur()
	t.area = nil
	return nil
}

func (t *Textarea) Update(msg tea.Msg) tea.Cmd {
	if t.area == nil {
		return nil
	}
	var cmd tea.Cmd
	*t.area, cmd = t.area.Update(msg)
	return cmd
}

func (t *Textarea) View() string {
	if t.area == nil {
		return ""
	}
	return t.area.View()
}

func (t *Textarea) SetSize(width, height int) {
	if t.area == nil {
		return
	}
	t.area.SetWidth(width)
	t.area.SetHeight(height)
}

func (t *Textarea) Focus() tea.Cmd {
	if t.area == nil {
		return nil
	}
	return t.area.Focus()
}

// Blur stops the cursor so keys can go to other inputs.
func (t *Textarea) Blur() {
	if t.area != nil {
		t.area.Blur()
	}
}
