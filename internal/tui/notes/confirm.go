package notes

import tea "github.com/charmbracelet/bubbletea"

// confirmDialog holds at most one pending yes/no question. Asking again
// replaces the pending question and resolves it as declined.
type confirmDialog struct {
	visible   bool
	message   string
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func (c *confirmDialog) ask(message string, onConfirm, onCancel func() tea.Cmd) tea.Cmd {
	var superseded tea.Cmd
	if c.visible && c.onCancel != nil {
		superseded = c.onCancel()
	}

	c.visible = true
	c.message = message
	c.onConfirm = onConfirm
	c.onCancel = onCancel
	return superseded
}

func (c *confirmDialog) resolve(accepted bool) tea.Cmd {
	if !c.visible {
		return nil
	}

	next := c.onCancel
	if accepted {
		next = c.onConfirm
	}

	c.visible = false
	c.message = ""
	c.onConfirm = nil
	c.onCancel = nil

	if next == nil {
		return nil
	}
	return next()
}
