package notes

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/editor"
	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
)

func (m *Model) newNote() tea.Cmd {
	if m.editing {
		return m.confirm.ask(confirmNewNote, func() tea.Cmd {
			m.leaveEditing()
			return m.openDraft()
		}, nil)
	}
	return m.openDraft()
}

func (m *Model) openDraft() tea.Cmd {
	// Any load still in flight belongs to the note being replaced.
	m.generation++
	m.finishLoad()

	m.selected = note.NewDraft(m.placeholder, m.author)
	m.selectedID = 0
	m.currentPage, m.totalPages = 1, 1
	m.copyStatus = copyIdle
	return m.enterEditing("")
}

// startEditing opens the selected note in the editor, fetching its full
// content first when only a page of it is known.
func (m *Model) startEditing() tea.Cmd {
	if m.selected == nil {
		return m.showToast(noNoteMessage, toastInfo)
	}
	if m.editing || m.loading {
		return nil
	}

	id, ok := m.selected.Key()
	if !ok || !m.selected.Paged() {
		if content, cached := m.fullContent(id); ok && cached {
			return m.enterEditing(content)
		}
		return m.enterEditing(m.selected.Content)
	}
	if content, cached := m.fullContent(id); cached {
		return m.enterEditing(content)
	}

	m.loading = true
	m.pendingID = id
	gen := m.generation
	client := m.client
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		n, err := client.GetNote(context.Background(), id, api.GetOptions{FullContent: true})
		if err != nil {
			return fullContentMsg{gen: gen, id: id, err: err}
		}
		return fullContentMsg{gen: gen, id: id, content: n.Content}
	})
}

func (m *Model) handleFullContent(msg fullContentMsg) tea.Cmd {
	if msg.gen != m.generation {
		return nil
	}
	m.finishLoad()

	if msg.err != nil {
		m.log.Error().Err(msg.err).Int64("id", msg.id).Msg("full content fetch failed")
		return m.showToast(editLoadFailedPrefix+api.MessageOr(msg.err, api.GenericErrorMessage), toastError)
	}

	m.storeFull(msg.id, msg.content)
	if id, ok := m.selected.Key(); !ok || id != msg.id {
		return nil
	}
	return m.enterEditing(msg.content)
}

// enterEditing switches to edit mode with body, an HTML document, loaded
// into the editor as markdown.
func (m *Model) enterEditing(body string) tea.Cmd {
	md, err := markup.ToMarkdown(body)
	if err != nil {
		return m.showToast(convertFailedPrefix+err.Error(), toastError)
	}

	m.editing = true
	m.editBaseline = md
	m.editSource = body
	m.launchOnReady = true
	m.titleInput.SetValue(m.selected.Title)
	m.titleInput.Blur()
	m.focus = focusEditor

	m.bridge.SetContent(md)
	m.layout()
	return m.ensureAttached()
}

// ensureAttached attaches the editor once edit mode has a place to draw
// it.
func (m *Model) ensureAttached() tea.Cmd {
	if !m.editing || m.bridge.State() != editor.Detached {
		return nil
	}
	if !m.bridge.Mounted() {
		m.attachPending = true
		return nil
	}
	m.attachPending = false
	return m.bridge.Attach(m.bridge.Content(m.editBaseline))
}

// leaveEditing tears the editor down and returns to the viewer. A draft
// that was never saved is dropped.
func (m *Model) leaveEditing() {
	m.bridge.Detach()
	m.bridge.Forget()

	m.editing = false
	m.editBaseline = ""
	m.editSource = ""
	m.attachPending = false
	m.launchOnReady = false
	m.titleInput.Blur()
	m.titleInput.Reset()
	m.focus = focusViewer

	if m.selected.IsDraft() {
		m.selected = nil
		m.focus = focusSidebar
	}
	m.layout()
	m.renderPreview()
}

func (m *Model) cancelEditing() tea.Cmd {
	if !m.editing {
		return nil
	}
	if !m.hasUnsavedChanges() {
		m.leaveEditing()
		return nil
	}
	return m.confirm.ask(confirmCancelEdit, func() tea.Cmd {
		m.leaveEditing()
		return nil
	}, nil)
}

func (m *Model) hasUnsavedChanges() bool {
	if !m.editing || m.selected == nil {
		return false
	}
	if m.titleInput.Value() != m.selected.Title {
		return true
	}
	return m.bridge.Content(m.editBaseline) != m.editBaseline
}
