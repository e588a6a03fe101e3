package notes

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
)

// updateNote sends the selected note to the server. A full update saves
// the editor buffer and leaves edit mode; a settings update keeps the
// current mode.
func (m *Model) updateNote(full bool) tea.Cmd {
	return m.submit(full, nil)
}

func (m *Model) togglePublic() tea.Cmd {
	if m.selected == nil {
		return m.showToast(noNoteMessage, toastInfo)
	}
	if m.selected.IsDraft() {
		return m.showToast(draftNotSaved, toastError)
	}
	if m.saving {
		return nil
	}

	previous := m.selected.IsPublic
	m.selected.IsPublic = !previous
	m.renderPreview()
	return m.submit(false, &previous)
}

func (m *Model) submit(full bool, revert *bool) tea.Cmd {
	if m.selected == nil || m.saving {
		return nil
	}
	id, ok := m.selected.Key()
	if !ok {
		return m.showToast(draftNotSaved, toastError)
	}

	update := note.Update{
		Title:    m.selected.Title,
		IsPublic: m.selected.IsPublic,
	}

	if m.editing {
		update.Title = m.editedTitle()
		html, err := m.editedBody()
		if err != nil {
			m.restorePublic(revert)
			return m.showToast(convertFailedPrefix+err.Error(), toastError)
		}
		update.Content = html
		m.saving = true
		return putNote(m.client, id, full, update, revert)
	}

	if content, ok := m.fullContent(id); ok {
		update.Content = content
		m.saving = true
		return putNote(m.client, id, full, update, revert)
	}
	if !m.selected.Paged() {
		update.Content = m.selected.Content
		m.saving = true
		return putNote(m.client, id, full, update, revert)
	}

	// A paged note only holds one page; sending it would truncate the body.
	m.saving = true
	client := m.client
	return func() tea.Msg {
		n, err := client.GetNote(context.Background(), id, api.GetOptions{FullContent: true})
		if err != nil {
			return noteSaveFailedMsg{full: full, err: err, revertPublic: revert}
		}
		update.Content = n.Content
		return putNote(client, id, full, update, revert)()
	}
}

func putNote(client Repository, id int64, full bool, update note.Update, revert *bool) tea.Cmd {
	return func() tea.Msg {
		saved, err := client.UpdateNote(context.Background(), id, update)
		if err != nil {
			return noteSaveFailedMsg{full: full, err: err, revertPublic: revert}
		}
		return noteSavedMsg{id: id, full: full, note: saved, sent: update}
	}
}

func (m *Model) handleNoteSaved(msg noteSavedMsg) tea.Cmd {
	m.saving = false

	saved := msg.note
	if saved != nil && !saved.Paged() {
		m.storeFull(msg.id, saved.Content)
	} else {
		m.storeFull(msg.id, msg.sent.Content)
	}
	if saved == nil {
		saved = &note.Note{
			ID:       note.IDPtr(msg.id),
			Title:    msg.sent.Title,
			Content:  msg.sent.Content,
			IsPublic: msg.sent.IsPublic,
		}
		if m.selected != nil {
			saved.Author = m.selected.Author
			saved.PublicURL = m.selected.PublicURL
		}
	}

	if note.SyncTitle(m.entries, msg.id, saved.Title) {
		m.setEntries(m.entries)
	}

	if id, ok := m.selected.Key(); ok && id == msg.id {
		m.selected = saved
		m.currentPage, m.totalPages = saved.Pages()
	}

	if msg.full {
		if m.editing {
			m.leaveEditing()
		}
		m.renderPreview()
		return m.showToast(savedMessage, toastSuccess)
	}

	m.renderPreview()
	return m.showToast(settingsSavedMessage, toastSuccess)
}

func (m *Model) handleNoteSaveFailed(msg noteSaveFailedMsg) tea.Cmd {
	m.saving = false
	m.restorePublic(msg.revertPublic)
	m.renderPreview()

	err := &SaveError{Err: msg.err}
	m.log.Error().Err(msg.err).Bool("full", msg.full).Msg("note save failed")
	return m.showToast(err.Error(), toastError)
}

func (m *Model) restorePublic(previous *bool) {
	if previous != nil && m.selected != nil {
		m.selected.IsPublic = *previous
	}
}

// editedBody returns the HTML to save. An untouched buffer sends the body
// the session started from, since a markdown round trip is lossy for
// rich HTML.
func (m *Model) editedBody() (string, error) {
	md := m.bridge.Content(m.editBaseline)
	if md == m.editBaseline {
		return m.editSource, nil
	}
	return markup.ToHTML(md)
}

func (m *Model) editedTitle() string {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		return m.placeholder
	}
	return title
}
