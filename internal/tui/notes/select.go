package notes

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/api"
)

// selectNote opens a note at the given page, asking first when there is
// an edit in progress.
func (m *Model) selectNote(id int64, page int) tea.Cmd {
	if page < 1 {
		page = 1
	}
	if m.editing {
		return m.confirm.ask(confirmSwitchNote, func() tea.Cmd {
			m.leaveEditing()
			return m.loadNote(id, page)
		}, nil)
	}
	return m.loadNote(id, page)
}

// loadNote starts a fetch. A load for a different note supersedes the one
// in flight, whose response is then dropped by generation.
func (m *Model) loadNote(id int64, page int) tea.Cmd {
	if m.loading && m.pendingID == id {
		return nil
	}
	if !m.loading && m.selected != nil && m.selectedID == id && m.currentPage == page {
		return nil
	}

	m.generation++
	m.loading = true
	m.pendingID = id
	m.copyStatus = copyIdle

	_, cached := m.fullContent(id)
	return tea.Batch(m.spinner.Tick, fetchNote(m.client, m.generation, id, page, !cached))
}

func fetchNote(client Repository, gen uint64, id int64, page int, needFull bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		n, err := client.GetNote(ctx, id, api.GetOptions{Page: page})
		if err != nil {
			return noteLoadFailedMsg{gen: gen, id: id, err: err}
		}

		msg := noteLoadedMsg{gen: gen, id: id, page: page, note: n}
		if !n.Paged() {
			content := n.Content
			msg.full = &content
			return msg
		}
		if !needFull {
			return msg
		}

		full, err := client.GetNote(ctx, id, api.GetOptions{FullContent: true})
		if err == nil {
			msg.full = &full.Content
		}
		return msg
	}
}

func (m *Model) handleNoteLoaded(msg noteLoadedMsg) tea.Cmd {
	if msg.gen != m.generation {
		return nil
	}
	m.finishLoad()

	m.selected = msg.note
	m.selectedID = msg.id
	m.currentPage, m.totalPages = msg.note.Pages()

	var cmd tea.Cmd
	if msg.full != nil {
		m.storeFull(msg.id, *msg.full)
	} else if _, ok := m.fullContent(msg.id); !ok {
		m.log.Warn().Int64("id", msg.id).Msg("full content unavailable")
		cmd = m.showToast(fullContentFailed, toastError)
	}

	m.syncSidebarSelection()
	m.renderPreview()
	return cmd
}

func (m *Model) handleNoteLoadFailed(msg noteLoadFailedMsg) tea.Cmd {
	if msg.gen != m.generation {
		return nil
	}
	m.finishLoad()

	m.log.Error().Err(msg.err).Int64("id", msg.id).Msg("note load failed")
	m.selected = nil
	m.selectedID = 0
	m.currentPage, m.totalPages = 1, 1
	m.renderPreview()
	return m.showToast(loadFailedMessage, toastError)
}

// finishLoad releases the loading flag. Every load result handler calls
// it before anything else.
func (m *Model) finishLoad() {
	m.loading = false
	m.pendingID = 0
}

func (m *Model) fullContent(id int64) (string, bool) {
	v, ok, err := m.cache.Get(fullKey(id))
	if err != nil || !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *Model) storeFull(id int64, content string) {
	if err := m.cache.Put(fullKey(id), content); err != nil {
		m.log.Warn().Err(err).Int64("id", id).Msg("full content not cached")
	}
}
