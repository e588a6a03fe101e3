package notes

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/note"
)

// searchNotes refreshes the sidebar from the search box. An empty query
// lists every note.
func (m *Model) searchNotes() tea.Cmd {
	m.searchGen++
	gen := m.searchGen
	query := strings.TrimSpace(m.searchInput.Value())
	client := m.client

	return func() tea.Msg {
		var (
			entries []note.SidebarEntry
			err     error
		)
		if query == "" {
			entries, err = client.ListNotes(context.Background())
		} else {
			entries, err = client.SearchNotes(context.Background(), query)
		}
		return sidebarLoadedMsg{gen: gen, query: query, entries: entries, err: err}
	}
}

func (m *Model) handleSidebarLoaded(msg sidebarLoadedMsg) tea.Cmd {
	if msg.gen != m.searchGen {
		return nil
	}

	if msg.err != nil {
		m.autoSelect = false
		m.log.Error().Err(msg.err).Str("query", msg.query).Msg("search failed")
		text := searchFailedMessage
		if detail := api.MessageOr(msg.err, ""); detail != "" {
			text += ": " + detail
		}
		return m.showToast(text, toastError)
	}

	m.setEntries(msg.entries)
	if msg.query == "" {
		m.hasNotes = len(msg.entries) > 0
	}

	if m.autoSelect {
		m.autoSelect = false
		if len(msg.entries) > 0 && m.selected == nil && !m.loading {
			return m.selectNote(msg.entries[0].ID, 1)
		}
	}
	return nil
}
