package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/bootstrap"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/utils"
)

const (
	sidebarWidth          = 32
	collapsedSidebarWidth = 6
)

type sidebarItem struct {
	entry note.SidebarEntry
}

func (i sidebarItem) Title() string       { return i.entry.Title }
func (i sidebarItem) Description() string { return fmt.Sprintf("#%d", i.entry.ID) }
func (i sidebarItem) FilterValue() string { return i.entry.Title }

func newSidebar() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	l := list.New(nil, d, 0, 0)
	l.Title = "笔记"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetStatusBarItemName("note", "notes")
	l.DisableQuitKeybindings()
	return l
}

// setEntries replaces the sidebar wholesale.
func (m *Model) setEntries(entries []note.SidebarEntry) {
	m.entries = entries
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, sidebarItem{entry: e})
	}
	m.sidebar.SetItems(items)
	m.syncSidebarSelection()
}

func (m *Model) syncSidebarSelection() {
	if m.selectedID == 0 {
		return
	}
	for i, e := range m.entries {
		if e.ID == m.selectedID {
			m.sidebar.Select(i)
			return
		}
	}
}

func (m *Model) toggleSidebar() tea.Cmd {
	m.collapsed = !m.collapsed
	if err := m.prefs.SetSidebarCollapsed(m.collapsed); err != nil {
		m.log.Warn().Err(err).Msg("sidebar preference not saved")
	}
	if m.collapsed && (m.focus == focusSidebar || m.focus == focusSearch) {
		m.searchInput.Blur()
		m.focus = focusViewer
		if m.editing {
			m.focus = focusEditor
		}
	}

	m.layout()
	m.renderPreview()

	if m.editing {
		m.launchOnReady = false
		return m.bridge.Remount()
	}
	return nil
}

// focusSearch moves focus to the search box, expanding the sidebar first
// when it is collapsed.
func (m *Model) focusSearch() tea.Cmd {
	var cmd tea.Cmd
	if m.collapsed {
		cmd = m.toggleSidebar()
	}
	m.focus = focusSearch
	return tea.Batch(cmd, m.searchInput.Focus())
}

// applyBootstrap takes a rewritten bootstrap payload into account.
func (m *Model) applyBootstrap(d *bootstrap.Data) tea.Cmd {
	if d == nil || !d.Loaded {
		return nil
	}
	m.boot = d
	m.author = d.Author()
	m.hasNotes = d.HasNotes

	if d.CSRFToken != "" {
		if c, ok := m.client.(interface{ SetCSRFToken(string) }); ok {
			c.SetCSRFToken(d.CSRFToken)
		}
	}

	m.setEntries(d.SidebarNotes)
	m.log.Debug().Int("notes", len(d.SidebarNotes)).Msg("bootstrap reloaded")
	return nil
}

func (m *Model) sidebarView(height int) string {
	if m.collapsed {
		return m.collapsedSidebarView(height)
	}

	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	if len(m.entries) == 0 {
		empty := "还没有笔记，按 n 新建"
		if strings.TrimSpace(m.searchInput.Value()) != "" {
			empty = "没有匹配的笔记"
		}
		b.WriteString(mutedStyle.Render(utils.Truncate(empty, sidebarWidth-2)))
		return listStyle.Width(sidebarWidth).Height(height).Render(b.String())
	}
	b.WriteString(m.sidebar.View())
	return listStyle.Width(sidebarWidth).Height(height).Render(b.String())
}

func (m *Model) collapsedSidebarView(height int) string {
	lines := []string{statusBannerStyle.Render("≡"), mutedStyle.Render(fmt.Sprintf("%d", len(m.entries)))}
	if m.selected != nil {
		lines = append(lines, utils.Truncate(m.selected.Title, collapsedSidebarWidth-1))
	}
	return listStyle.Width(collapsedSidebarWidth).Height(height).Render(strings.Join(lines, "\n"))
}
