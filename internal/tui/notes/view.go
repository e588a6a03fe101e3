package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/kn/internal/editor"
)

const (
	headerHeight = 1
	footerHeight = 1
	minPaneWidth = 20
)

// layout sizes every pane from the terminal size.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}

	h, v := appStyle.GetFrameSize()
	bodyHeight := max(m.height-v-headerHeight-footerHeight, 3)

	sideWidth := sidebarWidth
	if m.collapsed {
		sideWidth = collapsedSidebarWidth
	}
	sideFrame := listStyle.GetHorizontalFrameSize()
	paneWidth := max(m.width-h-sideWidth-sideFrame-previewStyle.GetHorizontalFrameSize(), minPaneWidth)

	m.sidebar.SetSize(sidebarWidth, bodyHeight-1)
	m.searchInput.Width = sidebarWidth - 4

	m.viewport.Width = paneWidth
	m.viewport.Height = bodyHeight - 1

	m.titleInput.Width = paneWidth - 8
	m.bridge.SetMount(paneWidth, bodyHeight-2)

	m.help.Width = m.width - h
}

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	_, v := appStyle.GetFrameSize()
	bodyHeight := max(m.height-v-headerHeight-footerHeight, 3)

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.sidebarView(bodyHeight),
		previewStyle.Height(bodyHeight).Render(m.mainView()),
	)
	if m.confirm.visible {
		body = m.confirmView(bodyHeight)
	}

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		body,
		m.footerView(),
	))
}

func (m *Model) headerView() string {
	parts := []string{titleStyle.Render("kn")}
	if m.workspace != "" {
		parts = append(parts, mutedStyle.Render(m.workspace))
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+mutedStyle.Render(" 加载中"))
	}
	if m.saving {
		parts = append(parts, mutedStyle.Render("保存中…"))
	}
	if m.editing {
		parts = append(parts, statusBannerStyle.Render("编辑"))
	}
	return strings.Join(parts, " ")
}

func (m *Model) mainView() string {
	if m.editing {
		return m.editorView()
	}

	pager := ""
	switch {
	case m.focus == focusPage:
		pager = m.pageInput.View() + mutedStyle.Render(fmt.Sprintf(" / %d 页", m.totalPages))
	case m.selected != nil && m.totalPages > 1:
		pager = mutedStyle.Render(fmt.Sprintf("第 %d / %d 页  [ ] g", m.currentPage, m.totalPages))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), pager)
}

func (m *Model) editorView() string {
	title := m.titleInput.View()

	var body string
	switch m.bridge.State() {
	case editor.Attached:
		body = m.bridge.View()
	case editor.Attaching:
		body = mutedStyle.Render("正在启动编辑器…")
	default:
		if m.attachPending {
			body = mutedStyle.Render("等待编辑区域…")
		} else {
			body = mutedStyle.Render("编辑器不可用，按 esc 返回")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body)
}

func (m *Model) confirmView(height int) string {
	h, _ := appStyle.GetFrameSize()
	dialog := dialogStyle.Width(min(60, m.width-h-4)).Render(
		m.confirm.message + "\n\n" + mutedStyle.Render("[y] 确定   [n] 取消"),
	)
	return lipgloss.Place(m.width-h, height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *Model) footerView() string {
	if m.toast.visible {
		return toastStyles[m.toast.kind].Render(m.toast.message)
	}
	return renderHelpWithinWidth(m.help.Width, m.help.View(helpKeys{keys: m.keys, editing: m.editing}))
}
