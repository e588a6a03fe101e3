package notes

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// pageTarget validates a requested page against the current cursor.
func pageTarget(input string, current, total int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return 0, &ValidationError{Message: invalidPageMessage}
	}
	if n > total {
		return 0, pageRangeError(total)
	}
	if n == current {
		return 0, &ValidationError{Message: samePageMessage, Info: true}
	}
	return n, nil
}

func (m *Model) goToPage(input string) tea.Cmd {
	if m.selected == nil || m.selected.IsDraft() {
		return m.showToast(noNoteMessage, toastInfo)
	}
	n, err := pageTarget(input, m.currentPage, m.totalPages)
	if err != nil {
		return m.showError(err)
	}
	return m.selectNote(m.selectedID, n)
}

func (m *Model) prevPage() tea.Cmd {
	if m.selected == nil || m.selected.IsDraft() || m.currentPage <= 1 {
		return nil
	}
	return m.selectNote(m.selectedID, m.currentPage-1)
}

func (m *Model) nextPage() tea.Cmd {
	if m.selected == nil || m.selected.IsDraft() || m.currentPage >= m.totalPages {
		return nil
	}
	return m.selectNote(m.selectedID, m.currentPage+1)
}

func (m *Model) openPageInput() tea.Cmd {
	if m.selected == nil || m.selected.IsDraft() {
		return nil
	}
	m.focus = focusPage
	m.pageInput.Reset()
	return m.pageInput.Focus()
}
