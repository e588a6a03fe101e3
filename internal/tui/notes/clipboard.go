package notes

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

const copyResetDelay = 2 * time.Second

var (
	clipboardWrite       = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

func writeClipboard(text string) error {
	if clipboardUnsupported() {
		return &ClipboardError{Message: clipboardUnsupportedMessage}
	}
	if err := clipboardWrite(text); err != nil {
		return &ClipboardError{Message: clipboardFailedMessage, Err: err}
	}
	return nil
}

// copyPublicURL puts the absolute public link of the selected note on the
// clipboard.
func (m *Model) copyPublicURL() tea.Cmd {
	if m.selected == nil || m.selected.PublicURL == "" {
		return m.showToast(noPublicURLMessage, toastInfo)
	}

	url := m.resolve(m.selected.PublicURL)
	if err := writeClipboard(url); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write failed")
		return m.showToast(err.Error(), toastError)
	}

	m.copyStatus = copyDone
	m.copySeq++
	seq := m.copySeq
	m.renderPreview()

	return tea.Batch(
		m.showToast(copiedMessage, toastSuccess),
		tea.Tick(copyResetDelay, func(time.Time) tea.Msg {
			return copyResetMsg{seq: seq}
		}),
	)
}
