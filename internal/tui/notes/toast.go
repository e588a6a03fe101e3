package notes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
	toastInfo
)

func (k toastKind) String() string {
	switch k {
	case toastError:
		return "error"
	case toastInfo:
		return "info"
	default:
		return "success"
	}
}

// toast is a single transient message. Each show bumps seq so an older
// timer cannot hide a newer message.
type toast struct {
	visible bool
	message string
	kind    toastKind
	seq     int
}

func (t *toast) show(message string, kind toastKind, d time.Duration) tea.Cmd {
	t.seq++
	t.visible = true
	t.message = message
	t.kind = kind

	seq := t.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (t *toast) expire(seq int) {
	if seq == t.seq {
		t.visible = false
	}
}

func (m *Model) showToast(message string, kind toastKind) tea.Cmd {
	m.log.Debug().Str("kind", kind.String()).Str("message", message).Msg("toast")
	return m.toast.show(message, kind, m.toastDuration)
}

// showError toasts err, using the message carried by typed errors.
func (m *Model) showError(err error) tea.Cmd {
	if ve, ok := err.(*ValidationError); ok && ve.Info {
		return m.showToast(ve.Message, toastInfo)
	}
	return m.showToast(err.Error(), toastError)
}
