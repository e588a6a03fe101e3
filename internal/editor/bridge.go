package editor

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type State int

const (
	Detached State = iota
	Attaching
	Attached
)

func (s State) String() string {
	switch s {
	case Attaching:
		return "attaching"
	case Attached:
		return "attached"
	default:
		return "detached"
	}
}

type Bridge struct {
	factory Factory
	cfg     Config
	log     zerolog.Logger

	state    State
	instance Adapter
	pending  string
	width    int
	height   int

	mu        sync.Mutex
	seq       uint64
	lastKnown string
	known     bool
}

func NewBridge(factory Factory, cfg Config, log zerolog.Logger) *Bridge {
	return &Bridge{factory: factory, cfg: cfg, log: log}
}

func (b *Bridge) State() State {
	return b.state
}

// SetMount records the area the widget may occupy. A zero area means
// there is nowhere to attach.
func (b *Bridge) SetMount(width, height int) {
	b.width, b.height = width, height
	if b.instance != nil {
		b.instance.SetSize(width, height)
	}
}

func (b *Bridge) Mounted() bool {
	return b.width > 0 && b.height > 0
}

// Attach shows content in the widget, creating it when needed.
func (b *Bridge) Attach(content string) tea.Cmd {
	b.remember(content)

	switch b.state {
	case Attached:
		b.instance.SetContent(content)
		return nil
	case Attaching:
		b.pending = content
		return nil
	}

	if !b.Mounted() || b.factory == nil {
		return nil
	}

	b.destroy()

	seq := b.nextSeq()
	inst := b.factory()
	b.instance = inst
	b.state = Attaching
	b.pending = content

	cfg := b.cfg
	cfg.Width, cfg.Height = b.width, b.height

	ready := func(err error) tea.Msg {
		if err != nil {
			return FailedMsg{seq: seq, Err: err}
		}
		return ReadyMsg{seq: seq}
	}

	cmd := inst.Create(cfg, b.sink(seq), ready)
	if cmd == nil {
		return func() tea.Msg { return ready(nil) }
	}
	return cmd
}

// HandleReady completes an attachment and pushes the pending content.
// Messages from superseded attachments are ignored.
func (b *Bridge) HandleReady(msg ReadyMsg) tea.Cmd {
	if !b.current(msg.seq) || b.state != Attaching || b.instance == nil {
		return nil
	}
	b.state = Attached
	b.instance.SetSize(b.width, b.height)
	b.instance.SetContent(b.pending)
	return b.instance.Focus()
}

// HandleFailed tears down a failed attachment and reports the error, or
// returns nil for a superseded one.
func (b *Bridge) HandleFailed(msg FailedMsg) error {
	if !b.current(msg.seq) || b.state != Attaching {
		return nil
	}
	b.destroy()
	b.state = Detached
	b.log.Error().Err(msg.Err).Msg("editor creation failed")
	return &InitError{Err: msg.Err}
}

// Detach destroys the widget, keeping its content as the last known
// buffer. It never fails.
func (b *Bridge) Detach() {
	if b.state == Attached && b.instance != nil {
		b.remember(b.instance.Content())
	}
	b.destroy()
	b.state = Detached
	b.nextSeq()
}

// Remount rebuilds the widget around its current buffer.
func (b *Bridge) Remount() tea.Cmd {
	switch b.state {
	case Attaching:
		return nil
	case Attached:
		content := b.instance.Content()
		b.Detach()
		return b.Attach(content)
	}

	content, ok := b.last()
	if !ok {
		return nil
	}
	return b.Attach(content)
}

// Content returns the live buffer, or the last known content when no
// widget is attached, or fallback when nothing was ever attached.
func (b *Bridge) Content(fallback string) string {
	if b.state == Attached && b.instance != nil {
		return b.instance.Content()
	}
	if content, ok := b.last(); ok {
		return content
	}
	return fallback
}

func (b *Bridge) SetContent(content string) {
	b.remember(content)
	switch b.state {
	case Attached:
		b.instance.SetContent(content)
	case Attaching:
		b.pending = content
	}
}

// Forget drops the last known buffer.
func (b *Bridge) Forget() {
	b.mu.Lock()
	b.lastKnown, b.known = "", false
	b.mu.Unlock()
}

func (b *Bridge) Update(msg tea.Msg) tea.Cmd {
	if b.state != Attached {
		return nil
	}
	return b.instance.Update(msg)
}

func (b *Bridge) View() string {
	if b.state != Attached {
		return ""
	}
	return b.instance.View()
}

func (b *Bridge) Focus() tea.Cmd {
	if b.state != Attached {
		return nil
	}
	return b.instance.Focus()
}

// Launch hands the terminal to an external editor, if the adapter is one.
func (b *Bridge) Launch() tea.Cmd {
	if b.state != Attached {
		return nil
	}
	if l, ok := b.instance.(Launcher); ok {
		return l.Launch()
	}
	return nil
}

func (b *Bridge) destroy() {
	inst := b.instance
	b.instance = nil
	if inst == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Warn().Interface("panic", r).Msg("editor destroy panicked")
		}
	}()
	if err := inst.Destroy(); err != nil {
		b.log.Warn().Err(err).Msg("editor destroy failed")
	}
}

func (b *Bridge) sink(seq uint64) ContentSink {
	return func(content string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if seq == b.seq {
			b.lastKnown, b.known = content, true
		}
	}
}

func (b *Bridge) nextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

func (b *Bridge) current(seq uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return seq == b.seq
}

func (b *Bridge) remember(content string) {
	b.mu.Lock()
	b.lastKnown, b.known = content, true
	b.mu.Unlock()
}

func (b *Bridge) last() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastKnown, b.known
}
