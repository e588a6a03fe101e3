// Package editor owns the lifecycle of the note editing widget. A Bridge
// holds at most one widget instance, created through a pluggable Adapter,
// and is the only code allowed to create or destroy it.
package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type Config struct {
	Width       int
	Height      int
	Placeholder string
	// Options carries the server supplied editor configuration.
	Options map[string]any
}

// ContentSink receives buffer changes that happen outside the UI loop.
type ContentSink func(content string)

// ReadyFunc builds the message reporting that creation finished.
type ReadyFunc func(err error) tea.Msg

type Adapter interface {
	// Create starts building the widget. The returned command must
	// eventually yield ready(nil) or ready(err).
	Create(cfg Config, sink ContentSink, ready ReadyFunc) tea.Cmd
	SetContent(content string)
	Content() string
	Destroy() error

	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Focus() tea.Cmd
}

// Launcher is implemented by adapters that hand the terminal to another
// program.
type Launcher interface {
	Launch() tea.Cmd
}

type Factory func() Adapter

// FactoryFor maps a configured editor kind to its adapter.
func FactoryFor(kind, command string) (Factory, error) {
	switch kind {
	case "", "textarea":
		return func() Adapter { return NewTextarea() }, nil
	case "external":
		return func() Adapter { return NewExternal(command) }, nil
	}
	return nil, fmt.Errorf("unknown editor %q", kind)
}

type ReadyMsg struct {
	seq uint64
}

type FailedMsg struct {
	seq uint64
	Err error
}

// ExternalClosedMsg reports that the external editor process exited.
type ExternalClosedMsg struct {
	Err error
}

// InitError is a widget that failed to construct.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("editor init: %v", e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
