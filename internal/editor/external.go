package editor

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
)

// External edits markdown in a temp file opened with the user's editor.
// Writes to the file are streamed to the content sink while the editor
// runs.
type External struct {
	command string

	path    string
	watcher *fsnotify.Watcher
	done    chan struct{}
	once    sync.Once

	mu     sync.Mutex
	buffer string

	width  int
	height int
}

func NewExternal(command string) *External {
	return &External{command: strings.TrimSpace(command)}
}

func (e *External) Create(cfg Config, sink ContentSink, ready ReadyFunc) tea.Cmd {
	err := e.open(cfg, sink)
	return func() tea.Msg { return ready(err) }
}

func (e *External) open(cfg Config, sink ContentSink) error {
	if e.command == "" {
		return errors.New("no external editor command configured")
	}

	f, err := os.CreateTemp("", "kn-*.md")
	if err != nil {
		return err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		_ = os.Remove(path)
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		_ = os.Remove(path)
		return err
	}

	// path is only published once the watcher runs, so Destroy never sees
	// a half-open adapter.
	e.path = path
	e.watcher = w
	e.done = make(chan struct{})
	e.width, e.height = cfg.Width, cfg.Height
	go e.watch(sink)
	return nil
}

func (e *External) watch(sink ContentSink) {
	for {
		select {
		case <-e.done:
			return
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(e.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			content, err := e.refresh()
			if err == nil && sink != nil {
				sink(content)
			}
		case _, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (e *External) refresh() (string, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return "", err
	}
	content := string(data)
	e.mu.Lock()
	e.buffer = content
	e.mu.Unlock()
	return content, nil
}

// Path is the temp file being edited.
func (e *External) Path() string {
	return e.path
}

func (e *External) SetContent(content string) {
	e.mu.Lock()
	e.buffer = content
	e.mu.Unlock()
	if e.path != "" {
		_ = os.WriteFile(e.path, []byte(content), 0o600)
	}
}

func (e *External) Content() string {
	if e.path != "" {
		if content, err := e.refresh(); err == nil {
			return content
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer
}

// Launch suspends the UI and runs the editor on the temp file.
func (e *External) Launch() tea.Cmd {
	parts := strings.Fields(e.command)
	if len(parts) == 0 || e.path == "" {
		return nil
	}
	c := exec.Command(parts[0], append(parts[1:], e.path)...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		_, _ = e.refresh()
		return ExternalClosedMsg{Err: err}
	})
}

func (e *External) Destroy() error {
	if e.path == "" || e.done == nil {
		return errNotCreated
	}

	var errs []error
	e.once.Do(func() {
		close(e.done)
		if err := e.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

func (e *External) Update(tea.Msg) tea.Cmd {
	return nil
}

func (e *External) View() string {
	e.mu.Lock()
	content := e.buffer
	e.mu.Unlock()

	return lipgloss.NewStyle().
		Width(e.width).
		MaxHeight(e.height).
		Render(content)
}

func (e *External) SetSize(width, height int) {
	e.width, e.height = width, height
}

func (e *External) Focus() tea.Cmd {
	return nil
}
