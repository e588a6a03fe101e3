package state

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/kn/internal/bootstrap"
)

// BootstrapChangedMsg carries a payload re-read after the bootstrap file
// changed on disk.
type BootstrapChangedMsg struct {
	Data *bootstrap.Data
}

type BootstrapWatcherErrMsg struct {
	Err error
}

// BootstrapWatcher follows the bootstrap file so a host process can refresh
// the sidebar listing while the UI runs.
type BootstrapWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
	once    sync.Once
	onClose func()
}

func NewBootstrapWatcher(path string) (*BootstrapWatcher, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("bootstrap path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &BootstrapWatcher{
		watcher: w,
		path:    filepath.Clean(abs),
		done:    make(chan struct{}),
	}

	// Watch the directory: editors and atomic writers replace the file.
	if err := w.Add(filepath.Dir(watcher.path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start waits for the next relevant change. Callers re-issue it after each
// message to keep listening.
func (w *BootstrapWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}

				data, err := bootstrap.Load(w.path)
				if err != nil {
					return BootstrapWatcherErrMsg{Err: err}
				}
				return BootstrapChangedMsg{Data: data}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return BootstrapWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *BootstrapWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *BootstrapWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

func (w *BootstrapWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
