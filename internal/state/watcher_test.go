package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestBootstrapWatcherReportsRewrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boot.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewBootstrapWatcher(path)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	msgs := make(chan any, 1)
	go func() { msgs <- w.Start()() }()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	tmp := filepath.Join(dir, "boot.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{"has_notes":true,"sidebar_notes":[{"id":2,"title":"b"}]}`), 0o644); err != nil {
		t.Fatalf("write tmp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	select {
	case msg := <-msgs:
		changed, ok := msg.(BootstrapChangedMsg)
		if !ok {
			t.Fatalf("expected BootstrapChangedMsg, got %T", msg)
		}
		if !changed.Data.HasNotes || len(changed.Data.SidebarNotes) != 1 {
			t.Fatalf("unexpected payload %+v", changed.Data)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}

func TestBootstrapWatcherIgnoresOtherFiles(t *testing.T) {
	w := &BootstrapWatcher{path: filepath.Clean("/tmp/boot.json")}

	if w.isRelevant(fsnotify.Event{Name: "/tmp/other.json", Op: fsnotify.Write}) {
		t.Fatalf("expected unrelated file to be ignored")
	}
	if w.isRelevant(fsnotify.Event{Name: "/tmp/boot.json", Op: fsnotify.Chmod}) {
		t.Fatalf("expected chmod to be ignored")
	}
	if !w.isRelevant(fsnotify.Event{Name: "/tmp/boot.json", Op: fsnotify.Write}) {
		t.Fatalf("expected write to be relevant")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := NewBootstrapWatcher(filepath.Join(t.TempDir(), "boot.json"))
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}

	calls := 0
	w.OnClose(func() { calls++ })

	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one close callback, got %d", calls)
	}
	if msg := w.Start()(); msg != nil {
		t.Fatalf("expected closed watcher to return nil, got %T", msg)
	}
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "kn.log")

	logger, f, err := NewLogger(path, true)
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	logger.Debug().Str("k", "v").Msg("hello")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected debug line in log")
	}
}
