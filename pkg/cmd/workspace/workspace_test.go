package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/kn/internal/config"
	"github.com/Paintersrp/kn/internal/state"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()
	home := t.TempDir()
	if err := os.MkdirAll(filepath.Dir(config.GetConfigPath(home)), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		t.Fatalf("failed to get workspace: %v", err)
	}
	return &state.State{Config: cfg, Workspace: ws, WorkspaceName: cfg.CurrentWorkspace, Home: home}
}

func run(t *testing.T, s *state.State, args ...string) string {
	t.Helper()
	cmd := NewCmdWorkspace(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("workspace %v failed: %v", args, err)
	}
	return out.String()
}

func TestAddSwitchRemove(t *testing.T) {
	s := newTestState(t)
	s.Workspace.Editor = "external"
	s.Workspace.EditorCommand = "nvim"

	run(t, s, "add", "--name", "work", "--url", "https://notes.example.com")
	work := s.Config.Workspaces["work"]
	if work == nil || work.BaseURL != "https://notes.example.com" {
		t.Fatalf("expected workspace added, got %+v", work)
	}
	if work.Editor != "external" || work.EditorCommand != "nvim" {
		t.Fatalf("expected editor settings copied, got %+v", work)
	}
	if work.SessionID != "" {
		t.Fatalf("expected session not copied")
	}

	run(t, s, "switch", "work")
	if s.Config.CurrentWorkspace != "work" {
		t.Fatalf("expected work to be current, got %q", s.Config.CurrentWorkspace)
	}

	out := run(t, s, "list")
	if !strings.Contains(out, "* work\thttps://notes.example.com") {
		t.Fatalf("unexpected list output %q", out)
	}

	run(t, s, "remove", "default")
	if _, ok := s.Config.Workspaces["default"]; ok {
		t.Fatalf("expected default removed")
	}

	raw, err := os.ReadFile(s.Config.GetConfigPath())
	if err != nil {
		t.Fatalf("expected config saved: %v", err)
	}
	if !strings.Contains(string(raw), "current_workspace: work") {
		t.Fatalf("unexpected saved config:\n%s", raw)
	}
}

func TestSwitchWithoutNamePrompts(t *testing.T) {
	s := newTestState(t)
	run(t, s, "add", "--name", "work", "--url", "https://notes.example.com")

	prev := pickWorkspace
	pickWorkspace = func(names []string, current string) (string, error) {
		if current != "default" || len(names) != 2 {
			t.Fatalf("unexpected prompt input %v %q", names, current)
		}
		return "work", nil
	}
	defer func() { pickWorkspace = prev }()

	run(t, s, "switch")
	if s.Config.CurrentWorkspace != "work" {
		t.Fatalf("expected the picked workspace to be current")
	}
}

func TestSessionAndEditor(t *testing.T) {
	s := newTestState(t)

	run(t, s, "session", " abc123 ", "tok")
	if s.Workspace.SessionID != "abc123" || s.Workspace.CSRFToken != "tok" {
		t.Fatalf("unexpected session %+v", s.Workspace)
	}

	run(t, s, "editor", "external")
	if s.Workspace.Editor != "external" {
		t.Fatalf("expected editor changed, got %q", s.Workspace.Editor)
	}
}
