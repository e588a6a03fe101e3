package notes

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/kn/internal/editor"
	"github.com/Paintersrp/kn/internal/state"
)

// FromState builds the notes panel for the active workspace. path is an
// optional /knowledge/{id}/ reference to open on startup.
func FromState(s *state.State, path string) (*Model, error) {
	ws := s.Workspace

	factory, err := editor.FactoryFor(ws.Editor, ws.EditorCommandLine())
	if err != nil {
		return nil, err
	}

	s.OpenPrefs()
	s.WatchBootstrap()

	d := Deps{
		Client:        s.Client,
		Editor:        factory,
		Bootstrap:     s.Bootstrap,
		Logger:        s.Logger.With().Str("component", "notes").Logger(),
		ResolveURL:    s.Client.ResolveURL,
		Workspace:     s.WorkspaceName,
		Placeholder:   ws.PlaceholderTitle,
		ToastDuration: ws.Toast(),
		CacheSizeMB:   ws.CacheSizeMB,
		InitialPath:   path,
	}
	if s.Prefs != nil {
		d.Prefs = s.Prefs
	}
	if s.Watcher != nil {
		d.Watcher = s.Watcher
	}

	return New(d)
}

func Run(s *state.State, path string) error {
	m, err := FromState(s, path)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run(); err != nil {
		if strings.Contains(err.Error(), "resource temporarily unavailable") {
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
