package workspace

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kn/internal/config"
	"github.com/Paintersrp/kn/internal/state"
)

func NewCmdWorkspace(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
		Long: heredoc.Doc(`
			A workspace is one notes server: its base URL, session and editor
			settings. Every command runs against the current workspace unless
			--workspace names another.
		`),
	}

	cmd.AddCommand(
		newCmdWorkspaceList(s),
		newCmdWorkspaceSwitch(s),
		newCmdWorkspaceAdd(s),
		newCmdWorkspaceRemove(s),
		newCmdWorkspaceSession(s),
		newCmdWorkspaceEditor(s),
	)

	return cmd
}

func newCmdWorkspaceList(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured workspaces",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := s.Config.WorkspaceNames()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workspaces configured")
				return nil
			}

			for _, name := range names {
				marker := " "
				if name == s.Config.CurrentWorkspace {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, name, s.Config.Workspaces[name].BaseURL)
			}

			return nil
		},
	}
}

var pickWorkspace = func(names []string, current string) (string, error) {
	// The active workspace is listed first so enter keeps it.
	choices := make([]string, 0, len(names))
	choices = append(choices, current)
	for _, name := range names {
		if name != current {
			choices = append(choices, name)
		}
	}

	sp := selection.New("Switch to workspace:", choices)
	sp.PageSize = 8
	sp.Filter = func(filter string, choice *selection.Choice[string]) bool {
		return strings.Contains(strings.ToLower(choice.Value), strings.ToLower(filter))
	}
	return sp.RunPrompt()
}

func newCmdWorkspaceSwitch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch [name]",
		Short: "Switch the active workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target string
			if len(args) == 0 {
				picked, err := pickWorkspace(s.Config.WorkspaceNames(), s.Config.CurrentWorkspace)
				if err != nil {
					return err
				}
				target = picked
			} else {
				target = strings.TrimSpace(args[0])
			}
			if target == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := s.Config.SwitchWorkspace(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Switched to workspace %q\n", target)
			return nil
		},
	}
	return cmd
}

func newCmdWorkspaceAdd(s *state.State) *cobra.Command {
	var (
		name        string
		baseURL     string
		editor      string
		makeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new workspace",
		Example: heredoc.Doc(`
			kn workspace add --name work --url https://notes.example.com --current
		`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return fmt.Errorf("workspace name is required")
			}
			baseURL = strings.TrimSpace(baseURL)
			if baseURL == "" {
				return fmt.Errorf("base url is required")
			}

			ws := cloneWorkspaceSettings(s.Workspace)
			ws.BaseURL = baseURL
			if editor != "" {
				ws.Editor = editor
			}

			if err := s.Config.AddWorkspace(name, ws, makeCurrent); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added workspace %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new workspace")
	cmd.Flags().StringVar(&baseURL, "url", "", "Base URL of the notes server")
	cmd.Flags().StringVar(&editor, "editor", "", "Editor to use: textarea or external")
	cmd.Flags().BoolVar(&makeCurrent, "current", false, "Switch to the new workspace after creation")

	return cmd
}

func newCmdWorkspaceRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove an existing workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := s.Config.RemoveWorkspace(name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed workspace %q\n", name)
			return nil
		},
	}

	return cmd
}

func newCmdWorkspaceSession(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "session <sessionid> [csrftoken]",
		Short: "Store the browser session of the current workspace",
		Long: heredoc.Doc(`
			Saves the sessionid cookie, and optionally the csrftoken, copied from
			a signed-in browser. Requests are sent with both cookies.
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			csrf := ""
			if len(args) > 1 {
				csrf = args[1]
			}
			if err := s.Config.SetSession(args[0], csrf); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session saved for workspace %q\n", s.Config.CurrentWorkspace)
			return nil
		},
	}
}

func newCmdWorkspaceEditor(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "editor <textarea|external>",
		Short: "Change the editor of the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.ChangeEditor(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Editor set to %q\n", args[0])
			return nil
		},
	}
}

func cloneWorkspaceSettings(src *config.Workspace) *config.Workspace {
	if src == nil {
		return &config.Workspace{}
	}

	return &config.Workspace{
		Editor:           src.Editor,
		EditorCommand:    src.EditorCommand,
		PlaceholderTitle: src.PlaceholderTitle,
		ToastDuration:    src.ToastDuration,
		RequestTimeout:   src.RequestTimeout,
		CacheSizeMB:      src.CacheSizeMB,
	}
}
