package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/kn/internal/constants"
	"github.com/Paintersrp/kn/internal/state"
	"github.com/Paintersrp/kn/pkg/cmd/list"
	"github.com/Paintersrp/kn/pkg/cmd/notes"
	"github.com/Paintersrp/kn/pkg/cmd/open"
	"github.com/Paintersrp/kn/pkg/cmd/show"
	"github.com/Paintersrp/kn/pkg/cmd/sync"
	"github.com/Paintersrp/kn/pkg/cmd/upload"
	"github.com/Paintersrp/kn/pkg/cmd/workspace"
)

var (
	workspaceName string
	debug         bool
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "kn",
		Version: constants.Version,
		Short:   "Read and write knowledge notes from the terminal.",
		Long: heredoc.Doc(`
			kn talks to a notes server: browse the note list, read paged notes,
			edit them in place, and publish or share them.

			Running kn with no command opens the notes panel.

			  kn
			  kn notes /knowledge/42/
			  kn show 42 --page 2
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: notes.NewCmdNotes(s).RunE,
	}

	// cmd.Execute reads both flags before the state is built.
	cmd.PersistentFlags().
		StringVarP(&workspaceName, "workspace", "w", s.WorkspaceName, "Workspace to use for this command.")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs.")
	viper.BindPFlag("workspace", cmd.PersistentFlags().Lookup("workspace"))
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(
		notes.NewCmdNotes(s),
		list.NewCmdList(s),
		show.NewCmdShow(s),
		open.NewCmdOpen(s),
		upload.NewCmdUpload(s),
		sync.NewCmdSync(s),
		workspace.NewCmdWorkspace(s),
	)

	return cmd, nil
}
