package notes

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kn/internal/state"
	notestui "github.com/Paintersrp/kn/internal/tui/notes"
)

func NewCmdNotes(s *state.State) *cobra.Command {
	var urlFlag string

	cmd := &cobra.Command{
		Use:     "notes [path]",
		Aliases: []string{"n"},
		Short:   "Browse and edit notes in the terminal.",
		Long: heredoc.Doc(`
			Opens the notes panel for the active workspace: the note list on the
			left, the selected note on the right.

			An optional /knowledge/{id}/ path or note URL opens that note on
			startup; otherwise the first note in the list is opened.

			Examples:
			  kn notes
			  kn notes /knowledge/42/
			  kn notes --url https://notes.example.com/knowledge/42/
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := urlFlag
			if len(args) > 0 {
				path = args[0]
			}
			return notestui.Run(s, path)
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "Note URL or path to open on startup")
	return cmd
}
