package open

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kn/internal/fzf"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/internal/state"
	notestui "github.com/Paintersrp/kn/internal/tui/notes"
	kncmd "github.com/Paintersrp/kn/pkg/cmd"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:     "open [query]",
		Aliases: []string{"o"},
		Short:   "Fuzzy find a note and open it.",
		Long: heredoc.Doc(`
			Shows every note in a fuzzy finder with a preview of its first page.
			The picked note is opened in the notes panel, or only printed with
			--print.

			Examples:
			  kn open
			  kn open 周报
			  kn o --print
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := sidebarEntries(cmd, s)
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			finder := fzf.NewFuzzyFinder(entries, s.Client, "Select note to open.", s.Logger)
			picked, err := finder.Run(query)
			if errors.Is(err, fzf.ErrNoSelection) {
				fmt.Fprintln(cmd.OutOrStdout(), "No note selected")
				return nil
			}
			if err != nil {
				return err
			}

			if printOnly {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", picked.ID, picked.Title)
				return nil
			}
			return notestui.Run(s, kncmd.NotePath(picked.ID))
		},
	}

	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the picked note instead of opening it")
	return cmd
}

func sidebarEntries(cmd *cobra.Command, s *state.State) ([]note.SidebarEntry, error) {
	if s.Bootstrap != nil && s.Bootstrap.Loaded {
		return s.Bootstrap.SidebarNotes, nil
	}
	return s.Client.ListNotes(cmd.Context())
}
