package list

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/internal/state"
	"github.com/Paintersrp/kn/utils"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#778899"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0AF"))
)

func NewCmdList(s *state.State) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list [query]",
		Aliases: []string{"ls"},
		Short:   "List notes, or search them.",
		Long: heredoc.Doc(`
			Prints the note list of the active workspace. With a query the
			server's search endpoint is used instead.

			Output is plain "id<TAB>title" lines when stdout is not a terminal.

			Examples:
			  kn list
			  kn list 周报
			  kn ls --json | jq '.[].id'
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) > 0 {
				query = strings.TrimSpace(args[0])
			}

			var (
				entries []note.SidebarEntry
				err     error
			)
			if query == "" {
				entries, err = s.Client.ListNotes(cmd.Context())
			} else {
				entries, err = s.Client.SearchNotes(cmd.Context(), query)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				writeStyled(out, entries)
				return nil
			}
			writePlain(out, entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the entries as JSON")
	return cmd
}

func writeJSON(w io.Writer, entries []note.SidebarEntry) error {
	if entries == nil {
		entries = []note.SidebarEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writePlain(w io.Writer, entries []note.SidebarEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\n", e.ID, e.Title)
	}
}

func writeStyled(w io.Writer, entries []note.SidebarEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No notes found")
		return
	}

	width := 0
	for _, e := range entries {
		width = max(width, len(fmt.Sprintf("#%d", e.ID)))
	}
	for _, e := range entries {
		id := utils.PadRight(fmt.Sprintf("#%d", e.ID), width)
		fmt.Fprintf(w, "%s  %s\n", idStyle.Render(id), titleStyle.Render(e.Title))
	}
}
