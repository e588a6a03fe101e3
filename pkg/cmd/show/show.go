package show

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/internal/state"
	kncmd "github.com/Paintersrp/kn/pkg/cmd"
	"github.com/Paintersrp/kn/utils"
)

const defaultWidth = 100

func NewCmdShow(s *state.State) *cobra.Command {
	var (
		page int
		raw  bool
		full bool
	)

	cmd := &cobra.Command{
		Use:   "show <id|path>",
		Short: "Print a note.",
		Long: heredoc.Doc(`
			Prints one note, rendered for the terminal. Long notes are served in
			pages; --page picks one and --full prints the whole body.

			Examples:
			  kn show 42
			  kn show /knowledge/42/ --page 2
			  kn show 42 --raw > note.md
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kncmd.ResolveNoteID(args[0])
			if err != nil {
				return err
			}

			n, err := s.Client.GetNote(cmd.Context(), id, api.GetOptions{Page: page, FullContent: full})
			if err != nil {
				return err
			}

			width := defaultWidth
			if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
					width = w
				}
			}
			return render(cmd.OutOrStdout(), n, raw, width)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page of a paged note")
	cmd.Flags().BoolVar(&full, "full", false, "Print the full, unpaged body")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without styling")
	return cmd
}

func render(w io.Writer, n *note.Note, raw bool, width int) error {
	md, err := markup.ToMarkdown(n.Content)
	if err != nil {
		return fmt.Errorf("failed to convert note: %w", err)
	}

	doc := "# " + n.Title + "\n\n" + md
	if raw {
		_, err := fmt.Fprintln(w, doc)
		return err
	}

	out, err := utils.RenderMarkdownPreview(doc, width)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)

	meta := []string{}
	if n.Author.Username != "" {
		meta = append(meta, "@"+n.Author.Username)
	}
	if age := n.Age(); age != "" {
		meta = append(meta, age)
	}
	if n.IsPublic {
		meta = append(meta, "public")
	}
	if current, total := n.Pages(); total > 1 {
		meta = append(meta, fmt.Sprintf("page %d/%d", current, total))
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, "  "+strings.Join(meta, " · "))
	}
	return nil
}
