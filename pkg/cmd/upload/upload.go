package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kn/internal/state"
)

func NewCmdUpload(s *state.State) *cobra.Command {
	var image bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an attachment and print its URL.",
		Long: heredoc.Doc(`
			Uploads a file to the notes server and prints the URL to link from a
			note. --image uses the inline image endpoint of the editor.

			Examples:
			  kn upload report.pdf
			  kn upload --image diagram.png
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}
			name := filepath.Base(path)

			url, err := send(cmd, s, name, f, image)
			if err != nil {
				return err
			}

			s.Logger.Info().Str("file", name).Uint64("bytes", uint64(info.Size())).Msg("uploaded")
			fmt.Fprintf(cmd.ErrOrStderr(), "Uploaded %s (%s)\n", name, humanize.Bytes(uint64(info.Size())))
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().BoolVar(&image, "image", false, "Upload through the inline image endpoint")
	return cmd
}

func send(cmd *cobra.Command, s *state.State, name string, r io.Reader, image bool) (string, error) {
	if image {
		return s.Client.UploadImage(cmd.Context(), name, r)
	}
	res, err := s.Client.UploadFile(cmd.Context(), name, r)
	if err != nil {
		return "", err
	}
	if res.URL() == "" {
		return "", fmt.Errorf("server did not return a URL for %s", name)
	}
	return res.URL(), nil
}
