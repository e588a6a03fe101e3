package sync

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/kn/internal/state"
	knsync "github.com/Paintersrp/kn/internal/sync"
)

func NewCmdSync(s *state.State) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Back up every note as markdown.",
		Long: heredoc.Doc(`
			Exports every note of the active workspace as a markdown file with
			YAML front matter. Files go to --dir, or to the workspace's sync.dir,
			or else to the S3 bucket configured under sync.

			Examples:
			  kn sync --dir ~/notes-backup
			  kn sync            # uses the sync section of the workspace
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := s.Workspace.Sync
			if strings.TrimSpace(dir) == "" {
				dir = cfg.Dir
			}

			var sink knsync.Sink
			target := dir
			if strings.TrimSpace(dir) != "" {
				sink = knsync.DirSink{Dir: dir}
			} else {
				s3Sink, err := knsync.S3SinkFromConfig(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				sink = s3Sink
				target = "s3://" + cfg.Bucket + "/" + s3Sink.Key("")
			}

			exporter := knsync.NewExporter(s.Client, sink, s.Logger.With().Str("component", "sync").Logger())
			report, err := exporter.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d notes to %s\n", len(report.Exported), target)
			if len(report.Projects) > 0 {
				fmt.Fprintf(out, "Projects: %s\n", strings.Join(report.Projects, ", "))
			}
			for _, f := range report.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "  note %d: %v\n", f.ID, f.Err)
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d notes failed to export", len(report.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Export into a local directory")
	return cmd
}
