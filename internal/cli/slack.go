package cli

import (
	"github.com/spf13/cobra"

	"github.com/vibecheck/ingest/internal/parser"
)

func newSlackCmd() *cobra.Command {
	flags := &ingestFlags{}

	cmd := &cobra.Command{
		Use:   "slack <export (.json or .txt)>",
		Short: "Import a Slack export or pasted transcript",
		Long: `Parses a Slack workspace-export JSON file or a copy-pasted plaintext
transcript and pushes extracted tool mentions and article links into the
catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], parser.NewSlackParser(true), flags)
		},
	}

	addIngestFlags(cmd, flags)
	return cmd
}

func init() {
	rootCmd.AddCommand(newSlackCmd())
}
