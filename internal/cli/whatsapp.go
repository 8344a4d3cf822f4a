package cli

import (
	"github.com/spf13/cobra"

	"github.com/vibecheck/ingest/internal/parser"
)

func newWhatsAppCmd() *cobra.Command {
	flags := &ingestFlags{}

	cmd := &cobra.Command{
		Use:   "whatsapp <chat export (.txt or .zip)>",
		Short: "Import a WhatsApp chat export",
		Long: `Parses a WhatsApp chat export (plain text or the exported zip archive)
and pushes extracted tool mentions and article links into the catalog.

Examples:
  # Resume where the last import left off
  vibecheck-ingest whatsapp chat.zip --community agi --auto-since

  # Preview without pushing
  vibecheck-ingest whatsapp chat.zip --auto-since --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd.Context(), args[0], parser.NewWhatsAppParser(true), flags)
		},
	}

	addIngestFlags(cmd, flags)
	return cmd
}

func init() {
	rootCmd.AddCommand(newWhatsAppCmd())
}
