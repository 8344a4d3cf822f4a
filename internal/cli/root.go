package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibecheck/ingest/pkg/config/env"
)

var (
	appVersion = "dev"
	appCommit  = "none"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit string) {
	appVersion = version
	appCommit = commit
}

var rootCmd = &cobra.Command{
	Use:   "vibecheck-ingest",
	Short: "Import chat exports into the vibecheck tool directory",
	Long: `vibecheck-ingest mines community chat exports (WhatsApp, Slack) for
AI developer tool and article mentions and pushes them into the vibecheck
catalog.

Runs are incremental and idempotent: known tools and articles are skipped,
and --auto-since resumes from the catalog's last import watermark.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = env.LoadDotEnv("", ".env")
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vibecheck-ingest %s\ncommit: %s\n", appVersion, appCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
