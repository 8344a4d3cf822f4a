package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibecheck/ingest/internal/apperr"
	"github.com/vibecheck/ingest/internal/catalog"
	"github.com/vibecheck/ingest/internal/extract"
	"github.com/vibecheck/ingest/internal/metadata"
	"github.com/vibecheck/ingest/internal/parser"
	"github.com/vibecheck/ingest/internal/pipeline"
	"github.com/vibecheck/ingest/pkg/apis"
)

const sinceLayout = "2006-01-02"

// ingestFlags is the run-scoped option set shared by the whatsapp and
// slack subcommands.
type ingestFlags struct {
	community    string
	dryRun       bool
	since        string
	autoSince    bool
	articlesOnly bool
	toolsOnly    bool
	noFetch      bool
	tables       string
	apiURL       string
	sourceName   string
}

func addIngestFlags(cmd *cobra.Command, flags *ingestFlags) {
	cmd.Flags().StringVar(&flags.community, "community", pipeline.DefaultCommunity, "community slug to attribute mentions to")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "parse, extract and reconcile but push nothing")
	cmd.Flags().StringVar(&flags.since, "since", "", "only process messages after this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flags.autoSince, "auto-since", false, "resume from the catalog's last import watermark")
	cmd.Flags().BoolVar(&flags.articlesOnly, "articles-only", false, "only import articles, skip tools")
	cmd.Flags().BoolVar(&flags.toolsOnly, "tools-only", false, "only import tools, skip articles")
	cmd.Flags().BoolVar(&flags.noFetch, "no-fetch", false, "skip per-URL metadata fetch, use URL-derived titles")
	cmd.Flags().StringVar(&flags.tables, "tables", "", "path to an extraction-tables YAML document")
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "catalog API base URL (defaults to VIBECHECK_API_URL)")
	cmd.Flags().StringVar(&flags.sourceName, "source-name", "", "group or channel name recorded with mentions")

	cmd.MarkFlagsMutuallyExclusive("since", "auto-since")
	cmd.MarkFlagsMutuallyExclusive("articles-only", "tools-only")
}

// runIngest is the shared body of the whatsapp and slack subcommands.
func runIngest(ctx context.Context, path string, pr pipeline.Parser, flags *ingestFlags) error {
	content, err := parser.ReadExport(path)
	if err != nil {
		return err
	}

	tables, err := loadTables(flags.tables)
	if err != nil {
		return err
	}

	client := catalog.NewClient(resolveAPIURL(flags.apiURL))

	opts := []pipeline.Option{
		pipeline.WithCommunity(flags.community),
	}
	if flags.sourceName != "" {
		opts = append(opts, pipeline.WithSourceName(flags.sourceName))
	}
	if flags.dryRun {
		opts = append(opts, pipeline.WithDryRun())
	}
	if flags.articlesOnly {
		opts = append(opts, pipeline.WithArticlesOnly())
	}
	if flags.toolsOnly {
		opts = append(opts, pipeline.WithToolsOnly())
	}
	if flags.noFetch {
		opts = append(opts, pipeline.WithoutMetadataFetch())
	}

	since, err := resolveSince(ctx, client, flags)
	if err != nil {
		return err
	}
	if !since.IsZero() {
		opts = append(opts, pipeline.WithSince(since))
	}

	p := pipeline.New(pr, extract.NewExtractor(*tables), client, metadata.NewFetcher(), opts...)

	tally, err := p.Run(ctx, content)
	if err != nil {
		return err
	}

	printSummary(tally, flags.dryRun)
	return nil
}

func loadTables(path string) (*apis.ExtractionTables, error) {
	if path == "" {
		tables := extract.DefaultTables()
		return &tables, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperr.NewInputWrap("unreadable tables file", err)
	}
	defer f.Close()

	return extract.NewYAMLTablesLoader(f).Load(true)
}

func resolveAPIURL(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("VIBECHECK_API_URL")
}

func resolveSince(ctx context.Context, client *catalog.Client, flags *ingestFlags) (time.Time, error) {
	if flags.since != "" {
		since, err := time.Parse(sinceLayout, flags.since)
		if err != nil {
			return time.Time{}, apperr.NewInputWrap(fmt.Sprintf("invalid --since date %q, use YYYY-MM-DD", flags.since), err)
		}
		slog.Info("processing messages since", "date", since.Format(sinceLayout))
		return since, nil
	}

	if flags.autoSince {
		since, ok, err := client.LastImportedAt(ctx)
		if err != nil {
			slog.Warn("could not detect last import, processing all messages", "error", err)
			return time.Time{}, nil
		}
		if !ok {
			slog.Info("no previous imports found, processing all messages")
			return time.Time{}, nil
		}
		slog.Info("auto-detected last import", "watermark", since.Format(time.RFC3339))
		return since, nil
	}

	return time.Time{}, nil
}

func printSummary(tally *pipeline.Tally, dryRun bool) {
	if dryRun {
		return
	}

	fmt.Printf("\nMessages: %d (%d after filters)\n", tally.MessageCount, tally.AfterFiltersN)
	fmt.Printf("Tools:    %d created, %d updated, %d existing, %d failed\n",
		tally.ToolsCreated, tally.ToolsUpdated, tally.ToolsExisting, tally.ToolsFailed)
	fmt.Printf("Articles: %d created, %d existing, %d failed\n",
		tally.ArticlesCreated, tally.ArticlesExisting, tally.ArticlesFailed)
	fmt.Printf("Skipped:  %d in-batch duplicates, %d already in catalog\n",
		tally.DuplicateTools+tally.DuplicateArticles, tally.KnownTools+tally.KnownArticles)

	for _, e := range tally.Result.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}
