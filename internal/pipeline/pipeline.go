package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/vibecheck/ingest/internal/catalog"
	"github.com/vibecheck/ingest/internal/domain"
	"github.com/vibecheck/ingest/internal/extract"
	"github.com/vibecheck/ingest/internal/metadata"
	"github.com/vibecheck/ingest/internal/parser"
	"github.com/vibecheck/ingest/internal/reconcile"
)

const (
	// DefaultCommunity is the community slug mentions are attributed to
	// when none is given.
	DefaultCommunity = "agi"

	// previewArticleLimit bounds the dry-run article listing.
	previewArticleLimit = 20

	// errTruncateLength bounds per-item error strings in the tally.
	errTruncateLength = 100
)

// Parser turns raw export text into ordered messages.
type Parser interface {
	SourceType() string
	Parse(content string) ([]domain.Message, error)
}

// Catalog is the sink plus the known-state queries the run needs.
type Catalog interface {
	PushTool(ctx context.Context, req catalog.ToolMentionRequest) (catalog.PushOutcome, error)
	PushArticle(ctx context.Context, req catalog.ArticleRequest) error
	KnownURLs(ctx context.Context) ([]string, error)
	KnownSlugs(ctx context.Context) ([]string, error)
}

// MetadataFetcher enriches article titles and summaries best-effort.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) metadata.Metadata
}

// Pipeline runs one import: parse, extract, reconcile, enrich, push.
// Everything is sequential; per-item failures are tallied, never fatal.
type Pipeline struct {
	parser    Parser
	extractor *extract.Extractor
	catalog   Catalog
	fetcher   MetadataFetcher
	out       io.Writer

	community     string
	sourceName    string
	since         time.Time
	dryRun        bool
	toolsOnly     bool
	articlesOnly  bool
	fetchMetadata bool
}

type Option func(*Pipeline)

// WithDryRun parses, extracts and reconciles but pushes nothing,
// printing a preview instead.
func WithDryRun() Option {
	return func(p *Pipeline) {
		p.dryRun = true
	}
}

// WithSince drops messages at or before the given time. Messages without
// a timestamp are dropped too: their recency cannot be assessed.
func WithSince(t time.Time) Option {
	return func(p *Pipeline) {
		p.since = t
	}
}

// WithToolsOnly skips article extraction and pushing.
func WithToolsOnly() Option {
	return func(p *Pipeline) {
		p.toolsOnly = true
	}
}

// WithArticlesOnly skips tool extraction and pushing.
func WithArticlesOnly() Option {
	return func(p *Pipeline) {
		p.articlesOnly = true
	}
}

// WithoutMetadataFetch uses URL-derived titles instead of fetching each
// article URL.
func WithoutMetadataFetch() Option {
	return func(p *Pipeline) {
		p.fetchMetadata = false
	}
}

// WithCommunity attributes mentions to a community slug.
func WithCommunity(slug string) Option {
	return func(p *Pipeline) {
		p.community = slug
	}
}

// WithSourceName records the export's origin (group or channel name).
func WithSourceName(name string) Option {
	return func(p *Pipeline) {
		p.sourceName = name
	}
}

// WithOutput redirects preview printing, mainly for tests.
func WithOutput(w io.Writer) Option {
	return func(p *Pipeline) {
		p.out = w
	}
}

func New(pr Parser, ex *extract.Extractor, cat Catalog, fetcher MetadataFetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		parser:        pr,
		extractor:     ex,
		catalog:       cat,
		fetcher:       fetcher,
		out:           os.Stdout,
		community:     DefaultCommunity,
		fetchMetadata: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tally is the aggregate outcome of one run.
type Tally struct {
	Result domain.IngestionResult

	MessageCount  int
	AfterFiltersN int

	DuplicateTools    int
	DuplicateArticles int
	KnownTools        int
	KnownArticles     int

	ToolsCreated  int
	ToolsUpdated  int
	ToolsExisting int
	ToolsFailed   int

	ArticlesCreated  int
	ArticlesExisting int
	ArticlesFailed   int
}

// Run executes the whole import over already-loaded export text. The
// returned error is fatal only; item failures land in the tally.
func (p *Pipeline) Run(ctx context.Context, content string) (*Tally, error) {
	start := time.Now()
	sourceType := p.parser.SourceType()

	messages, err := p.parser.Parse(content)
	if err != nil {
		return nil, err
	}

	tally := &Tally{
		Result:       domain.NewIngestionResult(sourceType, p.sourceName),
		MessageCount: len(messages),
	}
	tally.Result.MessageCount = len(messages)

	kept := parser.FilterSystem(messages)
	if !p.since.IsZero() {
		kept = filterSince(kept, p.since)
	}
	tally.AfterFiltersN = len(kept)

	slog.Info("parsed export",
		"source", sourceType,
		"messages", tally.MessageCount,
		"after_filters", tally.AfterFiltersN,
	)

	for _, msg := range kept {
		ext := p.extractor.Extract(msg, p.sourceName)
		if !p.articlesOnly {
			tally.Result.Tools = append(tally.Result.Tools, ext.Tools...)
		}
		if !p.toolsOnly {
			tally.Result.Articles = append(tally.Result.Articles, ext.Articles...)
		}
		tally.Result.Errors = append(tally.Result.Errors, ext.Errors...)
	}

	slog.Info("extraction complete",
		"tools", len(tally.Result.Tools),
		"articles", len(tally.Result.Articles),
		"errors", len(tally.Result.Errors),
	)

	snap := p.loadSnapshot(ctx)
	outcome := reconcile.Reconcile(tally.Result.Tools, tally.Result.Articles, snap)
	tally.DuplicateTools = outcome.DuplicateTools
	tally.DuplicateArticles = outcome.DuplicateArticles
	tally.KnownTools = outcome.KnownTools
	tally.KnownArticles = outcome.KnownArticles

	slog.Info("reconciled batch",
		"tools_to_push", len(outcome.Tools),
		"articles_to_push", len(outcome.Articles),
		"duplicates", outcome.DuplicateTools+outcome.DuplicateArticles,
		"already_known", outcome.KnownTools+outcome.KnownArticles,
	)

	if p.dryRun {
		p.printPreview(outcome)
		return tally, nil
	}

	p.pushTools(ctx, outcome.Tools, tally)
	p.pushArticles(ctx, outcome.Articles, tally)

	slog.Info("run completed",
		"run_id", tally.Result.RunID,
		"duration", time.Since(start),
		"tools_created", tally.ToolsCreated,
		"tools_updated", tally.ToolsUpdated,
		"articles_created", tally.ArticlesCreated,
		"already_existing", tally.ToolsExisting+tally.ArticlesExisting,
		"failed", tally.ToolsFailed+tally.ArticlesFailed,
	)

	return tally, nil
}

func filterSince(messages []domain.Message, since time.Time) []domain.Message {
	kept := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if m.Timestamp.After(since) {
			kept = append(kept, m)
		}
	}
	return kept
}

// loadSnapshot fetches the known catalog state once per run. A failed
// fetch degrades to an empty snapshot: the catalog's own uniqueness
// constraints still reject duplicates at push time.
func (p *Pipeline) loadSnapshot(ctx context.Context) reconcile.Snapshot {
	var slugs, urls []string
	var err error

	if !p.articlesOnly {
		slugs, err = p.catalog.KnownSlugs(ctx)
		if err != nil {
			slog.Warn("could not fetch known tool slugs, proceeding without", "error", err)
		}
	}
	if !p.toolsOnly {
		urls, err = p.catalog.KnownURLs(ctx)
		if err != nil {
			slog.Warn("could not fetch known article URLs, proceeding without", "error", err)
		}
	}
	return reconcile.NewSnapshot(slugs, urls)
}

func (p *Pipeline) pushTools(ctx context.Context, tools []domain.ExtractedTool, tally *Tally) {
	source := p.parser.SourceType() + "-import"

	for _, t := range tools {
		req := catalog.ToolMentionRequest{
			ToolName:       t.Name,
			ToolSlug:       t.Slug,
			GitHubURL:      t.GitHubURL,
			ToolURL:        t.URL,
			Community:      p.community,
			ContextSnippet: t.ContextSnippet,
			Sentiment:      string(t.Sentiment),
			Source:         source,
		}
		if !t.MentionDate.IsZero() {
			req.MentionedAt = t.MentionDate.Format(time.RFC3339)
		}

		outcome, err := p.catalog.PushTool(ctx, req)
		switch {
		case errors.Is(err, catalog.ErrAlreadyExists):
			tally.ToolsExisting++
		case err != nil:
			tally.ToolsFailed++
			tally.Result.Errors = append(tally.Result.Errors,
				truncateErr(fmt.Sprintf("push tool %s: %v", t.Slug, err)))
			slog.Error("failed to push tool", "slug", t.Slug, "error", err)
		default:
			tally.ToolsCreated += outcome.Created
			tally.ToolsUpdated += outcome.Updated
			slog.Debug("pushed tool", "slug", t.Slug, "created", outcome.Created, "updated", outcome.Updated)
		}
	}
}

func (p *Pipeline) pushArticles(ctx context.Context, articles []domain.ExtractedArticle, tally *Tally) {
	source := p.parser.SourceType() + "-import"

	for _, a := range articles {
		var md metadata.Metadata
		if p.fetchMetadata && p.fetcher != nil {
			md = p.fetcher.Fetch(ctx, a.URL)
		}

		title := md.Title
		if title == "" {
			title = metadata.TitleFromURL(a.URL)
		}
		summary := md.Description
		if summary == "" {
			summary = a.ContextSnippet
		}

		err := p.catalog.PushArticle(ctx, catalog.ArticleRequest{
			URL:           a.URL,
			Title:         title,
			CommunitySlug: p.community,
			Summary:       summary,
			Source:        source,
		})
		switch {
		case errors.Is(err, catalog.ErrAlreadyExists):
			tally.ArticlesExisting++
		case err != nil:
			tally.ArticlesFailed++
			tally.Result.Errors = append(tally.Result.Errors,
				truncateErr(fmt.Sprintf("push article %s: %v", a.URL, err)))
			slog.Error("failed to push article", "url", a.URL, "error", err)
		default:
			tally.ArticlesCreated++
			slog.Debug("pushed article", "url", a.URL, "title", title)
		}
	}
}

func (p *Pipeline) printPreview(outcome reconcile.Outcome) {
	fmt.Fprintf(p.out, "=== Dry run: %d tools, %d articles would be pushed ===\n\n",
		len(outcome.Tools), len(outcome.Articles))

	for _, t := range outcome.Tools {
		fmt.Fprintf(p.out, "  %s: %s\n", t.Slug, t.Name)
		fmt.Fprintf(p.out, "    categories: %v\n", t.Categories)
		fmt.Fprintf(p.out, "    context: %s\n\n", t.ContextSnippet)
	}

	for i, a := range outcome.Articles {
		if i == previewArticleLimit {
			fmt.Fprintf(p.out, "  ... and %d more\n", len(outcome.Articles)-previewArticleLimit)
			break
		}
		fmt.Fprintf(p.out, "  %s\n", a.URL)
		fmt.Fprintf(p.out, "    context: %s\n\n", a.ContextSnippet)
	}
}

func truncateErr(s string) string {
	if len(s) <= errTruncateLength {
		return s
	}
	return s[:errTruncateLength]
}
