package extract

import (
	"fmt"
	"strings"

	"github.com/vibecheck/ingest/internal/apperr"
	"github.com/vibecheck/ingest/internal/domain"
	"github.com/vibecheck/ingest/pkg/apis"
)

// Extraction is everything pulled out of a single message.
type Extraction struct {
	Tools    []domain.ExtractedTool
	Articles []domain.ExtractedArticle
	Errors   []string
}

// Extractor turns messages into tool and article candidates. All lookup
// state is injected at construction; an Extractor is safe to reuse across
// a whole run.
type Extractor struct {
	tables    apis.ExtractionTables
	sanitizer *Sanitizer
}

type ExtractorOption func(*Extractor)

// WithSnippetLength overrides the maximum context snippet length.
func WithSnippetLength(n int) ExtractorOption {
	return func(e *Extractor) {
		e.sanitizer = NewSanitizer(true, n)
	}
}

// WithoutSanitization disables personal-information scrubbing. Snippets
// are still truncated.
func WithoutSanitization() ExtractorOption {
	return func(e *Extractor) {
		e.sanitizer = NewSanitizer(false, DefaultSnippetLength)
	}
}

func NewExtractor(tables apis.ExtractionTables, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		tables:    tables,
		sanitizer: NewSanitizer(true, DefaultSnippetLength),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsToolRelated reports whether a message is worth scanning for URL-based
// tool mentions: it carries a tool keyword or a tool-hosting URL.
func (e *Extractor) IsToolRelated(text string) bool {
	if containsAny(strings.ToLower(text), e.tables.ToolKeywords) {
		return true
	}
	for _, fu := range FindURLs(text) {
		if fu.Kind != URLOther {
			return true
		}
	}
	return false
}

// Extract produces the candidates for one message. Per-candidate failures
// (an unusable slug) are recorded in Errors; they never abort the message.
func (e *Extractor) Extract(msg domain.Message, sourceName string) Extraction {
	var out Extraction

	urls := FindURLs(msg.Text)
	sentiment := DetectSentiment(msg.Text, e.tables.Sentiment)
	snippet := e.snippetFor(msg)

	for _, fu := range urls {
		if fu.Kind != URLOther {
			continue
		}
		if IsExcludedDomain(fu.URL, e.tables.ExcludedDomains) {
			continue
		}
		out.Articles = append(out.Articles, domain.ExtractedArticle{
			URL:             fu.URL,
			ContextSnippet:  snippet,
			MentionDate:     msg.Timestamp,
			SourceCommunity: sourceName,
		})
	}

	if e.IsToolRelated(msg.Text) {
		for _, fu := range urls {
			tool, err := e.toolFromURL(fu, msg, snippet, sentiment)
			if err != nil {
				out.Errors = append(out.Errors, err.Error())
				continue
			}
			if tool != nil {
				out.Tools = append(out.Tools, *tool)
			}
		}
	}

	// Known-name matches are emitted even when a URL candidate for the
	// same tool exists in the same message; dedup happens downstream.
	lower := strings.ToLower(msg.Text)
	for _, kt := range e.tables.KnownTools {
		if !strings.Contains(lower, kt.Match) {
			continue
		}
		out.Tools = append(out.Tools, domain.ExtractedTool{
			Slug:           kt.Slug,
			Name:           kt.Name,
			ContextSnippet: snippet,
			Sentiment:      sentiment,
			MentionDate:    msg.Timestamp,
			Categories:     append([]string(nil), kt.Categories...),
		})
	}

	return out
}

func (e *Extractor) snippetFor(msg domain.Message) string {
	raw := msg.Text
	if msg.Sender != "" {
		raw = msg.Sender + ": " + msg.Text
	}
	return e.sanitizer.Snippet(raw)
}

func (e *Extractor) toolFromURL(fu FoundURL, msg domain.Message, snippet string, sentiment domain.Sentiment) (*domain.ExtractedTool, error) {
	switch fu.Kind {
	case URLGitHub:
		owner, repo, ok := GitHubRepo(fu.URL)
		if !ok {
			return nil, nil
		}
		slug := Slugify(repo)
		if !ValidSlug(slug) {
			return nil, apperr.NewItem(fmt.Sprintf("dropped tool candidate %q: derived slug is unusable", fu.URL))
		}
		return &domain.ExtractedTool{
			Slug:           slug,
			Name:           repo,
			URL:            fu.URL,
			GitHubURL:      "https://github.com/" + owner + "/" + repo,
			ContextSnippet: snippet,
			Sentiment:      sentiment,
			MentionDate:    msg.Timestamp,
			Categories:     Categorize(repo, fu.URL, msg.Text, e.tables.Categories),
		}, nil

	case URLNPM, URLPyPI:
		name := packageName(fu.URL)
		slug := Slugify(name)
		if !ValidSlug(slug) {
			return nil, apperr.NewItem(fmt.Sprintf("dropped tool candidate %q: derived slug is unusable", fu.URL))
		}
		return &domain.ExtractedTool{
			Slug:           slug,
			Name:           name,
			URL:            fu.URL,
			ContextSnippet: snippet,
			Sentiment:      sentiment,
			MentionDate:    msg.Timestamp,
			Categories:     Categorize(name, fu.URL, msg.Text, e.tables.Categories),
		}, nil

	case URLArxiv:
		slug := ArxivSlug(fu.URL)
		if !ValidSlug(slug) {
			return nil, apperr.NewItem(fmt.Sprintf("dropped tool candidate %q: derived slug is unusable", fu.URL))
		}
		return &domain.ExtractedTool{
			Slug:           slug,
			Name:           "arXiv Paper " + ArxivID(fu.URL),
			URL:            fu.URL,
			ContextSnippet: snippet,
			Sentiment:      sentiment,
			MentionDate:    msg.Timestamp,
			Categories:     []string{"paper", "research"},
		}, nil
	}

	return nil, nil
}

// packageName pulls the package path segment out of an npm or PyPI URL,
// keeping npm scopes intact (@scope/name).
func packageName(url string) string {
	for _, marker := range []string{"/package/", "/project/"} {
		if idx := strings.Index(url, marker); idx >= 0 {
			return strings.Trim(url[idx+len(marker):], "/")
		}
	}
	return ""
}
