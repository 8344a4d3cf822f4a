package metadata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	// maxBodyBytes caps how much HTML is scanned; meta tags live in the
	// head, anything past 50KB is not worth downloading.
	maxBodyBytes = 50_000

	maxTitleLength       = 500
	maxDescriptionLength = 2000
)

var (
	titleTagPattern = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)

	// Meta tags are matched with both attribute orderings since HTML
	// attribute order is not guaranteed. Description sources in priority
	// order: Open Graph, Twitter, generic.
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:description["']`),
		regexp.MustCompile(`(?i)<meta[^>]+name=["']twitter:description["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']twitter:description["']`),
		regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+name=["']description["']`),
	}

	ogTitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?i)<meta[^>]+content=["']([^"']+)["'][^>]+property=["']og:title["']`),
	}

	fileExtensionPattern = regexp.MustCompile(`\.(html?|php|aspx?)$`)
)

// Metadata is what a page says about itself. Either field may be empty.
type Metadata struct {
	Title       string
	Description string
}

// Fetcher retrieves page metadata best-effort. Every failure mode yields
// an empty Metadata, never an error; callers fall back to URL-derived
// titles.
type Fetcher struct {
	client *http.Client
}

type FetcherOption func(*Fetcher)

// WithHTTPClient substitutes the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch loads the URL and scans the first 50KB of HTML for a title and
// description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Metadata {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Metadata{}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Metadata{}
	}

	return scan(string(body))
}

func scan(html string) Metadata {
	var md Metadata

	if m := titleTagPattern.FindStringSubmatch(html); m != nil {
		md.Title = clip(strings.TrimSpace(m[1]), maxTitleLength)
	}

	for _, p := range descriptionPatterns {
		if m := p.FindStringSubmatch(html); m != nil {
			md.Description = clip(strings.TrimSpace(m[1]), maxDescriptionLength)
			break
		}
	}

	if md.Title == "" {
		for _, p := range ogTitlePatterns {
			if m := p.FindStringSubmatch(html); m != nil {
				md.Title = clip(strings.TrimSpace(m[1]), maxTitleLength)
				break
			}
		}
	}

	return md
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// TitleFromURL derives a readable title from the URL itself, used when
// the fetch yields nothing: last path segment humanized, extension
// stripped, title-cased. arXiv and GitHub get fixed shapes.
func TitleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	host := parsed.Hostname()

	switch {
	case host == "arxiv.org" || host == "www.arxiv.org":
		return "arXiv Paper " + lastSegment(path)
	case strings.Contains(host, "github.com"):
		parts := strings.Split(path, "/")
		if len(parts) >= 2 {
			return parts[0] + "/" + parts[1] + " on GitHub"
		}
		return "GitHub: " + path
	}

	title := lastSegment(path)
	if title == "" {
		return host
	}

	title = strings.NewReplacer("-", " ", "_", " ").Replace(title)
	title = fileExtensionPattern.ReplaceAllString(title, "")
	title = strings.TrimSpace(title)
	if title == "" {
		return host
	}
	return titleCase(title)
}

func lastSegment(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[:1])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}
