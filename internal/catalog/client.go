package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// DefaultBaseURL points at the hosted catalog API.
	DefaultBaseURL = "https://vibecheck.ito.com/api/v1"

	defaultTimeout = 30 * time.Second
	listPageSize   = 1000

	// errBodyLimit bounds how much of an error response is kept for the
	// summary report.
	errBodyLimit = 100
)

// ErrAlreadyExists marks a push the catalog rejected as a duplicate
// (409) or invalid duplicate payload (422). Callers count it as
// "already exists", not as a failure.
var ErrAlreadyExists = errors.New("already exists in catalog")

// Client talks to the catalog API: pushing reconciled entities and
// reading the known-state snapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToolMentionRequest is the wire shape for a single tool mention.
type ToolMentionRequest struct {
	ToolName       string `json:"tool_name"`
	ToolSlug       string `json:"tool_slug"`
	GitHubURL      string `json:"github_url,omitempty"`
	ToolURL        string `json:"tool_url,omitempty"`
	Community      string `json:"community"`
	MentionedAt    string `json:"mentioned_at,omitempty"`
	ContextSnippet string `json:"context_snippet,omitempty"`
	Sentiment      string `json:"sentiment,omitempty"`
	Source         string `json:"source"`
}

// PushOutcome is the catalog's create-vs-update signal for a mention.
type PushOutcome struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ArticleRequest is the wire shape for an article.
type ArticleRequest struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	CommunitySlug string `json:"community_slug"`
	Summary       string `json:"summary,omitempty"`
	Source        string `json:"source"`
}

// PushTool records one tool mention. A conflict or validation rejection
// comes back as ErrAlreadyExists.
func (c *Client) PushTool(ctx context.Context, req ToolMentionRequest) (PushOutcome, error) {
	var outcome PushOutcome
	err := c.post(ctx, "/ingest", req, &outcome)
	return outcome, err
}

// PushArticle stores one article. Duplicates come back as
// ErrAlreadyExists.
func (c *Client) PushArticle(ctx context.Context, req ArticleRequest) error {
	return c.post(ctx, "/articles", req, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrAlreadyExists
	default:
		return fmt.Errorf("catalog returned %d: %s", resp.StatusCode, readErrBody(resp.Body))
	}
}

func readErrBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, errBodyLimit))
	if err != nil {
		return ""
	}
	return string(data)
}

type articleRecord struct {
	URL          string `json:"url"`
	DiscoveredAt string `json:"discovered_at"`
}

type articlesPage struct {
	Articles []articleRecord `json:"articles"`
}

type toolRecord struct {
	Slug string `json:"slug"`
}

type toolsPage struct {
	Tools []toolRecord `json:"tools"`
}

// KnownURLs walks the paginated articles listing and returns every
// stored URL.
func (c *Client) KnownURLs(ctx context.Context) ([]string, error) {
	var urls []string
	for page := 1; ; page++ {
		var result articlesPage
		params := url.Values{
			"per_page": {strconv.Itoa(listPageSize)},
			"page":     {strconv.Itoa(page)},
		}
		if err := c.get(ctx, "/articles", params, &result); err != nil {
			return nil, err
		}
		for _, a := range result.Articles {
			if a.URL != "" {
				urls = append(urls, a.URL)
			}
		}
		if len(result.Articles) < listPageSize {
			return urls, nil
		}
	}
}

// KnownSlugs walks the paginated tools listing and returns every stored
// slug.
func (c *Client) KnownSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	for page := 1; ; page++ {
		var result toolsPage
		params := url.Values{
			"per_page": {strconv.Itoa(listPageSize)},
			"page":     {strconv.Itoa(page)},
		}
		if err := c.get(ctx, "/tools", params, &result); err != nil {
			return nil, err
		}
		for _, t := range result.Tools {
			if t.Slug != "" {
				slugs = append(slugs, t.Slug)
			}
		}
		if len(result.Tools) < listPageSize {
			return slugs, nil
		}
	}
}

// LastImportedAt returns the most recent discovery time in the catalog,
// the incremental-import watermark. ok is false when the catalog is
// empty.
func (c *Client) LastImportedAt(ctx context.Context) (time.Time, bool, error) {
	var result articlesPage
	params := url.Values{
		"per_page":   {"1"},
		"sort_by":    {"discovered_at"},
		"sort_order": {"desc"},
	}
	if err := c.get(ctx, "/articles", params, &result); err != nil {
		return time.Time{}, false, err
	}
	if len(result.Articles) == 0 || result.Articles[0].DiscoveredAt == "" {
		return time.Time{}, false, nil
	}

	ts, err := time.Parse(time.RFC3339, result.Articles[0].DiscoveredAt)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unparseable discovered_at %q: %w", result.Articles[0].DiscoveredAt, err)
	}
	return ts, true, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned %d: %s", resp.StatusCode, readErrBody(resp.Body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
