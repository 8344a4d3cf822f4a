package extract

import (
	"regexp"
	"strings"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9]+`)
	githubRepoParts = regexp.MustCompile(`^https?://github\.com/([\w-]+)/([\w.-]+)`)
)

// Slugify normalizes a tool name into its catalog identity: lowercase,
// non-alphanumeric runs collapsed to single hyphens, hyphens trimmed.
// The result may be empty for degenerate input; callers must check
// ValidSlug before using it.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug reports whether s is a usable catalog slug.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// GitHubRepo splits a GitHub repo URL into owner and repo. The derived
// slug is the repo name lowercased with underscores turned into hyphens,
// independent of the owner.
func GitHubRepo(url string) (owner, repo string, ok bool) {
	m := githubRepoParts.FindStringSubmatch(url)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// GitHubSlug derives the slug for a GitHub repo URL.
func GitHubSlug(url string) (string, bool) {
	_, repo, ok := GitHubRepo(url)
	if !ok {
		return "", false
	}
	return Slugify(repo), true
}

// ArxivID pulls the paper identifier out of an arXiv URL: the last path
// segment with a trailing .pdf stripped.
func ArxivID(url string) string {
	trimmed := strings.TrimRight(url, "/")
	id := trimmed[strings.LastIndex(trimmed, "/")+1:]
	return strings.TrimSuffix(id, ".pdf")
}

// ArxivSlug derives the slug for an arXiv paper URL, e.g. arxiv-2401-12345.
func ArxivSlug(url string) string {
	id := Slugify(ArxivID(url))
	if id == "" {
		return ""
	}
	return "arxiv-" + id
}
