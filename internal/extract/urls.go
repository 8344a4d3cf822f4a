package extract

import (
	"regexp"
	"strings"
)

// URLKind buckets a discovered URL. Classification is exclusive and
// checked in priority order: GitHub, npm, PyPI, arXiv, other.
type URLKind int

const (
	URLGitHub URLKind = iota
	URLNPM
	URLPyPI
	URLArxiv
	URLOther
)

// FoundURL is one URL discovered in message text, already trimmed of
// trailing punctuation.
type FoundURL struct {
	URL  string
	Kind URLKind
}

var (
	genericURLPattern = regexp.MustCompile(`https?://[^\s<>"'\]]+`)
	githubPattern     = regexp.MustCompile(`^https?://github\.com/[\w-]+/[\w.-]+`)
	npmPattern        = regexp.MustCompile(`^https?://(?:www\.)?npmjs\.com/package/[\w@/.-]+`)
	pypiPattern       = regexp.MustCompile(`^https?://pypi\.org/project/[\w.-]+`)
	arxivPattern      = regexp.MustCompile(`^https?://(?:www\.)?arxiv\.org/\S+`)
)

const trailingPunct = ".,;:!?)>\"']"

// TrimURL strips punctuation that chat text commonly glues onto the end
// of a pasted link.
func TrimURL(url string) string {
	return strings.TrimRight(url, trailingPunct)
}

// FindURLs runs a single pass over the text and returns every URL with
// its classification, in order of appearance.
func FindURLs(text string) []FoundURL {
	raw := genericURLPattern.FindAllString(text, -1)
	if len(raw) == 0 {
		return nil
	}

	found := make([]FoundURL, 0, len(raw))
	for _, u := range raw {
		u = TrimURL(u)
		if u == "" {
			continue
		}
		found = append(found, FoundURL{URL: u, Kind: classifyURL(u)})
	}
	return found
}

func classifyURL(url string) URLKind {
	switch {
	case githubPattern.MatchString(url):
		return URLGitHub
	case npmPattern.MatchString(url):
		return URLNPM
	case pypiPattern.MatchString(url):
		return URLPyPI
	case arxivPattern.MatchString(url):
		return URLArxiv
	default:
		return URLOther
	}
}

// IsExcludedDomain reports whether the URL matches one of the configured
// substrings that disqualify it as an article candidate.
func IsExcludedDomain(url string, excluded []string) bool {
	lower := strings.ToLower(url)
	for _, skip := range excluded {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}
