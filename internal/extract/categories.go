package extract

import (
	"strings"

	"github.com/vibecheck/ingest/pkg/apis"
)

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "library"

// Categorize guesses categories for a tool from its name, URL and the
// message it appeared in. Rules are walked in table order and matches
// keep that order.
func Categorize(name, url, context string, rules []apis.CategoryRule) []string {
	haystack := strings.ToLower(name + " " + url + " " + context)

	var categories []string
	for _, rule := range rules {
		if containsAny(haystack, rule.Keywords) {
			categories = append(categories, rule.Category)
		}
	}

	if len(categories) == 0 {
		return []string{DefaultCategory}
	}
	return categories
}
