package extract

import (
	"regexp"
	"strings"
)

// DefaultSnippetLength bounds context snippets stored in the catalog.
const DefaultSnippetLength = 200

var (
	phoneDashedPattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	phoneLongPattern   = regexp.MustCompile(`\+?\d{10,}`)
	phoneIntlPattern   = regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{7,14}`)
	emailPattern       = regexp.MustCompile(`\b[\w.+-]+@[\w.-]+\.\w+\b`)
	slackUserPattern   = regexp.MustCompile(`<@U\w+>`)
	mentionPattern     = regexp.MustCompile(`@\w+`)
	possessivePattern  = regexp.MustCompile(`\b(my|our|their)\s+([A-Z][a-z]+)\b`)
)

// Sanitizer strips personal information from context snippets before they
// leave the pipeline. Substitutions run in a fixed order, truncation
// always last.
type Sanitizer struct {
	enabled   bool
	maxLength int
}

func NewSanitizer(enabled bool, maxLength int) *Sanitizer {
	if maxLength <= 0 {
		maxLength = DefaultSnippetLength
	}
	return &Sanitizer{enabled: enabled, maxLength: maxLength}
}

// Snippet sanitizes and truncates a raw context snippet.
func (s *Sanitizer) Snippet(text string) string {
	if !s.enabled {
		return truncate(text, s.maxLength)
	}

	out := text
	out = phoneDashedPattern.ReplaceAllString(out, "[phone]")
	out = phoneLongPattern.ReplaceAllString(out, "[phone]")
	out = phoneIntlPattern.ReplaceAllString(out, "[phone]")
	out = emailPattern.ReplaceAllString(out, "[email]")
	out = slackUserPattern.ReplaceAllString(out, "@[user]")
	out = mentionPattern.ReplaceAllString(out, "@[user]")
	out = possessivePattern.ReplaceAllString(out, "$1 [name]")

	return strings.TrimSpace(truncate(out, s.maxLength))
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
