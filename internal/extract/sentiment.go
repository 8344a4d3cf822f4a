package extract

import (
	"strings"

	"github.com/vibecheck/ingest/internal/domain"
	"github.com/vibecheck/ingest/pkg/apis"
)

// DetectSentiment labels how a message talks about a tool. The keyword
// sets are checked in fixed priority: question markers win over positive
// keywords, which win over negative keywords. A message containing both a
// question mark and "amazing" is a question, not praise.
func DetectSentiment(text string, lexicon apis.SentimentLexicon) domain.Sentiment {
	lower := strings.ToLower(text)

	if containsAny(lower, lexicon.Question) {
		return domain.SentimentQuestion
	}
	if containsAny(lower, lexicon.Positive) {
		return domain.SentimentPositive
	}
	if containsAny(lower, lexicon.Negative) {
		return domain.SentimentNegative
	}
	return domain.SentimentNeutral
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
