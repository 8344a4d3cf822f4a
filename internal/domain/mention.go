package domain

import "time"

// Sentiment labels how a message talks about a tool.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentQuestion Sentiment = "question"
)

// ExtractedTool is a tool mention candidate found in one message.
// Slug is the identity key used for dedup and catalog reconciliation.
type ExtractedTool struct {
	Slug           string    `json:"slug"`
	Name           string    `json:"name"`
	URL            string    `json:"url,omitempty"`
	GitHubURL      string    `json:"githubUrl,omitempty"`
	ContextSnippet string    `json:"contextSnippet,omitempty"`
	Sentiment      Sentiment `json:"sentiment,omitempty"`
	MentionDate    time.Time `json:"mentionDate,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
}

// ExtractedArticle is a non-tool URL mention. The URL itself is the
// identity key.
type ExtractedArticle struct {
	URL             string    `json:"url"`
	Title           string    `json:"title,omitempty"`
	ContextSnippet  string    `json:"contextSnippet,omitempty"`
	MentionDate     time.Time `json:"mentionDate,omitempty"`
	SourceCommunity string    `json:"sourceCommunity,omitempty"`
}
