package parser

import "github.com/vibecheck/ingest/internal/domain"

// MatchKind classifies a single physical line of an export.
type MatchKind int

const (
	// MatchHeader starts a new message.
	MatchHeader MatchKind = iota
	// MatchContinuation belongs to the message currently being built.
	MatchContinuation
	// MatchUnrecognized is a continuation line seen before any header;
	// it is discarded.
	MatchUnrecognized
)

// MatchResult is the outcome of classifying one line. Message is only
// meaningful for MatchHeader.
type MatchResult struct {
	Kind    MatchKind
	Message domain.Message
}

// assemble folds classified lines into messages. Header lines open a new
// message, continuation lines are appended to the open one with a
// newline, and lines before the first header are dropped.
func assemble(lines []string, classify func(line string) MatchResult) []domain.Message {
	var messages []domain.Message
	var current *domain.Message

	for _, line := range lines {
		res := classify(line)
		switch res.Kind {
		case MatchHeader:
			if current != nil {
				messages = append(messages, *current)
			}
			msg := res.Message
			current = &msg
		case MatchContinuation:
			if current == nil {
				continue
			}
			current.Text += "\n" + line
		}
	}

	if current != nil {
		messages = append(messages, *current)
	}
	return messages
}
