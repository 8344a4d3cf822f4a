package domain

import "time"

// Message is a single chat utterance parsed from an export. Continuation
// lines are folded into Text with newlines. Messages are immutable after
// parsing.
type Message struct {
	Timestamp time.Time
	Sender    string
	Text      string
}

// HasTimestamp reports whether the export format carried a parseable
// timestamp for this message. Slack plaintext transcripts, for example,
// carry only a wall-clock time and produce zero timestamps.
func (m Message) HasTimestamp() bool {
	return !m.Timestamp.IsZero()
}
