package parser

import (
	"regexp"
	"strings"

	"github.com/vibecheck/ingest/internal/domain"
)

var phoneSenderPattern = regexp.MustCompile(`^\+?\d[\d\s-]+$`)

// systemKeywords mark membership and administrative notices. The match is
// deliberately broad; community exports are dominated by join/add churn.
var systemKeywords = []string{"joined", "added"}

const systemSenderSuffix = "(code code code)"

// IsSystemMessage reports whether a message is a membership or
// administrative notice rather than a human utterance.
func IsSystemMessage(m domain.Message) bool {
	if strings.HasSuffix(m.Sender, systemSenderSuffix) {
		return true
	}
	lower := strings.ToLower(m.Text)
	for _, kw := range systemKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FilterSystem removes system messages. Filtering happens after parsing
// so that reported message counts reflect what the export contained.
func FilterSystem(messages []domain.Message) []domain.Message {
	kept := make([]domain.Message, 0, len(messages))
	for _, m := range messages {
		if IsSystemMessage(m) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// SanitizeSender reduces a sender to an initial for privacy.
// Phone-number-like senders are fully redacted.
func SanitizeSender(sender string) string {
	sender = strings.TrimSpace(sender)
	if sender == "" {
		return "[user]"
	}
	if phoneSenderPattern.MatchString(sender) {
		return "[user]"
	}
	return string([]rune(sender)[:1]) + "."
}
