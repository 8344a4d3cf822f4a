package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/vibecheck/ingest/internal/domain"
)

// headerPattern pairs a header regex with the time layouts its captured
// date/time groups may use. Patterns are tried in order; the first regex
// match wins, and every layout is attempted before the line is demoted to
// a continuation.
type headerPattern struct {
	re      *regexp.Regexp
	layouts []string
}

// WhatsApp export header shapes, in priority order:
//
//	[YYYY/MM/DD, HH:MM:SS] Sender: text
//	[MM/DD/YY, HH:MM:SS AM/PM] Sender: text
//	MM/DD/YY, HH:MM - Sender: text   (US, also covers 4-digit years)
//	DD/MM/YYYY, HH:MM - Sender: text (EU)
var whatsappPatterns = []headerPattern{
	{
		re: regexp.MustCompile(`^\[(\d{4}/\d{1,2}/\d{1,2}),?\s*(\d{1,2}:\d{2}(?::\d{2})?)\]\s*([^:]+):\s*(.+)`),
		layouts: []string{
			"2006/1/2 15:04:05",
			"2006/1/2 15:04",
		},
	},
	{
		re: regexp.MustCompile(`(?i)^\[(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2}(?::\d{2})?\s*[AP]?M?)\]\s*([^:]+):\s*(.+)`),
		layouts: []string{
			"1/2/06 3:04:05 PM",
			"1/2/06 3:04 PM",
			"1/2/06 3:04:05PM",
			"1/2/06 3:04PM",
			"1/2/2006 3:04:05 PM",
			"1/2/2006 3:04 PM",
			"1/2/06 15:04:05",
			"1/2/06 15:04",
			"1/2/2006 15:04:05",
			"1/2/2006 15:04",
		},
	},
	{
		re: regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s+(\d{1,2}:\d{2})\s*-\s*([^:]+):\s*(.+)`),
		layouts: []string{
			"1/2/06 15:04",
			"1/2/2006 15:04",
			"2/1/06 15:04",
			"2/1/2006 15:04",
		},
	},
	{
		re: regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4}),?\s+(\d{1,2}:\d{2})\s*-\s*([^:]+):\s*(.+)`),
		layouts: []string{
			"2/1/2006 15:04",
			"1/2/2006 15:04",
		},
	},
}

// WhatsAppParser parses WhatsApp chat exports into ordered messages.
type WhatsAppParser struct {
	sanitize bool
}

func NewWhatsAppParser(sanitize bool) *WhatsAppParser {
	return &WhatsAppParser{sanitize: sanitize}
}

func (p *WhatsAppParser) SourceType() string {
	return "whatsapp"
}

// Parse splits the export into messages. A header line whose timestamp
// parses under no supported layout is treated as plain text, never as a
// failure.
func (p *WhatsAppParser) Parse(content string) ([]domain.Message, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	messages := assemble(lines, p.classifyLine)

	if p.sanitize {
		for i := range messages {
			messages[i].Sender = SanitizeSender(messages[i].Sender)
		}
	}
	return messages, nil
}

func (p *WhatsAppParser) classifyLine(line string) MatchResult {
	for _, hp := range whatsappPatterns {
		m := hp.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ts, ok := parseHeaderTime(m[1], m[2], hp.layouts)
		if !ok {
			// Looks like a header but the timestamp is garbage;
			// fall through to plain text.
			break
		}
		return MatchResult{
			Kind: MatchHeader,
			Message: domain.Message{
				Timestamp: ts,
				Sender:    cleanSender(m[3]),
				Text:      strings.TrimSpace(m[4]),
			},
		}
	}
	return MatchResult{Kind: MatchContinuation}
}

func parseHeaderTime(dateStr, timeStr string, layouts []string) (time.Time, bool) {
	combined := dateStr + " " + strings.ToUpper(strings.TrimSpace(timeStr))
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// cleanSender strips the ~ and narrow-no-break-space prefixes WhatsApp
// puts in front of non-contact senders.
func cleanSender(sender string) string {
	sender = strings.TrimSpace(sender)
	sender = strings.TrimLeft(sender, "~\u202f ")
	return strings.TrimSpace(sender)
}
