package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/vibecheck/ingest/internal/domain"
)

// Slack plaintext transcript header shapes, in priority order:
//
//	username  HH:MM AM/PM
//	[HH:MM] username: text
//	username (HH:MM): text
var slackHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(\w+)\s+\d{1,2}:\d{2}\s*[AP]M\b\s*(.*)`),
	regexp.MustCompile(`^\[\d{1,2}:\d{2}\]\s*(\w+):\s*(.*)`),
	regexp.MustCompile(`^(\w+)\s*\(\d{1,2}:\d{2}\):\s*(.*)`),
}

// SlackParser parses Slack workspace-export JSON or copy-pasted plaintext
// transcripts. JSON carries fractional unix-epoch timestamps; plaintext
// transcripts carry only a wall-clock time, which is not enough for a
// mention date, so their messages have zero timestamps.
type SlackParser struct {
	sanitize bool
}

func NewSlackParser(sanitize bool) *SlackParser {
	return &SlackParser{sanitize: sanitize}
}

func (p *SlackParser) SourceType() string {
	return "slack"
}

func (p *SlackParser) Parse(content string) ([]domain.Message, error) {
	if messages, ok := p.parseJSON(content); ok {
		return p.finish(messages), nil
	}
	return p.finish(p.parseText(content)), nil
}

func (p *SlackParser) finish(messages []domain.Message) []domain.Message {
	if p.sanitize {
		for i := range messages {
			messages[i].Sender = SanitizeSender(messages[i].Sender)
		}
	}
	return messages
}

type slackRecord struct {
	Text string          `json:"text"`
	User string          `json:"user"`
	TS   json.RawMessage `json:"ts"`
}

type slackEnvelope struct {
	Messages []slackRecord `json:"messages"`
}

func (p *SlackParser) parseJSON(content string) ([]domain.Message, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var records []slackRecord
	if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
		var envelope slackEnvelope
		if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
			return nil, false
		}
		records = envelope.Messages
	}

	messages := make([]domain.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, domain.Message{
			Timestamp: slackTimestamp(rec.TS),
			Sender:    rec.User,
			Text:      rec.Text,
		})
	}
	return messages, true
}

// slackTimestamp parses Slack's "1700000000.123456" epoch format, quoted
// or bare. Unparseable values yield a zero time, never an error.
func slackTimestamp(raw json.RawMessage) time.Time {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		return time.Time{}
	}
	epoch, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

func (p *SlackParser) parseText(content string) []domain.Message {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	return assemble(lines, classifySlackLine)
}

func classifySlackLine(line string) MatchResult {
	for _, re := range slackHeaderPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		return MatchResult{
			Kind: MatchHeader,
			Message: domain.Message{
				Sender: m[1],
				Text:   strings.TrimSpace(m[2]),
			},
		}
	}
	return MatchResult{Kind: MatchContinuation}
}
