package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibecheck/ingest/internal/domain"
)

func TestFilterSystem(t *testing.T) {
	messages := []domain.Message{
		{Sender: "A.", Text: "check out this tool"},
		{Sender: "A.", Text: "Bob joined using this group's invite link"},
		{Sender: "A.", Text: "Carol was added"},
		{Sender: "bot (code code code)", Text: "deploy finished"},
		{Sender: "B.", Text: "anyone tried it?"},
	}

	kept := FilterSystem(messages)
	assert.Len(t, kept, 2)
	assert.Equal(t, "check out this tool", kept[0].Text)
	assert.Equal(t, "anyone tried it?", kept[1].Text)
}

func TestSanitizeSender(t *testing.T) {
	assert.Equal(t, "A.", SanitizeSender("Alice Smith"))
	assert.Equal(t, "[user]", SanitizeSender("+1 555 123 4567"))
	assert.Equal(t, "[user]", SanitizeSender("5551234567"))
	assert.Equal(t, "[user]", SanitizeSender(""))
}
