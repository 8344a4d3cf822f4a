package extract

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vibecheck/ingest/pkg/apis"
)

// YAMLTablesLoader reads an ExtractionTables document.
type YAMLTablesLoader struct {
	reader io.Reader
}

func NewYAMLTablesLoader(reader io.Reader) *YAMLTablesLoader {
	return &YAMLTablesLoader{
		reader: reader,
	}
}

func (tl *YAMLTablesLoader) Load(validate bool) (*apis.ExtractionTables, error) {
	decoder := yaml.NewDecoder(tl.reader)
	var tables apis.ExtractionTables
	if err := decoder.Decode(&tables); err != nil {
		return nil, err
	}
	if validate {
		if err := tables.Validate(); err != nil {
			return nil, err
		}
	}
	return &tables, nil
}

// DefaultTables returns the built-in extraction tables used when no YAML
// document is supplied. configs/known_tools.yaml ships the same content.
func DefaultTables() apis.ExtractionTables {
	return apis.ExtractionTables{
		Kind:    "ExtractionTables",
		Version: "v1",
		Metadata: apis.Metadata{
			Name:        "default",
			Description: "Built-in extraction tables for community imports",
		},
		KnownTools: []apis.KnownTool{
			{Match: "clawdbot", Slug: "clawdbot", Name: "Clawdbot", Categories: []string{"app", "agent-framework"}},
			{Match: "claude code", Slug: "claude-code", Name: "Claude Code", Categories: []string{"coding-assistant", "cli"}},
			{Match: "cursor", Slug: "cursor", Name: "Cursor", Categories: []string{"coding-assistant", "editor"}},
			{Match: "amplifier", Slug: "amplifier", Name: "Amplifier", Categories: []string{"agent-framework", "cli"}},
			{Match: "superpowers", Slug: "superpowers", Name: "Superpowers", Categories: []string{"library"}},
			{Match: "ollama", Slug: "ollama", Name: "Ollama", Categories: []string{"infrastructure"}},
			{Match: "vercel", Slug: "vercel", Name: "Vercel", Categories: []string{"infrastructure"}},
			{Match: "mcp", Slug: "mcp", Name: "Model Context Protocol", Categories: []string{"library"}},
			{Match: "chatgpt", Slug: "chatgpt", Name: "ChatGPT", Categories: []string{"app", "coding-assistant"}},
			{Match: "gemini", Slug: "gemini", Name: "Gemini", Categories: []string{"app"}},
			{Match: "aider", Slug: "aider", Name: "Aider", Categories: []string{"coding-assistant", "cli"}},
			{Match: "cline", Slug: "cline", Name: "Cline", Categories: []string{"coding-assistant"}},
			{Match: "windsurf", Slug: "windsurf", Name: "Windsurf", Categories: []string{"coding-assistant", "editor"}},
			{Match: "copilot", Slug: "github-copilot", Name: "GitHub Copilot", Categories: []string{"coding-assistant"}},
			{Match: "molt", Slug: "molt", Name: "Molt", Categories: []string{"app"}},
			{Match: "wacli", Slug: "wacli", Name: "wacli", Categories: []string{"cli"}},
			{Match: "verbal", Slug: "verbal", Name: "Verbal", Categories: []string{"app"}},
			{Match: "a2ui", Slug: "a2ui", Name: "a2ui", Categories: []string{"app"}},
			{Match: "beads", Slug: "beads", Name: "Beads", Categories: []string{"cli"}},
		},
		Categories: []apis.CategoryRule{
			{Category: "agent-framework", Keywords: []string{"agent", "agentic", "langchain", "langgraph", "autogen", "crew"}},
			{Category: "editor", Keywords: []string{"editor", "ide", "vscode", "cursor", "vim", "neovim", "emacs"}},
			{Category: "cli", Keywords: []string{"cli", "command line", "terminal", "shell"}},
			{Category: "mcp-server", Keywords: []string{"mcp", "model context protocol"}},
			{Category: "coding-assistant", Keywords: []string{"copilot", "assistant", "pair program", "code completion"}},
			{Category: "code-review", Keywords: []string{"review", "pr review", "pull request"}},
			{Category: "testing", Keywords: []string{"test", "pytest", "jest", "testing"}},
			{Category: "documentation", Keywords: []string{"docs", "documentation", "readme", "docstring"}},
			{Category: "orchestration", Keywords: []string{"orchestrat", "workflow", "pipeline"}},
		},
		Sentiment: apis.SentimentLexicon{
			Question: []string{"?", "anyone", "has anyone", "what is", "which", "what do you think", "opinions on", "how do"},
			Positive: []string{"love", "great", "amazing", "awesome", "excellent", "recommend", "best", "solid", "works well", "impressed"},
			Negative: []string{"broken", "buggy", "avoid", "terrible", "doesn't work", "issues", "problems", "abandoned", "sucks", "frustrat"},
		},
		ExcludedDomains: []string{
			"youtube.com/watch", "youtu.be", "twitter.com", "x.com",
			"instagram.com", "facebook.com", "tiktok.com", "linkedin.com/posts",
			"whatsapp.com", "t.me", "discord.gg", "meet.google.com", "zoom.us",
			"github.com",
		},
		ToolKeywords: []string{
			"tool", "library", "framework", "package", "cli", "sdk", "api",
			"plugin", "extension", "check out", "try", "using", "switched to",
			"recommend", "awesome", "built with", "powered by", "integrated",
			"workflow", "automation",
		},
	}
}
