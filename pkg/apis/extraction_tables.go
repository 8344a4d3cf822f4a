package apis

import "fmt"

// ExtractionTables is the versioned configuration document that drives
// entity extraction: the known tool name table, the category keyword
// table, sentiment keyword sets and the article exclusion list. Extractors
// take this as immutable input instead of holding package-level state.
type ExtractionTables struct {
	Kind       string           `json:"kind" example:"ExtractionTables" yaml:"kind"`
	Version    string           `json:"version" example:"v1" yaml:"version"`
	Metadata   Metadata         `json:"metadata" yaml:"metadata"`
	KnownTools []KnownTool      `json:"knownTools" yaml:"knownTools"`
	Categories []CategoryRule   `json:"categories" yaml:"categories"`
	Sentiment  SentimentLexicon `json:"sentiment" yaml:"sentiment"`
	// ExcludedDomains lists URL substrings that disqualify an "other"
	// URL from becoming an article candidate.
	ExcludedDomains []string `json:"excludedDomains" yaml:"excludedDomains"`
	// ToolKeywords gates tool extraction: a message with none of these
	// and no tool URL is not scanned for tools.
	ToolKeywords []string `json:"toolKeywords" yaml:"toolKeywords"`
}

type Metadata struct {
	Name        string `json:"name" example:"Default tables" yaml:"name"`
	Description string `json:"description" example:"Extraction tables for community imports" yaml:"description"`
}

// KnownTool maps a lowercase name appearing in message text to catalog
// identity and default categories.
type KnownTool struct {
	Match      string   `json:"match" example:"claude code" yaml:"match"`
	Slug       string   `json:"slug" example:"claude-code" yaml:"slug"`
	Name       string   `json:"name" example:"Claude Code" yaml:"name"`
	Categories []string `json:"categories" yaml:"categories"`
}

// CategoryRule assigns a category when any keyword appears in the tool's
// name, URL or message context. Rules are evaluated in document order and
// that order is preserved in the output.
type CategoryRule struct {
	Category string   `json:"category" example:"agent-framework" yaml:"category"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// SentimentLexicon holds the keyword sets checked in fixed priority:
// question beats positive beats negative.
type SentimentLexicon struct {
	Question []string `json:"question" yaml:"question"`
	Positive []string `json:"positive" yaml:"positive"`
	Negative []string `json:"negative" yaml:"negative"`
}

func (t *ExtractionTables) Validate() error {
	if t.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if t.Version == "" {
		return fmt.Errorf("version is required")
	}
	if t.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	for i, kt := range t.KnownTools {
		if kt.Match == "" {
			return fmt.Errorf("knownTools[%d] must have match defined", i)
		}
		if kt.Slug == "" {
			return fmt.Errorf("knownTools[%d] must have slug defined", i)
		}
	}
	for i, cr := range t.Categories {
		if cr.Category == "" {
			return fmt.Errorf("categories[%d] must have category defined", i)
		}
		if len(cr.Keywords) == 0 {
			return fmt.Errorf("categories[%d] must have at least one keyword", i)
		}
	}
	return nil
}
