package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLTablesLoader_Load(t *testing.T) {
	yamlContent := `
kind: ExtractionTables
version: v1
metadata:
  name: "Test"
knownTools:
  - match: "claude code"
    slug: "claude-code"
    name: "Claude Code"
    categories: ["coding-assistant", "cli"]
categories:
  - category: "cli"
    keywords: ["cli", "terminal"]
sentiment:
  question: ["?"]
  positive: ["great"]
  negative: ["broken"]
excludedDomains:
  - "youtube.com/watch"
toolKeywords:
  - "tool"
`
	tables, err := NewYAMLTablesLoader(strings.NewReader(yamlContent)).Load(true)
	require.NoError(t, err)

	assert.Equal(t, "ExtractionTables", tables.Kind)
	require.Len(t, tables.KnownTools, 1)
	assert.Equal(t, "claude-code", tables.KnownTools[0].Slug)
	assert.Equal(t, []string{"cli", "terminal"}, tables.Categories[0].Keywords)
}

func TestYAMLTablesLoader_Load_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing kind",
			yaml: "version: v1\nmetadata:\n  name: x\n",
		},
		{
			name: "known tool without slug",
			yaml: "kind: ExtractionTables\nversion: v1\nmetadata:\n  name: x\nknownTools:\n  - match: foo\n",
		},
		{
			name: "category without keywords",
			yaml: "kind: ExtractionTables\nversion: v1\nmetadata:\n  name: x\ncategories:\n  - category: cli\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLTablesLoader(strings.NewReader(tt.yaml)).Load(true)
			assert.Error(t, err)
		})
	}
}

func TestDefaultTables_Valid(t *testing.T) {
	tables := DefaultTables()
	require.NoError(t, tables.Validate())
	assert.NotEmpty(t, tables.KnownTools)
	assert.NotEmpty(t, tables.ExcludedDomains)
}
