package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "claude-code", Slugify("Claude Code"))
	assert.Equal(t, "my-repo", Slugify("My_Repo"))
	assert.Equal(t, "scope-pkg", Slugify("@scope/pkg"))
	assert.Equal(t, "a-b-c", Slugify("  a--b__c  "))
	assert.Equal(t, "", Slugify("***"))
}

func TestValidSlug(t *testing.T) {
	assert.True(t, ValidSlug("claude-code"))
	assert.True(t, ValidSlug("a2ui"))
	assert.False(t, ValidSlug(""))
	assert.False(t, ValidSlug("Has Caps"))
	assert.False(t, ValidSlug("trailing-ok-"))
}

func TestGitHubRepo(t *testing.T) {
	owner, repo, ok := GitHubRepo("https://github.com/foo/bar")
	assert.True(t, ok)
	assert.Equal(t, "foo", owner)
	assert.Equal(t, "bar", repo)

	_, _, ok = GitHubRepo("https://github.com/orgonly")
	assert.False(t, ok)
}

func TestArxivSlug(t *testing.T) {
	assert.Equal(t, "arxiv-2401-12345", ArxivSlug("https://arxiv.org/abs/2401.12345"))
	assert.Equal(t, "arxiv-2401-12345", ArxivSlug("https://arxiv.org/pdf/2401.12345.pdf"))
}
