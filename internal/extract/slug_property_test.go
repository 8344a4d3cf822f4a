package extract

import (
	"testing"

	"pgregory.net/rapid"
)

// Derived GitHub slugs depend only on the repo name, never on the owner,
// and always satisfy the catalog slug format.
func TestGitHubSlugIndependentOfOwner(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ownerA := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9-]{0,20}`).Draw(t, "ownerA")
		ownerB := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9-]{0,20}`).Draw(t, "ownerB")
		repo := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9_-]{0,20}`).Draw(t, "repo")

		slugA, okA := GitHubSlug("https://github.com/" + ownerA + "/" + repo)
		slugB, okB := GitHubSlug("https://github.com/" + ownerB + "/" + repo)

		if !okA || !okB {
			t.Fatalf("expected both URLs to parse as repos")
		}
		if slugA != slugB {
			t.Fatalf("slug depends on owner: %q vs %q", slugA, slugB)
		}
		if !ValidSlug(slugA) {
			t.Fatalf("derived slug %q is not a valid slug", slugA)
		}
		if slugA != Slugify(repo) {
			t.Fatalf("slug %q does not equal normalized repo %q", slugA, Slugify(repo))
		}
	})
}

// Slugify output is always either empty or a valid slug, for arbitrary
// input.
func TestSlugifyAlwaysNormalizes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")

		slug := Slugify(name)
		if slug != "" && !ValidSlug(slug) {
			t.Fatalf("Slugify(%q) = %q, which is not a valid slug", name, slug)
		}
	})
}
