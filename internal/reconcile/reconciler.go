package reconcile

import "github.com/vibecheck/ingest/internal/domain"

// Snapshot is the known state of the catalog, fetched once at the start
// of a run and never refreshed mid-batch.
type Snapshot struct {
	Slugs map[string]struct{}
	URLs  map[string]struct{}
}

// NewSnapshot builds a snapshot from slug and URL lists.
func NewSnapshot(slugs, urls []string) Snapshot {
	snap := Snapshot{
		Slugs: make(map[string]struct{}, len(slugs)),
		URLs:  make(map[string]struct{}, len(urls)),
	}
	for _, s := range slugs {
		snap.Slugs[s] = struct{}{}
	}
	for _, u := range urls {
		snap.URLs[u] = struct{}{}
	}
	return snap
}

// Outcome is the reduced push set plus drop accounting. In-batch
// duplicates and known-state skips are reported separately.
type Outcome struct {
	Tools    []domain.ExtractedTool
	Articles []domain.ExtractedArticle

	DuplicateTools    int
	DuplicateArticles int
	KnownTools        int
	KnownArticles     int
}

// Skipped is the total number of candidates dropped.
func (o Outcome) Skipped() int {
	return o.DuplicateTools + o.DuplicateArticles + o.KnownTools + o.KnownArticles
}

// Reconcile collapses in-batch duplicates (first occurrence wins, later
// and possibly richer context is discarded, not merged) and drops
// candidates already present in the catalog snapshot.
func Reconcile(tools []domain.ExtractedTool, articles []domain.ExtractedArticle, snap Snapshot) Outcome {
	var out Outcome

	seenSlugs := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if _, dup := seenSlugs[t.Slug]; dup {
			out.DuplicateTools++
			continue
		}
		seenSlugs[t.Slug] = struct{}{}

		if _, known := snap.Slugs[t.Slug]; known {
			out.KnownTools++
			continue
		}
		out.Tools = append(out.Tools, t)
	}

	seenURLs := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		if _, dup := seenURLs[a.URL]; dup {
			out.DuplicateArticles++
			continue
		}
		seenURLs[a.URL] = struct{}{}

		if _, known := snap.URLs[a.URL]; known {
			out.KnownArticles++
			continue
		}
		out.Articles = append(out.Articles, a)
	}

	return out
}
