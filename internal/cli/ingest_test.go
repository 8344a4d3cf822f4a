package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecheck/ingest/internal/apperr"
	"github.com/vibecheck/ingest/internal/catalog"
)

func TestResolveSince_ExplicitDate(t *testing.T) {
	since, err := resolveSince(context.Background(), nil, &ingestFlags{since: "2026-02-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), since)
}

func TestResolveSince_InvalidDate(t *testing.T) {
	_, err := resolveSince(context.Background(), nil, &ingestFlags{since: "01/02/2026"})

	var inputErr *apperr.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestResolveSince_AutoSinceUsesWatermark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[{"url":"https://a.example.com","discovered_at":"2026-01-15T08:00:00Z"}]}`))
	}))
	defer srv.Close()

	since, err := resolveSince(context.Background(), catalog.NewClient(srv.URL), &ingestFlags{autoSince: true})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC), since)
}

func TestResolveSince_AutoSinceFailureProcessesEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	since, err := resolveSince(context.Background(), catalog.NewClient(srv.URL), &ingestFlags{autoSince: true})
	require.NoError(t, err)
	assert.True(t, since.IsZero())
}

func TestLoadTables_DefaultWhenNoPath(t *testing.T) {
	tables, err := loadTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.KnownTools)
}

func TestLoadTables_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	doc := `kind: ExtractionTables
version: v1
metadata:
  name: custom
knownTools:
  - match: "mytool"
    slug: "mytool"
    name: "MyTool"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	tables, err := loadTables(path)
	require.NoError(t, err)
	require.Len(t, tables.KnownTools, 1)
	assert.Equal(t, "mytool", tables.KnownTools[0].Slug)
}

func TestLoadTables_MissingFile(t *testing.T) {
	_, err := loadTables("/nonexistent/tables.yaml")

	var inputErr *apperr.InputError
	assert.ErrorAs(t, err, &inputErr)
}
