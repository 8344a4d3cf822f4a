package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PushTool(t *testing.T) {
	var got ToolMentionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ingest", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"created":1,"updated":0}`))
	}))
	defer srv.Close()

	outcome, err := NewClient(srv.URL).PushTool(context.Background(), ToolMentionRequest{
		ToolName:  "Aider",
		ToolSlug:  "aider",
		Community: "agi",
		Source:    "whatsapp-import",
	})
	require.NoError(t, err)
	assert.Equal(t, PushOutcome{Created: 1}, outcome)
	assert.Equal(t, "aider", got.ToolSlug)
	assert.Equal(t, "whatsapp-import", got.Source)
}

func TestClient_PushArticle_Conflict(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "conflict", status: http.StatusConflict},
		{name: "unprocessable", status: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewClient(srv.URL).PushArticle(context.Background(), ArticleRequest{
				URL: "https://blog.example.com/post",
			})
			assert.ErrorIs(t, err, ErrAlreadyExists)
		})
	}
}

func TestClient_PushArticle_ServerErrorTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		for i := 0; i < 50; i++ {
			w.Write([]byte("0123456789"))
		}
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushArticle(context.Background(), ArticleRequest{URL: "https://x.example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog returned 500")
	assert.LessOrEqual(t, len(err.Error()), errBodyLimit+len("catalog returned 500: "))
}

func TestClient_KnownSlugs_Paginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tools", r.URL.Path)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		var tools []map[string]string
		if page == 1 {
			for i := 0; i < listPageSize; i++ {
				tools = append(tools, map[string]string{"slug": fmt.Sprintf("tool-%d", i)})
			}
		} else {
			tools = []map[string]string{{"slug": "last-one"}, {"slug": "and-another"}}
		}
		json.NewEncoder(w).Encode(map[string]any{"tools": tools})
	}))
	defer srv.Close()

	slugs, err := NewClient(srv.URL).KnownSlugs(context.Background())
	require.NoError(t, err)
	assert.Len(t, slugs, listPageSize+2)
	assert.Equal(t, "tool-0", slugs[0])
	assert.Equal(t, "and-another", slugs[len(slugs)-1])
}

func TestClient_KnownURLs_SkipsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"articles": []map[string]string{
			{"url": "https://a.example.com"},
			{"url": ""},
			{"url": "https://b.example.com"},
		}})
	}))
	defer srv.Close()

	urls, err := NewClient(srv.URL).KnownURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, urls)
}

func TestClient_LastImportedAt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1", r.URL.Query().Get("per_page"))
		require.Equal(t, "discovered_at", r.URL.Query().Get("sort_by"))
		json.NewEncoder(w).Encode(map[string]any{"articles": []map[string]string{
			{"url": "https://a.example.com", "discovered_at": "2026-02-01T14:30:00Z"},
		}})
	}))
	defer srv.Close()

	ts, ok, err := NewClient(srv.URL).LastImportedAt(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 1, 14, 30, 0, 0, time.UTC), ts)
}

func TestClient_LastImportedAt_EmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"articles": []map[string]string{}})
	}))
	defer srv.Close()

	_, ok, err := NewClient(srv.URL).LastImportedAt(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}
