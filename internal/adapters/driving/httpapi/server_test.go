package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/memory"
	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	store.SetArticles([]domain.Article{
		{
			Slug:      "magnesium-for-sleep",
			Title:     "Magnesium for Better Sleep",
			Excerpt:   "How magnesium improves sleep quality.",
			Body:      "Magnesium glycinate can ease insomnia.",
			UpdatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	})
	store.SetSupplements([]domain.Supplement{
		{
			Slug:        "magnesium",
			Name:        "Magnesium",
			Focus:       "sleep quality",
			ArticleRefs: []string{"magnesium-for-sleep"},
			UpdatedAt:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Slug:        "zinc",
			Name:        "Zinc",
			ArticleRefs: []string{"does-not-exist"},
			UpdatedAt:   time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	store.SetConditions([]domain.Condition{
		{
			Slug:      "insomnia",
			Name:      "Insomnia",
			Keywords:  []string{"poor sleep", "magnesium"},
			UpdatedAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	})

	server := NewServer(services.NewRelationService(store), services.NewIndexService(store))
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, dest any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
	return resp
}

func TestSearchIndexEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var snapshot domain.SearchSnapshot
	resp := getJSON(t, ts.URL+"/api/search-index", &snapshot)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "public, max-age=3600, stale-while-revalidate=86400",
		resp.Header.Get("Cache-Control"))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	// One article, two supplements, one condition; clinics never appear.
	require.Len(t, snapshot.Items, 4)
	assert.Equal(t, "article:magnesium-for-sleep", snapshot.Items[0].ID)
	assert.False(t, snapshot.GeneratedAt.IsZero())
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Query   string              `json:"query"`
		Results []domain.SearchItem `json:"results"`
	}
	resp := getJSON(t, ts.URL+"/api/search?q=magnesium&type=supplement", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "supplement:magnesium", body.Results[0].ID)
}

func TestSearchEndpointRejectsUnknownType(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/search?q=x&type=clinic")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRelatedSupplementsForArticle(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Slug  string `json:"slug"`
		Items []struct {
			Record domain.Supplement `json:"record"`
			Reason string            `json:"reason"`
		} `json:"items"`
	}
	resp := getJSON(t, ts.URL+"/api/articles/magnesium-for-sleep/supplements", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "magnesium", body.Items[0].Record.Slug)
	assert.Equal(t, "Direct reference", body.Items[0].Reason)
}

func TestRelatedArticlesForCondition(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Items []struct {
			Record domain.Article `json:"record"`
			Reason string         `json:"reason"`
		} `json:"items"`
	}
	resp := getJSON(t, ts.URL+"/api/conditions/insomnia/articles", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "magnesium-for-sleep", body.Items[0].Record.Slug)
}

func TestRelatedUnknownSlugIsEmpty(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Items []json.RawMessage `json:"items"`
	}
	resp := getJSON(t, ts.URL+"/api/articles/no-such-article/supplements", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.Items)
}

func TestDiagnosticsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Diagnostics []string `json:"diagnostics"`
	}
	resp := getJSON(t, ts.URL+"/api/diagnostics", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body.Diagnostics, 2)
	assert.Contains(t, body.Diagnostics[0], "zinc")
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/healthz", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := rateLimit(1, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// A different client has its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "198.51.100.7:9876"
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, other)
	assert.Equal(t, http.StatusOK, third.Code)
}
