package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

func supplementItem(title, slug string, updated time.Time, keywords ...string) domain.SearchItem {
	return domain.SearchItem{
		ID:        "supplement:" + slug,
		Type:      domain.SearchItemSupplement,
		Title:     title,
		Href:      "/supplements/" + slug,
		Slug:      slug,
		Keywords:  keywords,
		UpdatedAt: updated,
	}
}

func articleItem(title, slug string, updated time.Time, keywords ...string) domain.SearchItem {
	return domain.SearchItem{
		ID:        "article:" + slug,
		Type:      domain.SearchItemArticle,
		Title:     title,
		Href:      "/blog/" + slug,
		Slug:      slug,
		Keywords:  keywords,
		UpdatedAt: updated,
	}
}

func TestScoreQueryTitleTiers(t *testing.T) {
	items := []domain.SearchItem{
		supplementItem("Zinc Picolinate", "zinc-picolinate", date("2026-02-01")),
		supplementItem("Zinc", "zinc", date("2026-01-01")),
	}

	results := ScoreQuery(items, "zinc", domain.QueryOptions{})
	require.Len(t, results, 2)
	// Exact title equality outranks the prefix match despite the older date.
	assert.Equal(t, "Zinc", results[0].Title)
	assert.Equal(t, "Zinc Picolinate", results[1].Title)
}

func TestScoreQueryPrefixBeatsContains(t *testing.T) {
	items := []domain.SearchItem{
		articleItem("Vitamin D Basics", "vitamin-d-basics", date("2026-01-01")),
		supplementItem("Vitamin D3", "vitamin-d3", date("2026-02-13")),
	}

	results := ScoreQuery(items, "vitamin d", domain.QueryOptions{})
	require.Len(t, results, 2)
	assert.Equal(t, "Vitamin D3", results[0].Title)
	assert.Equal(t, "Vitamin D Basics", results[1].Title)
}

func TestScoreQueryAndSemantics(t *testing.T) {
	items := []domain.SearchItem{
		supplementItem("Vitamin C", "vitamin-c", date("2026-01-01"), "immunity"),
		supplementItem("Magnesium", "magnesium", date("2026-01-02"), "sleep"),
	}

	// Each term alone matches an item, but no single item satisfies both.
	assert.Empty(t, ScoreQuery(items, "vitamin sleep", domain.QueryOptions{}))

	// Both terms hit the same item through different tiers.
	results := ScoreQuery(items, "magnesium sleep", domain.QueryOptions{})
	require.Len(t, results, 1)
	assert.Equal(t, "Magnesium", results[0].Title)
}

func TestScoreQueryNormalisation(t *testing.T) {
	items := []domain.SearchItem{
		supplementItem("Magnesium", "magnesium", date("2026-01-01")),
	}

	results := ScoreQuery(items, "  MAGNESIUM   ", domain.QueryOptions{})
	require.Len(t, results, 1)
}

func TestScoreQueryResultCap(t *testing.T) {
	items := make([]domain.SearchItem, 0, 45)
	for i := 0; i < 45; i++ {
		items = append(items, articleItem(
			fmt.Sprintf("Magnesium Guide %02d", i),
			fmt.Sprintf("magnesium-guide-%02d", i),
			date("2026-01-01").AddDate(0, 0, i),
		))
	}

	results := ScoreQuery(items, "magnesium", domain.QueryOptions{})
	require.Len(t, results, maxResults)
	// Equal scores fall back to recency: the newest guide leads.
	assert.Equal(t, "Magnesium Guide 44", results[0].Title)
}

func TestScoreQueryTitleTieBreak(t *testing.T) {
	same := date("2026-01-01")
	items := []domain.SearchItem{
		supplementItem("Lemon Balm", "lemon-balm", same),
		supplementItem("Banana Leaf", "banana-leaf", same),
	}

	results := ScoreQuery(items, "n", domain.QueryOptions{})
	require.Len(t, results, 2)
	// Same tier, same date: alphabetical title order decides.
	assert.Equal(t, "Banana Leaf", results[0].Title)
	assert.Equal(t, "Lemon Balm", results[1].Title)
}

func TestScoreQueryTypeFilter(t *testing.T) {
	items := []domain.SearchItem{
		articleItem("Magnesium for Sleep", "magnesium-for-sleep", date("2026-02-01")),
		supplementItem("Magnesium", "magnesium", date("2026-01-01")),
	}

	results := ScoreQuery(items, "magnesium", domain.QueryOptions{Type: domain.SearchItemSupplement})
	require.Len(t, results, 1)
	assert.Equal(t, domain.SearchItemSupplement, results[0].Type)
}

func TestScoreQueryKeywordTier(t *testing.T) {
	items := []domain.SearchItem{
		supplementItem("Ashwagandha", "ashwagandha", date("2026-01-01"), "stress", "cortisol"),
	}

	results := ScoreQuery(items, "cortisol", domain.QueryOptions{})
	require.Len(t, results, 1)
}

func TestEmptyQueryDefaultView(t *testing.T) {
	articles := make([]domain.Article, 0, 6)
	for i := 0; i < 6; i++ {
		articles = append(articles, domain.Article{
			Slug:      fmt.Sprintf("post-%d", i),
			Title:     fmt.Sprintf("Post %d", i),
			UpdatedAt: date("2026-01-01").AddDate(0, 0, i),
		})
	}
	supplements := []domain.Supplement{
		{Slug: "zinc", Name: "Zinc", UpdatedAt: date("2026-01-01")},
		{Slug: "magnesium", Name: "Magnesium", UpdatedAt: date("2026-01-02")},
	}
	conditions := []domain.Condition{
		{Slug: "insomnia", Name: "Insomnia", UpdatedAt: date("2026-01-03")},
	}

	snapshot := BuildSnapshot(articles, supplements, conditions)
	results := ScoreQuery(snapshot.Items, "", domain.QueryOptions{})

	require.Len(t, results, 7)
	// Four most recent articles first.
	assert.Equal(t, "article:post-5", results[0].ID)
	assert.Equal(t, "article:post-4", results[1].ID)
	assert.Equal(t, "article:post-3", results[2].ID)
	assert.Equal(t, "article:post-2", results[3].ID)
	// Then the supplements alphabetically, then the condition.
	assert.Equal(t, "supplement:magnesium", results[4].ID)
	assert.Equal(t, "supplement:zinc", results[5].ID)
	assert.Equal(t, "condition:insomnia", results[6].ID)
}

func TestEmptyQueryWithTypeFilter(t *testing.T) {
	items := make([]domain.SearchItem, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, articleItem(
			fmt.Sprintf("Post %02d", i),
			fmt.Sprintf("post-%02d", i),
			date("2026-01-01").AddDate(0, 0, i),
		))
	}

	results := ScoreQuery(items, "", domain.QueryOptions{Type: domain.SearchItemArticle})
	assert.Len(t, results, defaultFiltered)
}

func TestScoreQuerySnapshotRelative(t *testing.T) {
	// Scoring never assumes the snapshot corresponds to "now": wildly
	// different snapshots each produce consistent, ordered results.
	old := []domain.SearchItem{
		supplementItem("Magnesium", "magnesium", date("2020-01-01")),
	}
	fresh := []domain.SearchItem{
		supplementItem("Magnesium Glycinate", "magnesium-glycinate", date("2026-08-01")),
	}

	assert.Len(t, ScoreQuery(old, "magnesium", domain.QueryOptions{}), 1)
	assert.Len(t, ScoreQuery(fresh, "magnesium", domain.QueryOptions{}), 1)
}
