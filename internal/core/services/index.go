package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driving"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.SearchService = (*IndexService)(nil)

// IndexService flattens the record collections into a search snapshot and
// answers queries against it. Snapshots are recomputed on every call; the
// computation is cheap and carries no caching contract.
type IndexService struct {
	content driven.ContentStore
}

// NewIndexService creates a search service over a content store.
func NewIndexService(content driven.ContentStore) *IndexService {
	return &IndexService{content: content}
}

// Snapshot builds the search snapshot: articles newest first, then
// supplements and conditions alphabetically. Clinics are not indexed.
func (s *IndexService) Snapshot(ctx context.Context) (*domain.SearchSnapshot, error) {
	articles, err := s.content.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	supplements, err := s.content.Supplements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load supplements: %w", err)
	}
	conditions, err := s.content.Conditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load conditions: %w", err)
	}

	snapshot := BuildSnapshot(articles, supplements, conditions)
	logger.Debug("Search snapshot: %d items", len(snapshot.Items))
	return snapshot, nil
}

// Query builds a fresh snapshot and scores it against the query.
func (s *IndexService) Query(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.SearchItem, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ScoreQuery(snapshot.Items, query, opts), nil
}

// BuildSnapshot flattens the collections into search items. The item order
// is the snapshot contract: articles by recency descending, then supplements
// and conditions alphabetically by title.
func BuildSnapshot(
	articles []domain.Article,
	supplements []domain.Supplement,
	conditions []domain.Condition,
) *domain.SearchSnapshot {
	items := make([]domain.SearchItem, 0, len(articles)+len(supplements)+len(conditions))

	articleItems := make([]domain.SearchItem, 0, len(articles))
	for _, a := range articles {
		keywords := append([]string{}, a.Tags...)
		keywords = append(keywords, tokenize(slugWords(a.Slug))...)
		articleItems = append(articleItems, domain.SearchItem{
			ID:          itemID(domain.SearchItemArticle, a.Slug),
			Type:        domain.SearchItemArticle,
			Title:       a.Title,
			Description: a.Excerpt,
			Href:        "/blog/" + a.Slug,
			Slug:        a.Slug,
			Keywords:    cleanKeywords(keywords),
			UpdatedAt:   a.UpdatedAt,
		})
	}
	sort.SliceStable(articleItems, func(i, j int) bool {
		return articleItems[i].UpdatedAt.After(articleItems[j].UpdatedAt)
	})

	supplementItems := make([]domain.SearchItem, 0, len(supplements))
	for _, s := range supplements {
		keywords := append([]string{}, s.ConditionTags...)
		keywords = append(keywords, s.BestFor...)
		keywords = append(keywords, s.Focus, s.Safety, s.EvidenceLevel)
		supplementItems = append(supplementItems, domain.SearchItem{
			ID:          itemID(domain.SearchItemSupplement, s.Slug),
			Type:        domain.SearchItemSupplement,
			Title:       s.Name,
			Description: s.Focus,
			Href:        "/supplements/" + s.Slug,
			Slug:        s.Slug,
			Keywords:    cleanKeywords(keywords),
			UpdatedAt:   s.UpdatedAt,
		})
	}
	sortByTitle(supplementItems)

	conditionItems := make([]domain.SearchItem, 0, len(conditions))
	for _, c := range conditions {
		keywords := append([]string{}, c.Keywords...)
		keywords = append(keywords, c.TopInterventions...)
		conditionItems = append(conditionItems, domain.SearchItem{
			ID:          itemID(domain.SearchItemCondition, c.Slug),
			Type:        domain.SearchItemCondition,
			Title:       c.Name,
			Description: c.Goal,
			Href:        "/conditions/" + c.Slug,
			Slug:        c.Slug,
			Keywords:    cleanKeywords(keywords),
			UpdatedAt:   c.UpdatedAt,
		})
	}
	sortByTitle(conditionItems)

	items = append(items, articleItems...)
	items = append(items, supplementItems...)
	items = append(items, conditionItems...)

	return &domain.SearchSnapshot{
		GeneratedAt: time.Now().UTC(),
		Items:       items,
	}
}

func itemID(t domain.SearchItemType, slug string) string {
	return string(t) + ":" + slug
}

func sortByTitle(items []domain.SearchItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessByName(items[i].Title, items[j].Title, items[i].Slug, items[j].Slug)
	})
}

// cleanKeywords lowercases, trims and deduplicates keywords, dropping
// anything shorter than two characters.
func cleanKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if utf8.RuneCountInString(kw) < 2 {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
