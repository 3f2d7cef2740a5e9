package services

import (
	"sort"
	"strings"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// Scoring tiers, highest applicable tier wins per term. A term that matches
// nothing disqualifies the whole item (AND semantics).
const (
	scoreTitleExact    = 160
	scoreTitlePrefix   = 125
	scoreTitleContains = 94
	scoreKeyword       = 58
	scoreDescription   = 35
	scoreTypeLabel     = 20
)

// Bonuses applied once per item after every term has matched.
const (
	bonusTitlePhrase = 28 // full query is a substring of the title
	bonusSlugExact   = 24 // slug equals the full query
	bonusHref        = 14 // href contains the full query
)

// maxResults caps the ranked result set.
const maxResults = 30

// defaultPerType is how many items of each type the unfiltered empty-query
// view shows; defaultFiltered is the cap when a type filter is active.
const (
	defaultPerType  = 4
	defaultFiltered = 12
)

// normaliseQuery trims, lowercases and collapses internal whitespace,
// returning the full normalised query and its terms.
func normaliseQuery(raw string) (string, []string) {
	terms := strings.Fields(strings.ToLower(raw))
	return strings.Join(terms, " "), terms
}

// ScoreQuery filters, scores and ranks the snapshot items for a query.
// The snapshot's own ordering supplies the empty-query default view.
func ScoreQuery(items []domain.SearchItem, rawQuery string, opts domain.QueryOptions) []domain.SearchItem {
	if opts.Type != "" {
		filtered := make([]domain.SearchItem, 0, len(items))
		for _, it := range items {
			if it.Type == opts.Type {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	query, terms := normaliseQuery(rawQuery)
	if query == "" {
		return defaultView(items, opts.Type != "")
	}

	type scored struct {
		item  domain.SearchItem
		score int
	}
	ranked := make([]scored, 0, len(items))
	for _, it := range items {
		if s := scoreItem(it, query, terms); s > 0 {
			ranked = append(ranked, scored{item: it, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].item.UpdatedAt.Equal(ranked[j].item.UpdatedAt) {
			return ranked[i].item.UpdatedAt.After(ranked[j].item.UpdatedAt)
		}
		return lessByName(ranked[i].item.Title, ranked[j].item.Title, ranked[i].item.Slug, ranked[j].item.Slug)
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	out := make([]domain.SearchItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

// scoreItem scores one item against the query. Every term must score, and
// the first zero short-circuits the item out entirely.
func scoreItem(item domain.SearchItem, fullQuery string, terms []string) int {
	title := strings.ToLower(item.Title)
	description := strings.ToLower(item.Description)
	typeLabel := string(item.Type)

	total := 0
	for _, term := range terms {
		s := scoreTerm(item, title, description, typeLabel, term)
		if s == 0 {
			return 0
		}
		total += s
	}

	if strings.Contains(title, fullQuery) {
		total += bonusTitlePhrase
	}
	if item.Slug == fullQuery {
		total += bonusSlugExact
	}
	if strings.Contains(item.Href, fullQuery) {
		total += bonusHref
	}
	return total
}

// scoreTerm returns the highest applicable tier for one term, checked in
// strict priority order.
func scoreTerm(item domain.SearchItem, title, description, typeLabel, term string) int {
	switch {
	case title == term:
		return scoreTitleExact
	case strings.HasPrefix(title, term):
		return scoreTitlePrefix
	case strings.Contains(title, term):
		return scoreTitleContains
	}
	for _, kw := range item.Keywords {
		if strings.Contains(kw, term) {
			return scoreKeyword
		}
	}
	if strings.Contains(description, term) {
		return scoreDescription
	}
	if strings.Contains(typeLabel, term) {
		return scoreTypeLabel
	}
	return 0
}

// defaultView is the curated empty-query result: the first 12 items when a
// type filter is active, otherwise up to 4 of each type in snapshot order
// (articles, then supplements, then conditions).
func defaultView(items []domain.SearchItem, filtered bool) []domain.SearchItem {
	if filtered {
		if len(items) > defaultFiltered {
			items = items[:defaultFiltered]
		}
		return append([]domain.SearchItem{}, items...)
	}

	out := make([]domain.SearchItem, 0, 3*defaultPerType)
	for _, t := range []domain.SearchItemType{
		domain.SearchItemArticle,
		domain.SearchItemSupplement,
		domain.SearchItemCondition,
	} {
		count := 0
		for _, it := range items {
			if it.Type != t {
				continue
			}
			out = append(out, it)
			count++
			if count == defaultPerType {
				break
			}
		}
	}
	return out
}
