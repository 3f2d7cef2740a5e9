package domain

import "time"

// SearchItemType tags a search item with its source collection.
type SearchItemType string

const (
	SearchItemArticle    SearchItemType = "article"
	SearchItemSupplement SearchItemType = "supplement"
	SearchItemCondition  SearchItemType = "condition"
)

// Valid reports whether the type is one of the known search item types.
func (t SearchItemType) Valid() bool {
	switch t {
	case SearchItemArticle, SearchItemSupplement, SearchItemCondition:
		return true
	}
	return false
}

// SearchItem is the flattened, query-ready projection of a record.
// Clinics are not projected; they only participate in the relationship graph.
type SearchItem struct {
	// ID is globally unique, namespaced by type (e.g. "article:magnesium-sleep").
	ID string `json:"id"`

	// Type identifies the source collection.
	Type SearchItemType `json:"type"`

	// Title is the display title (article title or record name).
	Title string `json:"title"`

	// Description is the short display text (excerpt, focus or goal).
	Description string `json:"description"`

	// Href is the site-relative page URL.
	Href string `json:"href"`

	// Slug is the record's slug within its collection.
	Slug string `json:"slug"`

	// Keywords are deduplicated, lowercased terms of length >= 2.
	Keywords []string `json:"keywords"`

	// UpdatedAt is the record's recency date, used for tie-breaking.
	UpdatedAt time.Time `json:"updatedAt"`
}

// SearchSnapshot is the full set of search items served to the query side.
// It is recomputed on every index request; GeneratedAt is for client freshness
// display only and plays no part in scoring.
type SearchSnapshot struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Items       []SearchItem `json:"items"`
}

// QueryOptions configures a search query.
type QueryOptions struct {
	// Type restricts results to a single item type. Empty means no filter.
	Type SearchItemType
}
