package domain

import (
	"strings"
	"time"
)

// Record is the capability shared by all content record variants.
// The graph builder and search index only need a stable slug, the
// concatenated free text used for keyword matching, and a recency date.
type Record interface {
	// RecordSlug returns the unique, URL-safe identifier within the
	// variant's collection.
	RecordSlug() string

	// SearchableText returns the concatenation of the variant's free-text
	// fields, used as the target of term matching.
	SearchableText() string

	// Modified returns the date used for recency ordering.
	Modified() time.Time
}

// Article is a blog post record.
type Article struct {
	// Slug is the unique identifier within the article collection.
	Slug string `json:"slug" validate:"required"`

	// Title is the display title.
	Title string `json:"title" validate:"required"`

	// Excerpt is the short teaser shown in listings.
	Excerpt string `json:"excerpt"`

	// Description is the longer summary used for meta/search display.
	Description string `json:"description"`

	// Tags are free-form topic labels.
	Tags []string `json:"tags"`

	// Body is the full article text.
	Body string `json:"body"`

	// UpdatedAt is when the article was last edited.
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

func (a Article) RecordSlug() string { return a.Slug }

func (a Article) Modified() time.Time { return a.UpdatedAt }

// SearchableText joins title, excerpt, description, tags and body.
// This is the full text a condition or supplement term set is tested against.
func (a Article) SearchableText() string {
	parts := []string{a.Title, a.Excerpt, a.Description, strings.Join(a.Tags, " "), a.Body}
	return strings.Join(parts, " ")
}

// Supplement is a supplement directory record.
type Supplement struct {
	// Slug is the unique identifier within the supplement collection.
	Slug string `json:"slug" validate:"required"`

	// Name is the canonical display name.
	Name string `json:"name" validate:"required"`

	// Focus is a one-line description of what the supplement targets.
	Focus string `json:"focus"`

	// Tags are free-form topic labels.
	Tags []string `json:"tags"`

	// BestFor lists the situations the supplement is recommended for.
	BestFor []string `json:"bestFor"`

	// Cautions lists known interactions and warnings.
	Cautions []string `json:"cautions"`

	// Safety summarises the safety profile.
	Safety string `json:"safety"`

	// EvidenceLevel grades the supporting research (e.g. "strong", "mixed").
	EvidenceLevel string `json:"evidenceLevel"`

	// ConditionTags are condition labels used as search keywords.
	ConditionTags []string `json:"conditionTags"`

	// ArticleRefs are explicit authorial references to article slugs.
	// Authoritative, never inferred.
	ArticleRefs []string `json:"articleRefs"`

	// UpdatedAt is when the record was last edited.
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

func (s Supplement) RecordSlug() string { return s.Slug }

func (s Supplement) Modified() time.Time { return s.UpdatedAt }

// SearchableText joins name, focus, tags, bestFor and cautions.
func (s Supplement) SearchableText() string {
	parts := []string{
		s.Name,
		s.Focus,
		strings.Join(s.Tags, " "),
		strings.Join(s.BestFor, " "),
		strings.Join(s.Cautions, " "),
	}
	return strings.Join(parts, " ")
}

// Condition is a health condition directory record.
type Condition struct {
	// Slug is the unique identifier within the condition collection.
	Slug string `json:"slug" validate:"required"`

	// Name is the canonical display name.
	Name string `json:"name" validate:"required"`

	// Goal is a one-line description of the management goal.
	Goal string `json:"goal"`

	// Keywords are declared matching phrases for this condition.
	Keywords []string `json:"keywords"`

	// TopInterventions lists the leading interventions, used as search keywords.
	TopInterventions []string `json:"topInterventions"`

	// ArticleRefs are explicit authorial references to article slugs.
	ArticleRefs []string `json:"articleRefs"`

	// UpdatedAt is when the record was last edited.
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

func (c Condition) RecordSlug() string { return c.Slug }

func (c Condition) Modified() time.Time { return c.UpdatedAt }

// SearchableText joins name, goal and keywords.
func (c Condition) SearchableText() string {
	parts := []string{c.Name, c.Goal, strings.Join(c.Keywords, " ")}
	return strings.Join(parts, " ")
}

// Clinic is a clinic directory record. Clinics participate in the
// relationship graph but are excluded from the search snapshot.
type Clinic struct {
	// Slug is the unique identifier within the clinic collection.
	Slug string `json:"slug" validate:"required"`

	// Name is the canonical display name.
	Name string `json:"name" validate:"required"`

	// City is the clinic's location.
	City string `json:"city"`

	// Focus is a one-line description of the clinic's speciality.
	Focus string `json:"focus"`

	// Services lists the offered services.
	Services []string `json:"services"`

	// UpdatedAt is when the record was last edited.
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

func (c Clinic) RecordSlug() string { return c.Slug }

func (c Clinic) Modified() time.Time { return c.UpdatedAt }

// SearchableText joins name, city, focus and services.
func (c Clinic) SearchableText() string {
	parts := []string{c.Name, c.City, c.Focus, strings.Join(c.Services, " ")}
	return strings.Join(parts, " ")
}
