package driving

import (
	"context"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// RelationService exposes the derived relationship graph.
//
// Lookup methods return resolved records, not slugs: articles sorted by
// recency (newest first), supplements, conditions and clinics sorted
// alphabetically by name. An unknown slug yields an empty slice, never an
// error. Errors only occur when the underlying content cannot be loaded.
//
// Reason methods classify why two records are linked. A pair with a missing
// record on either side yields the generic fallback reason, never an error.
type RelationService interface {
	// Article <-> Supplement
	SupplementsForArticle(ctx context.Context, articleSlug string) ([]domain.Supplement, error)
	ArticlesForSupplement(ctx context.Context, supplementSlug string) ([]domain.Article, error)

	// Article <-> Condition
	ConditionsForArticle(ctx context.Context, articleSlug string) ([]domain.Condition, error)
	ArticlesForCondition(ctx context.Context, conditionSlug string) ([]domain.Article, error)

	// Condition <-> Supplement
	SupplementsForCondition(ctx context.Context, conditionSlug string) ([]domain.Supplement, error)
	ConditionsForSupplement(ctx context.Context, supplementSlug string) ([]domain.Condition, error)

	// Condition <-> Clinic
	ClinicsForCondition(ctx context.Context, conditionSlug string) ([]domain.Clinic, error)
	ConditionsForClinic(ctx context.Context, clinicSlug string) ([]domain.Condition, error)

	// Article <-> Clinic
	ClinicsForArticle(ctx context.Context, articleSlug string) ([]domain.Clinic, error)
	ArticlesForClinic(ctx context.Context, clinicSlug string) ([]domain.Article, error)

	// Link reasons, one per linked variant pair.
	ReasonForArticleSupplement(ctx context.Context, articleSlug, supplementSlug string) (domain.LinkReason, error)
	ReasonForArticleCondition(ctx context.Context, articleSlug, conditionSlug string) (domain.LinkReason, error)
	ReasonForConditionSupplement(ctx context.Context, conditionSlug, supplementSlug string) (domain.LinkReason, error)
	ReasonForConditionClinic(ctx context.Context, conditionSlug, clinicSlug string) (domain.LinkReason, error)
	ReasonForArticleClinic(ctx context.Context, articleSlug, clinicSlug string) (domain.LinkReason, error)

	// Diagnostics returns the data-quality warnings collected while the
	// graph was built (dangling references, supplements with no linked
	// articles). Building happens lazily on first access.
	Diagnostics(ctx context.Context) ([]string, error)

	// Invalidate discards the cached graph so the next access rebuilds it
	// from fresh content. Used by content change watchers.
	Invalidate()
}
