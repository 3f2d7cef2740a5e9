package driven

import (
	"context"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// ContentStore supplies the validated static record collections.
// Implementations are expected to enforce the loader preconditions
// (required fields, unique slugs, parseable dates) and reject malformed
// records before they reach the core.
type ContentStore interface {
	// Articles returns all articles, most recently updated first.
	Articles(ctx context.Context) ([]domain.Article, error)

	// Supplements returns all supplements.
	Supplements(ctx context.Context) ([]domain.Supplement, error)

	// Conditions returns all conditions.
	Conditions(ctx context.Context) ([]domain.Condition, error)

	// Clinics returns all clinics. An empty slice is valid; the clinic
	// collection is optional.
	Clinics(ctx context.Context) ([]domain.Clinic, error)

	// Close releases any underlying resources.
	Close() error
}
