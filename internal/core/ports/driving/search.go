package driving

import (
	"context"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// SearchService builds search snapshots and answers queries against them.
type SearchService interface {
	// Snapshot flattens the current record collections into a search
	// snapshot. It is recomputed on every call; the computation is cheap
	// and side-effect free.
	Snapshot(ctx context.Context) (*domain.SearchSnapshot, error)

	// Query scores and ranks the current snapshot against a free-text
	// query. An empty query returns the curated default view.
	Query(ctx context.Context, query string, opts domain.QueryOptions) ([]domain.SearchItem, error)
}
