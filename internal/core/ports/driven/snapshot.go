package driven

import (
	"context"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// SnapshotFetcher retrieves the search snapshot for a query session.
// Fetching is a one-shot operation; a failed fetch may be retried and a
// successful retry supersedes the prior failure.
type SnapshotFetcher interface {
	Fetch(ctx context.Context) (*domain.SearchSnapshot, error)
}
