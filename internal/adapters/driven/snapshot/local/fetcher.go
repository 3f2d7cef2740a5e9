// Package local provides a snapshot fetcher that builds the snapshot
// in-process from the search service, with no network hop.
package local

import (
	"context"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driving"
)

// Ensure Fetcher implements the interface.
var _ driven.SnapshotFetcher = (*Fetcher)(nil)

// Fetcher builds the snapshot from a local search service.
type Fetcher struct {
	search driving.SearchService
}

// NewFetcher creates a fetcher over a search service.
func NewFetcher(search driving.SearchService) *Fetcher {
	return &Fetcher{search: search}
}

// Fetch builds a fresh snapshot.
func (f *Fetcher) Fetch(ctx context.Context) (*domain.SearchSnapshot, error) {
	return f.search.Snapshot(ctx)
}
