// Package httpfetch provides a snapshot fetcher that retrieves the search
// index from a running server's index endpoint.
package httpfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// defaultTimeout bounds a snapshot fetch when the caller's context has no
// deadline of its own.
const defaultTimeout = 10 * time.Second

// Ensure Fetcher implements the interface.
var _ driven.SnapshotFetcher = (*Fetcher)(nil)

// Fetcher retrieves the search snapshot over HTTP.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a fetcher for a search-index URL. If client is nil a
// default client is used.
func NewFetcher(url string, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{url: url, client: client}
}

// Fetch retrieves and decodes the snapshot.
func (f *Fetcher) Fetch(ctx context.Context) (*domain.SearchSnapshot, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("Fetching search index from %s", f.url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching search index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching search index: unexpected status %d: %w",
			resp.StatusCode, domain.ErrIndexUnavailable)
	}

	var snapshot domain.SearchSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding search index: %w", err)
	}

	return &snapshot, nil
}
