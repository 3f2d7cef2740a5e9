package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// SessionState is the observable state of a query session's snapshot.
type SessionState int

const (
	// SessionLoading means no fetch has completed yet.
	SessionLoading SessionState = iota

	// SessionReady means a snapshot is cached and queryable.
	SessionReady

	// SessionUnavailable means the last fetch failed. Distinct from an
	// empty result set; a retry may supersede it.
	SessionUnavailable
)

// String returns the state's display name.
func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionReady:
		return "ready"
	case SessionUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// QuerySession is the query-side engine: it fetches the search snapshot once
// per session, caches it, and answers every subsequent query synchronously
// from memory. Scoring is snapshot-relative, so a stale snapshot stays
// queryable without correctness impact.
type QuerySession struct {
	fetcher driven.SnapshotFetcher
	id      string

	mu       sync.Mutex
	state    SessionState
	snapshot *domain.SearchSnapshot
	fetchErr error
}

// NewQuerySession creates a session over a snapshot fetcher.
func NewQuerySession(fetcher driven.SnapshotFetcher) *QuerySession {
	return &QuerySession{
		fetcher: fetcher,
		id:      uuid.NewString(),
		state:   SessionLoading,
	}
}

// ID returns the session's identity, used in logs.
func (s *QuerySession) ID() string {
	return s.id
}

// Load fetches the snapshot. On failure the session enters the unavailable
// state; Load may be called again to retry, and a successful retry
// supersedes the prior failure without restarting the session.
func (s *QuerySession) Load(ctx context.Context) error {
	logger.Debug("Session %s: fetching snapshot", s.id)

	snapshot, err := s.fetcher.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = SessionUnavailable
		s.fetchErr = err
		logger.Warn("Session %s: snapshot fetch failed: %v", s.id, err)
		return fmt.Errorf("fetch snapshot: %w", domain.ErrIndexUnavailable)
	}

	s.state = SessionReady
	s.snapshot = snapshot
	s.fetchErr = nil
	logger.Debug("Session %s: snapshot ready, %d items (generated %s)",
		s.id, len(snapshot.Items), snapshot.GeneratedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// State returns the current session state.
func (s *QuerySession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the last fetch error, if the session is unavailable.
func (s *QuerySession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchErr
}

// Snapshot returns the cached snapshot, or nil before the first successful
// load.
func (s *QuerySession) Snapshot() *domain.SearchSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Query scores the cached snapshot. It returns ErrIndexUnavailable until a
// fetch has succeeded, so callers can distinguish "no matches" from "index
// failed to load".
func (s *QuerySession) Query(query string, opts domain.QueryOptions) ([]domain.SearchItem, error) {
	s.mu.Lock()
	snapshot := s.snapshot
	state := s.state
	s.mu.Unlock()

	if state != SessionReady || snapshot == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return ScoreQuery(snapshot.Items, query, opts), nil
}
