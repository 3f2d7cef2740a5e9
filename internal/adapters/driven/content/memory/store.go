// Package memory provides an in-memory ContentStore for tests and
// programmatic embedding.
package memory

import (
	"context"
	"sync"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store holds the record collections in memory.
type Store struct {
	mu          sync.RWMutex
	articles    []domain.Article
	supplements []domain.Supplement
	conditions  []domain.Condition
	clinics     []domain.Clinic
}

// NewStore creates an empty in-memory content store.
func NewStore() *Store {
	return &Store{}
}

// SetArticles replaces the article collection.
func (s *Store) SetArticles(articles []domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
}

// SetSupplements replaces the supplement collection.
func (s *Store) SetSupplements(supplements []domain.Supplement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supplements = supplements
}

// SetConditions replaces the condition collection.
func (s *Store) SetConditions(conditions []domain.Condition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conditions = conditions
}

// SetClinics replaces the clinic collection.
func (s *Store) SetClinics(clinics []domain.Clinic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clinics = clinics
}

// Articles returns the article collection.
func (s *Store) Articles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Article{}, s.articles...), nil
}

// Supplements returns the supplement collection.
func (s *Store) Supplements(_ context.Context) ([]domain.Supplement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Supplement{}, s.supplements...), nil
}

// Conditions returns the condition collection.
func (s *Store) Conditions(_ context.Context) ([]domain.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Condition{}, s.conditions...), nil
}

// Clinics returns the clinic collection.
func (s *Store) Clinics(_ context.Context) ([]domain.Clinic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Clinic{}, s.clinics...), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
