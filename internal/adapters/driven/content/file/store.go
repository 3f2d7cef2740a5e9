// Package file provides a content store backed by JSON collection files
// in a content directory. Records are validated on load and malformed
// collections are rejected before they reach the core.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// Collection file names inside the content directory.
const (
	articlesFile    = "articles.json"
	supplementsFile = "supplements.json"
	conditionsFile  = "conditions.json"
	clinicsFile     = "clinics.json"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store loads the record collections from JSON files in a directory.
// Collections are read and validated once, then served from memory until
// Reload is called.
type Store struct {
	dir      string
	validate *validator.Validate

	mu          sync.RWMutex
	articles    []domain.Article
	supplements []domain.Supplement
	conditions  []domain.Condition
	clinics     []domain.Clinic
}

// NewStore creates a store over a content directory and performs the
// initial load. The articles, supplements and conditions collections are
// required; clinics.json is optional.
func NewStore(dir string) (*Store, error) {
	s := &Store{
		dir:      dir,
		validate: validator.New(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the content directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Reload re-reads every collection from disk. On any error the previously
// loaded collections are kept untouched.
func (s *Store) Reload() error {
	articles, err := loadCollection[domain.Article](s, articlesFile, false)
	if err != nil {
		return err
	}
	supplements, err := loadCollection[domain.Supplement](s, supplementsFile, false)
	if err != nil {
		return err
	}
	conditions, err := loadCollection[domain.Condition](s, conditionsFile, false)
	if err != nil {
		return err
	}
	clinics, err := loadCollection[domain.Clinic](s, clinicsFile, true)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.articles = articles
	s.supplements = supplements
	s.conditions = conditions
	s.clinics = clinics
	s.mu.Unlock()

	logger.Debug("Content loaded from %s: %d articles, %d supplements, %d conditions, %d clinics",
		s.dir, len(articles), len(supplements), len(conditions), len(clinics))
	return nil
}

// loadCollection reads, parses and validates one collection file.
func loadCollection[T domain.Record](s *Store, name string, optional bool) ([]T, error) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	seen := make(map[string]struct{}, len(records))
	for i, record := range records {
		if err := s.validate.Struct(record); err != nil {
			return nil, fmt.Errorf("%s record %d: %w: %v", name, i, domain.ErrInvalidInput, err)
		}
		slug := record.RecordSlug()
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%s: duplicate slug %q: %w", name, slug, domain.ErrInvalidInput)
		}
		seen[slug] = struct{}{}
	}

	return records, nil
}

// Articles returns the loaded articles.
func (s *Store) Articles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Article{}, s.articles...), nil
}

// Supplements returns the loaded supplements.
func (s *Store) Supplements(_ context.Context) ([]domain.Supplement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Supplement{}, s.supplements...), nil
}

// Conditions returns the loaded conditions.
func (s *Store) Conditions(_ context.Context) ([]domain.Condition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Condition{}, s.conditions...), nil
}

// Clinics returns the loaded clinics.
func (s *Store) Clinics(_ context.Context) ([]domain.Clinic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Clinic{}, s.clinics...), nil
}

// Close releases resources. The file store holds none.
func (s *Store) Close() error {
	return nil
}
