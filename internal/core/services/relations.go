package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driving"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// Ensure RelationService implements the interface.
var _ driving.RelationService = (*RelationService)(nil)

// RelationService derives and caches the relationship graph.
//
// The graph is built lazily on first access and reused for every subsequent
// lookup. Concurrent first callers share a single build; no caller ever
// observes a partial graph. Invalidate discards the cache so watch-mode
// content changes take effect on the next access.
type RelationService struct {
	content driven.ContentStore

	mu    sync.Mutex
	graph *Graph
}

// NewRelationService creates a relation service over a content store.
func NewRelationService(content driven.ContentStore) *RelationService {
	return &RelationService{content: content}
}

// getGraph returns the cached graph, building it on first use. Diagnostics
// are logged once per build, not once per access.
func (s *RelationService) getGraph(ctx context.Context) (*Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph != nil {
		return s.graph, nil
	}

	logger.Section("Relationship Graph Build")

	articles, err := s.content.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	supplements, err := s.content.Supplements(ctx)
	if err != nil {
		return nil, fmt.Errorf("load supplements: %w", err)
	}
	conditions, err := s.content.Conditions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load conditions: %w", err)
	}
	clinics, err := s.content.Clinics(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clinics: %w", err)
	}

	logger.Debug("Building graph: %d articles, %d supplements, %d conditions, %d clinics",
		len(articles), len(supplements), len(conditions), len(clinics))

	g := buildGraph(articles, supplements, conditions, clinics)
	for _, d := range g.Diagnostics() {
		logger.Warn("%s", d)
	}
	logger.Info("Graph built with %d diagnostics", len(g.Diagnostics()))

	s.graph = g
	return g, nil
}

// Invalidate discards the cached graph. The next access rebuilds it.
func (s *RelationService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph = nil
}

// Diagnostics returns the warnings collected during the current build.
func (s *RelationService) Diagnostics(ctx context.Context) ([]string, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.Diagnostics(), nil
}

// SupplementsForArticle returns supplements linked to an article, by name.
func (s *RelationService) SupplementsForArticle(ctx context.Context, articleSlug string) ([]domain.Supplement, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedSupplements(g.supplementsByArticle, articleSlug), nil
}

// ArticlesForSupplement returns articles linked to a supplement, newest first.
func (s *RelationService) ArticlesForSupplement(ctx context.Context, supplementSlug string) ([]domain.Article, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedArticles(g.articlesBySupplement, supplementSlug), nil
}

// ConditionsForArticle returns conditions linked to an article, by name.
func (s *RelationService) ConditionsForArticle(ctx context.Context, articleSlug string) ([]domain.Condition, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedConditions(g.conditionsByArticle, articleSlug), nil
}

// ArticlesForCondition returns articles linked to a condition, newest first.
func (s *RelationService) ArticlesForCondition(ctx context.Context, conditionSlug string) ([]domain.Article, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedArticles(g.articlesByCondition, conditionSlug), nil
}

// SupplementsForCondition returns supplements linked to a condition, by name.
func (s *RelationService) SupplementsForCondition(ctx context.Context, conditionSlug string) ([]domain.Supplement, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedSupplements(g.supplementsByCondition, conditionSlug), nil
}

// ConditionsForSupplement returns conditions linked to a supplement, by name.
func (s *RelationService) ConditionsForSupplement(ctx context.Context, supplementSlug string) ([]domain.Condition, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedConditions(g.conditionsBySupplement, supplementSlug), nil
}

// ClinicsForCondition returns clinics linked to a condition, by name.
func (s *RelationService) ClinicsForCondition(ctx context.Context, conditionSlug string) ([]domain.Clinic, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedClinics(g.clinicsByCondition, conditionSlug), nil
}

// ConditionsForClinic returns conditions linked to a clinic, by name.
func (s *RelationService) ConditionsForClinic(ctx context.Context, clinicSlug string) ([]domain.Condition, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedConditions(g.conditionsByClinic, clinicSlug), nil
}

// ClinicsForArticle returns clinics linked to an article, by name.
func (s *RelationService) ClinicsForArticle(ctx context.Context, articleSlug string) ([]domain.Clinic, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedClinics(g.clinicsByArticle, articleSlug), nil
}

// ArticlesForClinic returns articles linked to a clinic, newest first.
func (s *RelationService) ArticlesForClinic(ctx context.Context, clinicSlug string) ([]domain.Article, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return nil, err
	}
	return g.relatedArticles(g.articlesByClinic, clinicSlug), nil
}

// ReasonForArticleSupplement explains an article <-> supplement link.
func (s *RelationService) ReasonForArticleSupplement(ctx context.Context, articleSlug, supplementSlug string) (domain.LinkReason, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return domain.LinkReason{}, err
	}
	return g.reasonArticleSupplement(articleSlug, supplementSlug), nil
}

// ReasonForArticleCondition explains an article <-> condition link.
func (s *RelationService) ReasonForArticleCondition(ctx context.Context, articleSlug, conditionSlug string) (domain.LinkReason, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return domain.LinkReason{}, err
	}
	return g.reasonArticleCondition(articleSlug, conditionSlug), nil
}

// ReasonForConditionSupplement explains a condition <-> supplement link.
func (s *RelationService) ReasonForConditionSupplement(ctx context.Context, conditionSlug, supplementSlug string) (domain.LinkReason, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return domain.LinkReason{}, err
	}
	return g.reasonConditionSupplement(conditionSlug, supplementSlug), nil
}

// ReasonForConditionClinic explains a condition <-> clinic link.
func (s *RelationService) ReasonForConditionClinic(ctx context.Context, conditionSlug, clinicSlug string) (domain.LinkReason, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return domain.LinkReason{}, err
	}
	return g.reasonConditionClinic(conditionSlug, clinicSlug), nil
}

// ReasonForArticleClinic explains an article <-> clinic link.
func (s *RelationService) ReasonForArticleClinic(ctx context.Context, articleSlug, clinicSlug string) (domain.LinkReason, error) {
	g, err := s.getGraph(ctx)
	if err != nil {
		return domain.LinkReason{}, err
	}
	return g.reasonArticleClinic(articleSlug, clinicSlug), nil
}
