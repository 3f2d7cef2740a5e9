package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// relatedItem pairs a related record with its link reason for display.
type relatedItem[T any] struct {
	Record T      `json:"record"`
	Reason string `json:"reason"`
}

// relatedResponse is the common envelope for related-record endpoints.
type relatedResponse[T any] struct {
	Slug  string           `json:"slug"`
	Items []relatedItem[T] `json:"items"`
}

// lookupFn resolves the related records for a slug; reasonFn classifies a
// single (slug, related-slug) pair.
type lookupFn[T any] func(slug string) ([]T, error)
type reasonFn func(slug, relatedSlug string) (domain.LinkReason, error)

// serveRelated resolves the related records and annotates each with its
// link reason.
func serveRelated[T any](
	w http.ResponseWriter,
	r *http.Request,
	lookup lookupFn[T],
	reason reasonFn,
	slugOf func(T) string,
) {
	slug := chi.URLParam(r, "slug")

	records, err := lookup(slug)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]relatedItem[T], 0, len(records))
	for _, record := range records {
		linkReason, err := reason(slug, slugOf(record))
		if err != nil {
			writeError(w, err)
			return
		}
		items = append(items, relatedItem[T]{
			Record: record,
			Reason: linkReason.String(),
		})
	}

	writeJSON(w, http.StatusOK, relatedResponse[T]{Slug: slug, Items: items})
}

func (s *Server) handleArticleSupplements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Supplement, error) {
			return s.relations.SupplementsForArticle(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForArticleSupplement(ctx, slug, related)
		},
		func(sup domain.Supplement) string { return sup.Slug },
	)
}

func (s *Server) handleArticleConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Condition, error) {
			return s.relations.ConditionsForArticle(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForArticleCondition(ctx, slug, related)
		},
		func(c domain.Condition) string { return c.Slug },
	)
}

func (s *Server) handleArticleClinics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Clinic, error) {
			return s.relations.ClinicsForArticle(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForArticleClinic(ctx, slug, related)
		},
		func(c domain.Clinic) string { return c.Slug },
	)
}

func (s *Server) handleSupplementArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Article, error) {
			return s.relations.ArticlesForSupplement(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			// Reasons are stored article-first.
			return s.relations.ReasonForArticleSupplement(ctx, related, slug)
		},
		func(a domain.Article) string { return a.Slug },
	)
}

func (s *Server) handleSupplementConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Condition, error) {
			return s.relations.ConditionsForSupplement(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForConditionSupplement(ctx, related, slug)
		},
		func(c domain.Condition) string { return c.Slug },
	)
}

func (s *Server) handleConditionArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Article, error) {
			return s.relations.ArticlesForCondition(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForArticleCondition(ctx, related, slug)
		},
		func(a domain.Article) string { return a.Slug },
	)
}

func (s *Server) handleConditionSupplements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Supplement, error) {
			return s.relations.SupplementsForCondition(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForConditionSupplement(ctx, slug, related)
		},
		func(sup domain.Supplement) string { return sup.Slug },
	)
}

func (s *Server) handleConditionClinics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Clinic, error) {
			return s.relations.ClinicsForCondition(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForConditionClinic(ctx, slug, related)
		},
		func(c domain.Clinic) string { return c.Slug },
	)
}

func (s *Server) handleClinicArticles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Article, error) {
			return s.relations.ArticlesForClinic(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForArticleClinic(ctx, related, slug)
		},
		func(a domain.Article) string { return a.Slug },
	)
}

func (s *Server) handleClinicConditions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	serveRelated(w, r,
		func(slug string) ([]domain.Condition, error) {
			return s.relations.ConditionsForClinic(ctx, slug)
		},
		func(slug, related string) (domain.LinkReason, error) {
			return s.relations.ReasonForConditionClinic(ctx, related, slug)
		},
		func(c domain.Condition) string { return c.Slug },
	)
}
