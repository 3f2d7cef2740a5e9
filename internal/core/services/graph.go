package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

// linkSet is a directional adjacency map: source slug -> set of target slugs.
type linkSet map[string]map[string]struct{}

func (s linkSet) add(from, to string) {
	targets, ok := s[from]
	if !ok {
		targets = make(map[string]struct{})
		s[from] = targets
	}
	targets[to] = struct{}{}
}

func (s linkSet) has(from, to string) bool {
	_, ok := s[from][to]
	return ok
}

func (s linkSet) targets(from string) map[string]struct{} {
	return s[from]
}

// addPair records a link in both directions at once so the symmetry
// invariant holds by construction.
func addPair(fwd, rev linkSet, from, to string) {
	fwd.add(from, to)
	rev.add(to, from)
}

// Graph is the complete set of bidirectional link maps derived from the
// record collections. It is a pure function of its inputs: building twice
// from the same collections yields identical link sets.
type Graph struct {
	supplementsByArticle   linkSet
	articlesBySupplement   linkSet
	conditionsByArticle    linkSet
	articlesByCondition    linkSet
	supplementsByCondition linkSet
	conditionsBySupplement linkSet
	clinicsByCondition     linkSet
	conditionsByClinic     linkSet
	clinicsByArticle       linkSet
	articlesByClinic       linkSet

	articles    map[string]domain.Article
	supplements map[string]domain.Supplement
	conditions  map[string]domain.Condition
	clinics     map[string]domain.Clinic

	// Explicit authorial references, kept apart from the derived maps so
	// reason classification can honour the direct > keyword precedence.
	directArticleSupplement linkSet
	directArticleCondition  linkSet

	// diagnostics are the data-quality warnings collected during the
	// build: dangling references and supplements with no linked articles.
	// Callers decide whether and how to log them.
	diagnostics []string
}

// buildGraph derives the full link graph from the record collections.
//
// Construction order matters for correctness: explicit references first,
// then condition-mediated keyword links, then the transitive unions that
// depend on them.
func buildGraph(
	articles []domain.Article,
	supplements []domain.Supplement,
	conditions []domain.Condition,
	clinics []domain.Clinic,
) *Graph {
	g := &Graph{
		supplementsByArticle:    make(linkSet),
		articlesBySupplement:    make(linkSet),
		conditionsByArticle:     make(linkSet),
		articlesByCondition:     make(linkSet),
		supplementsByCondition:  make(linkSet),
		conditionsBySupplement:  make(linkSet),
		clinicsByCondition:      make(linkSet),
		conditionsByClinic:      make(linkSet),
		clinicsByArticle:        make(linkSet),
		articlesByClinic:        make(linkSet),
		articles:                make(map[string]domain.Article, len(articles)),
		supplements:             make(map[string]domain.Supplement, len(supplements)),
		conditions:              make(map[string]domain.Condition, len(conditions)),
		clinics:                 make(map[string]domain.Clinic, len(clinics)),
		directArticleSupplement: make(linkSet),
		directArticleCondition:  make(linkSet),
	}

	for _, a := range articles {
		g.articles[a.Slug] = a
	}
	for _, s := range supplements {
		g.supplements[s.Slug] = s
	}
	for _, c := range conditions {
		g.conditions[c.Slug] = c
	}
	for _, c := range clinics {
		g.clinics[c.Slug] = c
	}

	// Explicit article references from supplements and conditions.
	// Authoritative: a dangling reference is a data-quality warning and is
	// excluded, never a crash.
	for _, s := range supplements {
		for _, ref := range s.ArticleRefs {
			if _, ok := g.articles[ref]; !ok {
				g.warnf("supplement %q references unknown article %q", s.Slug, ref)
				continue
			}
			addPair(g.articlesBySupplement, g.supplementsByArticle, s.Slug, ref)
			g.directArticleSupplement.add(ref, s.Slug)
		}
	}
	for _, c := range conditions {
		for _, ref := range c.ArticleRefs {
			if _, ok := g.articles[ref]; !ok {
				g.warnf("condition %q references unknown article %q", c.Slug, ref)
				continue
			}
			addPair(g.articlesByCondition, g.conditionsByArticle, c.Slug, ref)
			g.directArticleCondition.add(ref, c.Slug)
		}
	}

	// Condition-mediated keyword links. Each condition's term set is
	// computed once and tested against every supplement and clinic.
	termsByCondition := make(map[string][]string, len(conditions))
	for _, c := range conditions {
		terms := conditionTerms(c.Name, c.Slug, c.Keywords)
		termsByCondition[c.Slug] = terms

		for _, s := range supplements {
			if containsAnyTerm(s.SearchableText(), terms) {
				addPair(g.supplementsByCondition, g.conditionsBySupplement, c.Slug, s.Slug)
			}
		}
		for _, cl := range clinics {
			if containsAnyTerm(cl.SearchableText(), terms) {
				addPair(g.clinicsByCondition, g.conditionsByClinic, c.Slug, cl.Slug)
			}
		}
	}

	// Condition <-> article links: the union of links seeded transitively
	// through already-linked supplements and direct keyword matches
	// against the article's full text.
	for _, c := range conditions {
		for supplementSlug := range g.supplementsByCondition.targets(c.Slug) {
			for articleSlug := range g.articlesBySupplement.targets(supplementSlug) {
				g.articlesByCondition.add(c.Slug, articleSlug)
			}
		}
		terms := termsByCondition[c.Slug]
		for _, a := range articles {
			if containsAnyTerm(a.SearchableText(), terms) {
				g.articlesByCondition.add(c.Slug, a.Slug)
			}
		}
	}

	// Symmetry maintenance for the map populated above.
	for conditionSlug, articleSlugs := range g.articlesByCondition {
		for articleSlug := range articleSlugs {
			g.conditionsByArticle.add(articleSlug, conditionSlug)
		}
	}

	// Article <-> supplement keyword links. Articles already linked via an
	// explicit reference are skipped so direct edges are never duplicated
	// or downgraded.
	for _, s := range supplements {
		terms := supplementTerms(s.Name, s.Slug)
		for _, a := range articles {
			if g.articlesBySupplement.has(s.Slug, a.Slug) {
				continue
			}
			if containsAnyTerm(a.SearchableText(), terms) {
				addPair(g.articlesBySupplement, g.supplementsByArticle, s.Slug, a.Slug)
			}
		}
	}

	// Clinic <-> article links: union of the article sets of every
	// condition already linked to the clinic.
	for _, cl := range clinics {
		for conditionSlug := range g.conditionsByClinic.targets(cl.Slug) {
			for articleSlug := range g.articlesByCondition.targets(conditionSlug) {
				addPair(g.articlesByClinic, g.clinicsByArticle, cl.Slug, articleSlug)
			}
		}
	}

	// Data-quality signal: a supplement nothing links to usually means its
	// name, slug and aliases miss the vocabulary the articles actually use.
	for _, s := range supplements {
		if len(g.articlesBySupplement.targets(s.Slug)) == 0 {
			g.warnf("supplement %q has no linked articles", s.Slug)
		}
	}

	return g
}

func (g *Graph) warnf(format string, args ...any) {
	g.diagnostics = append(g.diagnostics, fmt.Sprintf(format, args...))
}

// Diagnostics returns the warnings collected during the build.
func (g *Graph) Diagnostics() []string {
	return g.diagnostics
}

// --- Resolved, sorted lookups ---

// relatedArticles resolves a slug set to articles, newest first.
func (g *Graph) relatedArticles(set linkSet, from string) []domain.Article {
	out := make([]domain.Article, 0, len(set.targets(from)))
	for slug := range set.targets(from) {
		if a, ok := g.articles[slug]; ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// relatedSupplements resolves a slug set to supplements, sorted by name.
func (g *Graph) relatedSupplements(set linkSet, from string) []domain.Supplement {
	out := make([]domain.Supplement, 0, len(set.targets(from)))
	for slug := range set.targets(from) {
		if s, ok := g.supplements[slug]; ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[j].Name, out[i].Slug, out[j].Slug)
	})
	return out
}

// relatedConditions resolves a slug set to conditions, sorted by name.
func (g *Graph) relatedConditions(set linkSet, from string) []domain.Condition {
	out := make([]domain.Condition, 0, len(set.targets(from)))
	for slug := range set.targets(from) {
		if c, ok := g.conditions[slug]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[j].Name, out[i].Slug, out[j].Slug)
	})
	return out
}

// relatedClinics resolves a slug set to clinics, sorted by name.
func (g *Graph) relatedClinics(set linkSet, from string) []domain.Clinic {
	out := make([]domain.Clinic, 0, len(set.targets(from)))
	for slug := range set.targets(from) {
		if c, ok := g.clinics[slug]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].Name, out[j].Name, out[i].Slug, out[j].Slug)
	})
	return out
}

// lessByName orders names case-insensitively, breaking ties by slug so the
// ordering is total and deterministic.
func lessByName(nameI, nameJ, slugI, slugJ string) bool {
	li, lj := strings.ToLower(nameI), strings.ToLower(nameJ)
	if li != lj {
		return li < lj
	}
	return slugI < slugJ
}

// --- Link reason classification ---

// reasonArticleSupplement classifies why an article and a supplement are
// linked: direct reference > keyword match > condition pathway.
func (g *Graph) reasonArticleSupplement(articleSlug, supplementSlug string) domain.LinkReason {
	a, okA := g.articles[articleSlug]
	s, okS := g.supplements[supplementSlug]
	if !okA || !okS {
		return domain.GenericReason()
	}
	if g.directArticleSupplement.has(articleSlug, supplementSlug) {
		return domain.DirectReference()
	}
	if containsAnyTerm(a.SearchableText(), supplementTerms(s.Name, s.Slug)) {
		return domain.KeywordMatch()
	}
	if name, ok := g.sharedCondition(g.conditionsByArticle.targets(articleSlug), g.conditionsBySupplement.targets(supplementSlug)); ok {
		return domain.ConditionPathway(name)
	}
	return domain.GenericReason()
}

// reasonArticleCondition classifies an article <-> condition link. Links
// seeded transitively through a supplement carry the unnamed pathway reason.
func (g *Graph) reasonArticleCondition(articleSlug, conditionSlug string) domain.LinkReason {
	a, okA := g.articles[articleSlug]
	c, okC := g.conditions[conditionSlug]
	if !okA || !okC {
		return domain.GenericReason()
	}
	if g.directArticleCondition.has(articleSlug, conditionSlug) {
		return domain.DirectReference()
	}
	if containsAnyTerm(a.SearchableText(), conditionTerms(c.Name, c.Slug, c.Keywords)) {
		return domain.KeywordMatch()
	}
	if g.articlesByCondition.has(conditionSlug, articleSlug) {
		return domain.ConditionPathway("")
	}
	return domain.GenericReason()
}

// reasonConditionSupplement classifies a condition <-> supplement link.
// These edges only arise from keyword matching.
func (g *Graph) reasonConditionSupplement(conditionSlug, supplementSlug string) domain.LinkReason {
	c, okC := g.conditions[conditionSlug]
	s, okS := g.supplements[supplementSlug]
	if !okC || !okS {
		return domain.GenericReason()
	}
	if containsAnyTerm(s.SearchableText(), conditionTerms(c.Name, c.Slug, c.Keywords)) {
		return domain.KeywordMatch()
	}
	return domain.GenericReason()
}

// reasonConditionClinic classifies a condition <-> clinic link.
func (g *Graph) reasonConditionClinic(conditionSlug, clinicSlug string) domain.LinkReason {
	c, okC := g.conditions[conditionSlug]
	cl, okCl := g.clinics[clinicSlug]
	if !okC || !okCl {
		return domain.GenericReason()
	}
	if containsAnyTerm(cl.SearchableText(), conditionTerms(c.Name, c.Slug, c.Keywords)) {
		return domain.KeywordMatch()
	}
	return domain.GenericReason()
}

// reasonArticleClinic classifies an article <-> clinic link. These edges are
// always mediated by a shared condition, which is named when found.
func (g *Graph) reasonArticleClinic(articleSlug, clinicSlug string) domain.LinkReason {
	_, okA := g.articles[articleSlug]
	_, okCl := g.clinics[clinicSlug]
	if !okA || !okCl {
		return domain.GenericReason()
	}
	if name, ok := g.sharedCondition(g.conditionsByArticle.targets(articleSlug), g.conditionsByClinic.targets(clinicSlug)); ok {
		return domain.ConditionPathway(name)
	}
	return domain.GenericReason()
}

// sharedCondition returns the name of a condition present in both slug sets.
// The alphabetically first name is chosen so the result is deterministic.
func (g *Graph) sharedCondition(a, b map[string]struct{}) (string, bool) {
	var best string
	found := false
	for slug := range a {
		if _, ok := b[slug]; !ok {
			continue
		}
		c, ok := g.conditions[slug]
		if !ok {
			continue
		}
		if !found || strings.ToLower(c.Name) < strings.ToLower(best) {
			best = c.Name
			found = true
		}
	}
	return best, found
}
