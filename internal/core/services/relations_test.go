package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/memory"
	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

func newTestRelationService(t *testing.T) (*RelationService, *memory.Store) {
	t.Helper()

	articles, supplements, conditions, clinics := testContent()
	store := memory.NewStore()
	store.SetArticles(articles)
	store.SetSupplements(supplements)
	store.SetConditions(conditions)
	store.SetClinics(clinics)

	return NewRelationService(store), store
}

func TestRelationServiceLookups(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	supplements, err := svc.SupplementsForArticle(ctx, "magnesium-for-sleep")
	require.NoError(t, err)
	require.Len(t, supplements, 1)
	assert.Equal(t, "magnesium", supplements[0].Slug)

	articles, err := svc.ArticlesForSupplement(ctx, "coq10")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "coq10-energy", articles[0].Slug)

	clinics, err := svc.ClinicsForArticle(ctx, "magnesium-for-sleep")
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, "rest-well-clinic", clinics[0].Slug)
}

func TestRelationServiceSortsAlphabetically(t *testing.T) {
	svc, _ := newTestRelationService(t)

	conditions, err := svc.ConditionsForArticle(context.Background(), "magnesium-for-sleep")
	require.NoError(t, err)
	require.Len(t, conditions, 2)
	assert.Equal(t, "Insomnia", conditions[0].Name)
	assert.Equal(t, "Muscle Recovery", conditions[1].Name)
}

func TestRelationServiceUnknownSlug(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	articles, err := svc.ArticlesForSupplement(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, articles)

	reason, err := svc.ReasonForArticleSupplement(ctx, "nope", "also-nope")
	require.NoError(t, err)
	assert.Equal(t, "Related content", reason.String())
}

func TestRelationServiceCachesGraph(t *testing.T) {
	svc, store := newTestRelationService(t)
	ctx := context.Background()

	first, err := svc.SupplementsForArticle(ctx, "magnesium-for-sleep")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Content changes are invisible until the cache is invalidated.
	store.SetSupplements(nil)
	cached, err := svc.SupplementsForArticle(ctx, "magnesium-for-sleep")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.Invalidate()
	rebuilt, err := svc.SupplementsForArticle(ctx, "magnesium-for-sleep")
	require.NoError(t, err)
	assert.Empty(t, rebuilt)
}

func TestRelationServiceDiagnostics(t *testing.T) {
	svc, _ := newTestRelationService(t)

	diags, err := svc.Diagnostics(context.Background())
	require.NoError(t, err)
	assert.Len(t, diags, 2)
}

func TestRelationServiceReasons(t *testing.T) {
	svc, _ := newTestRelationService(t)
	ctx := context.Background()

	direct, err := svc.ReasonForArticleSupplement(ctx, "magnesium-for-sleep", "magnesium")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkReasonDirect, direct.Kind)

	keyword, err := svc.ReasonForConditionSupplement(ctx, "insomnia", "magnesium")
	require.NoError(t, err)
	assert.Equal(t, domain.LinkReasonKeyword, keyword.Kind)

	pathway, err := svc.ReasonForArticleClinic(ctx, "magnesium-for-sleep", "rest-well-clinic")
	require.NoError(t, err)
	assert.Equal(t, "Condition pathway via Insomnia", pathway.String())
}
