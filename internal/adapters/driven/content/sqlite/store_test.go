package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/memory"
	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seededSource() *memory.Store {
	src := memory.NewStore()
	src.SetArticles([]domain.Article{
		{
			Slug:      "magnesium-for-sleep",
			Title:     "Magnesium for Better Sleep",
			Excerpt:   "How magnesium improves sleep quality.",
			Tags:      []string{"sleep", "minerals"},
			Body:      "Magnesium glycinate can ease insomnia.",
			UpdatedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Slug:      "coq10-energy",
			Title:     "CoQ10 and Cellular Energy",
			UpdatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	})
	src.SetSupplements([]domain.Supplement{
		{
			Slug:          "magnesium",
			Name:          "Magnesium",
			Focus:         "sleep quality",
			BestFor:       []string{"insomnia", "muscle cramps"},
			ConditionTags: []string{"insomnia"},
			ArticleRefs:   []string{"magnesium-for-sleep"},
			UpdatedAt:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	src.SetConditions([]domain.Condition{
		{
			Slug:      "insomnia",
			Name:      "Insomnia",
			Keywords:  []string{"poor sleep", "magnesium"},
			UpdatedAt: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	src.SetClinics([]domain.Clinic{
		{
			Slug:      "rest-well-clinic",
			Name:      "Rest Well Clinic",
			City:      "Austin",
			Services:  []string{"sleep studies"},
			UpdatedAt: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		},
	})
	return src
}

func TestStoreImportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ImportFrom(ctx, seededSource()))

	articles, err := store.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	// Most recently updated first.
	assert.Equal(t, "magnesium-for-sleep", articles[0].Slug)
	assert.Equal(t, []string{"sleep", "minerals"}, articles[0].Tags)

	supplements, err := store.Supplements(ctx)
	require.NoError(t, err)
	require.Len(t, supplements, 1)
	assert.Equal(t, []string{"insomnia", "muscle cramps"}, supplements[0].BestFor)
	assert.Equal(t, []string{"magnesium-for-sleep"}, supplements[0].ArticleRefs)

	conditions, err := store.Conditions(ctx)
	require.NoError(t, err)
	require.Len(t, conditions, 1)
	assert.Equal(t, []string{"poor sleep", "magnesium"}, conditions[0].Keywords)

	clinics, err := store.Clinics(ctx)
	require.NoError(t, err)
	require.Len(t, clinics, 1)
	assert.Equal(t, "Austin", clinics[0].City)
}

func TestStoreImportReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ImportFrom(ctx, seededSource()))

	src := seededSource()
	src.SetArticles([]domain.Article{
		{
			Slug:      "magnesium-for-sleep",
			Title:     "Magnesium, Revisited",
			UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, store.ImportFrom(ctx, src))

	articles, err := store.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Magnesium, Revisited", articles[0].Title)
}

func TestStoreEmptyCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	articles, err := store.Articles(ctx)
	require.NoError(t, err)
	assert.Empty(t, articles)

	clinics, err := store.Clinics(ctx)
	require.NoError(t, err)
	assert.Empty(t, clinics)
}

func TestStoreMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}
