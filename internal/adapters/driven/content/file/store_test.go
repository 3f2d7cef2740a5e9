package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

func writeContentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0600))
	}
	return dir
}

func validContentDir(t *testing.T) string {
	t.Helper()
	return writeContentDir(t, map[string]string{
		"articles.json": `[
			{"slug": "magnesium-for-sleep", "title": "Magnesium for Better Sleep", "tags": ["sleep"], "updatedAt": "2026-02-10T00:00:00Z"}
		]`,
		"supplements.json": `[
			{"slug": "magnesium", "name": "Magnesium", "articleRefs": ["magnesium-for-sleep"], "updatedAt": "2026-02-01T00:00:00Z"}
		]`,
		"conditions.json": `[
			{"slug": "insomnia", "name": "Insomnia", "keywords": ["poor sleep"], "updatedAt": "2026-02-05T00:00:00Z"}
		]`,
	})
}

func TestStoreLoadsCollections(t *testing.T) {
	store, err := NewStore(validContentDir(t))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	articles, err := store.Articles(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "magnesium-for-sleep", articles[0].Slug)

	supplements, err := store.Supplements(ctx)
	require.NoError(t, err)
	require.Len(t, supplements, 1)

	conditions, err := store.Conditions(ctx)
	require.NoError(t, err)
	require.Len(t, conditions, 1)
}

func TestStoreClinicsAreOptional(t *testing.T) {
	store, err := NewStore(validContentDir(t))
	require.NoError(t, err)
	defer store.Close()

	clinics, err := store.Clinics(context.Background())
	require.NoError(t, err)
	assert.Empty(t, clinics)
}

func TestStoreRejectsMissingRequiredFields(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"articles.json":    `[{"slug": "", "title": "No Slug", "updatedAt": "2026-01-01T00:00:00Z"}]`,
		"supplements.json": `[]`,
		"conditions.json":  `[]`,
	})

	_, err := NewStore(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStoreRejectsDuplicateSlugs(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"articles.json": `[
			{"slug": "dup", "title": "First", "updatedAt": "2026-01-01T00:00:00Z"},
			{"slug": "dup", "title": "Second", "updatedAt": "2026-01-02T00:00:00Z"}
		]`,
		"supplements.json": `[]`,
		"conditions.json":  `[]`,
	})

	_, err := NewStore(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `duplicate slug "dup"`)
}

func TestStoreRejectsMalformedJSON(t *testing.T) {
	dir := writeContentDir(t, map[string]string{
		"articles.json":    `{not json`,
		"supplements.json": `[]`,
		"conditions.json":  `[]`,
	})

	_, err := NewStore(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing articles.json")
}

func TestStoreReloadKeepsOldDataOnError(t *testing.T) {
	dir := validContentDir(t)
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	// Corrupt one collection, then reload.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "articles.json"), []byte("broken"), 0600))
	require.Error(t, store.Reload())

	articles, err := store.Articles(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 1)
}

func TestStoreReloadPicksUpChanges(t *testing.T) {
	dir := validContentDir(t)
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	updated := `[
		{"slug": "magnesium-for-sleep", "title": "Magnesium for Better Sleep", "updatedAt": "2026-02-10T00:00:00Z"},
		{"slug": "new-post", "title": "New Post", "updatedAt": "2026-03-01T00:00:00Z"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "articles.json"), []byte(updated), 0600))
	require.NoError(t, store.Reload())

	articles, err := store.Articles(context.Background())
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}
