package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/sqlite/migrations"
	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store is a SQLite-backed content store. Slice fields are stored as JSON
// columns; the graph builder never queries them individually.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite content store at the specified data
// directory. If dataDir is empty, defaults to ~/.vitalis/data/content.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".vitalis", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "content.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Articles returns all articles, most recently updated first.
func (s *Store) Articles(ctx context.Context) ([]domain.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, title, excerpt, description, tags, body, updated_at
		FROM articles ORDER BY updated_at DESC, slug
	`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Article
		var tagsJSON string
		if err := rows.Scan(&a.Slug, &a.Title, &a.Excerpt, &a.Description,
			&tagsJSON, &a.Body, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if err := unmarshalSlice(tagsJSON, &a.Tags); err != nil {
			return nil, fmt.Errorf("article %s tags: %w", a.Slug, err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}
	return articles, nil
}

// Supplements returns all supplements.
func (s *Store) Supplements(ctx context.Context) ([]domain.Supplement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, focus, tags, best_for, cautions, safety,
			evidence_level, condition_tags, article_refs, updated_at
		FROM supplements ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("querying supplements: %w", err)
	}
	defer rows.Close()

	var supplements []domain.Supplement //nolint:prealloc // size unknown from query
	for rows.Next() {
		var sup domain.Supplement
		var tags, bestFor, cautions, conditionTags, articleRefs string
		if err := rows.Scan(&sup.Slug, &sup.Name, &sup.Focus, &tags, &bestFor,
			&cautions, &sup.Safety, &sup.EvidenceLevel, &conditionTags,
			&articleRefs, &sup.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning supplement: %w", err)
		}
		for _, pair := range []struct {
			raw  string
			dest *[]string
		}{
			{tags, &sup.Tags},
			{bestFor, &sup.BestFor},
			{cautions, &sup.Cautions},
			{conditionTags, &sup.ConditionTags},
			{articleRefs, &sup.ArticleRefs},
		} {
			if err := unmarshalSlice(pair.raw, pair.dest); err != nil {
				return nil, fmt.Errorf("supplement %s: %w", sup.Slug, err)
			}
		}
		supplements = append(supplements, sup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating supplements: %w", err)
	}
	return supplements, nil
}

// Conditions returns all conditions.
func (s *Store) Conditions(ctx context.Context) ([]domain.Condition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, goal, keywords, top_interventions, article_refs, updated_at
		FROM conditions ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("querying conditions: %w", err)
	}
	defer rows.Close()

	var conditions []domain.Condition //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Condition
		var keywords, interventions, articleRefs string
		if err := rows.Scan(&c.Slug, &c.Name, &c.Goal, &keywords,
			&interventions, &articleRefs, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning condition: %w", err)
		}
		for _, pair := range []struct {
			raw  string
			dest *[]string
		}{
			{keywords, &c.Keywords},
			{interventions, &c.TopInterventions},
			{articleRefs, &c.ArticleRefs},
		} {
			if err := unmarshalSlice(pair.raw, pair.dest); err != nil {
				return nil, fmt.Errorf("condition %s: %w", c.Slug, err)
			}
		}
		conditions = append(conditions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conditions: %w", err)
	}
	return conditions, nil
}

// Clinics returns all clinics.
func (s *Store) Clinics(ctx context.Context) ([]domain.Clinic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT slug, name, city, focus, services, updated_at
		FROM clinics ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("querying clinics: %w", err)
	}
	defer rows.Close()

	var clinics []domain.Clinic //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Clinic
		var services string
		if err := rows.Scan(&c.Slug, &c.Name, &c.City, &c.Focus, &services, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning clinic: %w", err)
		}
		if err := unmarshalSlice(services, &c.Services); err != nil {
			return nil, fmt.Errorf("clinic %s services: %w", c.Slug, err)
		}
		clinics = append(clinics, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clinics: %w", err)
	}
	return clinics, nil
}

// unmarshalSlice decodes a JSON array column, treating empty as nil.
func unmarshalSlice(raw string, dest *[]string) error {
	if raw == "" || raw == "null" || raw == "[]" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("unmarshalling slice column: %w", err)
	}
	return nil
}

// marshalSlice encodes a slice for a JSON array column.
func marshalSlice(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshalling slice column: %w", err)
	}
	return string(data), nil
}
