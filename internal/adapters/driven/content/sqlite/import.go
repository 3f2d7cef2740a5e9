package sqlite

import (
	"context"
	"fmt"

	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// ImportFrom copies every collection from another content store into the
// database in a single transaction. Existing records with the same slug
// are replaced.
func (s *Store) ImportFrom(ctx context.Context, src driven.ContentStore) error {
	articles, err := src.Articles(ctx)
	if err != nil {
		return fmt.Errorf("loading articles: %w", err)
	}
	supplements, err := src.Supplements(ctx)
	if err != nil {
		return fmt.Errorf("loading supplements: %w", err)
	}
	conditions, err := src.Conditions(ctx)
	if err != nil {
		return fmt.Errorf("loading conditions: %w", err)
	}
	clinics, err := src.Clinics(ctx)
	if err != nil {
		return fmt.Errorf("loading clinics: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, a := range articles {
		tags, err := marshalSlice(a.Tags)
		if err != nil {
			return fmt.Errorf("article %s: %w", a.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO articles (slug, title, excerpt, description, tags, body, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				title = excluded.title,
				excerpt = excluded.excerpt,
				description = excluded.description,
				tags = excluded.tags,
				body = excluded.body,
				updated_at = excluded.updated_at
		`, a.Slug, a.Title, a.Excerpt, a.Description, tags, a.Body, a.UpdatedAt); err != nil {
			return fmt.Errorf("saving article %s: %w", a.Slug, err)
		}
	}

	for _, sup := range supplements {
		cols := make([]string, 5)
		for i, values := range [][]string{sup.Tags, sup.BestFor, sup.Cautions, sup.ConditionTags, sup.ArticleRefs} {
			col, err := marshalSlice(values)
			if err != nil {
				return fmt.Errorf("supplement %s: %w", sup.Slug, err)
			}
			cols[i] = col
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO supplements (slug, name, focus, tags, best_for, cautions,
				safety, evidence_level, condition_tags, article_refs, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				name = excluded.name,
				focus = excluded.focus,
				tags = excluded.tags,
				best_for = excluded.best_for,
				cautions = excluded.cautions,
				safety = excluded.safety,
				evidence_level = excluded.evidence_level,
				condition_tags = excluded.condition_tags,
				article_refs = excluded.article_refs,
				updated_at = excluded.updated_at
		`, sup.Slug, sup.Name, sup.Focus, cols[0], cols[1], cols[2],
			sup.Safety, sup.EvidenceLevel, cols[3], cols[4], sup.UpdatedAt); err != nil {
			return fmt.Errorf("saving supplement %s: %w", sup.Slug, err)
		}
	}

	for _, c := range conditions {
		cols := make([]string, 3)
		for i, values := range [][]string{c.Keywords, c.TopInterventions, c.ArticleRefs} {
			col, err := marshalSlice(values)
			if err != nil {
				return fmt.Errorf("condition %s: %w", c.Slug, err)
			}
			cols[i] = col
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO conditions (slug, name, goal, keywords, top_interventions, article_refs, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				name = excluded.name,
				goal = excluded.goal,
				keywords = excluded.keywords,
				top_interventions = excluded.top_interventions,
				article_refs = excluded.article_refs,
				updated_at = excluded.updated_at
		`, c.Slug, c.Name, c.Goal, cols[0], cols[1], cols[2], c.UpdatedAt); err != nil {
			return fmt.Errorf("saving condition %s: %w", c.Slug, err)
		}
	}

	for _, c := range clinics {
		services, err := marshalSlice(c.Services)
		if err != nil {
			return fmt.Errorf("clinic %s: %w", c.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clinics (slug, name, city, focus, services, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				name = excluded.name,
				city = excluded.city,
				focus = excluded.focus,
				services = excluded.services,
				updated_at = excluded.updated_at
		`, c.Slug, c.Name, c.City, c.Focus, services, c.UpdatedAt); err != nil {
			return fmt.Errorf("saving clinic %s: %w", c.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	logger.Info("Imported %d articles, %d supplements, %d conditions, %d clinics",
		len(articles), len(supplements), len(conditions), len(clinics))
	return nil
}
