package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
)

var relatedCmd = &cobra.Command{
	Use:   "related [type] [slug]",
	Short: "Show records related to one record",
	Long: `Shows every record linked to the given one in the relationship
graph, grouped by collection, with the reason each link exists.

Type is one of: article, supplement, condition, clinic.`,
	Args: cobra.ExactArgs(2),
	RunE: runRelated,
}

func init() {
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	if relationService == nil {
		return errors.New("relation service not configured")
	}

	recordType, slug := args[0], args[1]
	ctx := cmd.Context()

	switch recordType {
	case "article":
		return relatedForArticle(ctx, cmd, slug)
	case "supplement":
		return relatedForSupplement(ctx, cmd, slug)
	case "condition":
		return relatedForCondition(ctx, cmd, slug)
	case "clinic":
		return relatedForClinic(ctx, cmd, slug)
	default:
		return fmt.Errorf("unknown type %q: %w", recordType, domain.ErrInvalidInput)
	}
}

func relatedForArticle(ctx context.Context, cmd *cobra.Command, slug string) error {
	supplements, err := relationService.SupplementsForArticle(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Supplements (%d):\n", len(supplements))
	for _, sup := range supplements {
		reason, err := relationService.ReasonForArticleSupplement(ctx, slug, sup.Slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", sup.Name, reason)
	}

	conditions, err := relationService.ConditionsForArticle(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Conditions (%d):\n", len(conditions))
	for _, c := range conditions {
		reason, err := relationService.ReasonForArticleCondition(ctx, slug, c.Slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", c.Name, reason)
	}

	clinics, err := relationService.ClinicsForArticle(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Clinics (%d):\n", len(clinics))
	for _, c := range clinics {
		reason, err := relationService.ReasonForArticleClinic(ctx, slug, c.Slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", c.Name, reason)
	}

	return nil
}

func relatedForSupplement(ctx context.Context, cmd *cobra.Command, slug string) error {
	articles, err := relationService.ArticlesForSupplement(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Articles (%d):\n", len(articles))
	for _, a := range articles {
		reason, err := relationService.ReasonForArticleSupplement(ctx, a.Slug, slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", a.Title, reason)
	}

	conditions, err := relationService.ConditionsForSupplement(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Conditions (%d):\n", len(conditions))
	for _, c := range conditions {
		reason, err := relationService.ReasonForConditionSupplement(ctx, c.Slug, slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", c.Name, reason)
	}

	return nil
}

func relatedForCondition(ctx context.Context, cmd *cobra.Command, slug string) error {
	articles, err := relationService.ArticlesForCondition(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Articles (%d):\n", len(articles))
	for _, a := range articles {
		reason, err := relationService.ReasonForArticleCondition(ctx, a.Slug, slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", a.Title, reason)
	}

	supplements, err := relationService.SupplementsForCondition(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Supplements (%d):\n", len(supplements))
	for _, sup := range supplements {
		reason, err := relationService.ReasonForConditionSupplement(ctx, slug, sup.Slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", sup.Name, reason)
	}

	clinics, err := relationService.ClinicsForCondition(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Clinics (%d):\n", len(clinics))
	for _, c := range clinics {
		reason, err := relationService.ReasonForConditionClinic(ctx, slug, c.Slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", c.Name, reason)
	}

	return nil
}

func relatedForClinic(ctx context.Context, cmd *cobra.Command, slug string) error {
	articles, err := relationService.ArticlesForClinic(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Articles (%d):\n", len(articles))
	for _, a := range articles {
		reason, err := relationService.ReasonForArticleClinic(ctx, a.Slug, slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", a.Title, reason)
	}

	conditions, err := relationService.ConditionsForClinic(ctx, slug)
	if err != nil {
		return err
	}
	cmd.Printf("Conditions (%d):\n", len(conditions))
	for _, c := range conditions {
		reason, err := relationService.ReasonForConditionClinic(ctx, c.Slug, slug)
		if err != nil {
			return err
		}
		cmd.Printf("  %-30s %s\n", c.Name, reason)
	}

	return nil
}
