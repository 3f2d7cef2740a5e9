package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Report content data-quality warnings",
	Long: `Builds the relationship graph and prints the warnings collected
along the way: dangling article references and supplements with no
linked articles.`,
	RunE: runDiagnostics,
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
}

func runDiagnostics(cmd *cobra.Command, _ []string) error {
	if relationService == nil {
		return errors.New("relation service not configured")
	}

	diags, err := relationService.Diagnostics(cmd.Context())
	if err != nil {
		return err
	}

	if len(diags) == 0 {
		cmd.Println("No content warnings.")
		return nil
	}

	cmd.Printf("%d content warning(s):\n", len(diags))
	for _, d := range diags {
		cmd.Printf("  - %s\n", d)
	}
	return nil
}
