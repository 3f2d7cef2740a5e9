package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	contentfile "github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/file"
	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/sqlite"
)

var (
	importContentDir string
	importDataDir    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import JSON content into the SQLite content store",
	Long: `Validates the JSON collections in the content directory and copies
them into the SQLite database. Existing records with the same slug are
replaced.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importContentDir, "content-dir", "",
		"directory holding the JSON collections (default content.dir from config)")
	importCmd.Flags().StringVar(&importDataDir, "data-dir", "",
		"directory for the SQLite database (default ~/.vitalis/data)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	contentDir := importContentDir
	if contentDir == "" && configStore != nil {
		contentDir = configStore.GetString("content.dir")
	}
	if contentDir == "" {
		return fmt.Errorf("no content directory: pass --content-dir or set content.dir")
	}

	src, err := contentfile.NewStore(contentDir)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	defer src.Close()

	dest, err := sqlite.NewStore(importDataDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer dest.Close()

	if err := dest.ImportFrom(cmd.Context(), src); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported content from %s into %s\n", contentDir, dest.Path())
	return nil
}
