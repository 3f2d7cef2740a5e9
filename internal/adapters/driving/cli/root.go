// Package cli wires the cobra command tree for the vitalis binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driving"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// ContentWatcher reloads content on filesystem changes. Implemented by the
// file content store; nil when content comes from SQLite.
type ContentWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Services holds the wired core services. main sets them before Execute.
type Services struct {
	Relations driving.RelationService
	Search    driving.SearchService
	Content   driven.ContentStore
	Config    driven.ConfigStore
	Watcher   ContentWatcher
}

var (
	relationService driving.RelationService
	searchService   driving.SearchService
	contentStore    driven.ContentStore
	configStore     driven.ConfigStore
	contentWatcher  ContentWatcher
)

// SetServices installs the wired services for the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	relationService = s.Relations
	searchService = s.Search
	contentStore = s.Content
	configStore = s.Config
	contentWatcher = s.Watcher
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "vitalis",
	Short: "Content graph and search tooling for the Vitalis site",
	Long: `Vitalis builds the relationship graph between articles, supplements,
conditions and clinics, and serves the search index the site queries
client-side.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
