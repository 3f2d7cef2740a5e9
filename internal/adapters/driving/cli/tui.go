package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driving/tui"
	"github.com/vitalis-labs/vitalis-cli/internal/core/services"
)

var tuiIndexURL string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search interface",
	Long: `Launch the interactive terminal search interface.

Results update as you type. The search index is fetched once when the
interface starts; if the fetch fails, press r to retry.

Controls:
  type      - Search
  tab       - Cycle type filter
  ↑/↓       - Navigate results
  r         - Retry a failed index load
  esc       - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiIndexURL, "index-url", "",
		"fetch the index from a remote endpoint instead of building it locally")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	searchIndexURL = tuiIndexURL
	fetcher, err := snapshotFetcher()
	if err != nil {
		return err
	}

	session := services.NewQuerySession(fetcher)
	app := tui.NewApp(session).WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
