package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/snapshot/httpfetch"
	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/snapshot/local"
	"github.com/vitalis-labs/vitalis-cli/internal/core/domain"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/services"
)

var (
	searchType     string
	searchJSON     bool
	searchIndexURL string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the content index",
	Long: `Runs a one-shot query against the search index.

By default the index is built from the local content store. Pass
--index-url (or set search.index_url in the config) to query a running
server's index instead. An empty query shows the curated default view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "",
		"restrict results to one type (article, supplement, condition)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchIndexURL, "index-url", "",
		"fetch the index from a remote endpoint instead of building it locally")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	opts := domain.QueryOptions{}
	if searchType != "" {
		itemType := domain.SearchItemType(searchType)
		if !itemType.Valid() {
			return fmt.Errorf("unknown type %q: %w", searchType, domain.ErrInvalidInput)
		}
		opts.Type = itemType
	}

	fetcher, err := snapshotFetcher()
	if err != nil {
		return err
	}

	session := services.NewQuerySession(fetcher)
	if err := session.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading search index: %w", err)
	}

	results, err := session.Query(query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

// snapshotFetcher picks the remote fetcher when an index URL is configured,
// falling back to the in-process index built from the content store.
func snapshotFetcher() (driven.SnapshotFetcher, error) {
	url := searchIndexURL
	if url == "" && configStore != nil {
		url = configStore.GetString("search.index_url")
	}
	if url != "" {
		return httpfetch.NewFetcher(url, nil), nil
	}

	if searchService == nil {
		return nil, errors.New("search service not configured")
	}
	return local.NewFetcher(searchService), nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchItem) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchItem) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, item := range results {
		cmd.Printf("  [%d] %s (%s)\n", i+1, item.Title, item.Type)
		if item.Description != "" {
			cmd.Printf("      %s\n", item.Description)
		}
		cmd.Printf("      %s\n", item.Href)
		cmd.Println()
	}

	return nil
}
