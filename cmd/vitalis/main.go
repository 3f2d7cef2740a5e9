package main

import (
	"fmt"
	"os"

	configfile "github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/config/file"
	contentfile "github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/file"
	contentsqlite "github.com/vitalis-labs/vitalis-cli/internal/adapters/driven/content/sqlite"
	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driving/cli"
	"github.com/vitalis-labs/vitalis-cli/internal/core/ports/driven"
	"github.com/vitalis-labs/vitalis-cli/internal/core/services"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)

	wired := &cli.Services{}

	config, err := configfile.NewConfigStore(os.Getenv("VITALIS_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	wired.Config = config

	store, watcher, err := openContentStore(config)
	if err != nil {
		// Commands that need content report the missing store themselves;
		// version, import and remote search still work.
		logger.Warn("Content store unavailable: %v", err)
	} else {
		defer store.Close()
		wired.Content = store
		wired.Watcher = watcher
		wired.Relations = services.NewRelationService(store)
		wired.Search = services.NewIndexService(store)
	}

	cli.SetServices(wired)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openContentStore picks the content backend from config: a JSON content
// directory when content.dir is set (the default "content" if present),
// otherwise the SQLite database populated by the import command.
func openContentStore(config driven.ConfigStore) (driven.ContentStore, cli.ContentWatcher, error) {
	contentDir := config.GetString(configfile.KeyContentDir)
	if contentDir == "" {
		contentDir = "content"
	}

	if info, err := os.Stat(contentDir); err == nil && info.IsDir() {
		store, err := contentfile.NewStore(contentDir)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}

	store, err := contentsqlite.NewStore(config.GetString(configfile.KeyDataDir))
	if err != nil {
		return nil, nil, err
	}
	return store, nil, nil
}
