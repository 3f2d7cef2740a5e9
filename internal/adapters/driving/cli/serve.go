package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitalis-labs/vitalis-cli/internal/adapters/driving/httpapi"
	"github.com/vitalis-labs/vitalis-cli/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search index and relationship API",
	Long: `Starts the HTTP server exposing the search index, one-shot search
and related-record endpoints.

With --watch, content files are reloaded on change and the relationship
graph is rebuilt on the next request.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "",
		"listen address (default :8080, or serve.addr from config)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false,
		"reload content and invalidate the graph on file changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if relationService == nil || searchService == nil {
		return errors.New("services not configured")
	}

	addr := serveAddr
	if addr == "" && configStore != nil {
		addr = configStore.GetString("serve.addr")
	}
	if addr == "" {
		addr = ":8080"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		if contentWatcher == nil {
			return errors.New("content watching requires a file content store")
		}
		go func() {
			err := contentWatcher.Watch(ctx, func() {
				relationService.Invalidate()
				logger.Info("Content changed, relationship graph invalidated")
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Content watcher stopped: %v", err)
			}
		}()
	}

	api := httpapi.NewServer(relationService, searchService)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving on %s", addr)
		cmd.Printf("Listening on %s\n", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	cmd.Println("Server stopped.")
	return nil
}
