package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/api"
	"github.com/tickerwatch/scanner/internal/api/handlers"
	"github.com/tickerwatch/scanner/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the watchlist HTTP API",
	Long: `Starts the HTTP query surface. The watchlist endpoint serves the
latest cache while fresh and rebuilds it when stale or absent; rebuilds
are pushed to websocket clients on /ws.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	pipe := pipeline.New(rt.store, rt.strategy, rt.log)
	stream := api.NewStream(rt.log)

	watchlistHandler := handlers.NewWatchlistHandler(rt.store, pipe, stream, rt.log)
	cacheHandler := handlers.NewCacheHandler(rt.store, rt.log)

	router := api.NewRouter(watchlistHandler, cacheHandler, stream, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		rt.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
