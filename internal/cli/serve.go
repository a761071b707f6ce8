package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewvino/placecards/internal/server"
	"github.com/brewvino/placecards/pkg/cache"
	"github.com/brewvino/placecards/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the placecard pipeline over HTTP",
		Long: `Serve the placecard pipeline over HTTP.

Endpoints:
  POST /v1/placecards  multipart upload (bookings CSV + optional style JSON)
  GET  /healthz        liveness and build info

With --redis the cache is shared across instances; otherwise the local file
cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache backend and serves until the context is
// canceled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

// serveCache picks the cache backend: redis when configured, the local file
// cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	return newCache(false)
}
