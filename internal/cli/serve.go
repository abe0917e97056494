package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adofai-tools/tilebeat/internal/api"
	"github.com/adofai-tools/tilebeat/pkg/cache"
	"github.com/adofai-tools/tilebeat/pkg/pipeline"
	"github.com/adofai-tools/tilebeat/pkg/store"
)

const (
	// defaultAddr is the default API listen address.
	defaultAddr = ":8420"

	// shutdownTimeout bounds how long in-flight requests may run after a
	// shutdown signal.
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		mongoDB  string
		mongoCol string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the tilebeat HTTP API.

The API computes timings for posted levels and archives results. By default
it uses the local file cache and an in-memory archive; pass --redis for a
shared cache and --mongo for a persistent archive.

Endpoints:
  GET    /healthz
  POST   /v1/timings
  GET    /v1/levels
  POST   /v1/levels
  GET    /v1/levels/{id}
  DELETE /v1/levels/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, mongoURI, mongoDB, mongoCol, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the level archive (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "tilebeat", "MongoDB database name")
	cmd.Flags().StringVar(&mongoCol, "mongo-collection", "levels", "MongoDB collection name")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the server's dependencies and serves until ctx is done.
func (c *CLI) runServe(ctx context.Context, addr, redisURL, mongoURI, mongoDB, mongoCol string, noCache bool) error {
	cch, err := c.serveCache(ctx, redisURL, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, mongoURI, mongoDB, mongoCol)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close()

	srv := api.NewServer(api.Config{
		Addr:   addr,
		Runner: runner,
		Store:  st,
		Logger: c.Logger,
	})

	printKeyValue("Address", StyleHighlight.Render(addr))
	printKeyValue("Health", StyleLink.Render(serveURL(addr)+"/healthz"))
	printNewline()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serveURL renders a browsable base URL for a listen address.
func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// serveCache picks the cache backend for the API server.
func (c *CLI) serveCache(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		c.Logger.Info("using redis cache", "url", redisURL)
		return cache.NewRedisCache(ctx, redisURL)
	}
	return c.newCache(false)
}

// serveStore picks the archive backend for the API server.
func (c *CLI) serveStore(ctx context.Context, mongoURI, db, col string) (store.Store, error) {
	if mongoURI == "" {
		c.Logger.Info("using in-memory archive")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using mongodb archive", "database", db, "collection", col)
	return store.NewMongoStore(ctx, mongoURI, db, col)
}
