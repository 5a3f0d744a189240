package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lifeexp/internal/api"
	"lifeexp/internal/config"
	"lifeexp/internal/engine"
	"lifeexp/internal/geo"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	// 1. The API is live at once and answers 503 until the data is published.
	h := api.NewHandler(nil, cfg.PreferredYear, log)
	e := api.NewServer(h, api.ServerOptions{RateLimit: cfg.RateLimit, Debug: cfg.Debug}, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Load dataset and topology in the background.
	go func() {
		load := func(ctx context.Context) (*api.Dataset, error) { return loadDataset(ctx, cfg, log) }
		if err := publish(ctx, h, log, load); err != nil {
			log.Fatalw("startup load failed", "error", err)
		}
	}()

	go func() {
		log.Infow("server listening", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown", "error", err)
	}
}

// publish runs load and hands the result to h. A load cut short by shutdown
// is not a failure.
func publish(ctx context.Context, h *api.Handler, log *zap.SugaredLogger, load func(context.Context) (*api.Dataset, error)) error {
	t0 := time.Now()
	ds, err := load(ctx)
	if errors.Is(err, context.Canceled) {
		log.Infow("startup load cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	h.SetData(ds)
	log.Infow("data ready", "elapsed", time.Since(t0))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
		return z.Build()
	}
	return zap.NewProduction()
}

// loadDataset fetches the CSV and the world topology concurrently, then
// resolves country codes. Any failure is fatal to startup.
func loadDataset(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*api.Dataset, error) {
	var (
		table *engine.Table
		world *geo.World
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		table, err = engine.NewLoader(cfg.FetchTimeout, log).Load(gctx, cfg.DataSource)
		return err
	})
	g.Go(func() error {
		var err error
		world, err = geo.Fetch(gctx, cfg.WorldSource, cfg.FetchTimeout)
		if err == nil {
			log.Infow("world topology loaded", "shapes", len(world.IDs()))
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table.Resolve(engine.NewResolver(engine.DefaultCatalog()))
	if unmatched := table.Unmatched(); len(unmatched) > 0 {
		log.Warnw("countries without ISO numeric code", "count", len(unmatched), "names", unmatched)
	}
	if len(table.Collisions) > 0 {
		log.Warnw("countries sharing a code with an earlier name", "names", table.Collisions)
	}
	return &api.Dataset{Table: table, World: world}, nil
}
