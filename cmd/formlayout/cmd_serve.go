package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-formlayout/internal/notify"
	"github.com/goliatone/go-formlayout/internal/server"
	"github.com/goliatone/go-formlayout/internal/store/cache"
	"github.com/goliatone/go-formlayout/pkg/configuration"
	"github.com/goliatone/go-formlayout/pkg/preview"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configuration API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), opts)
		},
	}
}

func serve(ctx context.Context, opts *options) error {
	cfg, logger, db, err := opts.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer db.Close()

	var store configuration.Store = db
	if cfg.Cache.MaxCostBytes > 0 {
		cached, err := cache.New(db, cfg.Cache.MaxCostBytes, cfg.Cache.TTL, logger)
		if err != nil {
			return err
		}
		defer cached.Close()
		store = cached
	}

	svcOpts := []configuration.Option{
		configuration.WithLogger(logger),
		configuration.WithNotifier(notify.NewLogNotifier(logger)),
		configuration.WithOverflowPolicy(cfg.Layout.OverflowPolicy()),
	}
	if cfg.NATS.URL != "" {
		publisher, err := notify.Connect(cfg.NATS.URL, cfg.NATS.Subject, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		svcOpts = append(svcOpts, configuration.WithPublisher(publisher))
	}
	service := configuration.NewStoreService(store, svcOpts...)
	registry := configuration.NewRegistry(cfg.Sessions.TTL)

	renderer, err := preview.New()
	if err != nil {
		return err
	}
	api := server.New(service, registry, renderer,
		server.WithPermissions(cfg.Permissions),
		server.WithBodyLimit(cfg.Server.BodyLimit),
		server.WithLogger(logger),
	)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		registry.Run(gctx, cfg.Sessions.SweepInterval)
		return nil
	})
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
