package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	formlayout "github.com/goliatone/go-formlayout"
	"github.com/goliatone/go-formlayout/internal/config"
	"github.com/goliatone/go-formlayout/internal/logging"
	"github.com/goliatone/go-formlayout/internal/store/sqlite"
	"github.com/goliatone/go-formlayout/pkg/schema"
	"github.com/goliatone/go-formlayout/pkg/source"
)

func (o *options) serviceConfig() (*config.Config, error) {
	if o.configFile == "" {
		return config.Load()
	}
	return config.LoadFrom(o.configFile)
}

// openStore loads the service configuration, builds the logger and opens the
// database, migrating it when configured to.
func (o *options) openStore(ctx context.Context, migrate bool) (*config.Config, *zap.Logger, *sqlite.Store, error) {
	cfg, err := o.serviceConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := sqlite.Open(ctx, cfg.Storage.DSN, sqlite.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	if migrate || cfg.Storage.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
	}
	return cfg, logger, db, nil
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := opts.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer db.Close()

			version, err := db.Version(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(opts.out, "schema version %d\n", version)
			return err
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store content-type schemas and configurations in the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, logger, db, err := opts.openStore(ctx, false)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer db.Close()

			if all {
				return importAll(ctx, opts, db)
			}
			in, err := opts.load(ctx)
			if err != nil {
				return err
			}
			if err := db.PutSchema(ctx, in.schema); err != nil {
				return err
			}
			if opts.layout != "" {
				if err := db.PutConfiguration(ctx, in.config); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(opts.out, in.schema.UID)
			return err
		},
	}
	addInputFlags(cmd, opts)
	cmd.Flags().BoolVar(&all, "all", false, "import every object component of the OpenAPI document")
	return cmd
}

func importAll(ctx context.Context, opts *options, db *sqlite.Store) error {
	doc, err := formlayout.NewLoader().Load(ctx, source.Parse(opts.schema))
	if err != nil {
		return err
	}
	schemas, err := formlayout.NewImporter().Schemas(ctx, doc)
	if err != nil {
		return err
	}
	return putSchemas(ctx, opts, db, schemas)
}

func putSchemas(ctx context.Context, opts *options, db *sqlite.Store, schemas []schema.Schema) error {
	for _, sch := range schemas {
		if err := db.PutSchema(ctx, sch); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(opts.out, sch.UID); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <uid>",
		Short: "Print stored revisions of a configuration, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := opts.openStore(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer db.Close()

			revisions, err := db.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return opts.writeJSON(revisions)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum revisions to print (0 for all)")
	return cmd
}
