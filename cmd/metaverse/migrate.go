package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/config"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/db/mongo"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/db/postgres"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or roll back the PostgreSQL schema. With STORE_DRIVER=mongo,
"up" creates the unique indexes instead.`,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, false)
		},
	})
	return cmd
}

func runMigrate(cmd *cobra.Command, up bool) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	if cfg.StoreDriver == config.StoreDriverMongo {
		if !up {
			return errors.New("migrate down is not supported for mongo")
		}
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(ctx) }()
		if err := mongo.NewStore(db).EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return nil
	}

	m, err := postgres.NewMigrator(cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("close migrator")
		}
	}()

	if up {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil {
		return err
	}

	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Bool("up", up).Msg("migrations applied")
	return nil
}
