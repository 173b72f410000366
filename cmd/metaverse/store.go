package main

import (
	"context"
	"fmt"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/config"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/db/mongo"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/db/postgres"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/http/handlers"
)

// repositories are the storage ports of the selected driver.
type repositories struct {
	users    ports.UserRepository
	avatars  ports.AvatarRepository
	elements ports.ElementRepository
	maps     ports.MapRepository
	spaces   ports.SpaceRepository

	ping  handlers.Pinger
	close func(context.Context)
}

// openStore connects to the database named by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		store := mongo.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return &repositories{
			users:    store.Users,
			avatars:  store.Avatars,
			elements: store.Elements,
			maps:     store.Maps,
			spaces:   store.Spaces,
			ping:     mongo.Pinger(client),
			close:    func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil

	default:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(pool)
		return &repositories{
			users:    store.Users,
			avatars:  store.Avatars,
			elements: store.Elements,
			maps:     store.Maps,
			spaces:   store.Spaces,
			ping:     postgres.Pinger(pool),
			close:    func(context.Context) { pool.Close() },
		}, nil
	}
}
