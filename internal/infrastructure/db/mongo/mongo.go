// Package mongo implements the repository ports on MongoDB. Documents use
// string ids; uniqueness is enforced by the indexes EnsureIndexes creates.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers         = "users"
	collectionAvatars       = "avatars"
	collectionElements      = "elements"
	collectionMaps          = "maps"
	collectionMapElements   = "map_elements"
	collectionSpaces        = "spaces"
	collectionSpaceElements = "space_elements"
)

// Index names double as the discriminator for duplicate key errors.
const (
	indexUserEmail        = "users_email_key"
	indexUserUsername     = "users_username_key"
	indexSpaceName        = "spaces_name_key"
	indexSpaceMap         = "spaces_map_id_key"
	indexMapElementCell   = "map_elements_cell_key"
	indexSpaceElementCell = "space_elements_cell_key"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Pinger adapts the client to the readiness probe.
func Pinger(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// Store bundles the repositories sharing one database.
type Store struct {
	db       *mongo.Database
	Users    *UserRepository
	Avatars  *AvatarRepository
	Elements *ElementRepository
	Maps     *MapRepository
	Spaces   *SpaceRepository
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		Users:    NewUserRepository(db),
		Avatars:  NewAvatarRepository(db),
		Elements: NewElementRepository(db),
		Maps:     NewMapRepository(db),
		Spaces:   NewSpaceRepository(db),
	}
}

func uniqueIndex(name string, keys ...string) mongo.IndexModel {
	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}
	return mongo.IndexModel{Keys: d, Options: options.Index().SetName(name).SetUnique(true)}
}

// EnsureIndexes creates the unique and lookup indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			uniqueIndex(indexUserEmail, "email"),
			uniqueIndex(indexUserUsername, "username"),
		},
		collectionSpaces: {
			uniqueIndex(indexSpaceName, "name"),
			uniqueIndex(indexSpaceMap, "map_id"),
		},
		collectionMapElements: {
			uniqueIndex(indexMapElementCell, "map_id", "element_id", "x", "y"),
		},
		collectionSpaceElements: {
			uniqueIndex(indexSpaceElementCell, "space_id", "element_id", "x", "y"),
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

// duplicateIndex reports which unique index a duplicate key error hit.
func duplicateIndex(err error) (string, bool) {
	if !mongo.IsDuplicateKeyError(err) {
		return "", false
	}
	msg := err.Error()
	for _, name := range []string{
		indexUserEmail, indexUserUsername,
		indexSpaceName, indexSpaceMap,
		indexMapElementCell, indexSpaceElementCell,
	} {
		if strings.Contains(msg, name) {
			return name, true
		}
	}
	return "", true
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultTimeout)
}
