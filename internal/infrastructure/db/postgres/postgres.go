// Package postgres implements the repository ports on PostgreSQL. Uniqueness
// and referential rules live in the schema; constraint violations are the
// authoritative conflict signal.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// DB is the subset of pgxpool.Pool the repositories use. pgxmock pools
// satisfy it as well.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Config captures the settings for establishing a PostgreSQL pool.
type Config struct {
	URL      string
	MaxConns int32
	Timeout  time.Duration
}

// Connect opens a pool and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

// Store bundles the repositories sharing one pool.
type Store struct {
	Users    *UserRepository
	Avatars  *AvatarRepository
	Elements *ElementRepository
	Maps     *MapRepository
	Spaces   *SpaceRepository
}

func NewStore(db DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Avatars:  NewAvatarRepository(db),
		Elements: NewElementRepository(db),
		Maps:     NewMapRepository(db),
		Spaces:   NewSpaceRepository(db),
	}
}

// violatedConstraint returns the constraint name when err is a unique or
// foreign key violation.
func violatedConstraint(err error) (code, constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
		return pgErr.Code, pgErr.ConstraintName, true
	}
	return "", "", false
}

func isUniqueViolation(err error) (string, bool) {
	code, constraint, ok := violatedConstraint(err)
	return constraint, ok && code == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	code, _, ok := violatedConstraint(err)
	return ok && code == pgerrcode.ForeignKeyViolation
}

func notFoundOr(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// inTx runs fn in a transaction, committing only when fn succeeds.
func inTx(ctx context.Context, db DB, fn func(pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Pinger adapts the pool to the readiness probe.
func Pinger(pool *pgxpool.Pool) func(context.Context) error {
	return pool.Ping
}
