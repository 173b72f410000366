package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

type AvatarRepository struct {
	db DB
}

func NewAvatarRepository(db DB) *AvatarRepository {
	return &AvatarRepository{db: db}
}

func (r *AvatarRepository) Create(ctx context.Context, a *domain.Avatar) error {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO avatars (id, name, image_url) VALUES ($1, $2, $3)`,
		a.ID, a.Name, a.ImageURL,
	); err != nil {
		return fmt.Errorf("insert avatar: %w", err)
	}
	return nil
}

func (r *AvatarRepository) Update(ctx context.Context, a *domain.Avatar) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE avatars SET name = $2, image_url = $3 WHERE id = $1`,
		a.ID, a.Name, a.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AvatarRepository) FindByID(ctx context.Context, id string) (*domain.Avatar, error) {
	var a domain.Avatar
	err := r.db.QueryRow(ctx, `SELECT id, name, image_url FROM avatars WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.ImageURL)
	if err != nil {
		return nil, notFoundOr(err, "find avatar")
	}
	return &a, nil
}

func (r *AvatarRepository) List(ctx context.Context) ([]domain.Avatar, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, image_url FROM avatars ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query avatars: %w", err)
	}
	avatars, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Avatar, error) {
		var a domain.Avatar
		err := row.Scan(&a.ID, &a.Name, &a.ImageURL)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan avatars: %w", err)
	}
	return avatars, nil
}

type ElementRepository struct {
	db DB
}

func NewElementRepository(db DB) *ElementRepository {
	return &ElementRepository{db: db}
}

func (r *ElementRepository) Create(ctx context.Context, e *domain.Element) error {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO elements (id, image_url, width, height, static, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ImageURL, e.Width, e.Height, e.Static, e.Created,
	); err != nil {
		return fmt.Errorf("insert element: %w", err)
	}
	return nil
}

func (r *ElementRepository) Update(ctx context.Context, e *domain.Element) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE elements SET image_url = $2, width = $3, height = $4, static = $5 WHERE id = $1`,
		e.ID, e.ImageURL, e.Width, e.Height, e.Static,
	)
	if err != nil {
		return fmt.Errorf("update element: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanElement(row pgx.Row) (domain.Element, error) {
	var e domain.Element
	err := row.Scan(&e.ID, &e.ImageURL, &e.Width, &e.Height, &e.Static, &e.Created)
	return e, err
}

func (r *ElementRepository) FindByID(ctx context.Context, id string) (*domain.Element, error) {
	e, err := scanElement(r.db.QueryRow(ctx,
		`SELECT id, image_url, width, height, static, created_at FROM elements WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "find element")
	}
	return &e, nil
}

func (r *ElementRepository) List(ctx context.Context) ([]domain.Element, error) {
	rows, err := r.db.Query(ctx, `SELECT id, image_url, width, height, static, created_at FROM elements ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query elements: %w", err)
	}
	elements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Element, error) {
		return scanElement(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan elements: %w", err)
	}
	return elements, nil
}
