package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const spaceColumns = `id, name, width, height, map_id, thumbnail, creator_id, created_at`

type SpaceRepository struct {
	db DB
}

func NewSpaceRepository(db DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) Create(ctx context.Context, s *domain.Space, elements []domain.SpaceElement) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO spaces (`+spaceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.Name, s.Width, s.Height, s.MapID, s.Thumbnail, s.CreatorID, s.CreatedAt,
		)
		if constraint, ok := isUniqueViolation(err); ok {
			switch constraint {
			case "spaces_name_key":
				return domain.Conflict(domain.SpaceNameTaken(s.Name))
			case "spaces_map_id_key":
				return domain.Conflict(domain.SpaceMapTaken(s.MapID))
			}
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("Map not found")
		}
		if err != nil {
			return fmt.Errorf("insert space: %w", err)
		}

		for _, se := range elements {
			if _, err := tx.Exec(ctx, insertSpaceElement, se.ID, se.SpaceID, se.ElementID, se.X, se.Y); err != nil {
				return spaceElementErr(err)
			}
		}
		return nil
	})
}

const insertSpaceElement = `INSERT INTO space_elements (id, space_id, element_id, x, y) VALUES ($1, $2, $3, $4, $5)`

func spaceElementErr(err error) error {
	if constraint, ok := isUniqueViolation(err); ok && constraint == "space_elements_cell_key" {
		return domain.Duplicate(domain.MsgSpaceElementExists)
	}
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("insert space element: %w", err)
}

func scanSpace(row pgx.Row) (domain.Space, error) {
	var s domain.Space
	err := row.Scan(&s.ID, &s.Name, &s.Width, &s.Height, &s.MapID, &s.Thumbnail, &s.CreatorID, &s.CreatedAt)
	return s, err
}

func (r *SpaceRepository) findOne(ctx context.Context, column, value string) (*domain.Space, error) {
	s, err := scanSpace(r.db.QueryRow(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE `+column+` = $1`, value))
	if err != nil {
		return nil, notFoundOr(err, "find space by "+column)
	}
	return &s, nil
}

func (r *SpaceRepository) FindByID(ctx context.Context, id string) (*domain.Space, error) {
	return r.findOne(ctx, "id", id)
}

func (r *SpaceRepository) FindByName(ctx context.Context, name string) (*domain.Space, error) {
	return r.findOne(ctx, "name", name)
}

func (r *SpaceRepository) FindByMapID(ctx context.Context, mapID string) (*domain.Space, error) {
	return r.findOne(ctx, "map_id", mapID)
}

func (r *SpaceRepository) List(ctx context.Context) ([]domain.Space, error) {
	rows, err := r.db.Query(ctx, `SELECT `+spaceColumns+` FROM spaces ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query spaces: %w", err)
	}
	spaces, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Space, error) {
		return scanSpace(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan spaces: %w", err)
	}
	return spaces, nil
}

// Delete relies on ON DELETE CASCADE to drop the space's placements.
func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete space: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SpaceRepository) AddElement(ctx context.Context, se *domain.SpaceElement) error {
	if _, err := r.db.Exec(ctx, insertSpaceElement, se.ID, se.SpaceID, se.ElementID, se.X, se.Y); err != nil {
		return spaceElementErr(err)
	}
	return nil
}

func (r *SpaceRepository) HasElement(ctx context.Context, se domain.SpaceElement) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM space_elements WHERE space_id = $1 AND element_id = $2 AND x = $3 AND y = $4)`,
		se.SpaceID, se.ElementID, se.X, se.Y,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check space element: %w", err)
	}
	return exists, nil
}

func (r *SpaceRepository) RemoveElement(ctx context.Context, se domain.SpaceElement) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM space_elements WHERE space_id = $1 AND element_id = $2 AND x = $3 AND y = $4`,
		se.SpaceID, se.ElementID, se.X, se.Y,
	)
	if err != nil {
		return 0, fmt.Errorf("delete space element: %w", err)
	}
	return tag.RowsAffected(), nil
}
