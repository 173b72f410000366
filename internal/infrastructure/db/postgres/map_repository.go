package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

const insertMapElement = `INSERT INTO map_elements (id, map_id, element_id, x, y) VALUES ($1, $2, $3, $4, $5)`

type MapRepository struct {
	db DB
}

func NewMapRepository(db DB) *MapRepository {
	return &MapRepository{db: db}
}

// mapElementErr translates constraint violations raised by a placement insert.
func mapElementErr(err error) error {
	if constraint, ok := isUniqueViolation(err); ok && constraint == "map_elements_cell_key" {
		return domain.Duplicate(domain.MsgMapElementExists)
	}
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("insert map element: %w", err)
}

func insertMapElements(ctx context.Context, tx pgx.Tx, elements []domain.MapElement) error {
	for _, me := range elements {
		if _, err := tx.Exec(ctx, insertMapElement, me.ID, me.MapID, me.ElementID, me.X, me.Y); err != nil {
			return mapElementErr(err)
		}
	}
	return nil
}

func (r *MapRepository) Create(ctx context.Context, m *domain.Map, elements []domain.MapElement) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO maps (id, name, thumbnail, width, height, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.Name, m.Thumbnail, m.Width, m.Height, m.Created,
		); err != nil {
			return fmt.Errorf("insert map: %w", err)
		}
		return insertMapElements(ctx, tx, elements)
	})
}

func (r *MapRepository) Update(ctx context.Context, m *domain.Map, added []domain.MapElement) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE maps SET name = $2, thumbnail = $3, width = $4, height = $5 WHERE id = $1`,
			m.ID, m.Name, m.Thumbnail, m.Width, m.Height,
		)
		if err != nil {
			return fmt.Errorf("update map: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return insertMapElements(ctx, tx, added)
	})
}

func (r *MapRepository) FindByID(ctx context.Context, id string) (*domain.Map, error) {
	var m domain.Map
	err := r.db.QueryRow(ctx,
		`SELECT id, name, thumbnail, width, height, created_at FROM maps WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.Thumbnail, &m.Width, &m.Height, &m.Created)
	if err != nil {
		return nil, notFoundOr(err, "find map")
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, map_id, element_id, x, y FROM map_elements WHERE map_id = $1 ORDER BY y, x, id`, id)
	if err != nil {
		return nil, fmt.Errorf("query map elements: %w", err)
	}
	m.Elements, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MapElement, error) {
		var me domain.MapElement
		err := row.Scan(&me.ID, &me.MapID, &me.ElementID, &me.X, &me.Y)
		return me, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan map elements: %w", err)
	}
	return &m, nil
}

func (r *MapRepository) List(ctx context.Context) ([]domain.Map, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, thumbnail, width, height, created_at FROM maps ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query maps: %w", err)
	}
	maps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Map, error) {
		var m domain.Map
		err := row.Scan(&m.ID, &m.Name, &m.Thumbnail, &m.Width, &m.Height, &m.Created)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan maps: %w", err)
	}
	return maps, nil
}

func (r *MapRepository) AddElement(ctx context.Context, me *domain.MapElement) error {
	if _, err := r.db.Exec(ctx, insertMapElement, me.ID, me.MapID, me.ElementID, me.X, me.Y); err != nil {
		return mapElementErr(err)
	}
	return nil
}

func (r *MapRepository) HasElement(ctx context.Context, me domain.MapElement) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM map_elements WHERE map_id = $1 AND element_id = $2 AND x = $3 AND y = $4)`,
		me.MapID, me.ElementID, me.X, me.Y,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check map element: %w", err)
	}
	return exists, nil
}

func (r *MapRepository) RemoveElement(ctx context.Context, me domain.MapElement) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM map_elements WHERE map_id = $1 AND element_id = $2 AND x = $3 AND y = $4`,
		me.MapID, me.ElementID, me.X, me.Y,
	)
	if err != nil {
		return 0, fmt.Errorf("delete map element: %w", err)
	}
	return tag.RowsAffected(), nil
}

