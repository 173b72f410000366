package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// AvatarRepository persists the avatar catalog.
type AvatarRepository interface {
	Create(ctx context.Context, a *domain.Avatar) error
	Update(ctx context.Context, a *domain.Avatar) error
	FindByID(ctx context.Context, id string) (*domain.Avatar, error)
	List(ctx context.Context) ([]domain.Avatar, error)
}

// ElementRepository persists the element catalog.
type ElementRepository interface {
	Create(ctx context.Context, e *domain.Element) error
	Update(ctx context.Context, e *domain.Element) error
	FindByID(ctx context.Context, id string) (*domain.Element, error)
	List(ctx context.Context) ([]domain.Element, error)
}

// MapRepository persists maps and their default placements.
//
// Create and Update write the map row and the given placements in a single
// transaction. A placement that repeats an existing (map, element, x, y)
// tuple fails with domain.ErrDuplicate and nothing is written.
type MapRepository interface {
	Create(ctx context.Context, m *domain.Map, elements []domain.MapElement) error
	Update(ctx context.Context, m *domain.Map, added []domain.MapElement) error
	// FindByID returns the map with its placements populated.
	FindByID(ctx context.Context, id string) (*domain.Map, error)
	List(ctx context.Context) ([]domain.Map, error)

	AddElement(ctx context.Context, me *domain.MapElement) error
	HasElement(ctx context.Context, me domain.MapElement) (bool, error)
	// RemoveElement deletes the placement matching the full tuple and
	// reports how many rows were removed.
	RemoveElement(ctx context.Context, me domain.MapElement) (int64, error)
}
