package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// SpaceRepository persists spaces and their placements.
type SpaceRepository interface {
	// Create writes the space and its initial placements atomically. A taken
	// name or map id is reported as domain.ErrConflict.
	Create(ctx context.Context, s *domain.Space, elements []domain.SpaceElement) error
	FindByID(ctx context.Context, id string) (*domain.Space, error)
	FindByName(ctx context.Context, name string) (*domain.Space, error)
	FindByMapID(ctx context.Context, mapID string) (*domain.Space, error)
	List(ctx context.Context) ([]domain.Space, error)
	// Delete removes the space together with its placements.
	Delete(ctx context.Context, id string) error

	AddElement(ctx context.Context, se *domain.SpaceElement) error
	HasElement(ctx context.Context, se domain.SpaceElement) (bool, error)
	RemoveElement(ctx context.Context, se domain.SpaceElement) (int64, error)
}
