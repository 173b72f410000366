package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// CreateSpaceInput carries a new space request. Dimensions is "WxH".
type CreateSpaceInput struct {
	Name       string
	Dimensions string
	MapID      string
}

type SpaceService interface {
	Create(ctx context.Context, actor *domain.Claims, input CreateSpaceInput) (*domain.Space, error)
	List(ctx context.Context) ([]domain.Space, error)
	Delete(ctx context.Context, actor *domain.Claims, id string) error
	AddElement(ctx context.Context, spaceID string, p domain.Placement) (*domain.SpaceElement, error)
	RemoveElement(ctx context.Context, spaceID string, p domain.Placement) error
}
