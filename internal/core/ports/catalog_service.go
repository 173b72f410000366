package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

type AvatarService interface {
	List(ctx context.Context) ([]domain.Avatar, error)
	Create(ctx context.Context, name, imageURL string) (*domain.Avatar, error)
	Update(ctx context.Context, avatar domain.Avatar) (*domain.Avatar, error)
}

// AvatarCache holds the public avatar listing.
type AvatarCache interface {
	Get(ctx context.Context) ([]domain.Avatar, bool, error)
	Set(ctx context.Context, avatars []domain.Avatar) error
	Invalidate(ctx context.Context) error
}

// CreateElementInput carries the fields of a new element.
type CreateElementInput struct {
	ImageURL string
	Width    int
	Height   int
	Static   bool
}

type ElementService interface {
	Create(ctx context.Context, input CreateElementInput) (*domain.Element, error)
	Update(ctx context.Context, id string, patch domain.ElementPatch) (*domain.Element, error)
	Get(ctx context.Context, id string) (*domain.Element, error)
	List(ctx context.Context) ([]domain.Element, error)
}

// CreateMapInput carries a new map with its default placements.
type CreateMapInput struct {
	Name            string
	Thumbnail       string
	Width           int
	Height          int
	DefaultElements []domain.Placement
}

type MapService interface {
	Create(ctx context.Context, input CreateMapInput) (*domain.Map, error)
	Update(ctx context.Context, id string, patch domain.MapPatch) (*domain.Map, error)
	Get(ctx context.Context, id string) (*domain.Map, error)
	List(ctx context.Context) ([]domain.Map, error)
	AddElement(ctx context.Context, mapID string, p domain.Placement) (*domain.MapElement, error)
	RemoveElement(ctx context.Context, mapID string, p domain.Placement) error
}
