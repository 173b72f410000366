package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type SpaceService struct {
	spaces   ports.SpaceRepository
	maps     ports.MapRepository
	elements ports.ElementRepository
	log      zerolog.Logger
}

func NewSpaceService(spaces ports.SpaceRepository, maps ports.MapRepository, elements ports.ElementRepository, log zerolog.Logger) *SpaceService {
	return &SpaceService{spaces: spaces, maps: maps, elements: elements, log: log}
}

// Create instantiates a map as a new space. The name is checked before the
// map id so a request violating both reports the name.
func (s *SpaceService) Create(ctx context.Context, actor *domain.Claims, in ports.CreateSpaceInput) (*domain.Space, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	width, height, err := domain.ParseDimensions(in.Dimensions)
	if err != nil {
		return nil, domain.NewValidationError(domain.Violation{Field: "dimensions", Message: domain.MsgDimensionsFormat})
	}

	if _, err := s.spaces.FindByName(ctx, in.Name); err == nil {
		return nil, domain.Conflict(domain.SpaceNameTaken(in.Name))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find space by name: %w", err)
	}
	if _, err := s.spaces.FindByMapID(ctx, in.MapID); err == nil {
		return nil, domain.Conflict(domain.SpaceMapTaken(in.MapID))
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("find space by map: %w", err)
	}

	m, err := s.maps.FindByID(ctx, in.MapID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Map not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find map: %w", err)
	}

	space := &domain.Space{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Width:     width,
		Height:    height,
		MapID:     m.ID,
		CreatorID: actor.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if m.Thumbnail != "" {
		thumb := m.Thumbnail
		space.Thumbnail = &thumb
	}

	elements := make([]domain.SpaceElement, 0, len(m.Elements))
	for _, me := range m.Elements {
		elements = append(elements, domain.SpaceElement{
			ID:        uuid.NewString(),
			SpaceID:   space.ID,
			ElementID: me.ElementID,
			X:         me.X,
			Y:         me.Y,
		})
	}

	if err := s.spaces.Create(ctx, space, elements); err != nil {
		return nil, fmt.Errorf("create space: %w", err)
	}

	s.log.Info().Str("space_id", space.ID).Str("map_id", space.MapID).Int("elements", len(elements)).Msg("space created")
	return space, nil
}

func (s *SpaceService) List(ctx context.Context) ([]domain.Space, error) {
	spaces, err := s.spaces.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return spaces, nil
}

// Delete removes a space and its placements. Only the creator or an admin
// may delete a space.
func (s *SpaceService) Delete(ctx context.Context, actor *domain.Claims, id string) error {
	space, err := s.spaces.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Space not found")
	}
	if err != nil {
		return fmt.Errorf("find space: %w", err)
	}
	if !actor.CanActFor(space.CreatorID) {
		return domain.Forbidden("You can only delete your own spaces")
	}

	if err := s.spaces.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("Space not found")
		}
		return fmt.Errorf("delete space: %w", err)
	}
	return nil
}

func (s *SpaceService) AddElement(ctx context.Context, spaceID string, p domain.Placement) (*domain.SpaceElement, error) {
	se := domain.SpaceElement{SpaceID: spaceID, ElementID: p.ElementID, X: p.X, Y: p.Y}

	exists, err := s.spaces.HasElement(ctx, se)
	if err != nil {
		return nil, fmt.Errorf("check space element: %w", err)
	}
	if exists {
		return nil, domain.Duplicate(domain.MsgSpaceElementExists)
	}

	if _, err := s.spaces.FindByID(ctx, spaceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(domain.MsgSpaceElementMissing)
		}
		return nil, fmt.Errorf("find space: %w", err)
	}
	if _, err := s.elements.FindByID(ctx, p.ElementID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(domain.MsgSpaceElementMissing)
		}
		return nil, fmt.Errorf("find element: %w", err)
	}

	se.ID = uuid.NewString()
	if err := s.spaces.AddElement(ctx, &se); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(domain.MsgSpaceElementMissing)
		}
		return nil, fmt.Errorf("add space element: %w", err)
	}
	return &se, nil
}

// RemoveElement deletes the placement at exactly the given cell; other
// placements of the same element in the space are kept.
func (s *SpaceService) RemoveElement(ctx context.Context, spaceID string, p domain.Placement) error {
	n, err := s.spaces.RemoveElement(ctx, domain.SpaceElement{SpaceID: spaceID, ElementID: p.ElementID, X: p.X, Y: p.Y})
	if err != nil {
		return fmt.Errorf("remove space element: %w", err)
	}
	if n == 0 {
		return domain.NotFound(domain.MsgSpaceElementMissing)
	}
	return nil
}
