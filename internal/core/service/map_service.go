package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type MapService struct {
	maps     ports.MapRepository
	elements ports.ElementRepository
}

func NewMapService(maps ports.MapRepository, elements ports.ElementRepository) *MapService {
	return &MapService{maps: maps, elements: elements}
}

// Create stores the map together with its default placements in one write.
func (s *MapService) Create(ctx context.Context, in ports.CreateMapInput) (*domain.Map, error) {
	if err := validateSize(in.Width, in.Height); err != nil {
		return nil, err
	}
	if err := s.checkPlacements(ctx, in.DefaultElements); err != nil {
		return nil, err
	}

	m := &domain.Map{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Thumbnail: in.Thumbnail,
		Width:     in.Width,
		Height:    in.Height,
		Created:   time.Now().UTC(),
	}
	m.Elements = mapElements(m.ID, in.DefaultElements)

	if err := s.maps.Create(ctx, m, m.Elements); err != nil {
		return nil, fmt.Errorf("create map: %w", err)
	}
	return m, nil
}

// Update applies the provided fields and appends any new placements.
func (s *MapService) Update(ctx context.Context, id string, patch domain.MapPatch) (*domain.Map, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(m)
	if err := validateSize(m.Width, m.Height); err != nil {
		return nil, err
	}
	if err := s.checkPlacements(ctx, patch.Elements); err != nil {
		return nil, err
	}

	added := mapElements(m.ID, patch.Elements)
	if err := s.maps.Update(ctx, m, added); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Map not found")
		}
		return nil, fmt.Errorf("update map: %w", err)
	}
	m.Elements = append(m.Elements, added...)
	return m, nil
}

func (s *MapService) Get(ctx context.Context, id string) (*domain.Map, error) {
	m, err := s.maps.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Map not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find map: %w", err)
	}
	return m, nil
}

func (s *MapService) List(ctx context.Context) ([]domain.Map, error) {
	maps, err := s.maps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list maps: %w", err)
	}
	return maps, nil
}

func (s *MapService) AddElement(ctx context.Context, mapID string, p domain.Placement) (*domain.MapElement, error) {
	me := domain.MapElement{MapID: mapID, ElementID: p.ElementID, X: p.X, Y: p.Y}

	exists, err := s.maps.HasElement(ctx, me)
	if err != nil {
		return nil, fmt.Errorf("check map element: %w", err)
	}
	if exists {
		return nil, domain.Duplicate(domain.MsgMapElementExists)
	}
	if err := s.requireMapAndElement(ctx, mapID, p.ElementID); err != nil {
		return nil, err
	}

	me.ID = uuid.NewString()
	if err := s.maps.AddElement(ctx, &me); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(domain.MsgMapElementMissing)
		}
		return nil, fmt.Errorf("add map element: %w", err)
	}
	return &me, nil
}

// RemoveElement deletes the placement at exactly the given cell.
func (s *MapService) RemoveElement(ctx context.Context, mapID string, p domain.Placement) error {
	n, err := s.maps.RemoveElement(ctx, domain.MapElement{MapID: mapID, ElementID: p.ElementID, X: p.X, Y: p.Y})
	if err != nil {
		return fmt.Errorf("remove map element: %w", err)
	}
	if n == 0 {
		return domain.NotFound(domain.MsgMapElementMissing)
	}
	return nil
}

func (s *MapService) requireMapAndElement(ctx context.Context, mapID, elementID string) error {
	if _, err := s.maps.FindByID(ctx, mapID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound(domain.MsgMapElementMissing)
		}
		return fmt.Errorf("find map: %w", err)
	}
	if _, err := s.elements.FindByID(ctx, elementID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound(domain.MsgMapElementMissing)
		}
		return fmt.Errorf("find element: %w", err)
	}
	return nil
}

// checkPlacements rejects repeated cells and unknown elements before anything
// is written.
func (s *MapService) checkPlacements(ctx context.Context, ps []domain.Placement) error {
	if _, dup := domain.DuplicatePlacement(ps); dup {
		return domain.Duplicate(domain.MsgMapElementExists)
	}
	checked := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		if _, ok := checked[p.ElementID]; ok {
			continue
		}
		if _, err := s.elements.FindByID(ctx, p.ElementID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NotFound(fmt.Sprintf("Element %q not found", p.ElementID))
			}
			return fmt.Errorf("find element: %w", err)
		}
		checked[p.ElementID] = struct{}{}
	}
	return nil
}

func mapElements(mapID string, ps []domain.Placement) []domain.MapElement {
	out := make([]domain.MapElement, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.MapElement{
			ID:        uuid.NewString(),
			MapID:     mapID,
			ElementID: p.ElementID,
			X:         p.X,
			Y:         p.Y,
		})
	}
	return out
}
