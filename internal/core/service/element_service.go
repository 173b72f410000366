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

type ElementService struct {
	repo ports.ElementRepository
}

func NewElementService(repo ports.ElementRepository) *ElementService {
	return &ElementService{repo: repo}
}

func (s *ElementService) Create(ctx context.Context, in ports.CreateElementInput) (*domain.Element, error) {
	if err := validateSize(in.Width, in.Height); err != nil {
		return nil, err
	}

	element := &domain.Element{
		ID:       uuid.NewString(),
		ImageURL: in.ImageURL,
		Width:    in.Width,
		Height:   in.Height,
		Static:   in.Static,
		Created:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, element); err != nil {
		return nil, fmt.Errorf("create element: %w", err)
	}
	return element, nil
}

// Update applies only the fields present in patch.
func (s *ElementService) Update(ctx context.Context, id string, patch domain.ElementPatch) (*domain.Element, error) {
	element, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(element)
	if err := validateSize(element.Width, element.Height); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, element); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Element not found")
		}
		return nil, fmt.Errorf("update element: %w", err)
	}
	return element, nil
}

func (s *ElementService) Get(ctx context.Context, id string) (*domain.Element, error) {
	element, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Element not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find element: %w", err)
	}
	return element, nil
}

func (s *ElementService) List(ctx context.Context) ([]domain.Element, error) {
	elements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list elements: %w", err)
	}
	return elements, nil
}

func validateSize(width, height int) error {
	var violations []domain.Violation
	if width <= 0 {
		violations = append(violations, domain.Violation{Field: "width", Message: "width must be greater than 0"})
	}
	if height <= 0 {
		violations = append(violations, domain.Violation{Field: "height", Message: "height must be greater than 0"})
	}
	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}
