package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

// AvatarService manages the avatar catalog. The cache is optional.
type AvatarService struct {
	repo  ports.AvatarRepository
	cache ports.AvatarCache
	log   zerolog.Logger
}

func NewAvatarService(repo ports.AvatarRepository, cache ports.AvatarCache, log zerolog.Logger) *AvatarService {
	return &AvatarService{repo: repo, cache: cache, log: log}
}

func (s *AvatarService) List(ctx context.Context) ([]domain.Avatar, error) {
	if s.cache != nil {
		avatars, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("avatar cache read failed")
		} else if ok {
			return avatars, nil
		}
	}

	avatars, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list avatars: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, avatars); err != nil {
			s.log.Warn().Err(err).Msg("avatar cache write failed")
		}
	}
	return avatars, nil
}

func (s *AvatarService) Create(ctx context.Context, name, imageURL string) (*domain.Avatar, error) {
	avatar := &domain.Avatar{ID: uuid.NewString(), Name: name, ImageURL: imageURL}
	if err := s.repo.Create(ctx, avatar); err != nil {
		return nil, fmt.Errorf("create avatar: %w", err)
	}
	s.invalidate(ctx)
	return avatar, nil
}

func (s *AvatarService) Update(ctx context.Context, avatar domain.Avatar) (*domain.Avatar, error) {
	if err := s.repo.Update(ctx, &avatar); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Avatar not found")
		}
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	s.invalidate(ctx)
	return &avatar, nil
}

func (s *AvatarService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("avatar cache invalidation failed")
	}
}
