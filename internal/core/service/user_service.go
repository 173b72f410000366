package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

type UserService struct {
	users   ports.UserRepository
	avatars ports.AvatarRepository
}

func NewUserService(users ports.UserRepository, avatars ports.AvatarRepository) *UserService {
	return &UserService{users: users, avatars: avatars}
}

// AssignAvatar sets the avatar of userID. Users may only change their own
// avatar unless they are administrators, and the avatar must exist.
func (s *UserService) AssignAvatar(ctx context.Context, actor *domain.Claims, userID, avatarID string) (*domain.User, error) {
	if !actor.CanActFor(userID) {
		return nil, domain.Forbidden("You can only change your own avatar")
	}

	if _, err := s.avatars.FindByID(ctx, avatarID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Avatar not found")
		}
		return nil, fmt.Errorf("find avatar: %w", err)
	}

	user, err := s.users.SetAvatar(ctx, userID, avatarID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("set avatar: %w", err)
	}
	return user, nil
}

func (s *UserService) AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error) {
	ids := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []domain.UserAvatar{}, nil
	}

	avatars, err := s.users.AvatarURLs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup avatars: %w", err)
	}
	return avatars, nil
}
