package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

type UserService interface {
	AssignAvatar(ctx context.Context, actor *domain.Claims, userID, avatarID string) (*domain.User, error)
	AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error)
}
