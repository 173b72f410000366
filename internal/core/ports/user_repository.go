package ports

import (
	"context"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
// Lookups return domain.ErrNotFound when no row matches; a taken email or
// username is reported as a domain.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// SetAvatar points the user at avatarID and returns the updated row.
	SetAvatar(ctx context.Context, userID, avatarID string) (*domain.User, error)
	// AvatarURLs resolves each known user id to its avatar image. Unknown
	// ids are omitted; users without an avatar get a nil ImageURL.
	AvatarURLs(ctx context.Context, userIDs []string) ([]domain.UserAvatar, error)
}
