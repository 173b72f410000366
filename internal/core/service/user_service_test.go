package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports/portstest"
)

func seedUser(t *testing.T, store *portstest.Store, id string) {
	t.Helper()
	require.NoError(t, store.Users().Create(context.Background(), &domain.User{
		ID: id, Email: id + "@example.com", Username: id, Role: domain.RoleUser, CreatedAt: time.Now(),
	}))
}

func TestUserService_AssignAvatar(t *testing.T) {
	store := portstest.NewStore()
	seedUser(t, store, "u1")
	seedUser(t, store, "u2")
	avatar, err := NewAvatarService(store.Avatars(), nil, zerolog.Nop()).Create(context.Background(), "Knight", "https://x/k.png")
	require.NoError(t, err)
	svc := NewUserService(store.Users(), store.Avatars())
	ctx := context.Background()
	self := &domain.Claims{UserID: "u1", Role: domain.RoleUser}

	user, err := svc.AssignAvatar(ctx, self, "u1", avatar.ID)
	require.NoError(t, err)
	require.NotNil(t, user.AvatarID)
	assert.Equal(t, avatar.ID, *user.AvatarID)

	_, err = svc.AssignAvatar(ctx, self, "u2", avatar.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AssignAvatar(ctx, self, "u1", "dangling")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AssignAvatar(ctx, &domain.Claims{UserID: "a1", Role: domain.RoleAdmin}, "ghost", avatar.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_AvatarURLs(t *testing.T) {
	store := portstest.NewStore()
	seedUser(t, store, "u1")
	seedUser(t, store, "u2")
	avatar, err := NewAvatarService(store.Avatars(), nil, zerolog.Nop()).Create(context.Background(), "Knight", "https://x/k.png")
	require.NoError(t, err)
	svc := NewUserService(store.Users(), store.Avatars())
	ctx := context.Background()
	_, err = svc.AssignAvatar(ctx, &domain.Claims{UserID: "u1"}, "u1", avatar.ID)
	require.NoError(t, err)

	got, err := svc.AvatarURLs(ctx, []string{"u1", "u2", "u1", "ghost"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[string]*string{}
	for _, row := range got {
		byID[row.UserID] = row.ImageURL
	}
	require.NotNil(t, byID["u1"])
	assert.Equal(t, "https://x/k.png", *byID["u1"])
	assert.Nil(t, byID["u2"])

	empty, err := svc.AvatarURLs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
