package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports/portstest"
)

func ptr[T any](v T) *T { return &v }

func TestElementService_PartialUpdate(t *testing.T) {
	store := portstest.NewStore()
	svc := NewElementService(store.Elements())
	ctx := context.Background()

	created, err := svc.Create(ctx, ports.CreateElementInput{ImageURL: "https://x/e.png", Width: 32, Height: 32, Static: true})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = svc.Update(ctx, created.ID, domain.ElementPatch{Width: ptr(64)})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Width)
	assert.Equal(t, 32, got.Height)
	assert.Equal(t, "https://x/e.png", got.ImageURL)
	assert.True(t, got.Static)
}

func TestElementService_UpdateRejectsNonPositiveSize(t *testing.T) {
	store := portstest.NewStore()
	svc := NewElementService(store.Elements())
	ctx := context.Background()
	created, err := svc.Create(ctx, ports.CreateElementInput{ImageURL: "https://x/e.png", Width: 32, Height: 32})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, domain.ElementPatch{Height: ptr(0)})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 32, got.Height)
}

func TestElementService_UpdateUnknown(t *testing.T) {
	svc := NewElementService(portstest.NewStore().Elements())

	_, err := svc.Update(context.Background(), "missing", domain.ElementPatch{Width: ptr(10)})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvatarService_ListUsesCache(t *testing.T) {
	store := portstest.NewStore()
	cache := &portstest.AvatarCache{}
	svc := NewAvatarService(store.Avatars(), cache, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Knight", "https://x/knight.png")
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Hits)

	_, err = svc.Create(ctx, "Mage", "https://x/mage.png")
	require.NoError(t, err)

	third, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
}

func TestAvatarService_UpdateUnknown(t *testing.T) {
	svc := NewAvatarService(portstest.NewStore().Avatars(), nil, zerolog.Nop())

	_, err := svc.Update(context.Background(), domain.Avatar{ID: "missing", Name: "x", ImageURL: "https://x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

type catalogFixture struct {
	store    *portstest.Store
	elements *ElementService
	maps     *MapService
	spaces   *SpaceService
}

func newCatalogFixture() *catalogFixture {
	store := portstest.NewStore()
	return &catalogFixture{
		store:    store,
		elements: NewElementService(store.Elements()),
		maps:     NewMapService(store.Maps(), store.Elements()),
		spaces:   NewSpaceService(store.Spaces(), store.Maps(), store.Elements(), zerolog.Nop()),
	}
}

func (f *catalogFixture) element(t *testing.T) *domain.Element {
	t.Helper()
	e, err := f.elements.Create(context.Background(), ports.CreateElementInput{ImageURL: "https://x/tree.png", Width: 16, Height: 16})
	require.NoError(t, err)
	return e
}

func TestMapService_CreateWithDefaults(t *testing.T) {
	f := newCatalogFixture()
	tree := f.element(t)

	m, err := f.maps.Create(context.Background(), ports.CreateMapInput{
		Name: "Forest", Thumbnail: "https://x/forest.png", Width: 100, Height: 100,
		DefaultElements: []domain.Placement{{ElementID: tree.ID, X: 1, Y: 1}, {ElementID: tree.ID, X: 2, Y: 1}},
	})
	require.NoError(t, err)

	got, err := f.maps.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Len(t, got.Elements, 2)
}

func TestMapService_CreateIsAllOrNothing(t *testing.T) {
	f := newCatalogFixture()
	tree := f.element(t)
	ctx := context.Background()

	_, err := f.maps.Create(ctx, ports.CreateMapInput{
		Name: "Forest", Thumbnail: "https://x/forest.png", Width: 100, Height: 100,
		DefaultElements: []domain.Placement{{ElementID: tree.ID, X: 1, Y: 1}, {ElementID: "ghost", X: 2, Y: 1}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.maps.Create(ctx, ports.CreateMapInput{
		Name: "Forest", Thumbnail: "https://x/forest.png", Width: 100, Height: 100,
		DefaultElements: []domain.Placement{{ElementID: tree.ID, X: 1, Y: 1}, {ElementID: tree.ID, X: 1, Y: 1}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	counts := f.store.Counts()
	assert.Equal(t, 0, counts["maps"])
	assert.Equal(t, 0, counts["map_elements"])
}

func TestMapService_UpdateAppendsPlacements(t *testing.T) {
	f := newCatalogFixture()
	tree := f.element(t)
	ctx := context.Background()
	m, err := f.maps.Create(ctx, ports.CreateMapInput{
		Name: "Forest", Thumbnail: "https://x/forest.png", Width: 100, Height: 100,
		DefaultElements: []domain.Placement{{ElementID: tree.ID, X: 1, Y: 1}},
	})
	require.NoError(t, err)

	updated, err := f.maps.Update(ctx, m.ID, domain.MapPatch{
		Name:     ptr("Dark Forest"),
		Elements: []domain.Placement{{ElementID: tree.ID, X: 5, Y: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Dark Forest", updated.Name)
	assert.Equal(t, 100, updated.Width)

	got, err := f.maps.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dark Forest", got.Name)
	assert.Len(t, got.Elements, 2)
}

func TestMapService_PlacementLifecycle(t *testing.T) {
	f := newCatalogFixture()
	tree := f.element(t)
	ctx := context.Background()
	m, err := f.maps.Create(ctx, ports.CreateMapInput{Name: "Plains", Thumbnail: "https://x/p.png", Width: 50, Height: 50})
	require.NoError(t, err)
	cell := domain.Placement{ElementID: tree.ID, X: 3, Y: 4}

	me, err := f.maps.AddElement(ctx, m.ID, cell)
	require.NoError(t, err)
	assert.Equal(t, m.ID, me.MapID)

	for i := 0; i < 3; i++ {
		_, err = f.maps.AddElement(ctx, m.ID, cell)
		require.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Equal(t, domain.MsgMapElementExists, domain.Message(err))
	}
	assert.Equal(t, 1, f.store.Counts()["map_elements"])

	require.NoError(t, f.maps.RemoveElement(ctx, m.ID, cell))
	err = f.maps.RemoveElement(ctx, m.ID, cell)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.MsgMapElementMissing, domain.Message(err))
}

func TestMapService_AddElementUnknownMap(t *testing.T) {
	f := newCatalogFixture()
	tree := f.element(t)

	_, err := f.maps.AddElement(context.Background(), "nope", domain.Placement{ElementID: tree.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
