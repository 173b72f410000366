package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

var owner = &domain.Claims{UserID: "owner-1", Role: domain.RoleUser, Username: "owner"}

func (f *catalogFixture) mapWithTree(t *testing.T, name string) (*domain.Map, *domain.Element) {
	t.Helper()
	tree := f.element(t)
	m, err := f.maps.Create(context.Background(), ports.CreateMapInput{
		Name: name, Thumbnail: "https://x/" + name + ".png", Width: 100, Height: 200,
		DefaultElements: []domain.Placement{{ElementID: tree.ID, X: 1, Y: 2}},
	})
	require.NoError(t, err)
	return m, tree
}

func TestSpaceService_CreateCopiesMap(t *testing.T) {
	f := newCatalogFixture()
	m, _ := f.mapWithTree(t, "forest")
	ctx := context.Background()

	space, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "100x200", MapID: m.ID})
	require.NoError(t, err)
	assert.Equal(t, "100x200", space.Dimensions())
	require.NotNil(t, space.Thumbnail)
	assert.Equal(t, m.Thumbnail, *space.Thumbnail)
	assert.Equal(t, owner.UserID, space.CreatorID)
	assert.Equal(t, 1, f.store.Counts()["space_elements"])

	spaces, err := f.spaces.List(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.Equal(t, "100x200", spaces[0].Dimensions())
}

func TestSpaceService_CreateConflicts(t *testing.T) {
	f := newCatalogFixture()
	forest, _ := f.mapWithTree(t, "forest")
	desert, _ := f.mapWithTree(t, "desert")
	ctx := context.Background()
	_, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: forest.ID})
	require.NoError(t, err)

	_, err = f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: forest.ID})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, `A space with the name "Lobby" already exists`, domain.Message(err))

	_, err = f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Hall", Dimensions: "10x10", MapID: forest.ID})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, `A space with the mapId "`+forest.ID+`" already exists`, domain.Message(err))

	_, err = f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Hall", Dimensions: "10x10", MapID: desert.ID})
	require.NoError(t, err)
}

func TestSpaceService_CreateValidation(t *testing.T) {
	f := newCatalogFixture()
	m, _ := f.mapWithTree(t, "forest")
	ctx := context.Background()

	_, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "100by200", MapID: m.ID})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: "missing"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.spaces.Create(ctx, nil, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: m.ID})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	assert.Equal(t, 0, f.store.Counts()["spaces"])
}

func TestSpaceService_ConcurrentSameName(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	var mapIDs []string
	for _, name := range []string{"a", "b", "c", "d"} {
		m, _ := f.mapWithTree(t, name)
		mapIDs = append(mapIDs, m.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(mapIDs))
	for i, id := range mapIDs {
		i, id := i, id
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Arena", Dimensions: "10x10", MapID: id})
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.Counts()["spaces"])
}

func TestSpaceService_Delete(t *testing.T) {
	f := newCatalogFixture()
	m, _ := f.mapWithTree(t, "forest")
	ctx := context.Background()
	space, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: m.ID})
	require.NoError(t, err)

	err = f.spaces.Delete(ctx, &domain.Claims{UserID: "intruder", Role: domain.RoleUser}, space.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.spaces.Delete(ctx, owner, space.ID))
	counts := f.store.Counts()
	assert.Equal(t, 0, counts["spaces"])
	assert.Equal(t, 0, counts["space_elements"])

	err = f.spaces.Delete(ctx, owner, space.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpaceService_RemoveElementIsCellScoped(t *testing.T) {
	f := newCatalogFixture()
	m, tree := f.mapWithTree(t, "forest")
	ctx := context.Background()
	space, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: m.ID})
	require.NoError(t, err)

	_, err = f.spaces.AddElement(ctx, space.ID, domain.Placement{ElementID: tree.ID, X: 1, Y: 2})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, domain.MsgSpaceElementExists, domain.Message(err))

	_, err = f.spaces.AddElement(ctx, space.ID, domain.Placement{ElementID: tree.ID, X: 7, Y: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.Counts()["space_elements"])

	require.NoError(t, f.spaces.RemoveElement(ctx, space.ID, domain.Placement{ElementID: tree.ID, X: 7, Y: 7}))
	assert.Equal(t, 1, f.store.Counts()["space_elements"])

	err = f.spaces.RemoveElement(ctx, space.ID, domain.Placement{ElementID: tree.ID, X: 7, Y: 7})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpaceService_AddElementUnknownElement(t *testing.T) {
	f := newCatalogFixture()
	m, _ := f.mapWithTree(t, "forest")
	ctx := context.Background()
	space, err := f.spaces.Create(ctx, owner, ports.CreateSpaceInput{Name: "Lobby", Dimensions: "10x10", MapID: m.ID})
	require.NoError(t, err)

	_, err = f.spaces.AddElement(ctx, space.ID, domain.Placement{ElementID: "ghost", X: 0, Y: 0})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
