package portstest

import (
	"context"
	"slices"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
)

type mapRepo struct{ s *Store }

func sameMapCell(a, b domain.MapElement) bool {
	return a.MapID == b.MapID && a.ElementID == b.ElementID && a.X == b.X && a.Y == b.Y
}

// insertMapElements validates the whole batch before appending anything.
func (r mapRepo) insertMapElements(elements []domain.MapElement) error {
	pending := slices.Clone(r.s.mapElements)
	for _, me := range elements {
		if find(r.s.elements, func(e domain.Element) bool { return e.ID == me.ElementID }) < 0 {
			return domain.ErrNotFound
		}
		if find(pending, func(x domain.MapElement) bool { return sameMapCell(x, me) }) >= 0 {
			return domain.Duplicate(domain.MsgMapElementExists)
		}
		pending = append(pending, me)
	}
	r.s.mapElements = pending
	return nil
}

func (r mapRepo) Create(_ context.Context, m *domain.Map, elements []domain.MapElement) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if err := r.insertMapElements(elements); err != nil {
		return err
	}
	row := *m
	row.Elements = nil
	r.s.maps = append(r.s.maps, row)
	return nil
}

func (r mapRepo) Update(_ context.Context, m *domain.Map, added []domain.MapElement) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.maps, func(x domain.Map) bool { return x.ID == m.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	if err := r.insertMapElements(added); err != nil {
		return err
	}
	row := *m
	row.Elements = nil
	r.s.maps[i] = row
	return nil
}

func (r mapRepo) FindByID(_ context.Context, id string) (*domain.Map, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.maps, func(x domain.Map) bool { return x.ID == id })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m := r.s.maps[i]
	for _, me := range r.s.mapElements {
		if me.MapID == id {
			m.Elements = append(m.Elements, me)
		}
	}
	return &m, nil
}

func (r mapRepo) List(_ context.Context) ([]domain.Map, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.maps), nil
}

func (r mapRepo) AddElement(_ context.Context, me *domain.MapElement) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if find(r.s.maps, func(x domain.Map) bool { return x.ID == me.MapID }) < 0 {
		return domain.ErrNotFound
	}
	return r.insertMapElements([]domain.MapElement{*me})
}

func (r mapRepo) HasElement(_ context.Context, me domain.MapElement) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return find(r.s.mapElements, func(x domain.MapElement) bool { return sameMapCell(x, me) }) >= 0, nil
}

func (r mapRepo) RemoveElement(_ context.Context, me domain.MapElement) (int64, error) {
	if err := r.s.lock(); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	before := len(r.s.mapElements)
	r.s.mapElements = slices.DeleteFunc(r.s.mapElements, func(x domain.MapElement) bool { return sameMapCell(x, me) })
	return int64(before - len(r.s.mapElements)), nil
}

type spaceRepo struct{ s *Store }

func sameSpaceCell(a, b domain.SpaceElement) bool {
	return a.SpaceID == b.SpaceID && a.ElementID == b.ElementID && a.X == b.X && a.Y == b.Y
}

func (r spaceRepo) Create(_ context.Context, sp *domain.Space, elements []domain.SpaceElement) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if find(r.s.spaces, func(x domain.Space) bool { return x.Name == sp.Name }) >= 0 {
		return domain.Conflict(domain.SpaceNameTaken(sp.Name))
	}
	if find(r.s.spaces, func(x domain.Space) bool { return x.MapID == sp.MapID }) >= 0 {
		return domain.Conflict(domain.SpaceMapTaken(sp.MapID))
	}
	r.s.spaces = append(r.s.spaces, *sp)
	r.s.spaceElements = append(r.s.spaceElements, elements...)
	return nil
}

func (r spaceRepo) findBy(match func(domain.Space) bool) (*domain.Space, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.spaces, match)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	sp := r.s.spaces[i]
	return &sp, nil
}

func (r spaceRepo) FindByID(_ context.Context, id string) (*domain.Space, error) {
	return r.findBy(func(x domain.Space) bool { return x.ID == id })
}

func (r spaceRepo) FindByName(_ context.Context, name string) (*domain.Space, error) {
	return r.findBy(func(x domain.Space) bool { return x.Name == name })
}

func (r spaceRepo) FindByMapID(_ context.Context, mapID string) (*domain.Space, error) {
	return r.findBy(func(x domain.Space) bool { return x.MapID == mapID })
}

func (r spaceRepo) List(_ context.Context) ([]domain.Space, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.spaces), nil
}

func (r spaceRepo) Delete(_ context.Context, id string) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.spaces, func(x domain.Space) bool { return x.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.spaces = slices.Delete(r.s.spaces, i, i+1)
	r.s.spaceElements = slices.DeleteFunc(r.s.spaceElements, func(x domain.SpaceElement) bool { return x.SpaceID == id })
	return nil
}

func (r spaceRepo) AddElement(_ context.Context, se *domain.SpaceElement) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if find(r.s.spaces, func(x domain.Space) bool { return x.ID == se.SpaceID }) < 0 ||
		find(r.s.elements, func(x domain.Element) bool { return x.ID == se.ElementID }) < 0 {
		return domain.ErrNotFound
	}
	if find(r.s.spaceElements, func(x domain.SpaceElement) bool { return sameSpaceCell(x, *se) }) >= 0 {
		return domain.Duplicate(domain.MsgSpaceElementExists)
	}
	r.s.spaceElements = append(r.s.spaceElements, *se)
	return nil
}

func (r spaceRepo) HasElement(_ context.Context, se domain.SpaceElement) (bool, error) {
	if err := r.s.lock(); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	return find(r.s.spaceElements, func(x domain.SpaceElement) bool { return sameSpaceCell(x, se) }) >= 0, nil
}

func (r spaceRepo) RemoveElement(_ context.Context, se domain.SpaceElement) (int64, error) {
	if err := r.s.lock(); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()
	before := len(r.s.spaceElements)
	r.s.spaceElements = slices.DeleteFunc(r.s.spaceElements, func(x domain.SpaceElement) bool { return sameSpaceCell(x, se) })
	return int64(before - len(r.s.spaceElements)), nil
}
