// Package portstest provides in-memory implementations of the repository
// ports. They enforce the same uniqueness rules as the real stores and are
// meant for service and router tests.
package portstest

import (
	"context"
	"slices"
	"sync"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
)

// Store is a shared in-memory database. Err, when set, is returned by every
// operation.
type Store struct {
	mu            sync.Mutex
	users         []domain.User
	avatars       []domain.Avatar
	elements      []domain.Element
	maps          []domain.Map
	mapElements   []domain.MapElement
	spaces        []domain.Space
	spaceElements []domain.SpaceElement

	Err error
}

func NewStore() *Store { return &Store{} }

func (s *Store) Users() ports.UserRepository { return userRepo{s} }
func (s *Store) Avatars() ports.AvatarRepository { return avatarRepo{s} }
func (s *Store) Elements() ports.ElementRepository { return elementRepo{s} }
func (s *Store) Maps() ports.MapRepository { return mapRepo{s} }
func (s *Store) Spaces() ports.SpaceRepository { return spaceRepo{s} }

// Counts reports the number of stored rows per table, for asserting that a
// rejected request wrote nothing.
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return map[string]int{
		"users":          len(s.users),
		"avatars":        len(s.avatars),
		"elements":       len(s.elements),
		"maps":           len(s.maps),
		"map_elements":   len(s.mapElements),
		"spaces":         len(s.spaces),
		"space_elements": len(s.spaceElements),
	}
}

func (s *Store) lock() error {
	s.mu.Lock()
	if s.Err != nil {
		s.mu.Unlock()
		return s.Err
	}
	return nil
}

func find[T any](rows []T, match func(T) bool) int {
	return slices.IndexFunc(rows, match)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if find(r.s.users, func(x domain.User) bool { return x.Email == u.Email }) >= 0 {
		return domain.Conflict(domain.MsgEmailTaken)
	}
	if find(r.s.users, func(x domain.User) bool { return x.Username == u.Username }) >= 0 {
		return domain.Conflict(domain.MsgUsernameTaken)
	}
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r userRepo) findBy(match func(domain.User) bool) (*domain.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.users, match)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	u := r.s.users[i]
	return &u, nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return r.findBy(func(u domain.User) bool { return u.ID == id })
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.findBy(func(u domain.User) bool { return u.Email == email })
}

func (r userRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.findBy(func(u domain.User) bool { return u.Username == username })
}

func (r userRepo) SetAvatar(_ context.Context, userID, avatarID string) (*domain.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.users, func(u domain.User) bool { return u.ID == userID })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	id := avatarID
	r.s.users[i].AvatarID = &id
	u := r.s.users[i]
	return &u, nil
}

func (r userRepo) AvatarURLs(_ context.Context, userIDs []string) ([]domain.UserAvatar, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]domain.UserAvatar, 0, len(userIDs))
	for _, u := range r.s.users {
		if !slices.Contains(userIDs, u.ID) {
			continue
		}
		row := domain.UserAvatar{UserID: u.ID}
		if u.AvatarID != nil {
			if i := find(r.s.avatars, func(a domain.Avatar) bool { return a.ID == *u.AvatarID }); i >= 0 {
				url := r.s.avatars[i].ImageURL
				row.ImageURL = &url
			}
		}
		out = append(out, row)
	}
	return out, nil
}

type avatarRepo struct{ s *Store }

func (r avatarRepo) Create(_ context.Context, a *domain.Avatar) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.avatars = append(r.s.avatars, *a)
	return nil
}

func (r avatarRepo) Update(_ context.Context, a *domain.Avatar) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.avatars, func(x domain.Avatar) bool { return x.ID == a.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.avatars[i] = *a
	return nil
}

func (r avatarRepo) FindByID(_ context.Context, id string) (*domain.Avatar, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.avatars, func(x domain.Avatar) bool { return x.ID == id })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	a := r.s.avatars[i]
	return &a, nil
}

func (r avatarRepo) List(_ context.Context) ([]domain.Avatar, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.avatars), nil
}

type elementRepo struct{ s *Store }

func (r elementRepo) Create(_ context.Context, e *domain.Element) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	r.s.elements = append(r.s.elements, *e)
	return nil
}

func (r elementRepo) Update(_ context.Context, e *domain.Element) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.elements, func(x domain.Element) bool { return x.ID == e.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.elements[i] = *e
	return nil
}

func (r elementRepo) FindByID(_ context.Context, id string) (*domain.Element, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	i := find(r.s.elements, func(x domain.Element) bool { return x.ID == id })
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	e := r.s.elements[i]
	return &e, nil
}

func (r elementRepo) List(_ context.Context) ([]domain.Element, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return slices.Clone(r.s.elements), nil
}
