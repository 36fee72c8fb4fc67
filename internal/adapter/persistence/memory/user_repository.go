package memory

import (
	"context"
	"sort"
	"strings"

	"topspot/internal/domain/entities"
	"topspot/internal/usecase/interfaces"
)

type UserRepository struct{ s *Store }

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, u entities.User) (entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; ok {
		return entities.User{}, errDuplicateID
	}
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return entities.User{}, errEmailTaken
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneUser(r.s.users[id]), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return entities.User{}, nil
}

func (r *UserRepository) Update(_ context.Context, u entities.User) (entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return entities.User{}, nil
	}
	r.s.users[u.ID] = cloneUser(u)
	return u, nil
}

func (r *UserRepository) ListByRoles(_ context.Context, roles ...entities.Role) ([]entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	want := map[entities.Role]bool{}
	for _, role := range roles {
		want[role] = true
	}
	out := []entities.User{}
	for _, u := range r.s.users {
		if len(want) == 0 || want[u.Role] {
			out = append(out, cloneUser(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
