package memory

import (
	"context"
	"slices"

	"hireova-backend/internal/domain"

	"github.com/google/uuid"
)

type userRepo struct {
	s *Store
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.FullName = cloneString(u.FullName)
	if u.OrganizationID != nil {
		id := *u.OrganizationID
		c.OrganizationID = &id
	}
	return &c
}

func (s *Store) checkUserLocked(u *domain.User) error {
	for id, other := range s.users {
		if id != u.ID && other.Email == u.Email {
			return uniqueViolation(domain.ConstraintUserEmail)
		}
	}
	if u.OrganizationID != nil {
		if _, ok := s.orgs[*u.OrganizationID]; !ok {
			return fkViolation(domain.ConstraintUserOrganization)
		}
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return r.s.write(ctx, func() error {
		if err := r.s.checkUserLocked(user); err != nil {
			return err
		}
		r.s.users[user.ID] = copyUser(user)
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var out *domain.User
	err := r.s.read(ctx, func() error {
		u, ok := r.s.users[id]
		if !ok {
			return notFound("User")
		}
		out = copyUser(u)
		return nil
	})
	return out, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out *domain.User
	err := r.s.read(ctx, func() error {
		for _, u := range r.s.users {
			if u.Email == email {
				out = copyUser(u)
				return nil
			}
		}
		return notFound("User")
	})
	return out, err
}

func (r *userRepo) Fetch(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	var all []domain.User
	err := r.s.read(ctx, func() error {
		for _, u := range r.s.users {
			if filter.OrganizationID != nil && (u.OrganizationID == nil || *u.OrganizationID != *filter.OrganizationID) {
				continue
			}
			all = append(all, *copyUser(u))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.User) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.users[user.ID]
		if !ok {
			return notFound("User")
		}
		if cur.Version != user.Version {
			return conflict("User")
		}
		if err := r.s.checkUserLocked(user); err != nil {
			return err
		}
		next := copyUser(user)
		next.Email = cur.Email
		next.CreatedAt = cur.CreatedAt
		next.Version = cur.Version + 1
		r.s.users[user.ID] = next
		user.Version = next.Version
		return nil
	})
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.users[id]; !ok {
			return notFound("User")
		}
		delete(r.s.users, id)
		return nil
	})
}
