package memory

import (
	"context"
	"slices"

	"hireova-backend/internal/domain"

	"github.com/google/uuid"
)

type organizationRepo struct {
	s *Store
}

func copyOrganization(o *domain.Organization) *domain.Organization {
	c := *o
	c.Domain = cloneString(o.Domain)
	c.Industry = cloneString(o.Industry)
	c.Size = cloneString(o.Size)
	return &c
}

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	return r.s.write(ctx, func() error {
		r.s.orgs[org.ID] = copyOrganization(org)
		return nil
	})
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var out *domain.Organization
	err := r.s.read(ctx, func() error {
		o, ok := r.s.orgs[id]
		if !ok {
			return notFound("Organization")
		}
		out = copyOrganization(o)
		return nil
	})
	return out, err
}

func (r *organizationRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Organization, int64, error) {
	var all []domain.Organization
	err := r.s.read(ctx, func() error {
		for _, o := range r.s.orgs {
			all = append(all, *copyOrganization(o))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.Organization) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *organizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.orgs[org.ID]
		if !ok {
			return notFound("Organization")
		}
		if cur.Version != org.Version {
			return conflict("Organization")
		}
		next := copyOrganization(org)
		next.CreatedAt = cur.CreatedAt
		next.Version = cur.Version + 1
		r.s.orgs[org.ID] = next
		org.Version = next.Version
		return nil
	})
}

// Delete cascades to jobs and their applications and detaches users.
func (r *organizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.orgs[id]; !ok {
			return notFound("Organization")
		}
		delete(r.s.orgs, id)

		for jobID, job := range r.s.jobs {
			if job.OrganizationID == id {
				r.s.deleteJobLocked(jobID)
			}
		}
		for userID, u := range r.s.users {
			if u.OrganizationID != nil && *u.OrganizationID == id {
				detached := copyUser(u)
				detached.OrganizationID = nil
				r.s.users[userID] = detached
			}
		}
		return nil
	})
}
