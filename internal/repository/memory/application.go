package memory

import (
	"context"
	"slices"

	"hireova-backend/internal/domain"

	"github.com/google/uuid"
)

type applicationRepo struct {
	s *Store
}

func copyApplication(a *domain.Application) *domain.Application {
	c := *a
	if a.AIScore != nil {
		v := *a.AIScore
		c.AIScore = &v
	}
	c.AIAnalysis = cloneJSON(a.AIAnalysis)
	c.AIScreeningResult = cloneJSON(a.AIScreeningResult)
	c.Notes = cloneString(a.Notes)
	return &c
}

func (s *Store) checkApplicationLocked(a *domain.Application) error {
	if _, ok := s.jobs[a.JobID]; !ok {
		return fkViolation(domain.ConstraintApplicationJob)
	}
	if _, ok := s.candidates[a.CandidateID]; !ok {
		return fkViolation(domain.ConstraintApplicationCandidate)
	}
	if a.AIScore != nil && (*a.AIScore < 0 || *a.AIScore > 100) {
		return checkViolation(domain.ConstraintApplicationAIScore)
	}
	for id, other := range s.applications {
		if id != a.ID && other.JobID == a.JobID && other.CandidateID == a.CandidateID {
			return uniqueViolation(domain.ConstraintApplicationUnique)
		}
	}
	return nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return r.s.write(ctx, func() error {
		if err := r.s.checkApplicationLocked(app); err != nil {
			return err
		}
		r.s.applications[app.ID] = copyApplication(app)
		return nil
	})
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var out *domain.Application
	err := r.s.read(ctx, func() error {
		a, ok := r.s.applications[id]
		if !ok {
			return notFound("Application")
		}
		out = copyApplication(a)
		return nil
	})
	return out, err
}

func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	var all []domain.Application
	err := r.s.read(ctx, func() error {
		for _, a := range r.s.applications {
			if filter.JobID != nil && a.JobID != *filter.JobID {
				continue
			}
			if filter.CandidateID != nil && a.CandidateID != *filter.CandidateID {
				continue
			}
			if filter.Status != nil && a.Status != *filter.Status {
				continue
			}
			all = append(all, *copyApplication(a))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.Application) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.applications[app.ID]
		if !ok {
			return notFound("Application")
		}
		if cur.Version != app.Version {
			return conflict("Application")
		}
		next := copyApplication(app)
		next.JobID = cur.JobID
		next.CandidateID = cur.CandidateID
		next.CreatedAt = cur.CreatedAt
		if err := r.s.checkApplicationLocked(next); err != nil {
			return err
		}
		next.Version = cur.Version + 1
		r.s.applications[app.ID] = next
		app.Version = next.Version
		return nil
	})
}

func (r *applicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.applications[id]; !ok {
			return notFound("Application")
		}
		delete(r.s.applications, id)
		return nil
	})
}
