package memory

import (
	"context"
	"slices"

	"hireova-backend/internal/domain"

	"github.com/google/uuid"
)

type candidateRepo struct {
	s *Store
}

func copyCandidate(c *domain.Candidate) *domain.Candidate {
	out := *c
	out.Name = cloneString(c.Name)
	out.Phone = cloneString(c.Phone)
	out.Location = cloneString(c.Location)
	out.LinkedinURL = cloneString(c.LinkedinURL)
	out.LinkedinID = cloneString(c.LinkedinID)
	out.ResumeURL = cloneString(c.ResumeURL)
	out.ResumeText = cloneString(c.ResumeText)
	out.ParsedData = cloneJSON(c.ParsedData)
	out.ExperienceYears = cloneString(c.ExperienceYears)
	// skills is NOT NULL DEFAULT '{}' in the schema
	out.Skills = slices.Clone(c.Skills)
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return &out
}

func (s *Store) checkCandidateLocked(c *domain.Candidate) error {
	if c.LinkedinID == nil {
		return nil
	}
	for id, other := range s.candidates {
		if id != c.ID && other.LinkedinID != nil && *other.LinkedinID == *c.LinkedinID {
			return uniqueViolation(domain.ConstraintCandidateLinkedinID)
		}
	}
	return nil
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return r.s.write(ctx, func() error {
		if err := r.s.checkCandidateLocked(c); err != nil {
			return err
		}
		r.s.candidates[c.ID] = copyCandidate(c)
		return nil
	})
}

func (r *candidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	var out *domain.Candidate
	err := r.s.read(ctx, func() error {
		c, ok := r.s.candidates[id]
		if !ok {
			return notFound("Candidate")
		}
		out = copyCandidate(c)
		return nil
	})
	return out, err
}

func (r *candidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	var out *domain.Candidate
	err := r.s.read(ctx, func() error {
		for _, c := range r.s.candidates {
			if c.Email != email {
				continue
			}
			// newest wins; ties break on the larger id like the SQL query
			if out == nil || c.CreatedAt.After(out.CreatedAt) ||
				(c.CreatedAt.Equal(out.CreatedAt) && c.ID.String() > out.ID.String()) {
				out = copyCandidate(c)
			}
		}
		if out == nil {
			return notFound("Candidate")
		}
		return nil
	})
	return out, err
}

func (r *candidateRepo) GetByLinkedinID(ctx context.Context, linkedinID string) (*domain.Candidate, error) {
	var out *domain.Candidate
	err := r.s.read(ctx, func() error {
		for _, c := range r.s.candidates {
			if c.LinkedinID != nil && *c.LinkedinID == linkedinID {
				out = copyCandidate(c)
				return nil
			}
		}
		return notFound("Candidate")
	})
	return out, err
}

func (r *candidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter, limit, offset int) ([]domain.Candidate, int64, error) {
	var all []domain.Candidate
	err := r.s.read(ctx, func() error {
		for _, c := range r.s.candidates {
			if filter.Source != nil && c.Source != *filter.Source {
				continue
			}
			if filter.Skill != nil && !slices.Contains(c.Skills, *filter.Skill) {
				continue
			}
			all = append(all, *copyCandidate(c))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.Candidate) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.candidates[c.ID]
		if !ok {
			return notFound("Candidate")
		}
		if cur.Version != c.Version {
			return conflict("Candidate")
		}
		if err := r.s.checkCandidateLocked(c); err != nil {
			return err
		}
		next := copyCandidate(c)
		next.Email = cur.Email
		next.CreatedAt = cur.CreatedAt
		next.Version = cur.Version + 1
		r.s.candidates[c.ID] = next
		c.Version = next.Version
		return nil
	})
}

// Delete cascades to the candidate's applications.
func (r *candidateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.candidates[id]; !ok {
			return notFound("Candidate")
		}
		delete(r.s.candidates, id)
		for appID, app := range r.s.applications {
			if app.CandidateID == id {
				delete(r.s.applications, appID)
			}
		}
		return nil
	})
}
