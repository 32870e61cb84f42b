package memory

import (
	"context"
	"slices"

	"hireova-backend/internal/domain"

	"github.com/google/uuid"
)

type jobRepo struct {
	s *Store
}

func copyJob(j *domain.Job) *domain.Job {
	c := *j
	c.Description = cloneString(j.Description)
	c.Requirements = cloneJSON(j.Requirements)
	c.Location = cloneString(j.Location)
	c.JobType = cloneString(j.JobType)
	c.ExperienceLevel = cloneString(j.ExperienceLevel)
	if j.SalaryMin != nil {
		v := *j.SalaryMin
		c.SalaryMin = &v
	}
	if j.SalaryMax != nil {
		v := *j.SalaryMax
		c.SalaryMax = &v
	}
	return &c
}

func (s *Store) checkJobLocked(j *domain.Job) error {
	if _, ok := s.orgs[j.OrganizationID]; !ok {
		return fkViolation(domain.ConstraintJobOrganization)
	}
	if !j.SalaryRangeValid() {
		return checkViolation(domain.ConstraintJobSalaryRange)
	}
	return nil
}

// deleteJobLocked removes a job and its applications.
func (s *Store) deleteJobLocked(id uuid.UUID) {
	delete(s.jobs, id)
	for appID, app := range s.applications {
		if app.JobID == id {
			delete(s.applications, appID)
		}
	}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	return r.s.write(ctx, func() error {
		if err := r.s.checkJobLocked(job); err != nil {
			return err
		}
		r.s.jobs[job.ID] = copyJob(job)
		return nil
	})
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var out *domain.Job
	err := r.s.read(ctx, func() error {
		j, ok := r.s.jobs[id]
		if !ok {
			return notFound("Job")
		}
		out = copyJob(j)
		return nil
	})
	return out, err
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	var all []domain.Job
	err := r.s.read(ctx, func() error {
		for _, j := range r.s.jobs {
			if filter.OrganizationID != nil && j.OrganizationID != *filter.OrganizationID {
				continue
			}
			if filter.Status != nil && j.Status != *filter.Status {
				continue
			}
			all = append(all, *copyJob(j))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	slices.SortFunc(all, func(a, b domain.Job) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	return r.s.write(ctx, func() error {
		cur, ok := r.s.jobs[job.ID]
		if !ok {
			return notFound("Job")
		}
		if cur.Version != job.Version {
			return conflict("Job")
		}
		next := copyJob(job)
		next.OrganizationID = cur.OrganizationID
		next.CreatedAt = cur.CreatedAt
		if err := r.s.checkJobLocked(next); err != nil {
			return err
		}
		next.Version = cur.Version + 1
		r.s.jobs[job.ID] = next
		job.Version = next.Version
		return nil
	})
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.jobs[id]; !ok {
			return notFound("Job")
		}
		r.s.deleteJobLocked(id)
		return nil
	})
}
