package usecase

import (
	"context"
	"strings"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	orgRepo  domain.OrganizationRepository
	tx       domain.TxManager
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, orgRepo domain.OrganizationRepository, tx domain.TxManager, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		orgRepo:  orgRepo,
		tx:       tx,
		validate: validate,
	}
}

func salaryRangeError() error {
	return apperror.Validation("Validation failed", domain.ConstraintMessage(domain.ConstraintJobSalaryRange))
}

func (u *jobUsecase) Create(ctx context.Context, in domain.JobCreate) (*domain.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	ts := now()
	job := &domain.Job{
		ID:              uuid.New(),
		OrganizationID:  in.OrganizationID,
		Title:           in.Title,
		Description:     in.Description,
		Requirements:    in.Requirements,
		Location:        in.Location,
		JobType:         in.JobType,
		ExperienceLevel: in.ExperienceLevel,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		Status:          valueOr(in.Status, domain.JobStatusActive),
		Version:         1,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	// Business Validation
	if !job.SalaryRangeValid() {
		return nil, salaryRangeError()
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return u.jobRepo.GetByID(ctx, id)
}

func (u *jobUsecase) List(ctx context.Context, filter domain.JobFilter, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	if filter.Status != nil {
		if err := u.validate.Var(*filter.Status, "oneof=active paused closed"); err != nil {
			return nil, apperror.Validation("Validation failed", "Status: must be one of: active, paused, closed")
		}
	}
	page = page.Normalize()
	jobs, total, err := u.jobRepo.Fetch(ctx, filter, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(jobs, total, page), nil
}

// ListByOrganization returns the jobs of an organization, NotFound when the
// organization is missing.
func (u *jobUsecase) ListByOrganization(ctx context.Context, orgID uuid.UUID, page domain.Page) (*domain.PaginatedResult[domain.Job], error) {
	if _, err := u.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}
	return u.List(ctx, domain.JobFilter{OrganizationID: &orgID}, page)
}

func (u *jobUsecase) Update(ctx context.Context, id uuid.UUID, in domain.JobUpdate) (*domain.Job, error) {
	in.Title = trimPtr(in.Title)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	var out *domain.Job
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		job, err := u.jobRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(in.Version, job.Version, "Job"); err != nil {
			return err
		}
		if in.IsEmpty() {
			out = job
			return nil
		}

		in.Apply(job)
		if !job.SalaryRangeValid() {
			return salaryRangeError()
		}
		job.UpdatedAt = touch(job.UpdatedAt)
		if err := u.jobRepo.Update(ctx, job); err != nil {
			return err
		}
		out = job
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the job and its applications.
func (u *jobUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.jobRepo.Delete(ctx, id)
}
