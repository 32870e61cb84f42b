package usecase

import (
	"context"
	"errors"
	"io"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type applicationUsecase struct {
	appRepo       domain.ApplicationRepository
	jobRepo       domain.JobRepository
	candidateRepo domain.CandidateRepository
	tx            domain.TxManager
	validate      *validator.Validate
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository, candidateRepo domain.CandidateRepository, tx domain.TxManager, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		tx:            tx,
		validate:      validate,
	}
}

func (u *applicationUsecase) Create(ctx context.Context, in domain.ApplicationCreate) (*domain.Application, error) {
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	ts := now()
	app := &domain.Application{
		ID:          uuid.New(),
		JobID:       in.JobID,
		CandidateID: in.CandidateID,
		Status:      domain.ApplicationStatusPending,
		Notes:       in.Notes,
		Version:     1,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		job, err := u.jobRepo.GetByID(ctx, in.JobID)
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ReferentialIntegrity(domain.ConstraintMessage(domain.ConstraintApplicationJob), nil)
		}
		if err != nil {
			return err
		}
		if job.Status != domain.JobStatusActive {
			return apperror.Validation("Validation failed", "Job is not accepting applications")
		}
		return u.appRepo.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return u.appRepo.GetByID(ctx, id)
}

func (u *applicationUsecase) List(ctx context.Context, filter domain.ApplicationFilter, page domain.Page) (*domain.PaginatedResult[domain.Application], error) {
	if filter.Status != nil {
		if err := u.validate.Var(*filter.Status, "oneof=pending screening interviewed rejected hired"); err != nil {
			return nil, apperror.Validation("Validation failed", "Status: must be one of: pending, screening, interviewed, rejected, hired")
		}
	}
	page = page.Normalize()
	apps, total, err := u.appRepo.Fetch(ctx, filter, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(apps, total, page), nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, jobID uuid.UUID, page domain.Page) (*domain.PaginatedResult[domain.Application], error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return u.List(ctx, domain.ApplicationFilter{JobID: &jobID}, page)
}

func (u *applicationUsecase) ListByCandidate(ctx context.Context, candidateID uuid.UUID, page domain.Page) (*domain.PaginatedResult[domain.Application], error) {
	if _, err := u.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}
	return u.List(ctx, domain.ApplicationFilter{CandidateID: &candidateID}, page)
}

func (u *applicationUsecase) Update(ctx context.Context, id uuid.UUID, in domain.ApplicationUpdate) (*domain.Application, error) {
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	var out *domain.Application
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		app, err := u.appRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(in.Version, app.Version, "Application"); err != nil {
			return err
		}
		if in.IsEmpty() {
			out = app
			return nil
		}

		in.Apply(app)
		app.UpdatedAt = touch(app.UpdatedAt)
		if err := u.appRepo.Update(ctx, app); err != nil {
			return err
		}
		out = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *applicationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.appRepo.Delete(ctx, id)
}

// ExportByJob writes every application of the job, newest first, with the
// candidate's contact details.
func (u *applicationUsecase) ExportByJob(ctx context.Context, jobID uuid.UUID, w io.Writer) error {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	var rows []exportRow
	filter := domain.ApplicationFilter{JobID: &jobID}
	for offset := 0; ; offset += domain.MaxPageSize {
		apps, total, err := u.appRepo.Fetch(ctx, filter, domain.MaxPageSize, offset)
		if err != nil {
			return err
		}
		for _, app := range apps {
			row := exportRow{Application: app}
			c, err := u.candidateRepo.GetByID(ctx, app.CandidateID)
			if err != nil && !errors.Is(err, apperror.ErrNotFound) {
				return err
			}
			row.Candidate = c
			rows = append(rows, row)
		}
		if len(apps) == 0 || int64(offset+len(apps)) >= total {
			break
		}
	}

	return writeApplicationsXLSX(w, job, rows)
}
