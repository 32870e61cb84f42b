package usecase

import (
	"context"
	"strings"
	"time"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type organizationUsecase struct {
	orgRepo  domain.OrganizationRepository
	tx       domain.TxManager
	cached   readThrough
	validate *validator.Validate
}

func NewOrganizationUsecase(orgRepo domain.OrganizationRepository, tx domain.TxManager, c cache.Cache, cacheTTL time.Duration, validate *validator.Validate) domain.OrganizationUsecase {
	return &organizationUsecase{
		orgRepo:  orgRepo,
		tx:       tx,
		cached:   newReadThrough(c, cacheTTL, "organization"),
		validate: validate,
	}
}

func (u *organizationUsecase) Create(ctx context.Context, in domain.OrganizationCreate) (*domain.Organization, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	ts := now()
	org := &domain.Organization{
		ID:        uuid.New(),
		Name:      in.Name,
		Domain:    in.Domain,
		Plan:      valueOr(in.Plan, domain.PlanFree),
		Industry:  in.Industry,
		Size:      in.Size,
		Version:   1,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := u.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (u *organizationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	var org domain.Organization
	if u.cached.get(ctx, id, &org) {
		return &org, nil
	}

	found, err := u.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cached.set(ctx, id, found)
	return found, nil
}

func (u *organizationUsecase) List(ctx context.Context, page domain.Page) (*domain.PaginatedResult[domain.Organization], error) {
	page = page.Normalize()
	orgs, total, err := u.orgRepo.Fetch(ctx, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(orgs, total, page), nil
}

func (u *organizationUsecase) Update(ctx context.Context, id uuid.UUID, in domain.OrganizationUpdate) (*domain.Organization, error) {
	in.Name = trimPtr(in.Name)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	var out *domain.Organization
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		org, err := u.orgRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(in.Version, org.Version, "Organization"); err != nil {
			return err
		}
		if in.IsEmpty() {
			out = org
			return nil
		}

		in.Apply(org)
		org.UpdatedAt = touch(org.UpdatedAt)
		if err := u.orgRepo.Update(ctx, org); err != nil {
			return err
		}
		out = org
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.cached.invalidate(ctx, id)
	return out, nil
}

// Delete removes the organization with its jobs and their applications.
// Users of the organization are kept without one.
func (u *organizationUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.orgRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.cached.invalidate(ctx, id)
	return nil
}
