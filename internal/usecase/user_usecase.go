package usecase

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"
	"hireova-backend/pkg/security"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type userUsecase struct {
	userRepo   domain.UserRepository
	orgRepo    domain.OrganizationRepository
	tx         domain.TxManager
	validate   *validator.Validate
	bcryptCost int
}

func NewUserUsecase(userRepo domain.UserRepository, orgRepo domain.OrganizationRepository, tx domain.TxManager, validate *validator.Validate, bcryptCost int) domain.UserUsecase {
	return &userUsecase{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		tx:         tx,
		validate:   validate,
		bcryptCost: bcryptCost,
	}
}

func (u *userUsecase) Create(ctx context.Context, in domain.UserCreate) (*domain.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = trimPtr(in.FullName)
	in.OrganizationName = trimPtr(in.OrganizationName)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}
	if in.OrganizationID != nil && in.OrganizationName != nil {
		return nil, apperror.Validation("Validation failed", "Provide either organization_id or organization_name, not both")
	}

	hash, err := security.HashPassword(in.Password, u.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ts := now()
	user := &domain.User{
		ID:             uuid.New(),
		Email:          in.Email,
		PasswordHash:   hash,
		FullName:       in.FullName,
		Role:           valueOr(in.Role, domain.RoleRecruiter),
		OrganizationID: in.OrganizationID,
		IsActive:       true,
		IsVerified:     false,
		Version:        1,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if in.OrganizationName != nil {
			org := &domain.Organization{
				ID:        uuid.New(),
				Name:      *in.OrganizationName,
				Plan:      domain.PlanFree,
				Version:   1,
				CreatedAt: ts,
				UpdatedAt: ts,
			}
			if err := u.orgRepo.Create(ctx, org); err != nil {
				return err
			}
			user.OrganizationID = &org.ID
		}
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

func (u *userUsecase) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Validation failed", "Email: is required")
	}
	return u.userRepo.GetByEmail(ctx, email)
}

func (u *userUsecase) List(ctx context.Context, filter domain.UserFilter, page domain.Page) (*domain.PaginatedResult[domain.User], error) {
	page = page.Normalize()
	users, total, err := u.userRepo.Fetch(ctx, filter, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(users, total, page), nil
}

func (u *userUsecase) ListByOrganization(ctx context.Context, orgID uuid.UUID, page domain.Page) (*domain.PaginatedResult[domain.User], error) {
	if _, err := u.orgRepo.GetByID(ctx, orgID); err != nil {
		return nil, err
	}
	return u.List(ctx, domain.UserFilter{OrganizationID: &orgID}, page)
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, in domain.UserUpdate) (*domain.User, error) {
	in.FullName = trimPtr(in.FullName)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		var err error
		if hash, err = security.HashPassword(*in.Password, u.bcryptCost); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	var out *domain.User
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(in.Version, user.Version, "User"); err != nil {
			return err
		}
		if in.IsEmpty() {
			out = user
			return nil
		}

		in.Apply(user)
		if hash != "" {
			user.PasswordHash = hash
		}
		user.UpdatedAt = touch(user.UpdatedAt)
		if err := u.userRepo.Update(ctx, user); err != nil {
			return err
		}
		out = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.Delete(ctx, id)
}
