package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Organization plans
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    *string   `json:"domain"`
	Plan      string    `json:"plan"`
	Industry  *string   `json:"industry"`
	Size      *string   `json:"size"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrganizationCreate struct {
	Name     string  `json:"name" validate:"required,max=255,no_emoji"`
	Domain   *string `json:"domain" validate:"omitnil,max=255"`
	Plan     *string `json:"plan" validate:"omitnil,oneof=free starter professional enterprise"`
	Industry *string `json:"industry" validate:"omitnil,max=100"`
	Size     *string `json:"size" validate:"omitnil,max=50"`
}

type OrganizationUpdate struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=255,no_emoji"`
	Domain   *string `json:"domain" validate:"omitnil,max=255"`
	Plan     *string `json:"plan" validate:"omitnil,oneof=free starter professional enterprise"`
	Industry *string `json:"industry" validate:"omitnil,max=100"`
	Size     *string `json:"size" validate:"omitnil,max=50"`
	// Version, when set, must match the stored version.
	Version *int `json:"version" validate:"omitnil,min=1"`
}

func (u OrganizationUpdate) IsEmpty() bool {
	return u.Name == nil && u.Domain == nil && u.Plan == nil && u.Industry == nil && u.Size == nil
}

func (u OrganizationUpdate) Apply(o *Organization) {
	if u.Name != nil {
		o.Name = *u.Name
	}
	if u.Domain != nil {
		o.Domain = u.Domain
	}
	if u.Plan != nil {
		o.Plan = *u.Plan
	}
	if u.Industry != nil {
		o.Industry = u.Industry
	}
	if u.Size != nil {
		o.Size = u.Size
	}
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	Fetch(ctx context.Context, limit, offset int) ([]Organization, int64, error)
	// Update writes org only if the stored version still equals org.Version,
	// then bumps org.Version.
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrganizationUsecase interface {
	Create(ctx context.Context, in OrganizationCreate) (*Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	List(ctx context.Context, page Page) (*PaginatedResult[Organization], error)
	Update(ctx context.Context, id uuid.UUID, in OrganizationUpdate) (*Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
