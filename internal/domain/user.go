package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleRecruiter     = "recruiter"
	RoleHiringManager = "hiring_manager"
	RoleAdmin         = "admin"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	FullName       *string    `json:"full_name"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	IsActive       bool       `json:"is_active"`
	IsVerified     bool       `json:"is_verified"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserCreate registers a user. OrganizationName creates a new free-plan
// organization for the user and cannot be combined with OrganizationID.
type UserCreate struct {
	Email            string     `json:"email" validate:"required,email,max=255"`
	Password         string     `json:"password" validate:"required,min=8,max=72"`
	FullName         *string    `json:"full_name" validate:"omitnil,max=255,valid_name"`
	Role             *string    `json:"role" validate:"omitnil,oneof=recruiter hiring_manager admin"`
	OrganizationID   *uuid.UUID `json:"organization_id"`
	OrganizationName *string    `json:"organization_name" validate:"omitnil,min=1,max=255,no_emoji"`
}

type UserUpdate struct {
	FullName       *string    `json:"full_name" validate:"omitnil,max=255,valid_name"`
	Password       *string    `json:"password" validate:"omitnil,min=8,max=72"`
	Role           *string    `json:"role" validate:"omitnil,oneof=recruiter hiring_manager admin"`
	IsActive       *bool      `json:"is_active"`
	IsVerified     *bool      `json:"is_verified"`
	OrganizationID *uuid.UUID `json:"organization_id"`
	Version        *int       `json:"version" validate:"omitnil,min=1"`
}

func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Password == nil && u.Role == nil &&
		u.IsActive == nil && u.IsVerified == nil && u.OrganizationID == nil
}

// Apply copies every field except Password, which must be hashed first.
func (u UserUpdate) Apply(user *User) {
	if u.FullName != nil {
		user.FullName = u.FullName
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
	if u.IsVerified != nil {
		user.IsVerified = *u.IsVerified
	}
	if u.OrganizationID != nil {
		id := *u.OrganizationID
		user.OrganizationID = &id
	}
}

type UserFilter struct {
	OrganizationID *uuid.UUID
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Fetch(ctx context.Context, filter UserFilter, limit, offset int) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserUsecase interface {
	Create(ctx context.Context, in UserCreate) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter, page Page) (*PaginatedResult[User], error)
	// ListByOrganization fails with NotFound when the organization is missing.
	ListByOrganization(ctx context.Context, orgID uuid.UUID, page Page) (*PaginatedResult[User], error)
	Update(ctx context.Context, id uuid.UUID, in UserUpdate) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
