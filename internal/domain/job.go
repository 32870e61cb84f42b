package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job statuses
const (
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

type Job struct {
	ID              uuid.UUID      `json:"id"`
	OrganizationID  uuid.UUID      `json:"organization_id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description"`
	Requirements    map[string]any `json:"requirements"`
	Location        *string        `json:"location"`
	JobType         *string        `json:"job_type"`
	ExperienceLevel *string        `json:"experience_level"`
	SalaryMin       *int64         `json:"salary_min"`
	SalaryMax       *int64         `json:"salary_max"`
	Status          string         `json:"status"`
	Version         int            `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// SalaryRangeValid reports whether min <= max when both are set.
func (j *Job) SalaryRangeValid() bool {
	return j.SalaryMin == nil || j.SalaryMax == nil || *j.SalaryMin <= *j.SalaryMax
}

type JobCreate struct {
	OrganizationID  uuid.UUID      `json:"organization_id" validate:"required"`
	Title           string         `json:"title" validate:"required,max=255,no_emoji"`
	Description     *string        `json:"description"`
	Requirements    map[string]any `json:"requirements"`
	Location        *string        `json:"location" validate:"omitnil,max=255"`
	JobType         *string        `json:"job_type" validate:"omitnil,max=50"`
	ExperienceLevel *string        `json:"experience_level" validate:"omitnil,max=50"`
	SalaryMin       *int64         `json:"salary_min" validate:"omitnil,min=0"`
	SalaryMax       *int64         `json:"salary_max" validate:"omitnil,min=0"`
	Status          *string        `json:"status" validate:"omitnil,oneof=active paused closed"`
}

type JobUpdate struct {
	Title           *string        `json:"title" validate:"omitnil,min=1,max=255,no_emoji"`
	Description     *string        `json:"description"`
	Requirements    map[string]any `json:"requirements"`
	Location        *string        `json:"location" validate:"omitnil,max=255"`
	JobType         *string        `json:"job_type" validate:"omitnil,max=50"`
	ExperienceLevel *string        `json:"experience_level" validate:"omitnil,max=50"`
	SalaryMin       *int64         `json:"salary_min" validate:"omitnil,min=0"`
	SalaryMax       *int64         `json:"salary_max" validate:"omitnil,min=0"`
	Status          *string        `json:"status" validate:"omitnil,oneof=active paused closed"`
	Version         *int           `json:"version" validate:"omitnil,min=1"`
}

func (u JobUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Requirements == nil &&
		u.Location == nil && u.JobType == nil && u.ExperienceLevel == nil &&
		u.SalaryMin == nil && u.SalaryMax == nil && u.Status == nil
}

func (u JobUpdate) Apply(j *Job) {
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Description != nil {
		j.Description = u.Description
	}
	if u.Requirements != nil {
		j.Requirements = u.Requirements
	}
	if u.Location != nil {
		j.Location = u.Location
	}
	if u.JobType != nil {
		j.JobType = u.JobType
	}
	if u.ExperienceLevel != nil {
		j.ExperienceLevel = u.ExperienceLevel
	}
	if u.SalaryMin != nil {
		j.SalaryMin = u.SalaryMin
	}
	if u.SalaryMax != nil {
		j.SalaryMax = u.SalaryMax
	}
	if u.Status != nil {
		j.Status = *u.Status
	}
}

type JobFilter struct {
	OrganizationID *uuid.UUID
	Status         *string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type JobUsecase interface {
	Create(ctx context.Context, in JobCreate) (*Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Job, error)
	List(ctx context.Context, filter JobFilter, page Page) (*PaginatedResult[Job], error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID, page Page) (*PaginatedResult[Job], error)
	Update(ctx context.Context, id uuid.UUID, in JobUpdate) (*Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
