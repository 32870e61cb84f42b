package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Candidate sources
const (
	SourceUpload   = "upload"
	SourceLinkedIn = "linkedin"
	SourceEmail    = "email"
	SourceReferral = "referral"
	SourceJobBoard = "job_board"
)

type Candidate struct {
	ID              uuid.UUID      `json:"id"`
	Email           string         `json:"email"`
	Name            *string        `json:"name"`
	Phone           *string        `json:"phone"`
	Location        *string        `json:"location"`
	LinkedinURL     *string        `json:"linkedin_url"`
	LinkedinID      *string        `json:"linkedin_id"`
	ResumeURL       *string        `json:"resume_url"`
	ResumeText      *string        `json:"resume_text"`
	ParsedData      map[string]any `json:"parsed_data"`
	Skills          []string       `json:"skills"`
	ExperienceYears *string        `json:"experience_years"`
	Source          string         `json:"source"`
	Version         int            `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CandidateCreate struct {
	Email           string         `json:"email" validate:"required,email,max=255"`
	Name            *string        `json:"name" validate:"omitnil,max=255,valid_name"`
	Phone           *string        `json:"phone" validate:"omitnil,valid_phone"`
	Location        *string        `json:"location" validate:"omitnil,max=255"`
	LinkedinURL     *string        `json:"linkedin_url" validate:"omitnil,url,max=500"`
	LinkedinID      *string        `json:"linkedin_id" validate:"omitnil,min=1,max=255"`
	ResumeURL       *string        `json:"resume_url" validate:"omitnil,url,max=500"`
	ResumeText      *string        `json:"resume_text"`
	ParsedData      map[string]any `json:"parsed_data"`
	Skills          []string       `json:"skills" validate:"omitempty,dive,min=1,max=100"`
	ExperienceYears *string        `json:"experience_years" validate:"omitnil,max=20"`
	Source          *string        `json:"source" validate:"omitnil,oneof=upload linkedin email referral job_board"`
}

type CandidateUpdate struct {
	Name            *string        `json:"name" validate:"omitnil,max=255,valid_name"`
	Phone           *string        `json:"phone" validate:"omitnil,valid_phone"`
	Location        *string        `json:"location" validate:"omitnil,max=255"`
	LinkedinURL     *string        `json:"linkedin_url" validate:"omitnil,url,max=500"`
	LinkedinID      *string        `json:"linkedin_id" validate:"omitnil,min=1,max=255"`
	ResumeURL       *string        `json:"resume_url" validate:"omitnil,url,max=500"`
	ResumeText      *string        `json:"resume_text"`
	ParsedData      map[string]any `json:"parsed_data"`
	Skills          []string       `json:"skills" validate:"omitempty,dive,min=1,max=100"`
	ExperienceYears *string        `json:"experience_years" validate:"omitnil,max=20"`
	Source          *string        `json:"source" validate:"omitnil,oneof=upload linkedin email referral job_board"`
	Version         *int           `json:"version" validate:"omitnil,min=1"`
}

func (u CandidateUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Location == nil &&
		u.LinkedinURL == nil && u.LinkedinID == nil && u.ResumeURL == nil &&
		u.ResumeText == nil && u.ParsedData == nil && u.Skills == nil &&
		u.ExperienceYears == nil && u.Source == nil
}

func (u CandidateUpdate) Apply(c *Candidate) {
	if u.Name != nil {
		c.Name = u.Name
	}
	if u.Phone != nil {
		c.Phone = u.Phone
	}
	if u.Location != nil {
		c.Location = u.Location
	}
	if u.LinkedinURL != nil {
		c.LinkedinURL = u.LinkedinURL
	}
	if u.LinkedinID != nil {
		c.LinkedinID = u.LinkedinID
	}
	if u.ResumeURL != nil {
		c.ResumeURL = u.ResumeURL
	}
	if u.ResumeText != nil {
		c.ResumeText = u.ResumeText
	}
	if u.ParsedData != nil {
		c.ParsedData = u.ParsedData
	}
	if u.Skills != nil {
		c.Skills = u.Skills
	}
	if u.ExperienceYears != nil {
		c.ExperienceYears = u.ExperienceYears
	}
	if u.Source != nil {
		c.Source = *u.Source
	}
}

type CandidateFilter struct {
	Source *string
	Skill  *string
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	// GetByEmail returns the most recently created candidate with the email.
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	GetByLinkedinID(ctx context.Context, linkedinID string) (*Candidate, error)
	Fetch(ctx context.Context, filter CandidateFilter, limit, offset int) ([]Candidate, int64, error)
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateUsecase interface {
	Create(ctx context.Context, in CandidateCreate) (*Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	GetByLinkedinID(ctx context.Context, linkedinID string) (*Candidate, error)
	List(ctx context.Context, filter CandidateFilter, page Page) (*PaginatedResult[Candidate], error)
	Update(ctx context.Context, id uuid.UUID, in CandidateUpdate) (*Candidate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
