package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Application statuses
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusScreening   = "screening"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusHired       = "hired"
)

type Application struct {
	ID                uuid.UUID      `json:"id"`
	JobID             uuid.UUID      `json:"job_id"`
	CandidateID       uuid.UUID      `json:"candidate_id"`
	Status            string         `json:"status"`
	AIScore           *float64       `json:"ai_score"`
	AIAnalysis        map[string]any `json:"ai_analysis"`
	AIScreeningResult map[string]any `json:"ai_screening_result"`
	Notes             *string        `json:"notes"`
	Version           int            `json:"version"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type ApplicationCreate struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
	Notes       *string   `json:"notes"`
}

type ApplicationUpdate struct {
	Status            *string        `json:"status" validate:"omitnil,oneof=pending screening interviewed rejected hired"`
	Notes             *string        `json:"notes"`
	AIScore           *float64       `json:"ai_score" validate:"omitnil,min=0,max=100"`
	AIAnalysis        map[string]any `json:"ai_analysis"`
	AIScreeningResult map[string]any `json:"ai_screening_result"`
	Version           *int           `json:"version" validate:"omitnil,min=1"`
}

func (u ApplicationUpdate) IsEmpty() bool {
	return u.Status == nil && u.Notes == nil && u.AIScore == nil &&
		u.AIAnalysis == nil && u.AIScreeningResult == nil
}

func (u ApplicationUpdate) Apply(a *Application) {
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Notes != nil {
		a.Notes = u.Notes
	}
	if u.AIScore != nil {
		a.AIScore = u.AIScore
	}
	if u.AIAnalysis != nil {
		a.AIAnalysis = u.AIAnalysis
	}
	if u.AIScreeningResult != nil {
		a.AIScreeningResult = u.AIScreeningResult
	}
}

type ApplicationFilter struct {
	JobID       *uuid.UUID
	CandidateID *uuid.UUID
	Status      *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	Fetch(ctx context.Context, filter ApplicationFilter, limit, offset int) ([]Application, int64, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicationUsecase interface {
	Create(ctx context.Context, in ApplicationCreate) (*Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Application, error)
	List(ctx context.Context, filter ApplicationFilter, page Page) (*PaginatedResult[Application], error)
	ListByJob(ctx context.Context, jobID uuid.UUID, page Page) (*PaginatedResult[Application], error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, page Page) (*PaginatedResult[Application], error)
	// ExportByJob writes every application of the job as an xlsx workbook.
	ExportByJob(ctx context.Context, jobID uuid.UUID, w io.Writer) error
	Update(ctx context.Context, id uuid.UUID, in ApplicationUpdate) (*Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
