package usecase

import (
	"context"
	"strings"
	"time"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"
	"hireova-backend/pkg/cache"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	tx            domain.TxManager
	cached        readThrough
	validate      *validator.Validate
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, tx domain.TxManager, c cache.Cache, cacheTTL time.Duration, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		tx:            tx,
		cached:        newReadThrough(c, cacheTTL, "candidate"),
		validate:      validate,
	}
}

// normalizeSkills trims entries and drops duplicates, keeping first-seen order.
func normalizeSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (u *candidateUsecase) Create(ctx context.Context, in domain.CandidateCreate) (*domain.Candidate, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = trimPtr(in.Name)
	in.LinkedinID = trimPtr(in.LinkedinID)
	in.Skills = normalizeSkills(in.Skills)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	skills := in.Skills
	if skills == nil {
		skills = []string{}
	}

	ts := now()
	c := &domain.Candidate{
		ID:              uuid.New(),
		Email:           in.Email,
		Name:            in.Name,
		Phone:           in.Phone,
		Location:        in.Location,
		LinkedinURL:     in.LinkedinURL,
		LinkedinID:      in.LinkedinID,
		ResumeURL:       in.ResumeURL,
		ResumeText:      in.ResumeText,
		ParsedData:      in.ParsedData,
		Skills:          skills,
		ExperienceYears: in.ExperienceYears,
		Source:          valueOr(in.Source, domain.SourceUpload),
		Version:         1,
		CreatedAt:       ts,
		UpdatedAt:       ts,
	}
	if err := u.candidateRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	var c domain.Candidate
	if u.cached.get(ctx, id, &c) {
		return &c, nil
	}

	found, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cached.set(ctx, id, found)
	return found, nil
}

func (u *candidateUsecase) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperror.Validation("Validation failed", "Email: is required")
	}
	return u.candidateRepo.GetByEmail(ctx, email)
}

func (u *candidateUsecase) GetByLinkedinID(ctx context.Context, linkedinID string) (*domain.Candidate, error) {
	linkedinID = strings.TrimSpace(linkedinID)
	if linkedinID == "" {
		return nil, apperror.Validation("Validation failed", "LinkedIn ID: is required")
	}
	return u.candidateRepo.GetByLinkedinID(ctx, linkedinID)
}

func (u *candidateUsecase) List(ctx context.Context, filter domain.CandidateFilter, page domain.Page) (*domain.PaginatedResult[domain.Candidate], error) {
	if filter.Source != nil {
		if err := u.validate.Var(*filter.Source, "oneof=upload linkedin email referral job_board"); err != nil {
			return nil, apperror.Validation("Validation failed", "Source: must be one of: upload, linkedin, email, referral, job_board")
		}
	}
	if filter.Skill != nil {
		skill := strings.TrimSpace(*filter.Skill)
		filter.Skill = &skill
	}
	page = page.Normalize()
	candidates, total, err := u.candidateRepo.Fetch(ctx, filter, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	return domain.NewPaginatedResult(candidates, total, page), nil
}

func (u *candidateUsecase) Update(ctx context.Context, id uuid.UUID, in domain.CandidateUpdate) (*domain.Candidate, error) {
	in.Name = trimPtr(in.Name)
	in.LinkedinID = trimPtr(in.LinkedinID)
	in.Skills = normalizeSkills(in.Skills)
	if err := validate(u.validate, in); err != nil {
		return nil, err
	}

	var out *domain.Candidate
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := u.candidateRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkVersion(in.Version, c.Version, "Candidate"); err != nil {
			return err
		}
		if in.IsEmpty() {
			out = c
			return nil
		}

		in.Apply(c)
		c.UpdatedAt = touch(c.UpdatedAt)
		if err := u.candidateRepo.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.cached.invalidate(ctx, id)
	return out, nil
}

// Delete removes the candidate and their applications.
func (u *candidateUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.candidateRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.cached.invalidate(ctx, id)
	return nil
}
