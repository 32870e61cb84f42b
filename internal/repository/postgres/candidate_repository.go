package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `id, email, name, phone, location, linkedin_url, linkedin_id, resume_url, resume_text,
                          parsed_data, skills, experience_years, source, version, created_at, updated_at`

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.Location, &c.LinkedinURL, &c.LinkedinID, &c.ResumeURL, &c.ResumeText,
		&c.ParsedData, &c.Skills, &c.ExperienceYears, &c.Source, &c.Version, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	utc(&c.CreatedAt)
	utc(&c.UpdatedAt)
	return &c, nil
}

func skillsArg(skills []string) any {
	if skills == nil {
		skills = []string{}
	}
	return pq.Array(skills)
}

func (r *candidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	parsed, err := jsonArg(c.ParsedData)
	if err != nil {
		return err
	}
	query := `INSERT INTO candidates (id, email, name, phone, location, linkedin_url, linkedin_id, resume_url, resume_text,
                                      parsed_data, skills, experience_years, source, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::text[], $12, $13, $14, $15, $16)`
	_, err = r.q(ctx).Exec(ctx, query,
		c.ID, c.Email, c.Name, c.Phone, c.Location, c.LinkedinURL, c.LinkedinID, c.ResumeURL, c.ResumeText,
		parsed, skillsArg(c.Skills), c.ExperienceYears, c.Source, c.Version, c.CreatedAt, c.UpdatedAt,
	)
	return mapError(err, "Candidate")
}

func (r *candidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	c, err := scanCandidate(r.q(ctx).QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Candidate")
	}
	return c, nil
}

func (r *candidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	c, err := scanCandidate(r.q(ctx).QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "Candidate")
	}
	return c, nil
}

func (r *candidateRepo) GetByLinkedinID(ctx context.Context, linkedinID string) (*domain.Candidate, error) {
	c, err := scanCandidate(r.q(ctx).QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE linkedin_id = $1`, linkedinID))
	if err != nil {
		return nil, mapError(err, "Candidate")
	}
	return c, nil
}

func (r *candidateRepo) Fetch(ctx context.Context, filter domain.CandidateFilter, limit, offset int) ([]domain.Candidate, int64, error) {
	q := r.q(ctx)
	w := &where{}
	if filter.Source != nil {
		w.add("source = $%d", *filter.Source)
	}
	if filter.Skill != nil {
		// containment keeps the GIN index usable
		w.add("skills @> ARRAY[$%d::text]", *filter.Skill)
	}
	pageSQL, args := w.page(limit, offset)

	rows, err := q.Query(ctx, `SELECT `+candidateColumns+` FROM candidates`+w.String()+` ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, mapError(err, "Candidate")
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, mapError(err, "Candidate")
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Candidate")
	}

	total, err := count(ctx, q, "candidates", w)
	if err != nil {
		return nil, 0, mapError(err, "Candidate")
	}
	return candidates, total, nil
}

func (r *candidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	parsed, err := jsonArg(c.ParsedData)
	if err != nil {
		return err
	}
	q := r.q(ctx)
	query := `UPDATE candidates
              SET name = $1, phone = $2, location = $3, linkedin_url = $4, linkedin_id = $5, resume_url = $6, resume_text = $7,
                  parsed_data = $8::jsonb, skills = $9::text[], experience_years = $10, source = $11,
                  updated_at = $12, version = version + 1
              WHERE id = $13 AND version = $14
              RETURNING version`
	err = q.QueryRow(ctx, query,
		c.Name, c.Phone, c.Location, c.LinkedinURL, c.LinkedinID, c.ResumeURL, c.ResumeText,
		parsed, skillsArg(c.Skills), c.ExperienceYears, c.Source,
		c.UpdatedAt, c.ID, c.Version,
	).Scan(&c.Version)
	if noRows(err) {
		return missedUpdate(ctx, q, "candidates", "Candidate", c.ID)
	}
	return mapError(err, "Candidate")
}

func (r *candidateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.q(ctx), "candidates", "Candidate", id)
}
