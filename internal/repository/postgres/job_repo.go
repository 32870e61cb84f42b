package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, organization_id, title, description, requirements, location, job_type, experience_level,
                    salary_min, salary_max, status, version, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	err := row.Scan(
		&job.ID, &job.OrganizationID, &job.Title, &job.Description, &job.Requirements, &job.Location,
		&job.JobType, &job.ExperienceLevel, &job.SalaryMin, &job.SalaryMax, &job.Status,
		&job.Version, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	utc(&job.CreatedAt)
	utc(&job.UpdatedAt)
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	requirements, err := jsonArg(job.Requirements)
	if err != nil {
		return err
	}
	query := `INSERT INTO jobs (id, organization_id, title, description, requirements, location, job_type, experience_level,
                                salary_min, salary_max, status, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q(ctx).Exec(ctx, query,
		job.ID, job.OrganizationID, job.Title, job.Description, requirements, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Status, job.Version, job.CreatedAt, job.UpdatedAt,
	)
	return mapError(err, "Job")
}

func (r *jobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.q(ctx).QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Job")
	}
	return job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	q := r.q(ctx)
	w := &where{}
	if filter.OrganizationID != nil {
		w.add("organization_id = $%d", *filter.OrganizationID)
	}
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	pageSQL, args := w.page(limit, offset)

	rows, err := q.Query(ctx, `SELECT `+jobColumns+` FROM jobs`+w.String()+` ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, mapError(err, "Job")
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, mapError(err, "Job")
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Job")
	}

	total, err := count(ctx, q, "jobs", w)
	if err != nil {
		return nil, 0, mapError(err, "Job")
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	requirements, err := jsonArg(job.Requirements)
	if err != nil {
		return err
	}
	q := r.q(ctx)
	query := `UPDATE jobs
              SET title = $1, description = $2, requirements = $3::jsonb, location = $4, job_type = $5, experience_level = $6,
                  salary_min = $7, salary_max = $8, status = $9, updated_at = $10, version = version + 1
              WHERE id = $11 AND version = $12
              RETURNING version`
	err = q.QueryRow(ctx, query,
		job.Title, job.Description, requirements, job.Location, job.JobType, job.ExperienceLevel,
		job.SalaryMin, job.SalaryMax, job.Status, job.UpdatedAt, job.ID, job.Version,
	).Scan(&job.Version)
	if noRows(err) {
		return missedUpdate(ctx, q, "jobs", "Job", job.ID)
	}
	return mapError(err, "Job")
}

func (r *jobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.q(ctx), "jobs", "Job", id)
}
