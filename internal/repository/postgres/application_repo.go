package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, job_id, candidate_id, status, ai_score, ai_analysis, ai_screening_result, notes,
                            version, created_at, updated_at`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.AIScore, &a.AIAnalysis, &a.AIScreeningResult, &a.Notes,
		&a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	utc(&a.CreatedAt)
	utc(&a.UpdatedAt)
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	analysis, err := jsonArg(app.AIAnalysis)
	if err != nil {
		return err
	}
	screening, err := jsonArg(app.AIScreeningResult)
	if err != nil {
		return err
	}
	query := `INSERT INTO applications (id, job_id, candidate_id, status, ai_score, ai_analysis, ai_screening_result, notes,
                                        version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9, $10, $11)`
	_, err = r.q(ctx).Exec(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.Status, app.AIScore, analysis, screening, app.Notes,
		app.Version, app.CreatedAt, app.UpdatedAt,
	)
	return mapError(err, "Application")
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	app, err := scanApplication(r.q(ctx).QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "Application")
	}
	return app, nil
}

func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	q := r.q(ctx)
	w := &where{}
	if filter.JobID != nil {
		w.add("job_id = $%d", *filter.JobID)
	}
	if filter.CandidateID != nil {
		w.add("candidate_id = $%d", *filter.CandidateID)
	}
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	pageSQL, args := w.page(limit, offset)

	rows, err := q.Query(ctx, `SELECT `+applicationColumns+` FROM applications`+w.String()+` ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, mapError(err, "Application")
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, mapError(err, "Application")
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Application")
	}

	total, err := count(ctx, q, "applications", w)
	if err != nil {
		return nil, 0, mapError(err, "Application")
	}
	return apps, total, nil
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	analysis, err := jsonArg(app.AIAnalysis)
	if err != nil {
		return err
	}
	screening, err := jsonArg(app.AIScreeningResult)
	if err != nil {
		return err
	}
	q := r.q(ctx)
	query := `UPDATE applications
              SET status = $1, ai_score = $2, ai_analysis = $3::jsonb, ai_screening_result = $4::jsonb, notes = $5,
                  updated_at = $6, version = version + 1
              WHERE id = $7 AND version = $8
              RETURNING version`
	err = q.QueryRow(ctx, query,
		app.Status, app.AIScore, analysis, screening, app.Notes, app.UpdatedAt, app.ID, app.Version,
	).Scan(&app.Version)
	if noRows(err) {
		return missedUpdate(ctx, q, "applications", "Application", app.ID)
	}
	return mapError(err, "Application")
}

func (r *applicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.q(ctx), "applications", "Application", id)
}
