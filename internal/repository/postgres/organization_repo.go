package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const organizationColumns = `id, name, domain, plan, industry, size, version, created_at, updated_at`

type organizationRepo struct {
	db *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) domain.OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var o domain.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Domain, &o.Plan, &o.Industry, &o.Size, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	utc(&o.CreatedAt)
	utc(&o.UpdatedAt)
	return &o, nil
}

func (r *organizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	query := `INSERT INTO organizations (id, name, domain, plan, industry, size, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q(ctx).Exec(ctx, query,
		org.ID, org.Name, org.Domain, org.Plan, org.Industry, org.Size, org.Version, org.CreatedAt, org.UpdatedAt,
	)
	return mapError(err, "Organization")
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	org, err := scanOrganization(r.q(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "Organization")
	}
	return org, nil
}

func (r *organizationRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Organization, int64, error) {
	q := r.q(ctx)
	w := &where{}
	pageSQL, args := w.page(limit, offset)

	rows, err := q.Query(ctx, `SELECT `+organizationColumns+` FROM organizations ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, mapError(err, "Organization")
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, mapError(err, "Organization")
		}
		orgs = append(orgs, *org)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "Organization")
	}

	total, err := count(ctx, q, "organizations", w)
	if err != nil {
		return nil, 0, mapError(err, "Organization")
	}
	return orgs, total, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	q := r.q(ctx)
	query := `UPDATE organizations
              SET name = $1, domain = $2, plan = $3, industry = $4, size = $5, updated_at = $6, version = version + 1
              WHERE id = $7 AND version = $8
              RETURNING version`
	err := q.QueryRow(ctx, query,
		org.Name, org.Domain, org.Plan, org.Industry, org.Size, org.UpdatedAt, org.ID, org.Version,
	).Scan(&org.Version)
	if noRows(err) {
		return missedUpdate(ctx, q, "organizations", "Organization", org.ID)
	}
	return mapError(err, "Organization")
}

func (r *organizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.q(ctx), "organizations", "Organization", id)
}
