package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, full_name, role, organization_id, is_active, is_verified, version, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) q(ctx context.Context) database.Querier {
	return database.QuerierFrom(ctx, r.db)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.OrganizationID,
		&u.IsActive, &u.IsVerified, &u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	utc(&u.CreatedAt)
	utc(&u.UpdatedAt)
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, full_name, role, organization_id, is_active, is_verified, version, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q(ctx).Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Role, user.OrganizationID,
		user.IsActive, user.IsVerified, user.Version, user.CreatedAt, user.UpdatedAt,
	)
	return mapError(err, "User")
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := scanUser(r.q(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err, "User")
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.q(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, mapError(err, "User")
	}
	return user, nil
}

func (r *userRepo) Fetch(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	q := r.q(ctx)
	w := &where{}
	if filter.OrganizationID != nil {
		w.add("organization_id = $%d", *filter.OrganizationID)
	}
	pageSQL, args := w.page(limit, offset)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY created_at DESC, id`+pageSQL, args...)
	if err != nil {
		return nil, 0, mapError(err, "User")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, mapError(err, "User")
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "User")
	}

	total, err := count(ctx, q, "users", w)
	if err != nil {
		return nil, 0, mapError(err, "User")
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	q := r.q(ctx)
	query := `UPDATE users
              SET password_hash = $1, full_name = $2, role = $3, organization_id = $4, is_active = $5, is_verified = $6,
                  updated_at = $7, version = version + 1
              WHERE id = $8 AND version = $9
              RETURNING version`
	err := q.QueryRow(ctx, query,
		user.PasswordHash, user.FullName, user.Role, user.OrganizationID, user.IsActive, user.IsVerified,
		user.UpdatedAt, user.ID, user.Version,
	).Scan(&user.Version)
	if noRows(err) {
		return missedUpdate(ctx, q, "users", "User", user.ID)
	}
	return mapError(err, "User")
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.q(ctx), "users", "User", id)
}
