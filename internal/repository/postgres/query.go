package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hireova-backend/pkg/apperror"
	"hireova-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// where accumulates AND-ed conditions with positional arguments. Each cond
// holds one %d verb for its placeholder number.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the clause with its args.
func (w *where) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

func count(ctx context.Context, q database.Querier, table string, w *where) (int64, error) {
	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table+w.String(), w.args...).Scan(&total)
	return total, err
}

// jsonArg encodes an object for a $n::jsonb placeholder. A nil map is SQL NULL.
func jsonArg(m map[string]any) (*string, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, apperror.Validation("Invalid JSON object", err.Error())
	}
	s := string(b)
	return &s, nil
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// missedUpdate explains why a version-guarded UPDATE matched no row.
func missedUpdate(ctx context.Context, q database.Querier, table, entity string, id uuid.UUID) error {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return mapError(err, entity)
	}
	if !exists {
		return apperror.NotFound(entity + " not found")
	}
	return apperror.Conflict(entity + " was modified by another request")
}

func deleteByID(ctx context.Context, q database.Querier, table, entity string, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return mapError(err, entity)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound(entity + " not found")
	}
	return nil
}

func utc(t *time.Time) {
	*t = t.UTC()
}
