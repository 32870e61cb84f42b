package postgres

import (
	"context"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type txManager struct {
	db *pgxpool.Pool
}

// NewTxManager opens transactions on the request session when the context
// carries one, on a pool connection otherwise.
func NewTxManager(db *pgxpool.Pool) domain.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := database.TxFrom(ctx); ok {
		return fn(ctx)
	}

	var tx pgx.Tx
	if s, ok := database.SessionFrom(ctx); ok {
		tx, err = s.Begin(ctx)
	} else {
		tx, err = m.db.Begin(ctx)
	}
	if err != nil {
		return mapError(err, "")
	}

	defer func() {
		// rollback must run even when ctx has expired
		rbCtx := context.WithoutCancel(ctx)
		if p := recover(); p != nil {
			_ = tx.Rollback(rbCtx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(rbCtx)
		}
	}()

	if err = fn(database.WithTx(ctx, tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return mapError(err, "")
	}
	return nil
}
