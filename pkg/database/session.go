package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"hireova-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTxInProgress    = errors.New("database: transaction already open on this session")
	ErrSessionReleased = errors.New("database: session already released")
)

// SessionProvider hands out one pooled connection per unit of work.
type SessionProvider struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewSessionProvider(pool *pgxpool.Pool, acquireTimeout time.Duration) *SessionProvider {
	return &SessionProvider{pool: pool, acquireTimeout: acquireTimeout}
}

// Acquire waits at most acquireTimeout for a connection. Pool exhaustion and
// unreachable storage both surface as a StorageUnavailable error.
func (p *SessionProvider) Acquire(ctx context.Context) (*Session, error) {
	acquireCtx := ctx
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, apperror.StorageUnavailable(err)
	}
	return &Session{conn: conn}, nil
}

func (p *SessionProvider) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return apperror.StorageUnavailable(err)
	}
	return nil
}

// Session is a storage handle bound to one request. It is not safe to share
// across requests.
type Session struct {
	mu       sync.Mutex
	conn     *pgxpool.Conn
	tx       *sessionTx
	released bool
}

func (s *Session) Conn() Querier {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	return s.conn
}

// Begin opens the session's only transaction.
func (s *Session) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrSessionReleased
	}
	if s.tx != nil {
		return nil, ErrTxInProgress
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	s.tx = &sessionTx{Tx: tx, session: s}
	return s.tx, nil
}

func (s *Session) InTx() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx != nil
}

// Release rolls back a dangling transaction and returns the connection to
// the pool. Safe to call more than once.
func (s *Session) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	tx := s.tx
	s.tx = nil
	conn := s.conn
	s.mu.Unlock()

	if tx != nil {
		// the request context may already be cancelled
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = tx.Tx.Rollback(ctx)
		cancel()
	}
	conn.Release()
}

func (s *Session) clearTx(tx *sessionTx) {
	s.mu.Lock()
	if s.tx == tx {
		s.tx = nil
	}
	s.mu.Unlock()
}

type sessionTx struct {
	pgx.Tx
	session *Session
}

func (t *sessionTx) Commit(ctx context.Context) error {
	defer t.session.clearTx(t)
	return t.Tx.Commit(ctx)
}

func (t *sessionTx) Rollback(ctx context.Context) error {
	defer t.session.clearTx(t)
	return t.Tx.Rollback(ctx)
}
