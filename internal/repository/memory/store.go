// Package memory is an in-process implementation of the repository ports.
// It enforces the same constraints as the Postgres schema (unique keys,
// foreign keys, cascades, version checks) so it can stand in for Postgres
// in tests and local runs.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/google/uuid"
)

type Store struct {
	// txMu serializes writers. A transaction holds it for its whole run.
	txMu sync.Mutex
	mu   sync.RWMutex

	orgs         map[uuid.UUID]*domain.Organization
	users        map[uuid.UUID]*domain.User
	jobs         map[uuid.UUID]*domain.Job
	candidates   map[uuid.UUID]*domain.Candidate
	applications map[uuid.UUID]*domain.Application
}

func NewStore() *Store {
	return &Store{
		orgs:         make(map[uuid.UUID]*domain.Organization),
		users:        make(map[uuid.UUID]*domain.User),
		jobs:         make(map[uuid.UUID]*domain.Job),
		candidates:   make(map[uuid.UUID]*domain.Candidate),
		applications: make(map[uuid.UUID]*domain.Application),
	}
}

func (s *Store) Organizations() domain.OrganizationRepository { return &organizationRepo{s: s} }

func (s *Store) Users() domain.UserRepository { return &userRepo{s: s} }

func (s *Store) Jobs() domain.JobRepository { return &jobRepo{s: s} }

func (s *Store) Candidates() domain.CandidateRepository { return &candidateRepo{s: s} }

func (s *Store) Applications() domain.ApplicationRepository { return &applicationRepo{s: s} }

func (s *Store) TxManager() domain.TxManager { return &txManager{s: s} }

func (s *Store) Ping(context.Context) error { return nil }

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the write lock. Outside a transaction it also takes
// txMu so single writes never interleave with a running transaction.
func (s *Store) write(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return apperror.StorageUnavailable(err)
	}
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return apperror.StorageUnavailable(err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

type snapshot struct {
	orgs         map[uuid.UUID]*domain.Organization
	users        map[uuid.UUID]*domain.User
	jobs         map[uuid.UUID]*domain.Job
	candidates   map[uuid.UUID]*domain.Candidate
	applications map[uuid.UUID]*domain.Application
}

// Stored values are never mutated in place, so copying the maps is enough
// to restore the previous state.
func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		orgs:         maps.Clone(s.orgs),
		users:        maps.Clone(s.users),
		jobs:         maps.Clone(s.jobs),
		candidates:   maps.Clone(s.candidates),
		applications: maps.Clone(s.applications),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs = snap.orgs
	s.users = snap.users
	s.jobs = snap.jobs
	s.candidates = snap.candidates
	s.applications = snap.applications
}

type txManager struct {
	s *Store
}

// WithinTx runs fn with exclusive write access and undoes its writes when it
// fails or panics. Nested calls join the outer transaction.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snap)
			panic(p)
		}
		if err != nil {
			m.s.restore(snap)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	// an expired request must not commit
	if ctxErr := ctx.Err(); ctxErr != nil {
		return apperror.StorageUnavailable(ctxErr)
	}
	return nil
}

func notFound(entity string) error {
	return apperror.NotFound(entity + " not found")
}

func conflict(entity string) error {
	return apperror.Conflict(entity + " was modified by another request")
}

func uniqueViolation(constraint string) error {
	return apperror.UniqueConstraint(domain.ConstraintMessage(constraint), nil)
}

func fkViolation(constraint string) error {
	return apperror.ReferentialIntegrity(domain.ConstraintMessage(constraint), nil)
}

func checkViolation(constraint string) error {
	return apperror.Validation(domain.ConstraintMessage(constraint))
}

// newestFirst orders by created_at descending, then id, like the SQL queries.
func newestFirst(aCreated, bCreated time.Time, aID, bID uuid.UUID) int {
	if c := bCreated.Compare(aCreated); c != 0 {
		return c
	}
	return cmp.Compare(aID.String(), bID.String())
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return slices.Clone(items[offset:end])
}

// cloneJSON deep-copies a decoded JSON object.
func cloneJSON(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneJSONValue(v)
	}
	return out
}

func cloneJSONValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneJSON(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneJSONValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
