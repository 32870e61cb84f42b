package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *Store
	ctx   context.Context
	now   time.Time
}

func newFixture() *fixture {
	return &fixture{store: NewStore(), ctx: context.Background(), now: time.Now().UTC().Truncate(time.Microsecond)}
}

func (f *fixture) org(t *testing.T) *domain.Organization {
	t.Helper()
	o := &domain.Organization{ID: uuid.New(), Name: "Acme", Plan: domain.PlanFree, Version: 1, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.store.Organizations().Create(f.ctx, o))
	return o
}

func (f *fixture) job(t *testing.T, orgID uuid.UUID) *domain.Job {
	t.Helper()
	j := &domain.Job{ID: uuid.New(), OrganizationID: orgID, Title: "Engineer", Status: domain.JobStatusActive, Version: 1, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.store.Jobs().Create(f.ctx, j))
	return j
}

func (f *fixture) candidate(t *testing.T, email string) *domain.Candidate {
	t.Helper()
	c := &domain.Candidate{ID: uuid.New(), Email: email, Source: domain.SourceUpload, Version: 1, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.store.Candidates().Create(f.ctx, c))
	return c
}

func (f *fixture) application(t *testing.T, jobID, candidateID uuid.UUID) *domain.Application {
	t.Helper()
	a := &domain.Application{ID: uuid.New(), JobID: jobID, CandidateID: candidateID, Status: domain.ApplicationStatusPending, Version: 1, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.store.Applications().Create(f.ctx, a))
	return a
}

func TestUniqueConstraints(t *testing.T) {
	f := newFixture()

	u := &domain.User{ID: uuid.New(), Email: "a@acme.com", Role: domain.RoleRecruiter, Version: 1}
	require.NoError(t, f.store.Users().Create(f.ctx, u))

	dup := &domain.User{ID: uuid.New(), Email: "a@acme.com", Role: domain.RoleRecruiter, Version: 1}
	err := f.store.Users().Create(f.ctx, dup)
	assert.ErrorIs(t, err, apperror.ErrUniqueConstraint)

	linkedin := "in-123"
	c1 := f.candidate(t, "c@x.com")
	c1.LinkedinID = &linkedin
	require.NoError(t, f.store.Candidates().Update(f.ctx, c1))

	c2 := &domain.Candidate{ID: uuid.New(), Email: "d@x.com", LinkedinID: &linkedin, Version: 1}
	assert.ErrorIs(t, f.store.Candidates().Create(f.ctx, c2), apperror.ErrUniqueConstraint)

	org := f.org(t)
	job := f.job(t, org.ID)
	f.application(t, job.ID, c1.ID)
	again := &domain.Application{ID: uuid.New(), JobID: job.ID, CandidateID: c1.ID, Status: domain.ApplicationStatusPending, Version: 1}
	assert.ErrorIs(t, f.store.Applications().Create(f.ctx, again), apperror.ErrUniqueConstraint)
}

func TestForeignKeys(t *testing.T) {
	f := newFixture()

	job := &domain.Job{ID: uuid.New(), OrganizationID: uuid.New(), Title: "Ghost", Status: domain.JobStatusActive, Version: 1}
	assert.ErrorIs(t, f.store.Jobs().Create(f.ctx, job), apperror.ErrReferentialIntegrity)

	missing := uuid.New()
	u := &domain.User{ID: uuid.New(), Email: "b@acme.com", OrganizationID: &missing, Version: 1}
	assert.ErrorIs(t, f.store.Users().Create(f.ctx, u), apperror.ErrReferentialIntegrity)

	app := &domain.Application{ID: uuid.New(), JobID: uuid.New(), CandidateID: uuid.New(), Version: 1}
	assert.ErrorIs(t, f.store.Applications().Create(f.ctx, app), apperror.ErrReferentialIntegrity)
}

func TestCascadeDelete(t *testing.T) {
	f := newFixture()
	org := f.org(t)
	job := f.job(t, org.ID)
	cand := f.candidate(t, "c@x.com")
	app := f.application(t, job.ID, cand.ID)

	u := &domain.User{ID: uuid.New(), Email: "a@acme.com", OrganizationID: &org.ID, Version: 1}
	require.NoError(t, f.store.Users().Create(f.ctx, u))

	require.NoError(t, f.store.Organizations().Delete(f.ctx, org.ID))

	_, err := f.store.Jobs().GetByID(f.ctx, job.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.store.Applications().GetByID(f.ctx, app.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := f.store.Users().GetByID(f.ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OrganizationID)

	_, err = f.store.Candidates().GetByID(f.ctx, cand.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.store.Organizations().Delete(f.ctx, org.ID), apperror.ErrNotFound)
}

func TestCandidateDeleteCascades(t *testing.T) {
	f := newFixture()
	org := f.org(t)
	job := f.job(t, org.ID)
	cand := f.candidate(t, "c@x.com")
	app := f.application(t, job.ID, cand.ID)

	require.NoError(t, f.store.Candidates().Delete(f.ctx, cand.ID))

	_, err := f.store.Applications().GetByID(f.ctx, app.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = f.store.Jobs().GetByID(f.ctx, job.ID)
	assert.NoError(t, err)
}

func TestVersionCheck(t *testing.T) {
	f := newFixture()
	org := f.org(t)

	first, err := f.store.Organizations().GetByID(f.ctx, org.ID)
	require.NoError(t, err)
	second, err := f.store.Organizations().GetByID(f.ctx, org.ID)
	require.NoError(t, err)

	first.Name = "Acme Corp"
	require.NoError(t, f.store.Organizations().Update(f.ctx, first))
	assert.Equal(t, 2, first.Version)

	second.Name = "Acme Inc"
	assert.ErrorIs(t, f.store.Organizations().Update(f.ctx, second), apperror.ErrConflict)

	ghost := &domain.Organization{ID: uuid.New(), Version: 1}
	assert.ErrorIs(t, f.store.Organizations().Update(f.ctx, ghost), apperror.ErrNotFound)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	f := newFixture()
	org := f.org(t)
	job := f.job(t, org.ID)

	got, err := f.store.Jobs().GetByID(f.ctx, job.ID)
	require.NoError(t, err)
	got.Title = "Mutated"
	got.Requirements = map[string]any{"go": true}

	again, err := f.store.Jobs().GetByID(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", again.Title)
	assert.Nil(t, again.Requirements)
}

func TestWithinTxRollsBack(t *testing.T) {
	f := newFixture()
	tx := f.store.TxManager()
	boom := errors.New("boom")

	var orgID uuid.UUID
	err := tx.WithinTx(f.ctx, func(ctx context.Context) error {
		o := &domain.Organization{ID: uuid.New(), Name: "Temp", Plan: domain.PlanFree, Version: 1}
		orgID = o.ID
		if err := f.store.Organizations().Create(ctx, o); err != nil {
			return err
		}
		// nested call joins the outer transaction
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	_, err = f.store.Organizations().GetByID(f.ctx, orgID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestWithinTxCommits(t *testing.T) {
	f := newFixture()

	var orgID uuid.UUID
	err := f.store.TxManager().WithinTx(f.ctx, func(ctx context.Context) error {
		o := &domain.Organization{ID: uuid.New(), Name: "Kept", Plan: domain.PlanFree, Version: 1}
		orgID = o.ID
		return f.store.Organizations().Create(ctx, o)
	})
	require.NoError(t, err)

	_, err = f.store.Organizations().GetByID(f.ctx, orgID)
	assert.NoError(t, err)
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	f := newFixture()
	orgID := uuid.New()

	assert.Panics(t, func() {
		_ = f.store.TxManager().WithinTx(f.ctx, func(ctx context.Context) error {
			o := &domain.Organization{ID: orgID, Name: "Temp", Plan: domain.PlanFree, Version: 1}
			_ = f.store.Organizations().Create(ctx, o)
			panic("handler crashed")
		})
	})

	_, err := f.store.Organizations().GetByID(f.ctx, orgID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.store.Organizations().GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)
}

func TestFetchFiltersAndPages(t *testing.T) {
	f := newFixture()
	org := f.org(t)
	for i := 0; i < 5; i++ {
		j := &domain.Job{
			ID: uuid.New(), OrganizationID: org.ID, Title: "Job", Status: domain.JobStatusActive, Version: 1,
			CreatedAt: f.now.Add(time.Duration(i) * time.Second),
		}
		if i%2 == 0 {
			j.Status = domain.JobStatusClosed
		}
		require.NoError(t, f.store.Jobs().Create(f.ctx, j))
	}

	closed := domain.JobStatusClosed
	jobs, total, err := f.store.Jobs().Fetch(f.ctx, domain.JobFilter{Status: &closed}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, jobs, 2)
	assert.True(t, jobs[0].CreatedAt.After(jobs[1].CreatedAt))

	jobs, total, err = f.store.Jobs().Fetch(f.ctx, domain.JobFilter{OrganizationID: &org.ID}, 10, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Empty(t, jobs)
}

func TestPageOutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Equal(t, []int{2, 3}, page(items, 5, 1))
	assert.Empty(t, page(items, 5, 3))
	assert.Empty(t, page(items, 5, -1))
}

func TestCandidateLookups(t *testing.T) {
	f := newFixture()
	older := f.candidate(t, "dup@x.com")
	newer := &domain.Candidate{ID: uuid.New(), Email: "dup@x.com", Skills: []string{"go", "sql"}, Source: domain.SourceReferral, Version: 1, CreatedAt: f.now.Add(time.Minute)}
	require.NoError(t, f.store.Candidates().Create(f.ctx, newer))

	got, err := f.store.Candidates().GetByEmail(f.ctx, "dup@x.com")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.NotEqual(t, older.ID, got.ID)

	skill := "go"
	list, total, err := f.store.Candidates().Fetch(f.ctx, domain.CandidateFilter{Skill: &skill}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, newer.ID, list[0].ID)

	_, err = f.store.Candidates().GetByLinkedinID(f.ctx, "nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
