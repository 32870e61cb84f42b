package v1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hireova-backend/config"
	v1 "hireova-backend/internal/delivery/http/v1"
	"hireova-backend/internal/repository/memory"
	"hireova-backend/internal/usecase"
	"hireova-backend/pkg/cache"
	"hireova-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     []string        `json:"error"`
	RequestID string          `json:"request_id"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppName:            "Hireova API",
		AppVersion:         "test",
		APIPrefix:          "/api/v1",
		AllowedOrigins:     []string{"http://localhost:3000"},
		RequestTimeout:     5 * time.Second,
		RateLimitPerMinute: 0,
	}

	store := memory.NewStore()
	v := validation.New()
	tx := store.TxManager()
	c := cache.NewMemoryCache(100)
	t.Cleanup(func() { c.Close() })

	return v1.NewRouter(v1.RouterDeps{
		OrganizationUC: usecase.NewOrganizationUsecase(store.Organizations(), tx, c, time.Minute, v),
		UserUC:         usecase.NewUserUsecase(store.Users(), store.Organizations(), tx, v, bcrypt.MinCost),
		JobUC:          usecase.NewJobUsecase(store.Jobs(), store.Organizations(), tx, v),
		CandidateUC:    usecase.NewCandidateUsecase(store.Candidates(), tx, c, time.Minute, v),
		ApplicationUC:  usecase.NewApplicationUsecase(store.Applications(), store.Jobs(), store.Candidates(), tx, v),
		HealthUC:       usecase.NewHealthUsecase(cfg.AppVersion, store, c),
		Config:         cfg,
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type idOnly struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Version int    `json:"version"`
}

type page struct {
	Data  []idOnly `json:"data"`
	Total int64    `json:"total"`
}

func TestAcmeScenarioOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/organizations", map[string]any{"name": "Acme", "plan": "starter"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	org := decode[idOnly](t, env.Data)

	w, env = do(t, r, http.MethodPost, "/api/v1/users", map[string]any{
		"email": "recruiter@acme.com", "password": "password1", "organization_id": org.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "password")

	w, env = do(t, r, http.MethodPost, "/api/v1/jobs", map[string]any{
		"organization_id": org.ID, "title": "Backend Engineer", "requirements": map[string]any{"go": true},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	job := decode[idOnly](t, env.Data)
	assert.Equal(t, "active", job.Status)

	w, env = do(t, r, http.MethodPost, "/api/v1/candidates", map[string]any{
		"email": "jane@example.com", "name": "Jane Doe", "skills": []string{"go"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cand := decode[idOnly](t, env.Data)

	w, env = do(t, r, http.MethodPost, "/api/v1/applications", map[string]any{"job_id": job.ID, "candidate_id": cand.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	app := decode[idOnly](t, env.Data)
	assert.Equal(t, "pending", app.Status)

	w, _ = do(t, r, http.MethodPost, "/api/v1/applications", map[string]any{"job_id": job.ID, "candidate_id": cand.ID})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/organizations/"+org.ID+"/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decode[page](t, env.Data)
	require.Len(t, jobs.Data, 1)
	assert.Equal(t, job.ID, jobs.Data[0].ID)

	w, env = do(t, r, http.MethodGet, "/api/v1/jobs/"+job.ID+"/applications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	apps := decode[page](t, env.Data)
	require.Len(t, apps.Data, 1)
	assert.Equal(t, app.ID, apps.Data[0].ID)

	w, env = do(t, r, http.MethodPatch, "/api/v1/applications/"+app.ID, map[string]any{"status": "interviewed", "ai_score": 72.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[idOnly](t, env.Data)
	assert.Equal(t, "interviewed", updated.Status)
	assert.Equal(t, 2, updated.Version)

	w, _ = do(t, r, http.MethodPatch, "/api/v1/applications/"+app.ID, map[string]any{"status": "hired", "version": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/jobs/"+job.ID+"/applications/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "applications-"+job.ID+".xlsx")
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	f.Close()

	w, _ = do(t, r, http.MethodDelete, "/api/v1/organizations/"+org.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/applications/"+app.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, http.MethodGet, "/api/v1/candidates/"+cand.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorResponses(t *testing.T) {
	r := newTestRouter(t)

	t.Run("validation details", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "nope", "password": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Validation failed", env.Message)
		assert.Len(t, env.Error, 2)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/organizations", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad uuid", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/api/v1/jobs/42", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown organization", func(t *testing.T) {
		w, env := do(t, r, http.MethodPost, "/api/v1/jobs", map[string]any{
			"organization_id": "6f1c1a4e-8a77-4a52-9f0e-1d1f5a8b9c01", "title": "Ghost",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Organization does not exist", env.Message)
	})

	t.Run("missing", func(t *testing.T) {
		w, env := do(t, r, http.MethodGet, "/api/v1/candidates/6f1c1a4e-8a77-4a52-9f0e-1d1f5a8b9c01", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Candidate not found", env.Message)
	})

	t.Run("bad page", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/api/v1/organizations?page=zero", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCandidateLookupRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/candidates", map[string]any{"email": "Sam@Example.com", "linkedin_id": "sam-1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cand := decode[idOnly](t, env.Data)

	w, env = do(t, r, http.MethodGet, "/api/v1/candidates/by-email?email=sam@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cand.ID, decode[idOnly](t, env.Data).ID)

	w, env = do(t, r, http.MethodGet, "/api/v1/candidates/by-linkedin/sam-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cand.ID, decode[idOnly](t, env.Data).ID)

	w, _ = do(t, r, http.MethodPost, "/api/v1/candidates", map[string]any{"email": "other@example.com", "linkedin_id": "sam-1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHealthRoutes(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[usecase.HealthStatus](t, env.Data)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "test", status.Version)

	w, env = do(t, r, http.MethodGet, "/api/v1/health/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status = decode[usecase.HealthStatus](t, env.Data)
	assert.Equal(t, "ok", status.Checks["storage"])

	w, _ = do(t, r, http.MethodGet, "/api/v1/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestPageBeyondLastIsEmpty(t *testing.T) {
	r := newTestRouter(t)
	w, _ := do(t, r, http.MethodPost, "/api/v1/organizations", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/organizations?page=100000000000000001&page_size=100", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Data  []json.RawMessage `json:"data"`
		Total int64             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 1, page.Total)

	w, _ = do(t, r, http.MethodGet, "/api/v1/organizations?page=99999999999999999999", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
