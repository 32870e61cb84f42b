package usecase

import (
	"context"
	"time"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is an extra dependency probed by Ready. A failing check degrades the
// status without making the service unready.
type Check struct {
	Name   string
	Pinger Pinger
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
	// Ready pings storage and cache. It reports false when storage is down;
	// a failing cache only degrades the status.
	Ready(ctx context.Context) (HealthStatus, bool)
}

type healthUsecase struct {
	version string
	storage Pinger
	checks  []Check
}

func NewHealthUsecase(version string, storage, cache Pinger, extra ...Check) HealthUsecase {
	var checks []Check
	if cache != nil {
		checks = append(checks, Check{Name: "cache", Pinger: cache})
	}
	for _, c := range extra {
		if c.Pinger != nil {
			checks = append(checks, c)
		}
	}
	return &healthUsecase{version: version, storage: storage, checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   u.version,
	}
}

func (u *healthUsecase) Ready(ctx context.Context) (HealthStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := u.Check(ctx)
	status.Checks = map[string]string{}
	ready := true

	if u.storage != nil {
		if err := u.storage.Ping(ctx); err != nil {
			status.Checks["storage"] = "unavailable"
			status.Status = "unhealthy"
			ready = false
		} else {
			status.Checks["storage"] = "ok"
		}
	}

	for _, check := range u.checks {
		if err := check.Pinger.Ping(ctx); err != nil {
			status.Checks[check.Name] = "unavailable"
			if ready {
				status.Status = "degraded"
			}
		} else {
			status.Checks[check.Name] = "ok"
		}
	}

	return status, ready
}
