package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"hireova-backend/pkg/apperror"
	"hireova-backend/pkg/cache"
	"hireova-backend/pkg/logger"
	"hireova-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// now matches the microsecond precision of timestamptz.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// touch returns a timestamp strictly after prev.
func touch(prev time.Time) time.Time {
	ts := now()
	if !ts.After(prev) {
		ts = prev.Add(time.Microsecond)
	}
	return ts
}

func validate(v *validator.Validate, payload any) error {
	if err := v.Struct(payload); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return apperror.Internal(err)
		}
		return apperror.Validation("Validation failed", validation.FormatValidationErrors(err)...)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func valueOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// checkVersion rejects an update whose expected version is stale.
func checkVersion(expected *int, current int, entity string) error {
	if expected != nil && *expected != current {
		return apperror.Conflict(entity + " was modified by another request")
	}
	return nil
}

// readThrough caches root entities by id. Cache failures are logged and
// never fail the request.
type readThrough struct {
	cache  cache.Cache
	ttl    time.Duration
	prefix string
}

func newReadThrough(c cache.Cache, ttl time.Duration, prefix string) readThrough {
	if c == nil {
		c = cache.Noop{}
	}
	return readThrough{cache: c, ttl: ttl, prefix: prefix}
}

func (r readThrough) get(ctx context.Context, id any, dst any) bool {
	key := cache.Key(r.prefix, id)
	err := cache.GetJSON(ctx, r.cache, key, dst)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Log.Warn("Cache read failed", "key", key, "error", err)
	}
	return false
}

func (r readThrough) set(ctx context.Context, id any, value any) {
	key := cache.Key(r.prefix, id)
	if err := cache.SetJSON(ctx, r.cache, key, value, r.ttl); err != nil {
		logger.Log.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (r readThrough) invalidate(ctx context.Context, id any) {
	key := cache.Key(r.prefix, id)
	if err := r.cache.Delete(ctx, key); err != nil {
		logger.Log.Warn("Cache invalidation failed", "key", key, "error", err)
	}
}
