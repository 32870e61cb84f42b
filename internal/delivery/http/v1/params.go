package v1

import (
	"errors"
	"io"
	"strconv"

	"hireova-backend/internal/domain"
	"hireova-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid ID format", name+": must be a valid UUID")
	}
	return id, nil
}

func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation("Invalid query parameter", name+": must be a valid UUID")
	}
	return &id, nil
}

func queryString(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

func queryPage(c *gin.Context) (domain.Page, error) {
	var p domain.Page
	var err error
	if raw := c.Query("page"); raw != "" {
		if p.Page, err = strconv.Atoi(raw); err != nil || p.Page < 1 {
			return p, apperror.Validation("Invalid query parameter", "page: must be a positive integer")
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if p.PageSize, err = strconv.Atoi(raw); err != nil || p.PageSize < 1 {
			return p, apperror.Validation("Invalid query parameter", "page_size: must be a positive integer")
		}
	}
	return p.Normalize(), nil
}

// bindJSON decodes the body into dst. Field rules are checked by the use
// case, so only malformed JSON fails here.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("Request body is required")
		}
		return apperror.Validation("Invalid request body", err.Error())
	}
	return nil
}
