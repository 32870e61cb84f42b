package domain

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (Page-1)*PageSize inside int32 for every allowed size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based page request.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PageSize
}

// PaginatedResult is a generic paginated response
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginatedResult[T any](data []T, total int64, p Page) *PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return &PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}
}
