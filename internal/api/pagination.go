package api

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"orderup_backend/internal/shared/apperr"
)

const (
	// DefaultPage is used when the page query parameter is absent or below 1.
	DefaultPage = 1
	// DefaultLimit is used when the limit query parameter is absent or below 1.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// PageParams is a normalised page/limit pair.
type PageParams struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams binds the page and limit query parameters.
// Missing or out-of-range values fall back to the defaults; non-numeric values are rejected.
func ParsePageParams(query url.Values) (PageParams, error) {
	p := PageParams{Page: DefaultPage, Limit: DefaultLimit}

	if err := runtime.BindQueryParameter("form", true, false, "page", query, &p.Page); err != nil {
		return PageParams{}, fmt.Errorf("page must be an integer: %w", apperr.ErrInvalidArgument)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &p.Limit); err != nil {
		return PageParams{}, fmt.Errorf("limit must be an integer: %w", apperr.ErrInvalidArgument)
	}

	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p, nil
}

// NewPagination computes the envelope, with pages = ceil(total/limit).
func NewPagination(p PageParams, total int64) Pagination {
	pages := int64(0)
	if p.Limit > 0 {
		pages = (total + int64(p.Limit) - 1) / int64(p.Limit)
	}
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: pages,
	}
}
