package pagination

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/ems-backend/pkg/query"
)

// MaxOffset bounds the number of rows a page request may skip.
const MaxOffset = 1_000_000_000

// PageRequest selects rows of a searchable, sortable listing. An unpaged
// request returns every matching row as a bare array.
type PageRequest struct {
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Paged    bool              `json:"-"`
	Search   *string           `json:"search,omitempty"`
	Sort     []query.SortField `json:"sort,omitempty"`
}

// Normalize clamps page and page size to the config limits and keeps the
// offset within MaxOffset.
func (r *PageRequest) Normalize(cfg Config) {
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
	if r.PageSize < 1 {
		r.PageSize = 1
	}
	if r.Page < 1 {
		r.Page = 1
	}
	if last := MaxOffset/r.PageSize + 1; r.Page > last {
		r.Page = last
	}
}

// Offset is the number of rows skipped before the page.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery reads page, page_size, search and sort ("-" prefix for
// descending) from values. The request is paged when page or page_size is present.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Paged:    values.Has("page") || values.Has("page_size"),
		Sort:     query.ParseSortFields(values.Get("sort")),
	}
	if s := values.Get("search"); s != "" {
		req.Search = &s
	}

	req.Normalize(cfg)
	return req
}

// PageResult is the envelope returned for paged requests.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult wraps data with its totals. Data is never nil.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 1
	if pageSize > 0 && total > pageSize {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// Body returns the JSON body for req: the envelope when paged, the bare rows otherwise.
func (p PageResult[T]) Body(req PageRequest) any {
	if req.Paged {
		return p
	}
	return p.Data
}
