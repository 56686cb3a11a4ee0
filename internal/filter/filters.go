package filter

import "github.com/drewanderson201/be-nc-news/internal/validator"

const (
	DefaultLimit = 10
	DefaultPage  = 0
)

// Filter carries the limit/page pagination pair. Page is zero-based.
type Filter struct {
	Limit int64
	Page  int64
}

// Metadata is returned alongside a page of results. TotalCount is the row
// count for the same predicate without pagination applied.
type Metadata struct {
	TotalCount int64
}

func NewFilter(limit, page int64) Filter {
	return Filter{
		Limit: limit,
		Page:  page,
	}
}

func (f Filter) Offset() int64 {
	return f.Limit * f.Page
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Limit > 0, "limit", "must be greater than 0")
	v.Check(filters.Page >= 0, "p", "must be greater than or equal to 0")
}
