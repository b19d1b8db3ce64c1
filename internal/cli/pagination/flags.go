package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Pagination defaults and validation limits.
const (
	DefaultPage      = 1
	MinPage          = 1
	DefaultPages     = 1
	MinPages         = 1
	MaxPages         = 100
	DefaultLimit     = 0
	MaxLimit         = 10000
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidPages      = errors.New("pages must be between 1 and 100")
	ErrInvalidLimit      = errors.New("limit must be between 0 and 10000")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'title:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// PaginationParams holds the list command's pagination flags.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the first server page to fetch (1-based).
	Page int

	// Pages is how many consecutive server pages to walk.
	Pages int

	// Limit caps the number of postings printed; 0 prints all of them.
	Limit int

	// SortField is the field name to sort by (e.g., "id", "title").
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:      DefaultPage,
		Pages:     DefaultPages,
		Limit:     DefaultLimit,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks that the parameters are within bounds.
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if p.Pages < MinPages || p.Pages > MaxPages {
		return fmt.Errorf("%w, got %d", ErrInvalidPages, p.Pages)
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return fmt.Errorf("%w, got %d", ErrInvalidLimit, p.Limit)
	}
	return nil
}

// LastPage returns the last server page the walk may request.
func (p PaginationParams) LastPage() int {
	return p.Page + p.Pages - 1
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "title", "id:desc", "place:asc"
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// ApplyLimit returns at most Limit items. A zero limit keeps everything.
func ApplyLimit[T any](p PaginationParams, items []T) []T {
	if p.Limit <= 0 || len(items) <= p.Limit {
		return items
	}
	return items[:p.Limit]
}
