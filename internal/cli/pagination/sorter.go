package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/jobfeed/internal/jobs"
)

// Sorter defines the interface for sorting postings.
type Sorter interface {
	// Sort sorts postings by the specified field and order.
	Sort(postings []jobs.Posting, field, order string) []jobs.Posting
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// PostingSorter implements Sorter for jobs.Posting.
type PostingSorter struct {
	compare map[string]func(a, b jobs.Posting) int
}

// NewPostingSorter creates a new PostingSorter with valid sort fields.
func NewPostingSorter() *PostingSorter {
	return &PostingSorter{
		compare: map[string]func(a, b jobs.Posting) int{
			"id": func(a, b jobs.Posting) int { return cmp.Compare(a.ID, b.ID) },
			"title": func(a, b jobs.Posting) int {
				return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
			},
			"place": func(a, b jobs.Posting) int {
				return cmp.Compare(strings.ToLower(a.Place), strings.ToLower(b.Place))
			},
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *PostingSorter) IsValidField(field string) bool {
	_, ok := s.compare[field]
	return ok
}

// GetValidFields returns all valid sort fields.
func (s *PostingSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.compare))
	for field := range s.compare {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// ValidateField returns ErrInvalidSortField for unknown fields. The empty
// field means server order and is always valid.
func (s *PostingSorter) ValidateField(field string) error {
	if field == "" || s.IsValidField(field) {
		return nil
	}
	return fmt.Errorf("%w %q: valid fields are %s",
		ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
}

// Sort returns a sorted copy of postings. Unknown fields return the input
// unchanged. Ties keep server order.
func (s *PostingSorter) Sort(postings []jobs.Posting, field, order string) []jobs.Posting {
	compare, ok := s.compare[field]
	if !ok {
		return postings
	}

	sorted := slices.Clone(postings)
	slices.SortStableFunc(sorted, func(a, b jobs.Posting) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted
}
