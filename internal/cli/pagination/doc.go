// Package pagination provides utilities for CLI pagination, sorting, and result formatting.
//
// This package contains the pagination logic behind `jobfeed list`, including:
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: Response metadata for paginated results
//   - Sorter: Posting sorting with field validation
//
// Server pages are walked with --page and --pages; --limit and --sort then
// shape the collected postings before they are printed.
package pagination
