package pagination

// PaginationMeta describes which server pages a listing covers.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	StartPage    int  `json:"start_page"`
	EndPage      int  `json:"end_page"`
	PagesFetched int  `json:"pages_fetched"`
	TotalItems   int  `json:"total_items"`
	Returned     int  `json:"returned"`
	HasMore      bool `json:"has_more"`
	NextPage     int  `json:"next_page,omitempty"`
}

// NewPaginationMeta builds metadata for a walk that started at params.Page.
// nextPage is the cursor after the walk; it is omitted once the feed is
// exhausted.
func NewPaginationMeta(
	params PaginationParams,
	pagesFetched, totalItems, returned int,
	hasMore bool,
	nextPage int,
) PaginationMeta {
	endPage := params.Page
	if pagesFetched > 0 {
		endPage = params.Page + pagesFetched - 1
	}

	meta := PaginationMeta{
		StartPage:    params.Page,
		EndPage:      endPage,
		PagesFetched: pagesFetched,
		TotalItems:   totalItems,
		Returned:     returned,
		HasMore:      hasMore,
	}
	if hasMore {
		meta.NextPage = nextPage
	}
	return meta
}
