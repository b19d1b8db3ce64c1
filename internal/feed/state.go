package feed

import (
	"github.com/rshade/jobfeed/internal/jobs"
)

// FetchErrorMessage is the user-facing text for any failed fetch.
const FetchErrorMessage = "Some network issue occurred while fetching jobs."

// FirstPage is the page requested by a refresh and by the initial load.
const FirstPage = 1

// Options tune product decisions that the state machine leaves open.
type Options struct {
	// ClearErrorOnSuccess clears LastError when a later fetch succeeds.
	// Off by default: the error stays until overwritten.
	ClearErrorOnSuccess bool
}

// State is the complete paging state. Values are never mutated in place by
// Reduce; every transition returns a new State.
type State struct {
	// Items are the postings loaded so far, in page order.
	Items []jobs.Posting
	// Cursor is the next page number for incremental loads.
	Cursor int
	// Loading is true while an initial or next-page request is in flight.
	Loading bool
	// Refreshing is true while a refresh request is in flight.
	Refreshing bool
	// HasMore is false once a page came back empty.
	HasMore bool
	// LastError holds FetchErrorMessage after a failure, or "".
	LastError string
	// Expanded records which postings show their full title.
	Expanded Expansion

	opts       Options
	generation uint64
	inFlight   *Request
}

// NewState returns the state of a screen that has not loaded anything yet.
func NewState(opts Options) State {
	return State{
		Cursor:   FirstPage,
		HasMore:  true,
		Expanded: Expansion{},
		opts:     opts,
	}
}

// InFlight returns the request currently awaited, or nil.
func (s State) InFlight() *Request {
	if s.inFlight == nil {
		return nil
	}
	r := *s.inFlight
	return &r
}

// Busy reports whether any request is in flight.
func (s State) Busy() bool {
	return s.inFlight != nil
}

// Generation returns the generation of the most recently issued request.
func (s State) Generation() uint64 {
	return s.generation
}

// ShowLoadingMore reports whether the "loading more" footer is visible.
func (s State) ShowLoadingMore() bool {
	return s.HasMore && s.Loading
}

// ShowInitialLoading reports whether the full-screen loading view is visible.
func (s State) ShowInitialLoading() bool {
	return s.Loading && len(s.Items) == 0
}

// ShowEmpty reports whether the empty-state label is visible.
func (s State) ShowEmpty() bool {
	return !s.Loading && s.LastError == "" && len(s.Items) == 0
}

// IsExpanded reports whether the posting with id shows its full title.
func (s State) IsExpanded(id int64) bool {
	return s.Expanded.IsExpanded(id)
}

// Request is a fetch the caller must perform and report back.
type Request struct {
	Page       int
	Refresh    bool
	Generation uint64
}
