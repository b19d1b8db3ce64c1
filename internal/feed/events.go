package feed

import (
	"github.com/rshade/jobfeed/internal/jobs"
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// LoadPage asks for page. Refresh loads always request FirstPage.
type LoadPage struct {
	Page    int
	Refresh bool
}

// Refresh reloads the first page and replaces the list.
type Refresh struct{}

// NextPage loads the page at the cursor.
type NextPage struct{}

// LoadSucceeded reports a completed request.
type LoadSucceeded struct {
	Generation uint64
	Postings   []jobs.Posting
}

// LoadFailed reports a failed request.
type LoadFailed struct {
	Generation uint64
	Err        error
}

// ToggleExpand flips the expanded flag of one posting.
type ToggleExpand struct {
	ID int64
}

func (LoadPage) isEvent()      {}
func (Refresh) isEvent()       {}
func (NextPage) isEvent()      {}
func (LoadSucceeded) isEvent() {}
func (LoadFailed) isEvent()    {}
func (ToggleExpand) isEvent()  {}
