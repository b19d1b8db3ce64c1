// Package feed implements the paging and refresh state machine behind the job
// list.
//
// All transitions go through Reduce, a pure function from (State, Event) to
// the next State plus an optional Request the caller must execute. Requests
// carry a generation; a completion whose generation is no longer current is
// discarded, so a superseded fetch can never overwrite newer state.
//
// Controller wraps Reduce for callers that are not already event loops (the
// list command). The terminal UI drives Reduce directly from Bubble Tea
// messages.
package feed
