package jobs

import "errors"

// ErrFetch is the single failure kind of the jobs API: transport errors,
// timeouts, non-2xx responses and malformed bodies all wrap it.
var ErrFetch = errors.New("fetching jobs failed")
