package feed

import (
	"github.com/rshade/jobfeed/internal/jobs"
)

// Reduce applies ev to s. The returned Request is non-nil when the caller must
// start a fetch; its result comes back as LoadSucceeded or LoadFailed carrying
// the same Generation.
func Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case LoadPage:
		return loadPage(s, ev.Page, ev.Refresh)
	case Refresh:
		return loadPage(s, FirstPage, true)
	case NextPage:
		return loadPage(s, s.Cursor, false)
	case LoadSucceeded:
		return succeed(s, ev), nil
	case LoadFailed:
		return fail(s, ev), nil
	case ToggleExpand:
		s.Expanded = s.Expanded.Toggle(ev.ID)
		return s, nil
	default:
		return s, nil
	}
}

func loadPage(s State, page int, refresh bool) (State, *Request) {
	if !refresh && (s.Busy() || !s.HasMore) {
		return s, nil
	}
	if refresh {
		page = FirstPage
	}
	if page < FirstPage {
		page = FirstPage
	}

	s.generation++
	req := &Request{Page: page, Refresh: refresh, Generation: s.generation}
	s.inFlight = req

	// A new request supersedes whatever was in flight, so only its flag is set.
	s.Loading = !refresh
	s.Refreshing = refresh

	out := *req
	return s, &out
}

func succeed(s State, ev LoadSucceeded) State {
	req := s.inFlight
	if req == nil || ev.Generation != req.Generation {
		return s
	}

	if req.Refresh {
		s.Items = append([]jobs.Posting(nil), ev.Postings...)
		s.Cursor = FirstPage + 1
		s.HasMore = len(ev.Postings) > 0
	} else {
		merged := make([]jobs.Posting, 0, len(s.Items)+len(ev.Postings))
		merged = append(merged, s.Items...)
		merged = append(merged, ev.Postings...)
		s.Items = merged
		s.Cursor = req.Page + 1
		if len(ev.Postings) == 0 {
			s.HasMore = false
		}
	}

	if s.opts.ClearErrorOnSuccess {
		s.LastError = ""
	}
	return finish(s)
}

func fail(s State, ev LoadFailed) State {
	req := s.inFlight
	if req == nil || ev.Generation != req.Generation {
		return s
	}
	s.LastError = FetchErrorMessage
	return finish(s)
}

func finish(s State) State {
	s.inFlight = nil
	s.Loading = false
	s.Refreshing = false
	return s
}
