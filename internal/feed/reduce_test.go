package feed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/jobfeed/internal/jobs"
)

func postings(from, n int) []jobs.Posting {
	out := make([]jobs.Posting, 0, n)
	for i := range n {
		id := int64(from + i)
		out = append(out, jobs.Posting{ID: id, Title: "Job"})
	}
	return out
}

// apply runs ev and, when a request is issued, completes it with result.
func apply(t *testing.T, s State, ev Event, result []jobs.Posting, err error) State {
	t.Helper()
	s, req := Reduce(s, ev)
	require.NotNil(t, req, "expected a request for %T", ev)
	if err != nil {
		s, _ = Reduce(s, LoadFailed{Generation: req.Generation, Err: err})
		return s
	}
	s, _ = Reduce(s, LoadSucceeded{Generation: req.Generation, Postings: result})
	return s
}

func TestNewState(t *testing.T) {
	s := NewState(Options{})
	assert.Equal(t, FirstPage, s.Cursor)
	assert.True(t, s.HasMore)
	assert.False(t, s.Loading)
	assert.False(t, s.Refreshing)
	assert.Empty(t, s.Items)
	assert.Empty(t, s.LastError)
	assert.Nil(t, s.InFlight())
	assert.True(t, s.ShowEmpty())
}

func TestReduce_InitialLoad(t *testing.T) {
	s := NewState(Options{})

	s, req := Reduce(s, LoadPage{Page: 1})
	require.NotNil(t, req)
	assert.Equal(t, 1, req.Page)
	assert.False(t, req.Refresh)
	assert.True(t, s.Loading)
	assert.False(t, s.Refreshing)
	assert.True(t, s.ShowInitialLoading())
	assert.True(t, s.ShowLoadingMore())

	s, _ = Reduce(s, LoadSucceeded{Generation: req.Generation, Postings: postings(1, 20)})
	assert.Len(t, s.Items, 20)
	assert.True(t, s.HasMore)
	assert.Equal(t, 2, s.Cursor)
	assert.False(t, s.Loading)
	assert.Nil(t, s.InFlight())
}

func TestReduce_EmptyPageExhausts(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 20), nil)

	s, req := Reduce(s, NextPage{})
	require.NotNil(t, req)
	assert.Equal(t, 2, req.Page)

	s, _ = Reduce(s, LoadSucceeded{Generation: req.Generation})
	assert.Len(t, s.Items, 20)
	assert.False(t, s.HasMore)
	assert.False(t, s.ShowLoadingMore())

	// No further incremental loads until a refresh.
	for range 3 {
		var next *Request
		s, next = Reduce(s, NextPage{})
		assert.Nil(t, next)
		s, next = Reduce(s, LoadPage{Page: 7})
		assert.Nil(t, next)
	}
	assert.False(t, s.Loading)
}

func TestReduce_RefreshAfterExhaustion(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 20), nil)
	s = apply(t, s, NextPage{}, nil, nil)
	require.False(t, s.HasMore)

	s, req := Reduce(s, Refresh{})
	require.NotNil(t, req)
	assert.Equal(t, FirstPage, req.Page)
	assert.True(t, req.Refresh)
	assert.True(t, s.Refreshing)
	assert.False(t, s.Loading)

	fresh := postings(100, 15)
	s, _ = Reduce(s, LoadSucceeded{Generation: req.Generation, Postings: fresh})
	assert.Equal(t, fresh, s.Items)
	assert.Equal(t, 2, s.Cursor)
	assert.True(t, s.HasMore)
	assert.False(t, s.Refreshing)
}

func TestReduce_RefreshAlwaysReplaces(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 10), nil)
	s = apply(t, s, NextPage{}, postings(11, 10), nil)
	require.Len(t, s.Items, 20)
	require.Equal(t, 3, s.Cursor)

	s = apply(t, s, LoadPage{Page: 9, Refresh: true}, postings(50, 3), nil)
	assert.Equal(t, postings(50, 3), s.Items)
	assert.Equal(t, 2, s.Cursor)
}

func TestReduce_RefreshWithNoResults(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 5), nil)

	s = apply(t, s, Refresh{}, nil, nil)
	assert.Empty(t, s.Items)
	assert.False(t, s.HasMore)
	assert.True(t, s.ShowEmpty())
}

func TestReduce_NextPageAppends(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 2), nil)
	s = apply(t, s, NextPage{}, postings(3, 2), nil)

	ids := make([]int64, 0, len(s.Items))
	for _, p := range s.Items {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	assert.Equal(t, 3, s.Cursor)
}

func TestReduce_GuardWhileInFlight(t *testing.T) {
	s, first := Reduce(NewState(Options{}), NextPage{})
	require.NotNil(t, first)

	s, second := Reduce(s, NextPage{})
	assert.Nil(t, second, "next page must not be issued while loading")
	assert.Equal(t, first.Generation, s.Generation())

	_, refresh := Reduce(s, Refresh{})
	assert.NotNil(t, refresh, "refresh is never blocked")
}

func TestReduce_FailureKeepsItems(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 20), nil)

	s = apply(t, s, NextPage{}, nil, errors.New("connection reset"))
	assert.Equal(t, FetchErrorMessage, s.LastError)
	assert.Len(t, s.Items, 20)
	assert.False(t, s.Loading)
	assert.Equal(t, 2, s.Cursor, "cursor does not advance on failure")
	assert.True(t, s.HasMore)
	assert.False(t, s.ShowEmpty())
}

func TestReduce_RefreshFailureClearsRefreshing(t *testing.T) {
	s := apply(t, NewState(Options{}), Refresh{}, nil, errors.New("timeout"))
	assert.False(t, s.Refreshing)
	assert.Equal(t, FetchErrorMessage, s.LastError)
}

// The error stays visible after a later success unless the product opts in.
func TestReduce_LastErrorPersistsAfterSuccess(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, nil, errors.New("offline"))
	require.Equal(t, FetchErrorMessage, s.LastError)

	s = apply(t, s, NextPage{}, postings(1, 3), nil)
	assert.Len(t, s.Items, 3)
	assert.Equal(t, FetchErrorMessage, s.LastError)

	cleared := apply(t, NewState(Options{ClearErrorOnSuccess: true}), NextPage{}, nil, errors.New("offline"))
	cleared = apply(t, cleared, NextPage{}, postings(1, 3), nil)
	assert.Empty(t, cleared.LastError)
}

func TestReduce_StaleCompletionDiscarded(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 5), nil)

	s, stale := Reduce(s, NextPage{})
	require.NotNil(t, stale)
	s, refresh := Reduce(s, Refresh{})
	require.NotNil(t, refresh)
	assert.True(t, s.Refreshing)
	assert.False(t, s.Loading, "only the newest request's flag is set")

	before := s
	s, _ = Reduce(s, LoadSucceeded{Generation: stale.Generation, Postings: postings(900, 5)})
	assert.Equal(t, before.Items, s.Items)
	assert.True(t, s.Refreshing)

	s, _ = Reduce(s, LoadFailed{Generation: stale.Generation, Err: errors.New("late")})
	assert.Empty(t, s.LastError)

	s, _ = Reduce(s, LoadSucceeded{Generation: refresh.Generation, Postings: postings(10, 2)})
	assert.Equal(t, postings(10, 2), s.Items)
	assert.False(t, s.Refreshing)
}

func TestReduce_CompletionWithoutRequestIgnored(t *testing.T) {
	s := NewState(Options{})
	next, req := Reduce(s, LoadSucceeded{Generation: 0, Postings: postings(1, 1)})
	assert.Nil(t, req)
	assert.Empty(t, next.Items)
}

func TestReduce_ExactlyOneFlagInFlight(t *testing.T) {
	events := []Event{NextPage{}, Refresh{}, LoadPage{Page: 3}, Refresh{}}
	s := NewState(Options{})
	for _, ev := range events {
		s, _ = Reduce(s, ev)
		if s.Busy() {
			assert.True(t, s.Loading != s.Refreshing, "after %T", ev)
		} else {
			assert.False(t, s.Loading || s.Refreshing, "after %T", ev)
		}
	}
}

func TestReduce_ToggleExpandIsolated(t *testing.T) {
	s := apply(t, NewState(Options{}), NextPage{}, postings(1, 10), nil)

	s, req := Reduce(s, ToggleExpand{ID: 7})
	assert.Nil(t, req)
	assert.True(t, s.IsExpanded(7))
	for _, p := range s.Items {
		if p.ID != 7 {
			assert.False(t, s.IsExpanded(p.ID), "id %d", p.ID)
		}
	}

	s, _ = Reduce(s, ToggleExpand{ID: 7})
	assert.False(t, s.IsExpanded(7))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := apply(t, NewState(Options{}), NextPage{}, postings(1, 2), nil)
	items := base.Items

	next, req := Reduce(base, NextPage{})
	_, _ = Reduce(next, LoadSucceeded{Generation: req.Generation, Postings: postings(3, 2)})
	_, _ = Reduce(base, ToggleExpand{ID: 1})

	assert.Len(t, base.Items, 2)
	assert.Equal(t, items, base.Items)
	assert.False(t, base.IsExpanded(1))
	assert.Nil(t, base.InFlight())
}
