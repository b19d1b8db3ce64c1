package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/internal/logging"
)

// Fetcher loads one page of postings.
type Fetcher interface {
	FetchPage(ctx context.Context, page int) ([]jobs.Posting, error)
}

// Observer is notified after every committed transition that changed state.
// It runs outside the controller lock.
type Observer interface {
	Committed(prev, next State, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next State, ev Event)

// Committed calls f.
func (f ObserverFunc) Committed(prev, next State, ev Event) {
	f(prev, next, ev)
}

// Controller owns a State and performs the fetches Reduce asks for.
// It is safe for concurrent use.
type Controller struct {
	fetcher  Fetcher
	timeout  time.Duration
	observer Observer

	mu        sync.Mutex
	state     State
	cancel    context.CancelFunc
	cancelGen uint64
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTimeout bounds each fetch. Non-positive values use jobs.DefaultTimeout.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver registers an observer for committed transitions.
func WithObserver(o Observer) ControllerOption {
	return func(c *Controller) {
		c.observer = o
	}
}

// WithOptions sets the state machine options.
func WithOptions(opts Options) ControllerOption {
	return func(c *Controller) {
		c.state = NewState(opts)
	}
}

// NewController returns a controller with an empty state.
func NewController(fetcher Fetcher, opts ...ControllerOption) *Controller {
	c := &Controller{
		fetcher: fetcher,
		timeout: jobs.DefaultTimeout,
		state:   NewState(Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadPage loads page (or the first page when refresh is set) and blocks
// until the fetch completes, is superseded, or ctx ends.
func (c *Controller) LoadPage(ctx context.Context, page int, refresh bool) State {
	return c.run(ctx, LoadPage{Page: page, Refresh: refresh})
}

// TriggerRefresh reloads the first page and replaces the list.
func (c *Controller) TriggerRefresh(ctx context.Context) State {
	return c.run(ctx, Refresh{})
}

// RequestNextPage loads the page at the cursor.
func (c *Controller) RequestNextPage(ctx context.Context) State {
	return c.run(ctx, NextPage{})
}

// ToggleExpand flips the expanded flag of id.
func (c *Controller) ToggleExpand(id int64) State {
	next, _ := c.dispatch(ToggleExpand{ID: id})
	return next
}

// Close cancels any in-flight fetch.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) run(ctx context.Context, ev Event) State {
	logger := logging.ComponentLogger(*logging.FromContext(ctx), "feed")

	c.mu.Lock()
	prev := c.state
	next, req := Reduce(prev, ev)
	c.state = next
	var fetchCtx context.Context
	if req != nil {
		if c.cancel != nil {
			// Superseded: its completion would be discarded anyway.
			c.cancel()
		}
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		c.cancel = cancel
		c.cancelGen = req.Generation
		if req.Refresh {
			fetchCtx = jobs.WithFreshFetch(fetchCtx)
		}
	}
	c.mu.Unlock()
	c.notify(prev, next, ev)

	if req == nil {
		logger.Debug().Type("event", ev).Msg("load skipped by guard")
		return next
	}

	logger.Debug().
		Int("page", req.Page).
		Bool("refresh", req.Refresh).
		Uint64("generation", req.Generation).
		Msg("fetching page")

	postings, err := c.fetcher.FetchPage(fetchCtx, req.Page)

	var done Event = LoadSucceeded{Generation: req.Generation, Postings: postings}
	if err != nil {
		logFailure(logger, req, err)
		done = LoadFailed{Generation: req.Generation, Err: err}
	}

	c.mu.Lock()
	if c.cancelGen == req.Generation && c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	next, _ = c.dispatch(done)
	return next
}

func (c *Controller) dispatch(ev Event) (State, *Request) {
	c.mu.Lock()
	prev := c.state
	next, req := Reduce(prev, ev)
	c.state = next
	c.mu.Unlock()

	c.notify(prev, next, ev)
	return next, req
}

func (c *Controller) notify(prev, next State, ev Event) {
	if c.observer != nil && changed(prev, next) {
		c.observer.Committed(prev, next, ev)
	}
}

func changed(prev, next State) bool {
	return prev.generation != next.generation ||
		prev.inFlight != next.inFlight ||
		len(prev.Expanded) != len(next.Expanded) ||
		!sameExpansion(prev.Expanded, next.Expanded)
}

func sameExpansion(a, b Expansion) bool {
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func logFailure(logger zerolog.Logger, req *Request, err error) {
	logger.Warn().
		Err(err).
		Int("page", req.Page).
		Bool("refresh", req.Refresh).
		Uint64("generation", req.Generation).
		Msg("page fetch failed")
}
