package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/jobfeed/internal/logging"
)

// Defaults for the jobs API.
const (
	DefaultBaseURL = "https://testapi.getlokalapp.com"
	DefaultTimeout = 15 * time.Second
	jobsPath       = "/common/jobs"
	maxBodyBytes   = 8 << 20
)

// Client fetches pages from the jobs API. The zero value is not usable;
// construct with NewClient.
type Client struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client

	group singleflight.Group
}

// NewClient returns a client for baseURL. An empty baseURL uses
// DefaultBaseURL; a non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// PageURL returns the request URL for page.
func (c *Client) PageURL(page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return c.BaseURL + jobsPath + "?" + q.Encode()
}

type freshFetchKey struct{}

// WithFreshFetch marks ctx so that FetchPage sends a new request instead of
// joining one already in flight for the same page. Refreshes use it: a
// request started before the refresh must not answer it.
func WithFreshFetch(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshFetchKey{}, true)
}

// IsFreshFetch reports whether ctx was marked by WithFreshFetch.
func IsFreshFetch(ctx context.Context) bool {
	fresh, _ := ctx.Value(freshFetchKey{}).(bool)
	return fresh
}

// FetchPage retrieves one page of postings. Concurrent calls for the same
// page share a single HTTP request unless ctx is marked by WithFreshFetch;
// the shared request is bounded by the HTTP client timeout, and each caller
// stops waiting when its own ctx is done. Every error wraps ErrFetch.
func (c *Client) FetchPage(ctx context.Context, page int) ([]Posting, error) {
	key := strconv.Itoa(page)
	if IsFreshFetch(ctx) {
		// Later callers join the new request; waiters on the old one keep it.
		c.group.Forget(key)
	}
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetchPage(context.WithoutCancel(ctx), page)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: page %d: %w", ErrFetch, page, ctx.Err())
	case res := <-ch:
		if res.Shared {
			logging.FromContext(ctx).Debug().
				Str("component", "jobs").
				Int("page", page).
				Msg("coalesced duplicate page request")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		postings, _ := res.Val.([]Posting)
		return postings, nil
	}
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]Posting, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "jobs").
		Int("page", page).
		Logger()

	reqURL := c.PageURL(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logger.Warn().Err(err).Msg("jobs request failed")
		return nil, fmt.Errorf("%w: GET %s: %w", ErrFetch, reqURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Debug().Err(cerr).Msg("closing response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Warn().Int("status", resp.StatusCode).Msg("unexpected jobs API status")
		return nil, fmt.Errorf("%w: GET %s returned %d", ErrFetch, reqURL, resp.StatusCode)
	}

	postings, err := DecodePage(body)
	if err != nil {
		logger.Warn().Err(err).Msg("malformed jobs page")
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	logger.Debug().
		Int("count", len(postings)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched jobs page")
	return postings, nil
}
