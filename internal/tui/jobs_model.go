package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/jobfeed/internal/feed"
	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/internal/logging"
	listview "github.com/rshade/jobfeed/internal/tui/list"
)

// Default dimensions and behaviour for the job list screen.
const (
	jobsDefaultWidth  = 80
	jobsDefaultHeight = 24

	// DefaultGreeting is the header label.
	DefaultGreeting = "Hello User"
	// DefaultEndThreshold is how close to the last card the selection must
	// be before the next page is requested.
	DefaultEndThreshold = 2

	// fadeDuration is how long cards stay dimmed after a refresh or toggle.
	fadeDuration = 300 * time.Millisecond

	// chromeLines covers header, status and help rows.
	chromeLines = 5
	// approxCardLines is the height of a collapsed card including border.
	approxCardLines = 6
)

// pageLoadedMsg carries a successful fetch back into Update.
type pageLoadedMsg struct {
	generation uint64
	postings   []jobs.Posting
}

// pageFailedMsg carries a failed fetch back into Update.
type pageFailedMsg struct {
	generation uint64
	err        error
}

// fadeDoneMsg ends the fade started with the same sequence number.
type fadeDoneMsg struct {
	seq int
}

// JobsOptions configures a JobsModel.
type JobsOptions struct {
	Greeting     string
	Timeout      time.Duration
	EndThreshold int
	Feed         feed.Options
}

// JobsModel is the Bubble Tea model for the paginated job list.
// Update is the only writer of state; fetches run as commands and report
// back as messages tagged with their request generation.
type JobsModel struct {
	ctx     context.Context
	fetcher feed.Fetcher
	opts    JobsOptions

	state feed.State
	list  *listview.VirtualListModel[jobs.Posting]

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	printer *message.Printer

	// cancel aborts the request in flight.
	cancel context.CancelFunc

	fading  bool
	fadeSeq int

	quitting bool

	width  int
	height int
}

// NewJobsModel creates the job list screen. Nothing is fetched until Init.
func NewJobsModel(ctx context.Context, fetcher feed.Fetcher, opts JobsOptions) *JobsModel {
	if opts.Greeting == "" {
		opts.Greeting = DefaultGreeting
	}
	if opts.Timeout <= 0 {
		opts.Timeout = jobs.DefaultTimeout
	}
	if opts.EndThreshold < 0 {
		opts.EndThreshold = DefaultEndThreshold
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := &JobsModel{
		ctx:     ctx,
		fetcher: fetcher,
		opts:    opts,
		state:   feed.NewState(opts.Feed),
		spinner: s,
		help:    help.New(),
		keys:    defaultKeyMap(),
		printer: message.NewPrinter(language.English),
		width:   jobsDefaultWidth,
		height:  jobsDefaultHeight,
	}
	m.list = listview.NewVirtualListModel(nil, m.visibleCards(), m.width, m.renderCard)
	return m
}

// Init starts the first page load.
func (m *JobsModel) Init() tea.Cmd {
	return m.dispatch(feed.LoadPage{Page: feed.FirstPage})
}

// State returns the current feed state.
func (m *JobsModel) State() feed.State {
	return m.state
}

// Update handles messages and updates the model state.
func (m *JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(m.visibleCards(), m.width)
		return m, nil

	case pageLoadedMsg:
		return m, m.dispatch(feed.LoadSucceeded{Generation: msg.generation, Postings: msg.postings})

	case pageFailedMsg:
		m.logFailure(msg)
		return m, m.dispatch(feed.LoadFailed{Generation: msg.generation, Err: msg.err})

	case fadeDoneMsg:
		if msg.seq == m.fadeSeq {
			m.fading = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *JobsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancelInFlight()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m, m.dispatch(feed.Refresh{})

	case key.Matches(msg, m.keys.Toggle):
		item := m.list.GetSelectedItem()
		if item == nil {
			return m, nil
		}
		return m, m.dispatch(feed.ToggleExpand{ID: item.ID})

	case key.Matches(msg, m.keys.LoadMore):
		return m, m.dispatch(feed.NextPage{})
	}

	before := m.list.Selected()
	m.list.Update(msg)
	moved := m.list.Selected() != before || key.Matches(msg, m.keys.Down)
	if moved && m.list.NearEnd(m.opts.EndThreshold) {
		return m, m.dispatch(feed.NextPage{})
	}
	return m, nil
}

// dispatch commits ev and returns the commands the transition needs: the
// fetch for a new request, the spinner, and the fade after the commit.
func (m *JobsModel) dispatch(ev feed.Event) tea.Cmd {
	prev := m.state
	next, req := feed.Reduce(prev, ev)
	m.state = next
	m.list.SetItems(next.Items)
	if refreshCommitted(prev, next, ev) {
		m.list.SetSelected(0)
	}

	var cmds []tea.Cmd
	if req != nil {
		cmds = append(cmds, m.fetch(*req), m.spinner.Tick)
	}
	if shouldFade(prev, next, ev) {
		cmds = append(cmds, m.startFade())
	}
	if !next.Busy() {
		m.cancelInFlight()
	}
	return tea.Batch(cmds...)
}

// fetch returns a command performing req under its own timeout. A request
// that is still running is cancelled first; it has been superseded.
func (m *JobsModel) fetch(req feed.Request) tea.Cmd {
	m.cancelInFlight()
	ctx, cancel := context.WithTimeout(m.ctx, m.opts.Timeout)
	m.cancel = cancel
	if req.Refresh {
		ctx = jobs.WithFreshFetch(ctx)
	}

	fetcher := m.fetcher
	return func() tea.Msg {
		defer cancel()
		postings, err := fetcher.FetchPage(ctx, req.Page)
		if err != nil {
			return pageFailedMsg{generation: req.Generation, err: err}
		}
		return pageLoadedMsg{generation: req.Generation, postings: postings}
	}
}

func (m *JobsModel) cancelInFlight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// refreshCommitted reports whether ev replaced the list with a fresh first page.
func refreshCommitted(prev, next feed.State, ev feed.Event) bool {
	_, ok := ev.(feed.LoadSucceeded)
	return ok && prev.Refreshing && !next.Refreshing
}

// shouldFade reports whether the commit was a completed refresh or a toggle.
func shouldFade(prev, next feed.State, ev feed.Event) bool {
	if _, ok := ev.(feed.ToggleExpand); ok {
		return true
	}
	return refreshCommitted(prev, next, ev)
}

func (m *JobsModel) startFade() tea.Cmd {
	m.fading = true
	m.fadeSeq++
	seq := m.fadeSeq
	return tea.Tick(fadeDuration, func(time.Time) tea.Msg {
		return fadeDoneMsg{seq: seq}
	})
}

func (m *JobsModel) logFailure(msg pageFailedMsg) {
	log := logging.ComponentLogger(*logging.FromContext(m.ctx), "tui")
	log.Warn().
		Uint64("generation", msg.generation).
		Err(msg.err).
		Msg("job page fetch failed")
}

// visibleCards estimates how many collapsed cards fit on screen.
func (m *JobsModel) visibleCards() int {
	return max((m.height-chromeLines)/approxCardLines, 1)
}

func (m *JobsModel) renderCard(p jobs.Posting, selected bool) string {
	style := CardStyle
	switch {
	case selected:
		style = SelectedCardStyle
	case m.fading:
		style = FadingCardStyle
	}
	return renderCard(p, m.state.IsExpanded(p.ID), style, m.width)
}
